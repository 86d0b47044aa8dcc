package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestQuoteCart(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	quote, err := GetOrderService().QuoteCart(bg, []models.CartLine{
		{ProductID: 10, Quantity: 2},
		{ProductID: 12, Quantity: 5},
		{ProductID: 10, Quantity: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(quote.Items) != 2 {
		t.Fatalf("duplicate lines should merge, got %d items", len(quote.Items))
	}
	if quote.Items[0].ProductID != 10 || quote.Items[0].Quantity != 3 {
		t.Errorf("first line = %+v", quote.Items[0])
	}
	if quote.TotalItems != 8 {
		t.Errorf("total items = %d, want 8", quote.TotalItems)
	}
	// the price-on-request board adds nothing
	if !quote.TotalPrice.Equal(decimal.NewFromInt(1350)) {
		t.Errorf("total price = %s, want 1350", quote.TotalPrice)
	}
}

func TestQuoteCartMissingProducts(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	_, err := GetOrderService().QuoteCart(bg, []models.CartLine{
		{ProductID: 99, Quantity: 1},
		{ProductID: 10, Quantity: 1},
		{ProductID: 77, Quantity: 1},
	})
	var missing *MissingProductsError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingProductsError", err)
	}
	if !reflect.DeepEqual(missing.IDs, []int64{77, 99}) {
		t.Errorf("missing ids = %v", missing.IDs)
	}
}

func TestCreateOrder(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	order, err := GetOrderService().CreateOrder(bg, models.CreateOrderRequest{
		CustomerName:  " Иван Петров ",
		CustomerPhone: "+7 900 123-45-67",
		Items: []models.CartLine{
			{ProductID: 10, Quantity: 2},
			{ProductID: 13, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if order.ID == uuid.Nil || order.Status != models.OrderStatusNew {
		t.Errorf("order = %+v", order)
	}
	if order.CustomerName != "Иван Петров" {
		t.Errorf("customer name not trimmed: %q", order.CustomerName)
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("total = %s, want 1800", order.TotalAmount)
	}

	stored, err := GetOrderService().Get(bg, order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("stored items = %d, want 2", len(stored.Items))
	}
	if stored.Items[0].ProductName == "" {
		t.Error("product name not captured on the item")
	}
}

func TestCreateOrderRollsBackOnMissingProduct(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	_, err := GetOrderService().CreateOrder(bg, models.CreateOrderRequest{
		CustomerName:  "Иван",
		CustomerPhone: "89001234567",
		Items:         []models.CartLine{{ProductID: 10, Quantity: 1}, {ProductID: 404, Quantity: 1}},
	})
	var missing *MissingProductsError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v", err)
	}
	if n := countRows(t, db, &models.Order{}); n != 0 {
		t.Errorf("orders = %d, want 0", n)
	}
	if n := countRows(t, db, &models.OrderItem{}); n != 0 {
		t.Errorf("order items = %d, want 0", n)
	}
}

func TestOrderStatusAndList(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := GetOrderService()

	for i, name := range []string{"Анна", "Борис"} {
		if _, err := svc.CreateOrder(bg, models.CreateOrderRequest{
			CustomerName:  name,
			CustomerPhone: []string{"89001110000", "89002220000"}[i],
			Items:         []models.CartLine{{ProductID: 14, Quantity: 1}},
		}); err != nil {
			t.Fatal(err)
		}
	}

	orders, meta, err := svc.List(bg, models.OrderListQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if meta.Total != 2 || len(orders) != 2 {
		t.Fatalf("total = %d, len = %d", meta.Total, len(orders))
	}

	before, updated, err := svc.UpdateStatus(bg, orders[0].ID, models.OrderStatusShipped)
	if err != nil {
		t.Fatal(err)
	}
	if before != models.OrderStatusNew || updated.Status != models.OrderStatusShipped {
		t.Errorf("before = %s, after = %s", before, updated.Status)
	}

	shipped, meta, err := svc.List(bg, models.OrderListQuery{Status: models.OrderStatusShipped})
	if err != nil {
		t.Fatal(err)
	}
	if meta.Total != 1 || shipped[0].ID != orders[0].ID {
		t.Errorf("status filter returned %+v", shipped)
	}

	found, _, err := svc.List(bg, models.OrderListQuery{Search: "222"})
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].CustomerName != "Борис" {
		t.Errorf("search returned %+v", found)
	}

	stats, err := svc.Stats(bg)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 2 || stats.ByStatus[models.OrderStatusNew] != 1 || stats.ByStatus[models.OrderStatusCancelled] != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if !stats.Revenue.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("revenue = %s, want 3000", stats.Revenue)
	}

	if _, err := svc.Get(bg, uuid.New()); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}
