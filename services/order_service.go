package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

// MissingProductsError names cart lines whose product no longer exists
type MissingProductsError struct {
	IDs []int64
}

func (e *MissingProductsError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "products not found: " + strings.Join(parts, ", ")
}

type OrderService struct {
	log *logrus.Entry
}

func NewOrderService() *OrderService {
	return &OrderService{log: logrus.WithField("component", "order")}
}

// mergeLines folds repeated product ids into one line, keeping first-seen order
func mergeLines(lines []models.CartLine) []models.CartLine {
	merged := make([]models.CartLine, 0, len(lines))
	index := make(map[int64]int, len(lines))
	for _, l := range lines {
		if i, ok := index[l.ProductID]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, l)
	}
	return merged
}

// price loads the products behind lines and prices them. Products priced 0
// are "price on request" and contribute nothing to the total.
func (s *OrderService) price(ctx context.Context, db *gorm.DB, lines []models.CartLine) (*models.CartQuote, error) {
	lines = mergeLines(lines)

	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}

	var products []models.Product
	if len(ids) > 0 {
		if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
			return nil, fmt.Errorf("load cart products: %w", err)
		}
	}
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	quote := &models.CartQuote{
		Items:      make([]models.CartQuoteLine, 0, len(lines)),
		TotalPrice: decimal.Zero,
	}
	var missing []int64
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			missing = append(missing, l.ProductID)
			continue
		}
		subtotal := p.Price.Mul(decimalFromInt(l.Quantity))
		quote.Items = append(quote.Items, models.CartQuoteLine{
			ProductID: p.ID,
			Name:      p.Name,
			Unit:      p.Unit,
			Quantity:  l.Quantity,
			Price:     p.Price,
			Subtotal:  subtotal,
		})
		quote.TotalItems += l.Quantity
		quote.TotalPrice = quote.TotalPrice.Add(subtotal)
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, &MissingProductsError{IDs: missing}
	}
	return quote, nil
}

// QuoteCart prices the client cart against current product prices
func (s *OrderService) QuoteCart(ctx context.Context, lines []models.CartLine) (*models.CartQuote, error) {
	return s.price(ctx, config.DB, lines)
}

// CreateOrder prices the cart and stores the order with its items in one
// transaction. The manager notification is sent in the background.
func (s *OrderService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Step 1: Price against current data
		quote, err := s.price(ctx, tx, req.Items)
		if err != nil {
			return err
		}

		// Step 2: Create order
		order = models.Order{
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
			CustomerEmail:   req.CustomerEmail,
			DeliveryAddress: req.DeliveryAddress,
			Comment:         req.Comment,
			TotalAmount:     quote.TotalPrice,
			Status:          models.OrderStatusNew,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		// Step 3: Create items
		items := make([]models.OrderItem, 0, len(quote.Items))
		for _, line := range quote.Items {
			items = append(items, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   line.ProductID,
				ProductName: line.Name,
				Quantity:    line.Quantity,
				Price:       line.Price,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("create order items: %w", err)
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"items":    len(order.Items),
		"total":    order.TotalAmount.StringFixed(2),
	}).Info("order created")

	// Step 4: Notify without holding the request
	go s.notify(order)

	return &order, nil
}

func (s *OrderService) notify(order models.Order) {
	client := GetResendClient()
	if !client.Enabled() {
		s.log.WithField("order_id", order.ID).Debug("mail disabled, skipping order notification")
		return
	}
	ctx, cancel := config.WithCustomTimeout(30 * time.Second)
	defer cancel()
	if err := client.SendOrderNotification(ctx, order); err != nil {
		s.log.WithError(err).WithField("order_id", order.ID).Error("failed to send order notification")
	}
}

// List returns orders newest first
func (s *OrderService) List(ctx context.Context, q models.OrderListQuery) ([]models.Order, *models.Pagination, error) {
	page, limit := normalizePage(q.Page, q.Limit, 20)

	query := config.DB.WithContext(ctx).Model(&models.Order{})
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(customer_name) LIKE ? OR customer_phone LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("count orders: %w", err)
	}

	orders := []models.Order{}
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, models.NewPagination(page, limit, int(total)), nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := config.DB.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus sets a new status and returns the order before and after
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (before string, order *models.Order, err error) {
	order, err = s.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}
	before = order.Status
	if before == status {
		return before, order, nil
	}

	if err := config.DB.WithContext(ctx).Model(order).Update("status", status).Error; err != nil {
		return "", nil, fmt.Errorf("update order status: %w", err)
	}
	order.Status = status

	s.log.WithFields(logrus.Fields{
		"order_id": id,
		"from":     before,
		"to":       status,
	}).Info("order status changed")
	return before, order, nil
}

// Stats counts orders per status; every known status is present, even at 0
func (s *OrderService) Stats(ctx context.Context) (*models.OrderStats, error) {
	var rows []struct {
		Status  string
		Count   int
		Revenue decimal.NullDecimal
	}
	if err := config.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS count, SUM(total_amount) AS revenue").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}

	stats := &models.OrderStats{
		ByStatus: make(map[string]int, len(models.OrderStatuses)),
		Revenue:  decimal.Zero,
	}
	for _, st := range models.OrderStatuses {
		stats.ByStatus[st] = 0
	}
	for _, r := range rows {
		stats.ByStatus[r.Status] = r.Count
		stats.Total += r.Count
		if r.Status != models.OrderStatusCancelled && r.Revenue.Valid {
			stats.Revenue = stats.Revenue.Add(r.Revenue.Decimal)
		}
	}
	return stats, nil
}

var orderService *OrderService

func GetOrderService() *OrderService {
	if orderService == nil {
		orderService = NewOrderService()
	}
	return orderService
}
