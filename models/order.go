package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusNew        = "new"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses lists every valid order status in lifecycle order
var OrderStatuses = []string{
	OrderStatusNew,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Order is a guest checkout order
type Order struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	CustomerName    string          `json:"customer_name" gorm:"not null"`
	CustomerPhone   string          `json:"customer_phone" gorm:"not null"`
	CustomerEmail   *string         `json:"customer_email"`
	DeliveryAddress *string         `json:"delivery_address" gorm:"type:text"`
	Comment         *string         `json:"comment" gorm:"type:text"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null;default:0"`
	Status          string          `json:"status" gorm:"type:varchar(20);not null;default:'new';index"`
	Items           []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.Must(uuid.NewV7())
	}
	if o.Status == "" {
		o.Status = OrderStatusNew
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) AuditName() string { return o.CustomerName }

// OrderItem is one product line of an order. Price and name are captured at
// checkout time.
type OrderItem struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID   int64           `json:"product_id" gorm:"not null;index"`
	ProductName string          `json:"product_name" gorm:"not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (OrderItem) TableName() string {
	return "order_items"
}

// ════════════════════════════════════════════════════════════
// Cart / checkout
// ════════════════════════════════════════════════════════════

// CartLine is one product + quantity pair sent by the client cart
type CartLine struct {
	ProductID int64 `json:"product_id" binding:"required,min=1" example:"12"`
	Quantity  int   `json:"quantity" binding:"required,min=1" example:"3"`
}

type CartQuoteRequest struct {
	Items []CartLine `json:"items" binding:"required,dive"`
}

// CartQuoteLine is a priced cart line
type CartQuoteLine struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartQuote sums the cart. Lines with price 0 (price on request) add nothing
// to the total.
type CartQuote struct {
	Items      []CartQuoteLine `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CreateOrderRequest is the guest checkout form
type CreateOrderRequest struct {
	CustomerName    string     `json:"customer_name" binding:"required,min=2" example:"Иван Петров"`
	CustomerPhone   string     `json:"customer_phone" binding:"required,phone" example:"+7 900 123-45-67"`
	CustomerEmail   *string    `json:"customer_email" binding:"omitempty,email"`
	DeliveryAddress *string    `json:"delivery_address"`
	Comment         *string    `json:"comment"`
	Items           []CartLine `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest is the admin status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus" example:"processing"`
}

// OrderListQuery filters the admin order list
type OrderListQuery struct {
	Status string `form:"status" binding:"omitempty,orderstatus"`
	Search string `form:"search"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// OrderStats is the back-office order summary. Revenue excludes cancelled
// orders.
type OrderStats struct {
	Total    int             `json:"total"`
	ByStatus map[string]int  `json:"by_status"`
	Revenue  decimal.Decimal `json:"revenue"`
}
