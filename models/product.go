package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ═══════════════════════════════════════════════════════════
// Main Product Model (GORM)
// ═══════════════════════════════════════════════════════════

// Product is a catalog item. Price 0 means "price on request".
type Product struct {
	ID              int64               `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string              `json:"name" gorm:"not null;index"`
	Description     *string             `json:"description" gorm:"type:text"`
	Price           decimal.Decimal     `json:"price" gorm:"type:numeric(12,2);not null;default:0"`
	PricePerCubic   decimal.NullDecimal `json:"price_per_cubic" gorm:"type:numeric(12,2)"`
	ImageURL        *string             `json:"image_url" gorm:"type:text"`
	CategoryID      int64               `json:"category_id" gorm:"not null;index:idx_products_category"`
	Unit            string              `json:"unit" gorm:"not null;default:'шт'"`
	Stock           int                 `json:"stock" gorm:"not null;default:0"`
	Characteristics Characteristics     `json:"characteristics" gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt       time.Time           `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time           `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) AuditName() string { return p.Name }

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type ProductRequest struct {
	Name            string              `json:"name" binding:"required" example:"Доска обрезная 50x150x6000"`
	Description     *string             `json:"description"`
	Price           decimal.Decimal     `json:"price" binding:"min=0" example:"450.00"`
	PricePerCubic   decimal.NullDecimal `json:"price_per_cubic"`
	ImageURL        *string             `json:"image_url"`
	CategoryID      int64               `json:"category_id" binding:"required,min=1" example:"2"`
	Unit            string              `json:"unit" example:"шт"`
	Stock           int                 `json:"stock" binding:"min=0" example:"100"`
	Characteristics Characteristics     `json:"characteristics"`
}

type UpdateProductRequest struct {
	Name            *string              `json:"name" binding:"omitempty,min=1"`
	Description     *string              `json:"description"`
	Price           *decimal.Decimal     `json:"price" binding:"omitempty,min=0"`
	PricePerCubic   *decimal.NullDecimal `json:"price_per_cubic"`
	ImageURL        *string              `json:"image_url"`
	CategoryID      *int64               `json:"category_id" binding:"omitempty,min=1"`
	Unit            *string              `json:"unit" binding:"omitempty,min=1"`
	Stock           *int                 `json:"stock" binding:"omitempty,min=0"`
	Characteristics *Characteristics     `json:"characteristics"`
}

// ═══════════════════════════════════════════════════════════
// Response Models
// ═══════════════════════════════════════════════════════════

// ProductDetail is the storefront product page payload
type ProductDetail struct {
	Product Product `json:"product"`
	Path    []Crumb `json:"path"`
}
