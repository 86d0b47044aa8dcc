package models

import (
	"time"
)

// Category is a node of the catalog forest. ParentID == nil marks a root.
type Category struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement" db:"id"`
	Name        string    `json:"name" gorm:"not null" db:"name"`
	Description *string   `json:"description" gorm:"type:text" db:"description"`
	ParentID    *int64    `json:"parent_id" gorm:"index" db:"parent_id"`
	ImageURL    *string   `json:"image_url" gorm:"type:text" db:"image_url"`
	Position    *int      `json:"position" db:"position"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime" db:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) AuditName() string { return c.Name }

// CategoryNode is a category with its subtree attached, as returned by the
// tree endpoints.
type CategoryNode struct {
	Category
	ProductCount  int            `json:"product_count"`
	Subcategories []CategoryNode `json:"subcategories"`
}

// Crumb is one breadcrumb step, root first
type Crumb struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryDetail is a category with its direct children and breadcrumb path
type CategoryDetail struct {
	Category      Category   `json:"category"`
	Path          []Crumb    `json:"path"`
	Subcategories []Category `json:"subcategories"`
}

// CategoryRequest is used when creating a category or subcategory
type CategoryRequest struct {
	Name        string  `json:"name" binding:"required" example:"Доска обрезная"`
	Description *string `json:"description,omitempty" example:"Сухая строганная доска"`
	ParentID    *int64  `json:"parent_id,omitempty" example:"1"`
	ImageURL    *string `json:"image_url,omitempty"`
	Position    *int    `json:"position,omitempty" binding:"omitempty,min=0" example:"1"`
}

// UpdateCategoryRequest is used when updating a category. A present
// "parent_id": null moves the category to the root level.
type UpdateCategoryRequest struct {
	Name        *string       `json:"name" binding:"omitempty,min=1"`
	Description *string       `json:"description"`
	ParentID    OptionalInt64 `json:"parent_id"`
	ImageURL    *string       `json:"image_url"`
	Position    *int          `json:"position" binding:"omitempty,min=0"`
}
