package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AdminRoleSuperAdmin = "super_admin"
	AdminRoleAdmin      = "admin"

	AdminStatusActive    = "active"
	AdminStatusInactive  = "inactive"
	AdminStatusSuspended = "suspended"
)

// AdminInactiveAfter is how long without a login before an admin is shown
// as inactive. Only "suspended" is ever stored; "inactive" is derived.
const AdminInactiveAfter = 7 * 24 * time.Hour

// Admin is a back-office user of the lumber shop
type Admin struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Name         string     `json:"name" gorm:"not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         string     `json:"role" gorm:"not null;index"`
	Status       string     `json:"status" gorm:"not null;index"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.Must(uuid.NewV7())
	}
	if a.Status == "" {
		a.Status = AdminStatusActive
	}
	if a.Role == "" {
		a.Role = AdminRoleAdmin
	}
	return nil
}

func (Admin) TableName() string {
	return "admins"
}

// EffectiveStatus is the status shown to other admins at time now
func (a *Admin) EffectiveStatus(now time.Time) string {
	switch {
	case a.Status == AdminStatusSuspended:
		return AdminStatusSuspended
	case a.LastLoginAt != nil && now.Sub(*a.LastLoginAt) > AdminInactiveAfter:
		return AdminStatusInactive
	default:
		return AdminStatusActive
	}
}

func (a *Admin) IsSuperAdmin() bool {
	return a.Role == AdminRoleSuperAdmin
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@lesopilka.ru"`
	Password string `json:"password" binding:"required,min=1"`
}

// AdminResponse is an admin without credentials
type AdminResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AdminLoginResponse struct {
	Admin AdminResponse `json:"admin"`
	Token string        `json:"token"`
}

func (a *Admin) ToResponse() AdminResponse {
	return AdminResponse{
		ID:          a.ID,
		Email:       a.Email,
		Name:        a.Name,
		Role:        a.Role,
		Status:      a.EffectiveStatus(time.Now()),
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
	}
}
