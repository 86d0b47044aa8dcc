package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminSession backs an issued admin JWT so it can be revoked on logout
type AdminSession struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	AdminID        uuid.UUID `json:"admin_id" gorm:"type:uuid;not null;index"`
	TokenHash      string    `json:"-" gorm:"not null;uniqueIndex"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	LastActivityAt time.Time `json:"last_activity_at" gorm:"index"`
	ExpiresAt      time.Time `json:"expires_at" gorm:"index"`
	IsActive       bool      `json:"is_active" gorm:"default:true;index"`
}

func (as *AdminSession) BeforeCreate(tx *gorm.DB) error {
	if as.ID == uuid.Nil {
		as.ID = uuid.Must(uuid.NewV7())
	}
	if as.ExpiresAt.IsZero() {
		as.ExpiresAt = time.Now().Add(24 * time.Hour)
	}
	if as.LastActivityAt.IsZero() {
		as.LastActivityAt = time.Now()
	}
	return nil
}

func (AdminSession) TableName() string {
	return "admin_sessions"
}

