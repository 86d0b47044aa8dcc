package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog is one audited back-office write. Changes holds the
// {"before": ..., "after": ...} snapshots and is served as-is.
type ActivityLog struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	AdminID      uuid.UUID      `json:"admin_id" gorm:"type:uuid;not null;index:idx_activity_admin_date,sort:desc"`
	AdminEmail   string         `json:"admin_email" gorm:"not null"`
	Action       string         `json:"action" gorm:"not null;index"`
	ResourceType string         `json:"resource_type" gorm:"not null;index:idx_activity_resource_date,sort:desc"`
	ResourceID   string         `json:"resource_id" gorm:"not null;index"`
	ResourceName string         `json:"resource_name"`
	Changes      datatypes.JSON `json:"changes" gorm:"type:jsonb"`
	Status       string         `json:"status" gorm:"not null"`
	ErrorMessage string         `json:"error_message,omitempty"`
	IPAddress    string         `json:"ip_address"`
	UserAgent    string         `json:"user_agent"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime;index:idx_activity_admin_date,sort:desc;index:idx_activity_resource_date,sort:desc"`
}

func (al *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.Must(uuid.NewV7())
	}
	if al.Status == "" {
		al.Status = StatusSuccess
	}
	return nil
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// ActivityLogQuery filters the admin activity log list
type ActivityLogQuery struct {
	ResourceType string `form:"resource_type" binding:"omitempty,oneof=product category order"`
	Action       string `form:"action"`
	Status       string `form:"status" binding:"omitempty,oneof=success failed"`
	AdminID      string `form:"admin_id" binding:"omitempty,uuid"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Audited is a resource whose admin writes are recorded in the activity log
type Audited interface {
	AuditName() string
}

// ActivityAction names an audited write, e.g. "updated_category"
func ActivityAction(verb, resourceType string) string {
	return verb + "_" + resourceType
}

const (
	ResourceTypeProduct  = "product"
	ResourceTypeCategory = "category"
	ResourceTypeOrder    = "order"

	StatusSuccess = "success"
	StatusFailed  = "failed"
)
