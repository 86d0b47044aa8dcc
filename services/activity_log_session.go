package services

import (
	"encoding/json"
	"fmt"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ActivityLogService handles activity logging
type ActivityLogService struct {
	log *logrus.Entry
}

// NewActivityLogService creates a new activity log service
func NewActivityLogService() *ActivityLogService {
	return &ActivityLogService{log: logrus.WithField("component", "activity-log")}
}

// LogActivityRequest is one audit entry to record. Context, when set,
// supplies the client IP and user agent.
type LogActivityRequest struct {
	AdminID      uuid.UUID
	AdminEmail   string
	Action       string
	ResourceType string
	ResourceID   string
	ResourceName string
	Changes      map[string]interface{}
	Status       string
	ErrorMessage string
	Context      *gin.Context
}

// LogActivity writes an audit entry. Failures are logged and swallowed so
// the admin request itself never fails because of auditing.
func (s *ActivityLogService) LogActivity(req LogActivityRequest) error {
	if req.AdminID == uuid.Nil {
		s.log.WithField("action", req.Action).Warn("admin id is nil, skipping")
		return nil
	}

	entry := models.ActivityLog{
		AdminID:      req.AdminID,
		AdminEmail:   req.AdminEmail,
		Action:       req.Action,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		ResourceName: req.ResourceName,
		Status:       req.Status,
		ErrorMessage: req.ErrorMessage,
	}
	if req.Changes != nil {
		data, err := json.Marshal(req.Changes)
		if err != nil {
			s.log.WithError(err).Warn("changes not serialisable, storing {}")
			data = []byte("{}")
		}
		entry.Changes = data
	}
	if c := req.Context; c != nil && c.Request != nil {
		entry.IPAddress = c.ClientIP()
		entry.UserAgent = c.Request.UserAgent()
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := config.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.WithError(err).Error("failed to create activity log")
		return nil
	}

	s.log.WithFields(logrus.Fields{
		"action":        req.Action,
		"resource_type": req.ResourceType,
		"resource_id":   req.ResourceID,
		"admin":         req.AdminEmail,
	}).Info("activity recorded")
	return nil
}

// ListActivityLogs returns newest entries first
func (s *ActivityLogService) ListActivityLogs(q models.ActivityLogQuery) ([]models.ActivityLog, *models.Pagination, error) {
	page, limit := normalizePage(q.Page, q.Limit, 20)

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.DB.WithContext(ctx).Model(&models.ActivityLog{})
	if q.ResourceType != "" {
		query = query.Where("resource_type = ?", q.ResourceType)
	}
	if q.AdminID != "" {
		query = query.Where("admin_id = ?", q.AdminID)
	}
	if q.Action != "" {
		query = query.Where("action = ?", q.Action)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("count activity logs: %w", err)
	}

	logs := []models.ActivityLog{}
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, nil, fmt.Errorf("list activity logs: %w", err)
	}
	return logs, models.NewPagination(page, limit, int(total)), nil
}

var activityLogService *ActivityLogService

// GetActivityLogService returns the global activity log service
func GetActivityLogService() *ActivityLogService {
	if activityLogService == nil {
		activityLogService = NewActivityLogService()
	}
	return activityLogService
}

// LogActivity logs an activity using the global service
func LogActivity(req LogActivityRequest) error {
	return GetActivityLogService().LogActivity(req)
}

// CreateChanges builds the before/after payload stored with an entry
func CreateChanges(before, after interface{}) map[string]interface{} {
	return map[string]interface{}{
		"before": before,
		"after":  after,
	}
}
