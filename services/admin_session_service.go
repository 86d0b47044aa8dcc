package services

import (
	"context"
	"time"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AdminSessionService handles admin session operations
type AdminSessionService struct {
	log *logrus.Entry
}

// NewAdminSessionService creates a new session service
func NewAdminSessionService() *AdminSessionService {
	return &AdminSessionService{log: logrus.WithField("component", "session")}
}

// CreateSession stores the hash of an issued token
func (s *AdminSessionService) CreateSession(
	ctx context.Context,
	adminID uuid.UUID,
	token string,
	ipAddress string,
	userAgent string,
	ttl time.Duration,
) (*models.AdminSession, error) {
	now := time.Now().UTC()
	session := &models.AdminSession{
		AdminID:        adminID,
		TokenHash:      HashAdminToken(token),
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(ttl),
		IsActive:       true,
	}

	if err := config.DB.WithContext(ctx).Create(session).Error; err != nil {
		s.log.WithError(err).Error("failed to create session")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"session_id": session.ID, "admin_id": adminID}).Info("session created")
	return session, nil
}

// TouchSession reports whether the session for tokenHash is still active
// and, if so, bumps its last activity.
func (s *AdminSessionService) TouchSession(ctx context.Context, tokenHash string) (bool, error) {
	res := config.DB.WithContext(ctx).
		Model(&models.AdminSession{}).
		Where("token_hash = ? AND is_active = ? AND expires_at > ?", tokenHash, true, time.Now().UTC()).
		Update("last_activity_at", time.Now().UTC())
	if res.Error != nil {
		s.log.WithError(res.Error).Error("failed to update session activity")
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeactivateSession marks the session for tokenHash as inactive (logout)
func (s *AdminSessionService) DeactivateSession(ctx context.Context, tokenHash string) error {
	if err := config.DB.WithContext(ctx).
		Model(&models.AdminSession{}).
		Where("token_hash = ? AND is_active = ?", tokenHash, true).
		Update("is_active", false).Error; err != nil {
		s.log.WithError(err).Error("failed to deactivate session")
		return err
	}
	s.log.Info("session deactivated")
	return nil
}

// CleanupExpiredSessions removes expired sessions and inactive ones older
// than 7 days
func (s *AdminSessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	result := config.DB.WithContext(ctx).
		Where("expires_at < ? OR (is_active = ? AND last_activity_at < ?)",
			time.Now().UTC(),
			false,
			time.Now().UTC().Add(-7*24*time.Hour),
		).
		Delete(&models.AdminSession{})

	if result.Error != nil {
		s.log.WithError(result.Error).Error("failed to cleanup expired sessions")
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		s.log.WithField("deleted", result.RowsAffected).Info("expired sessions cleaned up")
	}
	return result.RowsAffected, nil
}

var adminSessionService *AdminSessionService

// GetAdminSessionService returns the global session service instance
func GetAdminSessionService() *AdminSessionService {
	if adminSessionService == nil {
		adminSessionService = NewAdminSessionService()
	}
	return adminSessionService
}
