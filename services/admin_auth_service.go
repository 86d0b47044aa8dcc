package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinAdminPasswordLength is enforced when accounts are created
const MinAdminPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminSuspended     = errors.New("admin account is suspended")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinAdminPasswordLength)
)

// AdminAuthService handles admin authentication operations
type AdminAuthService struct{}

func NewAdminAuthService() *AdminAuthService {
	return &AdminAuthService{}
}

// ════════════════════════════════════════════════════════════
// Passwords and tokens
// ════════════════════════════════════════════════════════════

func ValidAdminPassword(password string) bool {
	return utf8.RuneCountInString(password) >= MinAdminPasswordLength
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// HashAdminToken is the form a JWT is stored in on its session row
func HashAdminToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ════════════════════════════════════════════════════════════
// Login
// ════════════════════════════════════════════════════════════

// Authenticate checks credentials and stamps last_login_at. Unknown email and
// wrong password both return ErrInvalidCredentials.
func (s *AdminAuthService) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	var admin models.Admin
	err := config.DB.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load admin: %w", err)
	}

	if admin.Status == models.AdminStatusSuspended {
		return nil, ErrAdminSuspended
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := config.DB.WithContext(ctx).
		Model(&admin).
		Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	admin.LastLoginAt = &now
	return &admin, nil
}

// CreateAdmin inserts an admin with a hashed password. Used by the seed
// command to bootstrap the first account.
func (s *AdminAuthService) CreateAdmin(ctx context.Context, email, name, password, role string) (*models.Admin, error) {
	if !ValidAdminPassword(password) {
		return nil, ErrWeakPassword
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &models.Admin{
		Email:        normalizeEmail(email),
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	}
	if err := config.DB.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

// GetAdmin loads an admin by id as stored; use EffectiveStatus for display
func (s *AdminAuthService) GetAdmin(ctx context.Context, id string) (*models.Admin, error) {
	var admin models.Admin
	if err := config.DB.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// ════════════════════════════════════════════════════════════
// Global Instance
// ════════════════════════════════════════════════════════════

var adminAuthService *AdminAuthService

// GetAdminAuthService returns the global admin auth service instance
func GetAdminAuthService() *AdminAuthService {
	if adminAuthService == nil {
		adminAuthService = NewAdminAuthService()
	}
	return adminAuthService
}
