package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const adminTokenIssuer = "lesopilka-admin"

var ErrInvalidToken = errors.New("invalid admin token")

// AdminClaims identify an admin; the admin id travels as the subject
type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies admin tokens with HS256
type JWTService struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

func NewJWTService(secret string, ttl time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("JWT secret key cannot be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(adminTokenIssuer),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

var jwtService *JWTService

// InitJWTService replaces the global service; called once from main
func InitJWTService(secret string, ttl time.Duration) error {
	svc, err := NewJWTService(secret, ttl)
	if err != nil {
		return err
	}
	jwtService = svc
	return nil
}

// GetJWTService returns the global service, building it from config.App
// when main has not initialised it (tools, tests)
func GetJWTService() *JWTService {
	if jwtService == nil {
		secret := config.App.JWT.Secret
		if secret == "" {
			secret = "dev-secret-key-change-in-production"
		}
		jwtService, _ = NewJWTService(secret, time.Duration(config.App.JWT.ExpireHours)*time.Hour)
	}
	return jwtService
}

// TTL is how long issued tokens stay valid
func (j *JWTService) TTL() time.Duration {
	return j.ttl
}

// GenerateAdminJWT issues a token for admin. Every token gets its own jti so
// two logins in the same second still map to distinct sessions.
func (j *JWTService) GenerateAdminJWT(admin *models.Admin) (string, error) {
	if admin == nil || admin.ID == uuid.Nil || admin.Email == "" {
		return "", errors.New("admin id and email are required")
	}

	now := time.Now()
	claims := AdminClaims{
		Email: admin.Email,
		Role:  admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   admin.ID.String(),
			Issuer:    adminTokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return signed, nil
}

// VerifyAdminJWT checks signature, issuer and expiry. Any failure wraps
// ErrInvalidToken.
func (j *JWTService) VerifyAdminJWT(token string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	if _, err := j.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return j.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: missing subject or email", ErrInvalidToken)
	}
	return claims, nil
}

func GenerateAdminJWT(admin *models.Admin) (string, error) {
	return GetJWTService().GenerateAdminJWT(admin)
}

func VerifyAdminJWT(token string) (*AdminClaims, error) {
	return GetJWTService().VerifyAdminJWT(token)
}
