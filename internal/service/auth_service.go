package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sekolahdigital/lms-backend/internal/config"
	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/security"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountRateLimited = errors.New("account rate limited")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Claims extends JWT standard claims with the user's identity and role.
type Claims struct {
	jwt.RegisteredClaims
	UserID int        `json:"user_id"`
	Role   model.Role `json:"role"`
}

// UserGetter is the slice of the user repository the auth flow needs.
type UserGetter interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// TokenDenylist stores revoked token IDs until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisDenylist implements TokenDenylist over the shared Redis client.
type RedisDenylist struct {
	rdb *redis.Client
}

func NewRedisDenylist(rdb *redis.Client) *RedisDenylist {
	return &RedisDenylist{rdb: rdb}
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return d.rdb.Set(ctx, config.CacheKey.RevokedTokenKey(jti), "1", ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := d.rdb.Get(ctx, config.CacheKey.RevokedTokenKey(jti)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AuthService handles credential verification, token issuance and
// revocation, and the per-email login lockout.
type AuthService struct {
	cfg      *config.Config
	users    UserGetter
	counters security.CounterStore
	denylist TokenDenylist
	audit    zerolog.Logger
}

// NewAuthService creates a new AuthService. counters backs the login
// lockout and denylist the logout revocation (both Redis in production,
// in-memory in tests).
func NewAuthService(cfg *config.Config, users UserGetter, counters security.CounterStore, denylist TokenDenylist, audit zerolog.Logger) *AuthService {
	return &AuthService{cfg: cfg, users: users, counters: counters, denylist: denylist, audit: audit}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login verifies credentials under the per-email lockout. The lockout is
// checked before the credential check, so a locked account rejects even a
// correct password; a failed attempt increments the counter and a success
// clears it. ip and userAgent feed the audit log only.
func (s *AuthService) Login(ctx context.Context, email, password, ip, userAgent string) (*model.User, string, error) {
	key := config.CacheKey.LoginAttemptsKey(email)

	attempts, err := s.counters.Get(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("check login counter: %w", err)
	}
	if attempts >= int64(s.cfg.LoginMaxAttempts) {
		s.audit.Warn().
			Str("email", email).
			Str("ip", ip).
			Str("user_agent", userAgent).
			Msg("Account login rate limited")
		return nil, "", ErrAccountRateLimited
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil || s.CheckPassword(user.PasswordHash, password) != nil {
		if _, cerr := s.counters.Incr(ctx, key, s.cfg.LoginWindow); cerr != nil {
			return nil, "", fmt.Errorf("count login failure: %w", cerr)
		}
		s.audit.Warn().
			Str("email", email).
			Str("ip", ip).
			Str("user_agent", userAgent).
			Msg("Failed login attempt")
		return nil, "", ErrInvalidCredentials
	}

	if err := s.counters.Reset(ctx, key); err != nil {
		return nil, "", fmt.Errorf("reset login counter: %w", err)
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	s.audit.Info().
		Int("user_id", user.ID).
		Str("email", user.Email).
		Str("ip", ip).
		Msg("Successful login")

	return user, token, nil
}

// GenerateToken creates a signed JWT for u with the configured expiry.
func (s *AuthService) GenerateToken(u *model.User) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID: u.ID,
		Role:   u.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims. Revoked
// tokens (logged out) fail with ErrTokenRevoked.
func (s *AuthService) ValidateToken(ctx context.Context, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// RevokeToken denylists the presented token's JTI until its natural
// expiry. Other tokens for the same user stay valid.
func (s *AuthService) RevokeToken(ctx context.Context, claims *Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil // already expired
	}
	return s.denylist.Revoke(ctx, claims.ID, ttl)
}
