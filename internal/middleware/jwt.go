package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sekolahdigital/lms-backend/internal/config"
	"github.com/sekolahdigital/lms-backend/internal/response"
	"github.com/sekolahdigital/lms-backend/internal/security"
	"github.com/sekolahdigital/lms-backend/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
)

// RequireJWT validates a bearer token from the Authorization header and
// stores its claims in the context. Failed validations count against a
// per-IP window; once the window is exhausted every request from that IP
// is rejected before the token is even looked at.
func RequireJWT(cfg *config.Config, authService *service.AuthService, counters security.CounterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.CacheKey.AuthAttemptsKey(c.ClientIP())

		attempts, err := counters.Get(c.Request.Context(), key)
		if err != nil {
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		if attempts >= int64(cfg.AuthMaxAttempts) {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrAuthRateLimited)
			return
		}

		tokenStr := extractBearer(c)
		if tokenStr == "" {
			_, _ = counters.Incr(c.Request.Context(), key, cfg.AuthWindow)
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), tokenStr)
		if err != nil {
			_, _ = counters.Incr(c.Request.Context(), key, cfg.AuthWindow)
			code := response.ErrTokenInvalid
			if errors.Is(err, jwt.ErrTokenExpired) {
				code = response.ErrTokenExpired
			}
			response.AbortFail(c, http.StatusUnauthorized, code)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
