package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sekolahdigital/lms-backend/internal/config"
	"github.com/sekolahdigital/lms-backend/internal/response"
	"github.com/sekolahdigital/lms-backend/internal/security"
)

// maxInspectBytes caps how much of a request body the filter will read.
const maxInspectBytes = 1 << 20 // 1 MiB

// maxMultipartMemory matches gin's default form memory limit.
const maxMultipartMemory = 32 << 20

// RateLimit enforces the general per-IP fixed window on protected routes.
func RateLimit(cfg *config.Config, counters security.CounterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.CacheKey.RequestCountKey(c.ClientIP())

		count, err := counters.Incr(c.Request.Context(), key, cfg.RequestWindow)
		if err != nil {
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		if count > int64(cfg.RequestMax) {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimited)
			return
		}
		c.Next()
	}
}

// SecurityFilter screens requests for hostile clients and payloads, then
// sanitizes string values in place. JSON bodies and multipart text fields
// are both covered; file parts pass through untouched and are validated
// by their handlers.
func SecurityFilter(audit zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if security.SuspiciousUserAgent(c.GetHeader("User-Agent")) {
			audit.Warn().
				Str("ip", c.ClientIP()).
				Str("user_agent", c.GetHeader("User-Agent")).
				Str("path", c.Request.URL.Path).
				Msg("Blocked suspicious client")
			response.AbortFail(c, http.StatusForbidden, response.ErrSuspiciousClient)
			return
		}

		if security.SuspiciousPayload(c.Request.URL.RawQuery) {
			auditViolation(audit, c, c.Request.URL.RawQuery)
			response.AbortFail(c, http.StatusBadRequest, response.ErrSecurityViolation)
			return
		}

		if multipartBody(c.Request) {
			if screenMultipart(c, audit) {
				return
			}
			c.Next()
			return
		}

		if !inspectableBody(c.Request) {
			c.Next()
			return
		}

		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxInspectBytes))
		if err != nil {
			response.AbortFail(c, http.StatusBadRequest, response.ErrValidation)
			return
		}
		_ = c.Request.Body.Close()

		if security.SuspiciousPayload(string(raw)) {
			auditViolation(audit, c, string(raw))
			response.AbortFail(c, http.StatusBadRequest, response.ErrSecurityViolation)
			return
		}

		raw = security.SanitizeJSON(raw)
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		c.Request.ContentLength = int64(len(raw))

		c.Next()
	}
}

func auditViolation(audit zerolog.Logger, c *gin.Context, payload string) {
	if len(payload) > 512 {
		payload = payload[:512]
	}
	audit.Warn().
		Str("ip", c.ClientIP()).
		Str("path", c.Request.URL.Path).
		Str("payload", payload).
		Msg("Blocked suspicious payload")
}

// screenMultipart parses the form up front, screens and sanitizes the
// text field values, and resyncs the request's form maps so later binds
// see the clean set. The parsed form is cached on the request, so the
// handler's own bind reuses it. Returns true when the request was
// rejected.
func screenMultipart(c *gin.Context, audit zerolog.Logger) bool {
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.AbortFail(c, http.StatusBadRequest, response.ErrValidation)
		return true
	}

	for field, values := range c.Request.MultipartForm.Value {
		for i, v := range values {
			if security.SuspiciousPayload(v) {
				auditViolation(audit, c, field+"="+v)
				response.AbortFail(c, http.StatusBadRequest, response.ErrSecurityViolation)
				return true
			}
			values[i] = security.SanitizeString(v)
		}
	}

	// ParseMultipartForm copied the raw values into Form and PostForm
	// before they were sanitized; replace them with the clean slices.
	for field, values := range c.Request.MultipartForm.Value {
		c.Request.Form[field] = values
		c.Request.PostForm[field] = values
	}
	return false
}

func multipartBody(r *http.Request) bool {
	if r.Body == nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return false
	}
	return strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data")
}

func inspectableBody(r *http.Request) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return false
	}
	ct := r.Header.Get("Content-Type")
	return ct == "" || bytes.Contains([]byte(ct), []byte("application/json"))
}
