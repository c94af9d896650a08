package middleware

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sekolahdigital/lms-backend/internal/config"
	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/security"
	"github.com/sekolahdigital/lms-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		AuthMaxAttempts: 5,
		AuthWindow:      15 * time.Minute,
		RequestMax:      10,
		RequestWindow:   time.Minute,
	}
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func TestRequireRole(t *testing.T) {
	claims := &service.Claims{UserID: 1, Role: model.RoleStudent}

	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(ContextKeyClaims, claims)
	}, RequireRole(model.RoleAdmin), okHandler)
	r.GET("/student", func(c *gin.Context) {
		c.Set(ContextKeyClaims, claims)
	}, RequireRole(model.RoleStudent), okHandler)
	r.GET("/none", RequireRole(model.RoleAdmin), okHandler)

	cases := []struct {
		path string
		want int
	}{
		{"/admin", http.StatusForbidden},
		{"/student", http.StatusOK},
		{"/none", http.StatusForbidden},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Errorf("GET %s = %d, want %d", tc.path, w.Code, tc.want)
		}
	}
}

func TestRequireAnyRole(t *testing.T) {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		c.Set(ContextKeyClaims, &service.Claims{UserID: 2, Role: model.RoleTeacher})
	}, RequireAnyRole(model.RoleAdmin, model.RoleTeacher), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusOK {
		t.Errorf("teacher against admin|teacher gate = %d, want 200", w.Code)
	}
}

func TestRateLimitWindow(t *testing.T) {
	cfg := testConfig()
	cfg.RequestMax = 3

	store := security.NewMemoryCounterStore()
	now := time.Now()
	store.Now = func() time.Time { return now }

	r := gin.New()
	r.GET("/", RateLimit(cfg, store), okHandler)

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 3; i++ {
		if got := do(); got != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i+1, got)
		}
	}
	if got := do(); got != http.StatusTooManyRequests {
		t.Fatalf("request over limit = %d, want 429", got)
	}

	// Window elapses and the counter starts over.
	now = now.Add(cfg.RequestWindow + time.Second)
	if got := do(); got != http.StatusOK {
		t.Fatalf("request after window = %d, want 200", got)
	}
}

func TestRequireJWTLocksOutIP(t *testing.T) {
	cfg := testConfig()
	cfg.AuthMaxAttempts = 2
	cfg.JWTSecret = "test-secret"

	store := security.NewMemoryCounterStore()
	auth := service.NewAuthService(cfg, nil, store, deniedNothing{}, zerolog.Nop())

	r := gin.New()
	r.GET("/", RequireJWT(cfg, auth, store), okHandler)

	do := func(token string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		r.ServeHTTP(w, req)
		return w.Code
	}

	if got := do("garbage"); got != http.StatusUnauthorized {
		t.Fatalf("bad token = %d, want 401", got)
	}
	if got := do(""); got != http.StatusUnauthorized {
		t.Fatalf("missing token = %d, want 401", got)
	}

	// Two failures exhaust the window; even a valid token is refused now.
	valid, err := auth.GenerateToken(&model.User{ID: 7, Role: model.RoleStudent})
	if err != nil {
		t.Fatal(err)
	}
	if got := do(valid); got != http.StatusTooManyRequests {
		t.Fatalf("locked-out IP = %d, want 429", got)
	}
}

func TestRequireJWTAcceptsValidToken(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "test-secret"
	cfg.JWTExpiry = time.Hour

	store := security.NewMemoryCounterStore()
	auth := service.NewAuthService(cfg, nil, store, deniedNothing{}, zerolog.Nop())

	var got *service.Claims
	r := gin.New()
	r.GET("/", RequireJWT(cfg, auth, store), func(c *gin.Context) {
		got = GetClaims(c)
		okHandler(c)
	})

	token, err := auth.GenerateToken(&model.User{ID: 42, Role: model.RoleTeacher})
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("valid token = %d, want 200", w.Code)
	}
	if got == nil || got.UserID != 42 || got.Role != model.RoleTeacher {
		t.Fatalf("claims in context = %+v", got)
	}
}

func TestSecurityFilterBlocksSuspiciousAgent(t *testing.T) {
	r := gin.New()
	r.POST("/", SecurityFilter(zerolog.Nop()), okHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("User-Agent", "sqlmap/1.7")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("sqlmap UA = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), "SUSPICIOUS_CLIENT") {
		t.Errorf("body = %s, want SUSPICIOUS_CLIENT code", w.Body.String())
	}
}

func TestSecurityFilterBlocksInjectionBody(t *testing.T) {
	r := gin.New()
	r.POST("/", SecurityFilter(zerolog.Nop()), okHandler)

	body := `{"name":"x' UNION SELECT password FROM users--"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("injection body = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "SECURITY_VIOLATION") {
		t.Errorf("body = %s, want SECURITY_VIOLATION code", w.Body.String())
	}
}

func TestSecurityFilterSanitizesBody(t *testing.T) {
	var seen string
	r := gin.New()
	r.POST("/", SecurityFilter(zerolog.Nop()), func(c *gin.Context) {
		var payload struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&payload); err != nil {
			t.Fatal(err)
		}
		seen = payload.Name
		okHandler(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Budi <b>Santoso</b>"}`))
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("clean body = %d, want 200", w.Code)
	}
	if strings.Contains(seen, "<b>") {
		t.Errorf("handler saw unsanitized value %q", seen)
	}
}

func TestRequireJWTExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "test-secret"
	cfg.JWTExpiry = -time.Minute

	store := security.NewMemoryCounterStore()
	auth := service.NewAuthService(cfg, nil, store, deniedNothing{}, zerolog.Nop())

	r := gin.New()
	r.GET("/", RequireJWT(cfg, auth, store), okHandler)

	token, err := auth.GenerateToken(&model.User{ID: 7, Role: model.RoleStudent})
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "TOKEN_EXPIRED") {
		t.Errorf("body = %s, want TOKEN_EXPIRED code", w.Body.String())
	}
}

// multipartRequest builds a POST with the given text fields and an
// optional file part named "file".
func multipartRequest(t *testing.T, fields map[string]string, fileContent string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if fileContent != "" {
		part, err := mw.CreateFormFile("file", "handout.pdf")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte(fileContent)); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestSecurityFilterBlocksInjectionMultipartField(t *testing.T) {
	r := gin.New()
	r.POST("/", SecurityFilter(zerolog.Nop()), okHandler)

	w := httptest.NewRecorder()
	req := multipartRequest(t, map[string]string{
		"title": "x' UNION SELECT password FROM users--",
	}, "")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("injection form field = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "SECURITY_VIOLATION") {
		t.Errorf("body = %s, want SECURITY_VIOLATION code", w.Body.String())
	}
}

func TestSecurityFilterSanitizesMultipartFields(t *testing.T) {
	var seenTitle, seenFile string
	r := gin.New()
	r.POST("/", SecurityFilter(zerolog.Nop()), func(c *gin.Context) {
		seenTitle = c.PostForm("title")

		header, err := c.FormFile("file")
		if err != nil {
			t.Fatal(err)
		}
		f, err := header.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		if err != nil {
			t.Fatal(err)
		}
		seenFile = string(content)

		okHandler(c)
	})

	w := httptest.NewRecorder()
	req := multipartRequest(t, map[string]string{
		"title": "Aljabar <b>bab 3</b>",
	}, "%PDF-1.4 content")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("clean form = %d, want 200", w.Code)
	}
	if strings.Contains(seenTitle, "<b>") {
		t.Errorf("handler saw unsanitized field %q", seenTitle)
	}
	if seenFile != "%PDF-1.4 content" {
		t.Errorf("file part altered: %q", seenFile)
	}
}

// deniedNothing is a TokenDenylist where no token is ever revoked.
type deniedNothing struct{}

func (deniedNothing) Revoke(_ context.Context, _ string, _ time.Duration) error { return nil }
func (deniedNothing) IsRevoked(_ context.Context, _ string) (bool, error)       { return false, nil }
