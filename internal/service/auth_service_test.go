package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sekolahdigital/lms-backend/internal/config"
	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/security"
)

type fakeUsers struct {
	user *model.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, ErrNotFound
}

type memDenylist struct {
	revoked map[string]bool
}

func newMemDenylist() *memDenylist { return &memDenylist{revoked: make(map[string]bool)} }

func (d *memDenylist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	d.revoked[jti] = true
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	return d.revoked[jti], nil
}

func authFixture(t *testing.T) (*AuthService, *security.MemoryCounterStore, *memDenylist) {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTExpiry:        time.Hour,
		BcryptCost:       4,
		LoginMaxAttempts: 3,
		LoginWindow:      30 * time.Minute,
	}
	counters := security.NewMemoryCounterStore()
	denylist := newMemDenylist()

	svc := NewAuthService(cfg, nil, counters, denylist, zerolog.Nop())
	hash, err := svc.HashPassword("correct-horse")
	if err != nil {
		t.Fatal(err)
	}
	users := &fakeUsers{user: &model.User{
		ID:           1,
		Name:         "Budi Santoso",
		Email:        "budi@sekolah.test",
		PasswordHash: hash,
		Role:         model.RoleStudent,
	}}
	return NewAuthService(cfg, users, counters, denylist, zerolog.Nop()), counters, denylist
}

func TestLoginSuccess(t *testing.T) {
	svc, _, _ := authFixture(t)

	user, token, err := svc.Login(context.Background(), "budi@sekolah.test", "correct-horse", "1.2.3.4", "test")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Fatal("Login() returned empty token")
	}
	if user.ID != 1 {
		t.Errorf("Login() user ID = %d, want 1", user.ID)
	}

	claims, err := svc.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != 1 || claims.Role != model.RoleStudent {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := authFixture(t)

	_, _, err := svc.Login(context.Background(), "budi@sekolah.test", "wrong", "1.2.3.4", "test")
	if err != ErrInvalidCredentials {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := authFixture(t)

	_, _, err := svc.Login(context.Background(), "nobody@sekolah.test", "whatever", "1.2.3.4", "test")
	if err != ErrInvalidCredentials {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginLockoutAndReset(t *testing.T) {
	svc, _, _ := authFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Login(ctx, "budi@sekolah.test", "wrong", "1.2.3.4", "test"); err != ErrInvalidCredentials {
			t.Fatalf("attempt %d error = %v, want ErrInvalidCredentials", i+1, err)
		}
	}

	// Locked now, even with the right password.
	if _, _, err := svc.Login(ctx, "budi@sekolah.test", "correct-horse", "1.2.3.4", "test"); err != ErrAccountRateLimited {
		t.Fatalf("locked login error = %v, want ErrAccountRateLimited", err)
	}

	// A different account is unaffected.
	if _, _, err := svc.Login(ctx, "other@sekolah.test", "whatever", "1.2.3.4", "test"); err != ErrInvalidCredentials {
		t.Fatalf("other-account error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginSuccessClearsCounter(t *testing.T) {
	svc, _, _ := authFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		svc.Login(ctx, "budi@sekolah.test", "wrong", "1.2.3.4", "test")
	}
	if _, _, err := svc.Login(ctx, "budi@sekolah.test", "correct-horse", "1.2.3.4", "test"); err != nil {
		t.Fatalf("login under limit error = %v", err)
	}

	// The counter was reset; two more failures stay under the limit.
	for i := 0; i < 2; i++ {
		if _, _, err := svc.Login(ctx, "budi@sekolah.test", "wrong", "1.2.3.4", "test"); err != ErrInvalidCredentials {
			t.Fatalf("post-reset attempt %d error = %v, want ErrInvalidCredentials", i+1, err)
		}
	}
	if _, _, err := svc.Login(ctx, "budi@sekolah.test", "correct-horse", "1.2.3.4", "test"); err != nil {
		t.Fatalf("login after reset error = %v", err)
	}
}

func TestLogoutRevokesPresentedTokenOnly(t *testing.T) {
	svc, _, _ := authFixture(t)
	ctx := context.Background()

	_, first, err := svc.Login(ctx, "budi@sekolah.test", "correct-horse", "1.2.3.4", "test")
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := svc.Login(ctx, "budi@sekolah.test", "correct-horse", "1.2.3.4", "test")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := svc.ValidateToken(ctx, first)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.RevokeToken(ctx, claims); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ValidateToken(ctx, first); err != ErrTokenRevoked {
		t.Errorf("revoked token error = %v, want ErrTokenRevoked", err)
	}
	if _, err := svc.ValidateToken(ctx, second); err != nil {
		t.Errorf("second session error = %v, want nil", err)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	svc, _, _ := authFixture(t)

	_, token, err := svc.Login(context.Background(), "budi@sekolah.test", "correct-horse", "1.2.3.4", "test")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ValidateToken(context.Background(), token+"x"); err == nil {
		t.Error("ValidateToken() accepted a tampered token")
	}
}
