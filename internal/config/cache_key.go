package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// LoginAttemptsKey returns the counter key for failed logins per email.
func (r *CacheKeyStruct) LoginAttemptsKey(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}

// AuthAttemptsKey returns the counter key for failed auth checks per IP.
func (r *CacheKeyStruct) AuthAttemptsKey(ip string) string {
	return fmt.Sprintf("auth_attempts:%s", ip)
}

// RequestCountKey returns the general request counter key per IP.
func (r *CacheKeyStruct) RequestCountKey(ip string) string {
	return fmt.Sprintf("security_attempts:%s", ip)
}

// RevokedTokenKey returns the denylist key for a logged-out token's JTI.
func (r *CacheKeyStruct) RevokedTokenKey(jti string) string {
	return fmt.Sprintf("revoked:%s", jti)
}

var CacheKey = NewCacheKeyStruct()
