// Package auth issues and verifies the admin JWT protecting destructive
// endpoints. The application has exactly one operator account, configured
// through ADMIN_USER and ADMIN_USER_PASSWORD.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"

	authservice "smart-news/internal/service/auth"
)

// minPasswordLength is the floor for the operator password.
const minPasswordLength = 8

// EnvAuthProvider validates the operator credentials against environment
// variables.
type EnvAuthProvider struct{}

// NewEnvAuthProvider creates the environment-backed provider.
func NewEnvAuthProvider() *EnvAuthProvider {
	return &EnvAuthProvider{}
}

// ValidateCredentials checks the credentials against ADMIN_USER and
// ADMIN_USER_PASSWORD using constant-time comparison.
func (p *EnvAuthProvider) ValidateCredentials(_ context.Context, creds authservice.Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("credentials must not be empty")
	}
	if len(creds.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	adminUser := os.Getenv("ADMIN_USER")
	adminPass := os.Getenv("ADMIN_USER_PASSWORD")
	if adminUser == "" || adminPass == "" {
		return fmt.Errorf("admin account is not configured")
	}

	// タイミング攻撃対策として定数時間比較を使う
	userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(adminUser)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(adminPass)) == 1
	if !userMatch || !passMatch {
		return fmt.Errorf("invalid credentials")
	}

	return nil
}

// Name returns the provider name.
func (p *EnvAuthProvider) Name() string {
	return "env"
}
