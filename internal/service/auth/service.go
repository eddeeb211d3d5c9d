// Package auth holds the framework-agnostic authentication service used by
// the HTTP layer. The application has a single operator account; its
// credentials come from the environment.
package auth

import "context"

// Credentials are the operator's login inputs.
type Credentials struct {
	Username string
	Password string
}

// AuthProvider validates operator credentials.
type AuthProvider interface {
	ValidateCredentials(ctx context.Context, creds Credentials) error
	Name() string
}

// AuthService wraps an AuthProvider with the authentication business logic.
type AuthService struct {
	provider AuthProvider
}

// NewAuthService creates an authentication service over the given provider.
func NewAuthService(provider AuthProvider) *AuthService {
	return &AuthService{provider: provider}
}

// ValidateCredentials validates credentials via the configured provider.
func (s *AuthService) ValidateCredentials(ctx context.Context, creds Credentials) error {
	return s.provider.ValidateCredentials(ctx, creds)
}

// Provider returns the configured provider.
func (s *AuthService) Provider() AuthProvider {
	return s.provider
}
