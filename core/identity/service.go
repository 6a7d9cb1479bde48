package identity

import (
	"context"
	"errors"
)

var (
	// errors
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrCodeMismatch         = errors.New("invalid verification code")
)

// AuthService authenticates against the LMS backend.
type AuthService interface {
	// Authenticate exchanges credentials for an identity payload.
	Authenticate(ctx context.Context, email, secret string) (Identity, error)

	// SuperAdminLogin exchanges a submitted/expected code pair for an elevated
	// identity payload. The backend exposes this endpoint but the session store
	// verifies codes locally; see Store.LoginWithCode.
	SuperAdminLogin(ctx context.Context, submitted, expected string) (Identity, error)
}
