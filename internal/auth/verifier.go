package auth

import (
	"context"
	"errors"

	"moviehub/pkg/models"
)

// Claims are the decoded identity attached to a request after
// successful verification.
type Claims struct {
	UID   string
	Email string
}

// Verifier checks an opaque bearer credential and returns the decoded
// claims. Rejections are not distinguished by cause; the middleware
// answers a uniform Unauthorized either way.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// Identity signs a user in with email and password and returns the
// details handed back to the client at login.
type Identity interface {
	SignInWithPassword(ctx context.Context, email, password string) (*models.UserDetails, error)
}

// ErrInvalidCredentials reports a rejected email/password pair.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")
