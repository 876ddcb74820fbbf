package auth

import (
	"context"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"
)

// idTokenVerifier is the slice of the Firebase auth client this
// package depends on.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier delegates credential verification to Firebase
// Authentication. Malformed, expired and revoked tokens all come back
// as plain errors; callers do not learn which.
type FirebaseVerifier struct {
	client idTokenVerifier
}

func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	tok, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	claims := &Claims{UID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		claims.Email = email
	}
	return claims, nil
}
