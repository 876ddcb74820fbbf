package auth

import (
	"context"
	"errors"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIDTokenVerifier struct {
	token *fbauth.Token
	err   error
}

func (s stubIDTokenVerifier) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return s.token, s.err
}

func TestFirebaseVerifierExtractsClaims(t *testing.T) {
	v := &FirebaseVerifier{client: stubIDTokenVerifier{token: &fbauth.Token{
		UID:    "u1",
		Claims: map[string]any{"email": "dev@example.com"},
	}}}

	claims, err := v.Verify(context.Background(), "some-token")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)
	assert.Equal(t, "dev@example.com", claims.Email)
}

func TestFirebaseVerifierMissingEmailClaim(t *testing.T) {
	v := &FirebaseVerifier{client: stubIDTokenVerifier{token: &fbauth.Token{UID: "u1"}}}

	claims, err := v.Verify(context.Background(), "some-token")
	require.NoError(t, err)
	assert.Empty(t, claims.Email)
}

func TestFirebaseVerifierRejectedToken(t *testing.T) {
	v := &FirebaseVerifier{client: stubIDTokenVerifier{err: errors.New("expired")}}

	_, err := v.Verify(context.Background(), "bad-token")
	assert.Error(t, err)
}
