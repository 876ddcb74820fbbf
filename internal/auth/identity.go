package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"moviehub/pkg/models"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseIdentity signs users in through the Firebase Identity
// Toolkit REST API. The admin SDK cannot exchange a password for an ID
// token, so this is the one place the service talks to the public
// Firebase endpoint.
type FirebaseIdentity struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewFirebaseIdentity(apiKey string) *FirebaseIdentity {
	return &FirebaseIdentity{
		apiKey:     apiKey,
		baseURL:    identityToolkitURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken string `json:"idToken"`
	Email   string `json:"email"`
}

type signInErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (f *FirebaseIdentity) SignInWithPassword(ctx context.Context, email, password string) (*models.UserDetails, error) {
	body, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal sign-in request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/accounts:signInWithPassword?key=%s", f.baseURL, url.QueryEscape(f.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sign-in request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		var out signInResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("decode sign-in response: %w", err)
		}
		if out.IDToken == "" {
			return nil, fmt.Errorf("sign-in response missing id token")
		}
		return &models.UserDetails{Email: out.Email, Token: out.IDToken}, nil
	}

	var apiErr signInErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)
	if isCredentialRejection(apiErr.Error.Message) {
		return nil, fmt.Errorf("sign in %s: %w", email, ErrInvalidCredentials)
	}
	return nil, fmt.Errorf("identity provider: %s (status %d)", apiErr.Error.Message, resp.StatusCode)
}

// isCredentialRejection separates "wrong email or password" from
// provider failures. Messages can carry suffixes like
// "TOO_MANY_ATTEMPTS_TRY_LATER : ...", so match on the leading token.
func isCredentialRejection(message string) bool {
	for _, code := range []string{
		"EMAIL_NOT_FOUND",
		"INVALID_PASSWORD",
		"INVALID_LOGIN_CREDENTIALS",
		"INVALID_EMAIL",
		"USER_DISABLED",
	} {
		if message == code || len(message) > len(code) && message[:len(code)] == code {
			return true
		}
	}
	return false
}
