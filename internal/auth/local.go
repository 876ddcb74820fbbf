package auth

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"moviehub/pkg/models"
)

// TokenService signs and parses the HS256 tokens used in local auth
// mode, where no Firebase project is involved.
type TokenService struct {
	Secret   []byte
	Issuer   string
	Duration time.Duration
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (ts TokenService) Sign(uid, email string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.Issuer,
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.Duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(ts.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

func (ts TokenService) Parse(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		// enforce HS256
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := tok.Claims.(*tokenClaims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return &Claims{UID: claims.Subject, Email: claims.Email}, nil
}

// LocalIdentity is the development identity backend: users live in the
// local SQLite store and tokens are signed by this process. It serves
// as both the sign-in side and the verifier.
type LocalIdentity struct {
	DB     *sql.DB
	Tokens TokenService
}

func (l *LocalIdentity) SignInWithPassword(ctx context.Context, email, password string) (*models.UserDetails, error) {
	row := l.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash
		FROM users
		WHERE LOWER(email) = ?
	`, strings.ToLower(strings.TrimSpace(email)))

	var (
		id, storedEmail, hash string
	)
	if err := row.Scan(&id, &storedEmail, &hash); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sign in %s: %w", email, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, fmt.Errorf("sign in %s: %w", email, ErrInvalidCredentials)
	}

	token, err := l.Tokens.Sign(id, storedEmail)
	if err != nil {
		return nil, err
	}
	return &models.UserDetails{Email: storedEmail, Token: token}, nil
}

func (l *LocalIdentity) Verify(ctx context.Context, token string) (*Claims, error) {
	return l.Tokens.Parse(token)
}
