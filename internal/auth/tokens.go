package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMissing indicates no credential was presented.
	ErrTokenMissing = errors.New("token is missing")
	// ErrTokenInvalid indicates the credential failed signature or claim checks.
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrTokenExpired indicates the credential is past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Tokens issues and verifies HS256 identity tokens mapping a credential to an
// account id.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens builds a token signer/verifier with the given secret and lifetime.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the account id.
func (t *Tokens) Issue(accountID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"account_id": accountID,
		"iat":        now.Unix(),
		"exp":        now.Add(t.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify checks the token signature and expiry and returns the account id it
// was issued for.
func (t *Tokens) Verify(raw string) (int64, error) {
	if raw == "" {
		return 0, ErrTokenMissing
	}
	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenInvalid
	}
	id, ok := claims["account_id"].(float64)
	if !ok || id <= 0 {
		return 0, ErrTokenInvalid
	}
	return int64(id), nil
}
