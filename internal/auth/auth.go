// Package auth implements the dashboard's PIN gate: a shared family PIN
// exchanged for a short-lived session token. There are no accounts; every
// holder of the PIN is "the family".
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidPIN is returned when the submitted PIN does not match.
var ErrInvalidPIN = errors.New("invalid pin")

// Service checks PINs and mints/verifies HS256 session tokens.
type Service struct {
	pin        string
	secret     []byte
	familyName string
	ttl        time.Duration
}

// NewService creates a PIN-gate service.
func NewService(pin, secret, familyName string, ttl time.Duration) *Service {
	return &Service{
		pin:        pin,
		secret:     []byte(secret),
		familyName: familyName,
		ttl:        ttl,
	}
}

// FamilyName returns the configured household display name.
func (s *Service) FamilyName() string {
	return s.familyName
}

// Login exchanges a correct PIN for a signed session token.
func (s *Service) Login(pin string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(pin), []byte(s.pin)) != 1 {
		return "", ErrInvalidPIN
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "family",
		"name": s.familyName,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks a session token's signature and expiry.
func (s *Service) Verify(tokenString string) error {
	_, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		return fmt.Errorf("verify session token: %w", err)
	}
	return nil
}
