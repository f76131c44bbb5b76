package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
)

var (
	ErrMissingToken = errors.New("authorization header required")
	ErrInvalidToken = errors.New("invalid token")
)

// Service checks the static token dashboard clients present. A service
// without a token accepts every request.
type Service struct {
	token []byte
}

// NewService creates a service for token. An empty token disables checks.
func NewService(token string) *Service {
	return &Service{token: []byte(strings.TrimSpace(token))}
}

// Enabled reports whether requests must carry the token.
func (s *Service) Enabled() bool {
	return len(s.token) > 0
}

// ValidateHeader checks an Authorization header of the form
// "Token <value>" or "Bearer <value>".
func (s *Service) ValidateHeader(authHeader string) error {
	if !s.Enabled() {
		return nil
	}
	token, err := ExtractToken(authHeader)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(token), s.token) != 1 {
		return ErrInvalidToken
	}
	return nil
}

// ExtractToken extracts the token from an Authorization header.
func ExtractToken(authHeader string) (string, error) {
	if strings.TrimSpace(authHeader) == "" {
		return "", ErrMissingToken
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "Token") {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}
