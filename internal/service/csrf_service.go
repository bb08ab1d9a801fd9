package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

// CSRFService handles CSRF token operations
type CSRFService interface {
	GenerateToken() (string, error)
	ValidateToken(token, submitted string) bool
}

type csrfService struct{}

// NewCSRFService creates a new CSRF service
func NewCSRFService() CSRFService {
	return &csrfService{}
}

// GenerateToken generates a secure random token
func (s *csrfService) GenerateToken() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidateToken compares the cookie token with the one submitted in a header
// or form field
func (s *csrfService) ValidateToken(token, submitted string) bool {
	if token == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) == 1
}
