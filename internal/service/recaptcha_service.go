package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// RecaptchaVerifier checks reCAPTCHA tokens sent with contact submissions
type RecaptchaVerifier interface {
	Enabled() bool
	VerifyToken(ctx context.Context, token, remoteIP string) error
}

// RecaptchaService handles reCAPTCHA verification
type RecaptchaService struct {
	secretKey string
	minScore  float64
	verifyURL string
	client    *http.Client
}

// NewRecaptchaService creates a new reCAPTCHA service. An empty secret
// disables verification.
func NewRecaptchaService(secretKey string, minScore float64) *RecaptchaService {
	return &RecaptchaService{
		secretKey: secretKey,
		minScore:  minScore,
		verifyURL: recaptchaVerifyURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// recaptchaResponse represents the response from Google's reCAPTCHA API
type recaptchaResponse struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// Enabled reports whether a secret key is configured
func (s *RecaptchaService) Enabled() bool {
	return s.secretKey != ""
}

// VerifyToken verifies a reCAPTCHA token. It is a no-op when the service is
// disabled. Every rejection wraps ErrRecaptchaFailed.
func (s *RecaptchaService) VerifyToken(ctx context.Context, token, remoteIP string) error {
	if !s.Enabled() {
		return nil
	}

	if token == "" {
		return fmt.Errorf("%w: token is required", ErrRecaptchaFailed)
	}

	// Prepare the request
	data := url.Values{}
	data.Set("secret", s.secretKey)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create reCAPTCHA request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Send verification request
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to verify reCAPTCHA: %w", err)
	}
	defer resp.Body.Close()

	// Parse response
	var result recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to parse reCAPTCHA response: %w", err)
	}

	// Check if verification was successful
	if !result.Success {
		return fmt.Errorf("%w: %v", ErrRecaptchaFailed, result.ErrorCodes)
	}

	// Check score (for reCAPTCHA v3)
	if result.Score < s.minScore {
		return fmt.Errorf("%w: score too low: %.2f < %.2f", ErrRecaptchaFailed, result.Score, s.minScore)
	}

	return nil
}
