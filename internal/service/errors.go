package service

import "errors"

// Sentinel errors for service layer
var (
	ErrRecaptchaFailed = errors.New("reCAPTCHA verification failed")
)
