package domain

import "errors"

var (
	ErrAuthRequired       = errors.New("authentication required")
	ErrNetwork            = errors.New("network failure")
	ErrValidation         = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("credential storage unavailable")
)
