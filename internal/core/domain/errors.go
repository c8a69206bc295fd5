package domain

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrNotFound           = errors.New("record not found")
	ErrDuplicate          = errors.New("record already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrHashFailed         = errors.New("password hashing failed")
	ErrTokenInvalid       = errors.New("invalid session token")
	ErrForbidden          = errors.New("access forbidden")
)

// FieldError is a single failed validation rule for a submitted form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}
