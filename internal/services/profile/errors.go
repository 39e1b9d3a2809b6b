package profile

import "errors"

var (
	ErrEmptyValue         = errors.New("value cannot be empty")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingName        = errors.New("name is required")
	ErrPasswordMismatch   = errors.New("new passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrMissingPassword    = errors.New("please fill in new password and confirm password")
)

// MinPasswordLength is enforced client-side before a password change
const MinPasswordLength = 8
