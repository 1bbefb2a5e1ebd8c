package user

import (
	"errors"
)

var (
	ErrMissingEmail       = errors.New("email is required")
	ErrMissingPassword    = errors.New("password is required")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingResetFields = errors.New("token and new password are required")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserDoesNotExist   = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrResetTokenNotFound = errors.New("invalid or expired token")
	ErrResetTokenExpired  = errors.New("token expired")
	ErrResetLinkNotSent   = errors.New("password reset link could not be sent")
)
