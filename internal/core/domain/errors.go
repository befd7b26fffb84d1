package domain

import "errors"

var (
	ErrInvalidID          = errors.New("invalid identifier")
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")
)
