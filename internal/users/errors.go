package users

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrSuspended          = errors.New("account suspended")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
