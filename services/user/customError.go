package user

import "errors"

var (
	// ErrInvalidEmail means no user is registered with the submitted email.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrInvalidPassword means the user exists but the password does not match.
	ErrInvalidPassword = errors.New("invalid password")
)
