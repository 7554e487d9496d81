package usernames

import "errors"

var (
	ErrNotFound      = errors.New("username not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalid       = errors.New("invalid username")
)
