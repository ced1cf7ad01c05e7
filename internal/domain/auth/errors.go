package auth

import "errors"

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUnknownRole     = errors.New("unknown role")
)
