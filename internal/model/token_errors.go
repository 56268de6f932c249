package model

import "errors"

var (
	ErrTokenInvalid  = errors.New("access token invalid")
	ErrTokenExpired  = errors.New("access token expired")
	ErrTokenMismatch = errors.New("access token issued for another profile")
)
