package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrTechnologyNotFound = errors.New("technology not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrInvalidAvatar      = errors.New("invalid avatar image")
)
