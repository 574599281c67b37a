package user

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyUpdate        = errors.New("no valid fields to update")
	ErrInvalidRole        = errors.New("invalid role")
)
