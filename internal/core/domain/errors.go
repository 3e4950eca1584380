package domain

import "errors"

var (
	ErrUserExists              = errors.New("username already exists")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrDoctorProfileIncomplete = errors.New("doctor profile incomplete")

	ErrSessionNotFound = errors.New("session not found")

	ErrUnknownTask    = errors.New("unknown analysis task")
	ErrNoTaskSelected = errors.New("no analysis task selected")
	ErrMissingImage   = errors.New("missing image")
	ErrCorruptImage   = errors.New("corrupt image")

	ErrModelCallFailed = errors.New("model call failed")
)
