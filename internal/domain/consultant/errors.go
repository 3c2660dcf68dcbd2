package consultant

import "errors"

var (
	ErrConsultantNotFound = errors.New("consultant not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrConsultantInactive = errors.New("consultant is not active")
	ErrInvalidRole        = errors.New("invalid role")
)
