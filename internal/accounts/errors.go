package accounts

import "errors"

var (
	ErrNotFound           = errors.New("account not found")
	ErrDuplicate          = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError carries a user-facing message for a rejected registration.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
