// services/errors.go - Domain errors surfaced to the HTTP layer
package services

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateResult    = errors.New("a result already exists for this team in this workout")
	ErrEmptyRoster        = errors.New("no teams to assign")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports input rejected before any state change
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
