package domain

import (
	"errors"
	"net/http"
)

var (
	ErrValidation         = errors.New("validation")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOwnerNotFound      = errors.New("owner not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrInvalidToken       = errors.New("invalid token")
)

// ValidationError is an ErrValidation whose message is safe to show the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}

// HTTPStatus maps an error from any layer to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrDuplicateEmail):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrOwnerNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text safe to show a client for err.
func PublicMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Msg
	}
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return "Email already registered"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, ErrOwnerNotFound):
		return "Student not found"
	case errors.Is(err, ErrNotFound):
		return "Complaint not found"
	case errors.Is(err, ErrForbidden):
		return "Access denied"
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return "Not authorized"
	case errors.Is(err, ErrValidation):
		return "Invalid request"
	default:
		return "Internal server error"
	}
}
