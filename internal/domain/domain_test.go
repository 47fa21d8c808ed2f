package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: fmt.Errorf("title is required: %w", ErrValidation), want: http.StatusBadRequest},
		{name: "duplicate email surfaces as 400", err: ErrDuplicateEmail, want: http.StatusBadRequest},
		{name: "unauthorized", err: ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "invalid token", err: ErrInvalidToken, want: http.StatusUnauthorized},
		{name: "invalid credentials", err: ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "forbidden", err: ErrForbidden, want: http.StatusForbidden},
		{name: "not found", err: ErrNotFound, want: http.StatusNotFound},
		{name: "owner not found", err: ErrOwnerNotFound, want: http.StatusNotFound},
		{name: "store unavailable", err: fmt.Errorf("list: %w", ErrStoreUnavailable), want: http.StatusInternalServerError},
		{name: "unclassified", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage_HidesInternalDetail(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("dial tcp 10.0.0.3:5432: %w", ErrStoreUnavailable)
	assert.Equal(t, "Internal server error", PublicMessage(err))
	assert.Equal(t, "Invalid credentials", PublicMessage(ErrInvalidCredentials))
}

func TestEnums(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusInProgress.Valid())
	assert.False(t, Status("Done").Valid())
	assert.False(t, Status("").Valid())

	assert.True(t, CategoryLab.Valid())
	assert.False(t, Category("lab").Valid())

	assert.True(t, PriorityHigh.Valid())
	assert.False(t, Priority("Urgent").Valid())

	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("staff").Valid())
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("register: %w", Invalid("Passwords do not match"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	assert.Equal(t, "Passwords do not match", PublicMessage(err))
}
