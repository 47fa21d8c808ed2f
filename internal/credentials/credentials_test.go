package credentials

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/campus_complaints/internal/domain"
	"github.com/Skotchmaster/campus_complaints/internal/models"
)

func newTestService() *Service {
	return New([]byte("test-jwt-secret"), 0)
}

func TestService_IssueToken_SevenDayClaims(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	u := &models.User{ID: uuid.New(), Email: "a@campus.com", Role: domain.RoleStudent}

	tok, exp, err := svc.IssueToken(u)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, 5*time.Second)

	claims, err := svc.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.Equal(t, "a@campus.com", claims.Email)
	assert.Equal(t, domain.RoleStudent, claims.Role)
	assert.WithinDuration(t, exp, claims.ExpiresAt, time.Second)
}

func TestService_VerifyToken_Expired(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	svc.Now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }

	tok, _, err := svc.IssueToken(&models.User{ID: uuid.New(), Email: "a@campus.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	claims, err := svc.VerifyToken(tok)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestService_VerifyToken_Invalid(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	other := New([]byte("another-secret"), time.Hour)
	foreign, _, err := other.IssueToken(&models.User{ID: uuid.New(), Email: "x@campus.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	badRole, _, err := svc.IssueToken(&models.User{ID: uuid.New(), Email: "x@campus.com", Role: "janitor"})
	require.NoError(t, err)

	tests := []struct {
		name string
		tok  string
	}{
		{name: "empty", tok: ""},
		{name: "malformed", tok: "abc.def.ghi"},
		{name: "signed with other secret", tok: foreign},
		{name: "unknown role", tok: badRole},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.VerifyToken(tt.tok)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestService_Passwords(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	h, err := svc.HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, svc.VerifyPassword("secret1", h))
	assert.False(t, svc.VerifyPassword("secret", h))
}
