package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "5000", want: []string{"5000"}},
		{name: "trims and drops blanks", in: " a, ,b ,", want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CSV(tt.in))
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORTS", "SERVER_PORT", "DATABASE_URLS", "DATABASE_URL", "TOKEN_TTL", "ADMIN_EMAIL", "ADMIN_PASSWORD", "MAX_UPLOAD_BYTES"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, []string{"5000", "5001", "5002"}, cfg.Ports)
	assert.Empty(t, cfg.DatabaseURLs)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "admin@campus.com", cfg.AdminEmail)
	assert.Equal(t, "Admin@123456", cfg.AdminPassword)
	assert.EqualValues(t, 5*1024*1024, cfg.MaxUploadBytes)
}

func TestLoad_FallbackLists(t *testing.T) {
	t.Setenv("PORTS", "")
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("DATABASE_URLS", "")
	t.Setenv("DATABASE_URL", "sqlite://dev.db")
	t.Setenv("TOKEN_TTL", "not-a-duration")

	cfg := Load()

	assert.Equal(t, []string{"8081"}, cfg.Ports)
	assert.Equal(t, []string{"sqlite://dev.db"}, cfg.DatabaseURLs)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)

	t.Setenv("DATABASE_URLS", "postgres://a/db, postgres://b/db")
	cfg = Load()
	assert.Equal(t, []string{"postgres://a/db", "postgres://b/db"}, cfg.DatabaseURLs)
}
