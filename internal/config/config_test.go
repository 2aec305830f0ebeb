package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_CONNECTION_STRING", "postgres://localhost/oneflex")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.StoreBackend)
	assert.Equal(t, "UGX", cfg.Currency)
	assert.Equal(t, "Africa/Kampala", cfg.TimeZone)
	assert.Equal(t, "oneflex", cfg.RedisKeyPrefix)
	assert.False(t, cfg.WalletExportEnabled())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Africa/Kampala", loc.String())
}

func TestLoadRedisBackendAndAdmins(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("JWT_SECRET_NAME", "jwt-secret")
	t.Setenv("ADMIN_ACCOUNT_IDS", "admin-1,admin-2")
	t.Setenv("S3_BUCKET", "wallet-exports")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.StoreBackend)
	assert.Equal(t, []string{"admin-1", "admin-2"}, cfg.AdminAccountIDs)
	assert.True(t, cfg.WalletExportEnabled())
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORE_BACKEND": "sqlite", "JWT_SECRET": "s"}},
		{"postgres without dsn", map[string]string{"JWT_SECRET": "s"}},
		{"no jwt secret", map[string]string{"DB_CONNECTION_STRING": "postgres://localhost/oneflex"}},
		{"bad time zone", map[string]string{"DB_CONNECTION_STRING": "postgres://x", "JWT_SECRET": "s", "BILLING_TIMEZONE": "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"DB_CONNECTION_STRING", "JWT_SECRET", "JWT_SECRET_NAME"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
