package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("ADMIN_EMAILS", " Admin@Example.com, editor@example.com ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, ":memory:", cfg.SQLitePath)
	assert.Equal(t, []string{"admin@example.com", "editor@example.com"}, cfg.AdminEmails())
	assert.Equal(t, []string{"*"}, cfg.Origins())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing secret", Config{StoreDriver: DriverMemory}, "JWT_SECRET is required"},
		{"mongo without uri", Config{JWTSecret: "s", StoreDriver: DriverMongo}, "MONGODB_URI is required when STORE_DRIVER=mongo"},
		{"unknown driver", Config{JWTSecret: "s", StoreDriver: "redis"}, `unknown STORE_DRIVER "redis"`},
		{"memory", Config{JWTSecret: "s", StoreDriver: DriverMemory}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}
