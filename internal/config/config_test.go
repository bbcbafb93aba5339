package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://sarakhan100-securespot.hf.space", cfg.APIBaseURL)
	assert.Equal(t, "https://itsnida07-securespotbot.hf.space", cfg.BotBaseURL)
	assert.Equal(t, StoreSQLite, cfg.StoreBackend)
	assert.Equal(t, "securespot.db", cfg.StorePath)
	assert.Equal(t, 30, cfg.HTTPTimeoutSeconds)
}

func TestLoadHonorsEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8080")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, StoreRedis, cfg.StoreBackend)
	require.NoError(t, cfg.Validate())
}

func TestValidateBackendRequirements(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "sqlite needs a path",
			cfg:     Config{StoreBackend: StoreSQLite},
			wantErr: "STORE_PATH",
		},
		{
			name:    "postgres needs a dsn",
			cfg:     Config{StoreBackend: StorePostgres},
			wantErr: "DATABASE_URL",
		},
		{
			name:    "redis needs a url",
			cfg:     Config{StoreBackend: StoreRedis},
			wantErr: "REDIS_URL",
		},
		{
			name:    "unknown backend",
			cfg:     Config{StoreBackend: "etcd"},
			wantErr: "unknown STORE_BACKEND",
		},
		{
			name: "sqlite with path passes",
			cfg:  Config{StoreBackend: StoreSQLite, StorePath: "state.db"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
