package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverBolt, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.com, https://b.com,")
	t.Setenv("DB_HOST", "db")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, cfg.CORSOrigins)
	assert.Contains(t, cfg.Postgres.DSN(), "host=db")
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	_, err := Load(New())
	assert.Error(t, err)
}

func TestConnectStore_Bolt(t *testing.T) {
	cfg := &Config{StoreDriver: DriverBolt, BoltPath: filepath.Join(t.TempDir(), "x", "portal.db")}
	store, err := ConnectStore(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Repositories().Courses.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
