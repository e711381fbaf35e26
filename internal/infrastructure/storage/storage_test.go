package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querytrack/internal/app/server/config"
	"querytrack/internal/utils/logger"
)

func TestNew_SQLite(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.DatabaseURI = filepath.Join(t.TempDir(), "qt.db")

	s, err := New(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.Ping(context.Background()))
	assert.NotNil(t, s.Users())
	assert.NotNil(t, s.Sessions())
	assert.NotNil(t, s.Queries())
	assert.NotNil(t, s.Types())
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = "mysql"

	_, err := New(context.Background(), cfg, logger.Discard())
	assert.ErrorContains(t, err, "unknown database driver")
}
