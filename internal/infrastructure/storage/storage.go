package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"querytrack/internal/app/server/config"
	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
	"querytrack/internal/domain/session"
	"querytrack/internal/domain/user"
	"querytrack/internal/infrastructure/migration"
	"querytrack/internal/infrastructure/storage/postgres"
	"querytrack/internal/infrastructure/storage/sqlite"
)

type Storage interface {
	// Репозитории доменов
	Users() user.Repository
	Sessions() session.Repository
	Queries() query.Repository
	Types() qtype.Repository

	Ping(ctx context.Context) error
	Close() error
}

// New открывает хранилище по cfg.DB.Driver.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (Storage, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres, "":
		return postgres.New(ctx, cfg, migration.DefaultEngine, log)
	case config.DriverSQLite:
		return sqlite.New(cfg.DB.DatabaseURI, log)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DB.Driver)
	}
}
