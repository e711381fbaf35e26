package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"querytrack/internal/app/server/config"
	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
	"querytrack/internal/domain/session"
	"querytrack/internal/domain/user"
	"querytrack/internal/infrastructure/migration"
)

const (
	codeUniqueViolation  = "23505"
	codeInvalidTextValue = "22P02"
)

type Storage struct {
	pool *pgxpool.Pool

	users    *UserRepository
	sessions *SessionRepository
	queries  *QueryRepository
	types    *TypeRepository
}

// New применяет миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.Config, engine migration.MigrationEngine, log *slog.Logger) (*Storage, error) {
	if err := migration.NewMigration(cfg, engine).Up(); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DB.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Storage{
		pool:     pool,
		users:    NewUserRepository(pool, log),
		sessions: NewSessionRepository(pool, log),
		queries:  NewQueryRepository(pool, log),
		types:    NewTypeRepository(pool, log),
	}, nil
}

func (s *Storage) Users() user.Repository       { return s.users }
func (s *Storage) Sessions() session.Repository { return s.sessions }
func (s *Storage) Queries() query.Repository    { return s.queries }
func (s *Storage) Types() qtype.Repository      { return s.types }

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.pool
}

// isMissing сообщает, что строка не найдена либо id не является UUID.
func isMissing(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeInvalidTextValue
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
