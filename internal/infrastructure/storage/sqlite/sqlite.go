package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
	"querytrack/internal/domain/session"
	"querytrack/internal/domain/user"
)

// Storage - встраиваемое хранилище для локального запуска и тестов.
type Storage struct {
	db *sql.DB

	users    *UserRepository
	sessions *SessionRepository
	queries  *QueryRepository
	types    *TypeRepository
}

func New(path string, log *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite не любит параллельную запись
	db.SetMaxOpenConns(1)

	s := &Storage{db: db}

	// Создаем таблицы
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}

	s.users = &UserRepository{db: db, log: log.With("component", "user_repository")}
	s.sessions = &SessionRepository{db: db, log: log.With("component", "session_repository")}
	s.queries = &QueryRepository{db: db, log: log.With("component", "query_repository")}
	s.types = &TypeRepository{db: db, log: log.With("component", "qtype_repository")}

	return s, nil
}

func (s *Storage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			login TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sessions (
			token_hash TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS query_types (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			color TEXT NOT NULL DEFAULT '#3B82F6',
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS queries (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			priority TEXT NOT NULL DEFAULT 'medium',
			query_type_id TEXT REFERENCES query_types(id) ON DELETE SET NULL,
			ai_summary TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			resolved_at DATETIME
		);

		CREATE INDEX IF NOT EXISTS idx_query_types_user ON query_types(user_id, name);
		CREATE INDEX IF NOT EXISTS idx_queries_user_created ON queries(user_id, created_at);
	`)

	return err
}

func (s *Storage) Users() user.Repository       { return s.users }
func (s *Storage) Sessions() session.Repository { return s.sessions }
func (s *Storage) Queries() query.Repository    { return s.queries }
func (s *Storage) Types() qtype.Repository      { return s.types }

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}
