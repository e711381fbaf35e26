package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"querytrack/internal/domain/user"
)

type UserRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, login, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Login, u.Password, u.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrLoginTaken
		}
		r.log.Error("failed to create user", "login", u.Login, "error", err)
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (user.User, error) {
	return r.findOne(ctx, `SELECT id, login, password_hash, created_at FROM users WHERE login = ?`, login)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (user.User, error) {
	return r.findOne(ctx, `SELECT id, login, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (r *UserRepository) findOne(ctx context.Context, stmt, arg string) (user.User, error) {
	var u user.User
	err := r.db.QueryRowContext(ctx, stmt, arg).Scan(&u.ID, &u.Login, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}
