package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"querytrack/internal/domain/user"
)

type UserRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewUserRepository(pool *pgxpool.Pool, log *slog.Logger) *UserRepository {
	return &UserRepository{
		pool: pool,
		log:  log.With("component", "user_repository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, login, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Login, u.Password, u.CreatedAt)
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
	return r.findOne(ctx, `SELECT id, login, password_hash, created_at FROM users WHERE login = $1`, login)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (user.User, error) {
	return r.findOne(ctx, `SELECT id, login, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (r *UserRepository) findOne(ctx context.Context, sql string, arg string) (user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx, sql, arg).Scan(&u.ID, &u.Login, &u.Password, &u.CreatedAt)
	if err != nil {
		if isMissing(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}
