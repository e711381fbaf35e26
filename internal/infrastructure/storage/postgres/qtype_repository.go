package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"querytrack/internal/domain/qtype"
)

type TypeRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewTypeRepository(pool *pgxpool.Pool, log *slog.Logger) *TypeRepository {
	return &TypeRepository{
		pool: pool,
		log:  log.With("component", "qtype_repository"),
	}
}

func (r *TypeRepository) List(ctx context.Context, userID string) ([]qtype.Type, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, color, created_at
		 FROM query_types WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		r.log.Error("failed to list query types", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list query types: %w", err)
	}
	defer rows.Close()

	var types []qtype.Type
	for rows.Next() {
		var t qtype.Type
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan query type: %w", err)
		}
		types = append(types, t)
	}

	return types, rows.Err()
}

func (r *TypeRepository) Get(ctx context.Context, userID, id string) (*qtype.Type, error) {
	var t qtype.Type
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, name, color, created_at
		 FROM query_types WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt)
	if err != nil {
		if isMissing(err) {
			return nil, qtype.ErrNotFound
		}
		return nil, fmt.Errorf("get query type: %w", err)
	}
	return &t, nil
}

func (r *TypeRepository) Create(ctx context.Context, t *qtype.Type) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO query_types (id, user_id, name, color, created_at) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.UserID, t.Name, t.Color, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert query type: %w", err)
	}
	return nil
}

// Delete удаляет тип; ссылающиеся запросы остаются без типа (ON DELETE SET NULL).
func (r *TypeRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM query_types WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if isMissing(err) {
			return qtype.ErrNotFound
		}
		r.log.Error("failed to delete query type", "type_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("delete query type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return qtype.ErrNotFound
	}
	return nil
}
