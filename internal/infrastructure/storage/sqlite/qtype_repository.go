package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"querytrack/internal/domain/qtype"
)

type TypeRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func (r *TypeRepository) List(ctx context.Context, userID string) ([]qtype.Type, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, color, created_at
		 FROM query_types WHERE user_id = ? ORDER BY name`, userID)
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
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, color, created_at
		 FROM query_types WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, qtype.ErrNotFound
		}
		return nil, fmt.Errorf("get query type: %w", err)
	}
	return &t, nil
}

func (r *TypeRepository) Create(ctx context.Context, t *qtype.Type) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO query_types (id, user_id, name, color, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Name, t.Color, t.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert query type: %w", err)
	}
	return nil
}

func (r *TypeRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM query_types WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		r.log.Error("failed to delete query type", "type_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("delete query type: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return qtype.ErrNotFound
	}
	return nil
}
