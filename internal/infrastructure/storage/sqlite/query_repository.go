package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"querytrack/internal/domain/query"
)

const selectQueries = `
	SELECT q.id, q.user_id, q.title, q.description, q.status, q.priority,
	       q.query_type_id, t.name, t.color, q.ai_summary,
	       q.created_at, q.updated_at, q.resolved_at
	FROM queries q
	LEFT JOIN query_types t ON t.id = q.query_type_id`

const insertQuery = `
	INSERT INTO queries (id, user_id, title, description, status, priority,
	                     query_type_id, ai_summary, created_at, updated_at, resolved_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type QueryRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func (r *QueryRepository) List(ctx context.Context, userID string) ([]query.Query, error) {
	rows, err := r.db.QueryContext(ctx, selectQueries+`
		WHERE q.user_id = ?
		ORDER BY q.created_at DESC`, userID)
	if err != nil {
		r.log.Error("failed to list queries", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list queries: %w", err)
	}
	defer rows.Close()

	var queries []query.Query
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan query: %w", err)
		}
		queries = append(queries, *q)
	}

	return queries, rows.Err()
}

func (r *QueryRepository) Get(ctx context.Context, userID, id string) (*query.Query, error) {
	row := r.db.QueryRowContext(ctx, selectQueries+`
		WHERE q.id = ? AND q.user_id = ?`, id, userID)

	q, err := scanQuery(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, query.ErrNotFound
		}
		return nil, fmt.Errorf("get query: %w", err)
	}
	return q, nil
}

func (r *QueryRepository) Create(ctx context.Context, q *query.Query) error {
	if _, err := r.db.ExecContext(ctx, insertQuery, insertArgs(q)...); err != nil {
		return fmt.Errorf("insert query: %w", err)
	}
	return nil
}

// CreateBatch вставляет все запросы в одной транзакции.
func (r *QueryRepository) CreateBatch(ctx context.Context, qs []*query.Query) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, q := range qs {
		if _, err := stmt.ExecContext(ctx, insertArgs(q)...); err != nil {
			return fmt.Errorf("insert query %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *QueryRepository) Update(ctx context.Context, q *query.Query) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE queries
		SET title = ?, description = ?, status = ?, priority = ?,
		    query_type_id = ?, ai_summary = ?, updated_at = ?, resolved_at = ?
		WHERE id = ? AND user_id = ?`,
		q.Title, nullString(q.Description), string(q.Status), string(q.Priority),
		nullString(q.TypeID), nullString(q.AISummary), q.UpdatedAt.UTC(), nullTime(q.ResolvedAt),
		q.ID, q.UserID)
	if err != nil {
		return fmt.Errorf("update query: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return query.ErrNotFound
	}
	return nil
}

func (r *QueryRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM queries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		r.log.Error("failed to delete query", "query_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("delete query: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return query.ErrNotFound
	}
	return nil
}

func insertArgs(q *query.Query) []any {
	return []any{
		q.ID, q.UserID, q.Title, nullString(q.Description), string(q.Status), string(q.Priority),
		nullString(q.TypeID), nullString(q.AISummary), q.CreatedAt.UTC(), q.UpdatedAt.UTC(), nullTime(q.ResolvedAt),
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuery(row scanner) (*query.Query, error) {
	var (
		q                              query.Query
		status, priority               string
		description, typeID, aiSummary sql.NullString
		typeName, typeColor            sql.NullString
		resolvedAt                     sql.NullTime
	)

	err := row.Scan(
		&q.ID, &q.UserID, &q.Title, &description, &status, &priority,
		&typeID, &typeName, &typeColor, &aiSummary,
		&q.CreatedAt, &q.UpdatedAt, &resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	q.Status = query.Status(status)
	q.Priority = query.Priority(priority)
	q.Description = stringPtr(description)
	q.TypeID = stringPtr(typeID)
	q.AISummary = stringPtr(aiSummary)
	q.ResolvedAt = timePtr(resolvedAt)
	q.CreatedAt = q.CreatedAt.UTC()
	q.UpdatedAt = q.UpdatedAt.UTC()
	if typeName.Valid {
		q.Type = &query.TypeRef{Name: typeName.String, Color: typeColor.String}
	}

	return &q, nil
}
