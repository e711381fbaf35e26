package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
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
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

type QueryRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewQueryRepository(pool *pgxpool.Pool, log *slog.Logger) *QueryRepository {
	return &QueryRepository{
		pool: pool,
		log:  log.With("component", "query_repository"),
	}
}

func (r *QueryRepository) List(ctx context.Context, userID string) ([]query.Query, error) {
	rows, err := r.pool.Query(ctx, selectQueries+`
		WHERE q.user_id = $1
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
			return nil, err
		}
		queries = append(queries, *q)
	}

	return queries, rows.Err()
}

func (r *QueryRepository) Get(ctx context.Context, userID, id string) (*query.Query, error) {
	row := r.pool.QueryRow(ctx, selectQueries+`
		WHERE q.id = $1 AND q.user_id = $2`, id, userID)

	q, err := scanQuery(row)
	if err != nil {
		if isMissing(err) {
			return nil, query.ErrNotFound
		}
		r.log.Error("failed to get query", "query_id", id, "user_id", userID, "error", err)
		return nil, fmt.Errorf("get query: %w", err)
	}
	return q, nil
}

func (r *QueryRepository) Create(ctx context.Context, q *query.Query) error {
	if _, err := r.pool.Exec(ctx, insertQuery, insertArgs(q)...); err != nil {
		return fmt.Errorf("insert query: %w", err)
	}
	return nil
}

// CreateBatch вставляет все запросы в одной транзакции.
func (r *QueryRepository) CreateBatch(ctx context.Context, qs []*query.Query) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, q := range qs {
		batch.Queue(insertQuery, insertArgs(q)...)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range qs {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert query %d: %w", i+1, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *QueryRepository) Update(ctx context.Context, q *query.Query) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE queries
		SET title = $3, description = $4, status = $5, priority = $6,
		    query_type_id = $7, ai_summary = $8, updated_at = $9, resolved_at = $10
		WHERE id = $1 AND user_id = $2`,
		q.ID, q.UserID, q.Title, q.Description, string(q.Status), string(q.Priority),
		q.TypeID, q.AISummary, q.UpdatedAt, q.ResolvedAt)
	if err != nil {
		if isMissing(err) {
			return query.ErrNotFound
		}
		return fmt.Errorf("update query: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return query.ErrNotFound
	}
	return nil
}

func (r *QueryRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM queries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if isMissing(err) {
			return query.ErrNotFound
		}
		r.log.Error("failed to delete query", "query_id", id, "user_id", userID, "error", err)
		return fmt.Errorf("delete query: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return query.ErrNotFound
	}
	return nil
}

func insertArgs(q *query.Query) []any {
	return []any{
		q.ID, q.UserID, q.Title, q.Description, string(q.Status), string(q.Priority),
		q.TypeID, q.AISummary, q.CreatedAt, q.UpdatedAt, q.ResolvedAt,
	}
}

func scanQuery(row pgx.Row) (*query.Query, error) {
	var (
		q                   query.Query
		status, priority    string
		typeName, typeColor *string
	)

	err := row.Scan(
		&q.ID, &q.UserID, &q.Title, &q.Description, &status, &priority,
		&q.TypeID, &typeName, &typeColor, &q.AISummary,
		&q.CreatedAt, &q.UpdatedAt, &q.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}

	q.Status = query.Status(status)
	q.Priority = query.Priority(priority)
	if typeName != nil {
		q.Type = &query.TypeRef{Name: *typeName}
		if typeColor != nil {
			q.Type.Color = *typeColor
		}
	}

	return &q, nil
}
