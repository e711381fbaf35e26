package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context, userID string) ([]Query, error)
	Create(ctx context.Context, userID string, req CreateRequest) (*Query, error)
	Update(ctx context.Context, userID, id string, req UpdateRequest) (*Query, error)
	Delete(ctx context.Context, userID, id string) error
	Import(ctx context.Context, userID string, rows []ImportRow) (int, error)
}

type Service struct {
	repo  Repository
	types TypeLookup
	log   *slog.Logger
	now   func() time.Time
}

func NewService(repo Repository, types TypeLookup, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		types: types,
		log:   log.With("component", "query_service"),
		now:   time.Now,
	}
}

// List возвращает запросы пользователя, новые первыми.
func (s *Service) List(ctx context.Context, userID string) ([]Query, error) {
	queries, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	if queries == nil {
		queries = []Query{}
	}
	return queries, nil
}

func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Query, error) {
	q, err := s.prepare(userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.checkType(ctx, userID, q.TypeID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, q); err != nil {
		s.log.Error("failed to create query", "user_id", userID, "error", err)
		return nil, fmt.Errorf("create query: %w", err)
	}

	s.log.Info("query created", "query_id", q.ID, "user_id", userID)

	return q, nil
}

// Update применяет частичное обновление. При переходе в resolved/closed
// из другого статуса проставляется ResolvedAt; обратный переход его не сбрасывает.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateRequest) (*Query, error) {
	if req.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	q, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		q.Title = title
	}
	if req.Description != nil {
		q.Description = optional(*req.Description)
	}
	if req.Priority != nil {
		if err := req.Priority.Validate(); err != nil {
			return nil, err
		}
		q.Priority = *req.Priority
	}
	if req.Status != nil {
		if err := req.Status.Validate(); err != nil {
			return nil, err
		}
		if req.Status.Terminal() && *req.Status != q.Status {
			q.ResolvedAt = &now
		}
		q.Status = *req.Status
	}
	if req.TypeID != nil {
		q.TypeID = optional(*req.TypeID)
		if err := s.checkType(ctx, userID, q.TypeID); err != nil {
			return nil, err
		}
		q.Type = nil
	}
	if req.AISummary != nil {
		q.AISummary = optional(*req.AISummary)
	}

	q.UpdatedAt = now

	if err := s.repo.Update(ctx, q); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		s.log.Error("failed to update query", "query_id", id, "user_id", userID, "error", err)
		return nil, fmt.Errorf("update query: %w", err)
	}

	s.log.Info("query updated", "query_id", id, "user_id", userID, "status", q.Status)

	return q, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete query: %w", err)
	}

	s.log.Info("query deleted", "query_id", id, "user_id", userID)

	return nil
}

// Import создает запросы из строк таблицы одной пачкой: ошибка в любой строке
// отменяет весь импорт.
func (s *Service) Import(ctx context.Context, userID string, rows []ImportRow) (int, error) {
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptyImport)
	}

	typeIDs, err := s.types.IDsByLowerName(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("load query types: %w", err)
	}

	batch := make([]*Query, 0, len(rows))
	for i, row := range rows {
		q, err := s.prepare(userID, row.Resolve(typeIDs))
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		batch = append(batch, q)
	}

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		s.log.Error("failed to import queries", "user_id", userID, "rows", len(batch), "error", err)
		return 0, fmt.Errorf("import queries: %w", err)
	}

	s.log.Info("queries imported", "user_id", userID, "rows", len(batch))

	return len(batch), nil
}

func (s *Service) prepare(userID string, req CreateRequest) (*Query, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if err := priority.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()

	q := &Query{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Status:    status,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Description != nil {
		q.Description = optional(*req.Description)
	}
	if req.TypeID != nil {
		q.TypeID = optional(*req.TypeID)
	}
	if status.Terminal() {
		q.ResolvedAt = &now
	}

	return q, nil
}

func (s *Service) checkType(ctx context.Context, userID string, typeID *string) error {
	if typeID == nil {
		return nil
	}

	ok, err := s.types.Exists(ctx, userID, *typeID)
	if err != nil {
		return fmt.Errorf("check query type: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrUnknownType)
	}
	return nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
