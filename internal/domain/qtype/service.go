package qtype

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Servicer interface {
	List(ctx context.Context, userID string) ([]Type, error)
	Create(ctx context.Context, userID, name, color string) (*Type, error)
	Delete(ctx context.Context, userID, id string) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "qtype_service"),
	}
}

func (s *Service) List(ctx context.Context, userID string) ([]Type, error) {
	types, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list query types: %w", err)
	}
	if types == nil {
		types = []Type{}
	}

	sort.SliceStable(types, func(i, j int) bool {
		return types[i].Name < types[j].Name
	})

	return types, nil
}

// Create добавляет тип. Уникальность имени не проверяется.
func (s *Service) Create(ctx context.Context, userID, name, color string) (*Type, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultColor
	}
	if !colorPattern.MatchString(color) {
		return nil, fmt.Errorf("%w: color must be #RRGGBB", ErrInvalidInput)
	}

	t := &Type{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.log.Error("failed to create query type", "user_id", userID, "error", err)
		return nil, fmt.Errorf("create query type: %w", err)
	}

	s.log.Info("query type created", "type_id", t.ID, "user_id", userID)

	return t, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete query type: %w", err)
	}

	s.log.Info("query type deleted", "type_id", id, "user_id", userID)

	return nil
}

// Exists сообщает, есть ли у пользователя тип с данным id.
func (s *Service) Exists(ctx context.Context, userID, id string) (bool, error) {
	_, err := s.repo.Get(ctx, userID, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IDsByLowerName возвращает id типов по имени в нижнем регистре.
// При повторяющихся именах побеждает первый по сортировке.
func (s *Service) IDsByLowerName(ctx context.Context, userID string) (map[string]string, error) {
	types, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]string, len(types))
	for _, t := range types {
		key := strings.ToLower(t.Name)
		if _, dup := ids[key]; !dup {
			ids[key] = t.ID
		}
	}
	return ids, nil
}
