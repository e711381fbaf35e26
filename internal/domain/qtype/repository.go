package qtype

import "context"

type Repository interface {
	// List возвращает типы пользователя, отсортированные по имени.
	List(ctx context.Context, userID string) ([]Type, error)
	Get(ctx context.Context, userID, id string) (*Type, error)
	Create(ctx context.Context, t *Type) error
	Delete(ctx context.Context, userID, id string) error
}
