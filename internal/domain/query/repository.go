package query

import "context"

type Repository interface {
	List(ctx context.Context, userID string) ([]Query, error)
	Get(ctx context.Context, userID, id string) (*Query, error)
	Create(ctx context.Context, q *Query) error
	CreateBatch(ctx context.Context, qs []*Query) error
	Update(ctx context.Context, q *Query) error
	Delete(ctx context.Context, userID, id string) error
}

// TypeLookup проверяет принадлежность типа пользователю и отдает типы для импорта.
type TypeLookup interface {
	Exists(ctx context.Context, userID, typeID string) (bool, error)
	IDsByLowerName(ctx context.Context, userID string) (map[string]string, error)
}
