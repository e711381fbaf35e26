package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"querytrack/internal/app/client"
	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
)

// QueryCmd - родительская команда для работы с запросами
var QueryCmd = &cobra.Command{
	Use:     "query",
	Aliases: []string{"q"},
	Short:   "Управление запросами",
	Long:    `Создание, просмотр, изменение, удаление и импорт запросов.`,
}

// idSource - то, откуда берется список запросов для поиска по префиксу.
type idSource interface {
	Queries(ctx context.Context) ([]query.Query, error)
}

// resolveID находит запрос по полному ID или однозначному префиксу.
func resolveID(ctx context.Context, src idSource, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: query id is required", client.ErrValidation)
	}

	queries, err := src.Queries(ctx)
	if err != nil {
		return "", err
	}

	var found []string
	for _, q := range queries {
		if q.ID == ref {
			return q.ID, nil
		}
		if strings.HasPrefix(q.ID, ref) {
			found = append(found, q.ID)
		}
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: query %s", client.ErrNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%w: prefix %s matches %d queries", client.ErrValidation, ref, len(found))
	}
}

type typeSource interface {
	Types(ctx context.Context) ([]qtype.Type, error)
}

// resolveType находит ID типа по имени без учета регистра. Пустое имя - без типа.
func resolveType(ctx context.Context, src typeSource, name string) (*string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	types, err := src.Types(ctx)
	if err != nil {
		return nil, err
	}

	for _, t := range types {
		if strings.EqualFold(t.Name, name) {
			id := t.ID
			return &id, nil
		}
	}

	return nil, fmt.Errorf("%w: type %q", client.ErrNotFound, name)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
