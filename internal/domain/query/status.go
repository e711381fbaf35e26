package query

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// StatusAll - значение фильтра, пропускающее любой статус.
const StatusAll = "all"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Style описывает отображение статуса или приоритета.
type Style struct {
	Label string
	Color string
}

func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusResolved, StatusClosed}
}

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

func (Status) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeString,
		Enum:        []any{string(StatusPending), string(StatusInProgress), string(StatusResolved), string(StatusClosed)},
		Description: "Статус запроса",
		Examples:    []any{string(StatusPending)},
	}
}

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusClosed:
		return nil
	}
	return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, string(s))
}

// Terminal сообщает, закрывает ли статус запрос (resolved или closed).
func (s Status) Terminal() bool {
	return s == StatusResolved || s == StatusClosed
}

func (s Status) String() string {
	return string(s)
}

// Style возвращает отображение статуса. Для неизвестного значения - пустой Style.
func (s Status) Style() Style {
	switch s {
	case StatusPending:
		return Style{Label: "pending", Color: "yellow"}
	case StatusInProgress:
		return Style{Label: "in progress", Color: "blue"}
	case StatusResolved:
		return Style{Label: "resolved", Color: "green"}
	case StatusClosed:
		return Style{Label: "closed", Color: "gray"}
	default:
		return Style{}
	}
}

func (Priority) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeString,
		Enum:        []any{string(PriorityLow), string(PriorityMedium), string(PriorityHigh), string(PriorityUrgent)},
		Description: "Приоритет запроса",
		Examples:    []any{string(PriorityMedium)},
	}
}

func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return nil
	}
	return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, string(p))
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) Style() Style {
	switch p {
	case PriorityLow:
		return Style{Label: "low", Color: "gray"}
	case PriorityMedium:
		return Style{Label: "medium", Color: "blue"}
	case PriorityHigh:
		return Style{Label: "high", Color: "orange"}
	case PriorityUrgent:
		return Style{Label: "urgent", Color: "red"}
	default:
		return Style{}
	}
}
