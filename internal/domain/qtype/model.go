package qtype

import "time"

// DefaultColor - цвет нового типа, если он не указан.
const DefaultColor = "#3B82F6"

// Type - пользовательская метка для группировки запросов.
type Type struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
