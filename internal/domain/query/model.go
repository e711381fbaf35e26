package query

import "time"

// Query - отслеживаемая единица работы пользователя.
type Query struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	TypeID      *string    `json:"type_id,omitempty"`
	Type        *TypeRef   `json:"type,omitempty"`
	AISummary   *string    `json:"ai_summary,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// TypeRef - имя и цвет типа, присоединенные к запросу при чтении.
type TypeRef struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TypeName возвращает имя типа или пустую строку для запроса без типа.
func (q Query) TypeName() string {
	if q.Type == nil {
		return ""
	}
	return q.Type.Name
}

// CreateRequest - поля для создания запроса.
type CreateRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	TypeID      *string  `json:"type_id,omitempty"`
}

// UpdateRequest - частичное обновление. nil означает "не менять".
// Пустая строка в TypeID снимает тип.
type UpdateRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	TypeID      *string   `json:"type_id,omitempty"`
	AISummary   *string   `json:"ai_summary,omitempty"`
}

// Empty сообщает, что обновление не меняет ни одного поля.
func (u UpdateRequest) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil &&
		u.Priority == nil && u.TypeID == nil && u.AISummary == nil
}
