package query

import "strings"

// Column - распознаваемая колонка импортируемой таблицы.
type Column string

const (
	ColumnTitle       Column = "title"
	ColumnDescription Column = "description"
	ColumnType        Column = "type"
	ColumnStatus      Column = "status"
	ColumnPriority    Column = "priority"
)

const untitled = "Untitled"

func Columns() []Column {
	return []Column{ColumnTitle, ColumnDescription, ColumnType, ColumnStatus, ColumnPriority}
}

// ParseColumn сопоставляет заголовок колонки без учета регистра.
func ParseColumn(header string) (Column, bool) {
	h := strings.TrimSpace(header)
	for _, c := range Columns() {
		if strings.EqualFold(h, string(c)) {
			return c, true
		}
	}
	return "", false
}

// ImportRow - строка таблицы, содержащая только распознанные колонки.
// Пустая ячейка равнозначна отсутствующей.
type ImportRow map[Column]string

func (r ImportRow) get(c Column) (string, bool) {
	v, ok := r[c]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Blank сообщает, что в строке нет ни одного значения.
func (r ImportRow) Blank() bool {
	for _, c := range Columns() {
		if _, ok := r.get(c); ok {
			return false
		}
	}
	return true
}

// Resolve превращает строку в CreateRequest. typeIDs - идентификаторы типов
// пользователя по имени в нижнем регистре; неизвестный тип оставляет запрос без типа.
func (r ImportRow) Resolve(typeIDs map[string]string) CreateRequest {
	req := CreateRequest{
		Title:    untitled,
		Status:   StatusPending,
		Priority: PriorityMedium,
	}

	if v, ok := r.get(ColumnTitle); ok {
		req.Title = v
	}
	if v, ok := r.get(ColumnDescription); ok {
		req.Description = &v
	}
	if v, ok := r.get(ColumnStatus); ok {
		req.Status = Status(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := r.get(ColumnPriority); ok {
		req.Priority = Priority(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := r.get(ColumnType); ok {
		if id, found := typeIDs[strings.ToLower(strings.TrimSpace(v))]; found {
			req.TypeID = &id
		}
	}

	return req
}
