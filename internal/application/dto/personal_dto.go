package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// UpsertMemoRequest contenido de la nota personal.
type UpsertMemoRequest struct {
	Content string `json:"content"`
}

// MemoResponse nota personal; UpdatedAt nulo si nunca se guardó.
type MemoResponse struct {
	UserID    string     `json:"user_id"`
	Content   string     `json:"content"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// CreateTodoRequest alta de tarea.
type CreateTodoRequest struct {
	Content   string  `json:"content"`
	StartDate *string `json:"start_date"`
	DueDate   *string `json:"due_date"`
}

// Validate reglas de CreateTodoRequest.
func (r CreateTodoRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 1000)),
		validation.Field(&r.StartDate, isDate),
		validation.Field(&r.DueDate, isDate),
	))
}

// UpdateTodoRequest actualización parcial de una tarea.
type UpdateTodoRequest struct {
	Content     *string `json:"content"`
	IsCompleted *bool   `json:"is_completed"`
	StartDate   *string `json:"start_date"`
	DueDate     *string `json:"due_date"`
}

// Validate reglas de UpdateTodoRequest.
func (r UpdateTodoRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.NilOrNotEmpty, validation.Length(1, 1000)),
		validation.Field(&r.StartDate, isDate),
		validation.Field(&r.DueDate, isDate),
	))
}

// ReorderTodosRequest nuevo orden: sort_order = índice en IDs.
type ReorderTodosRequest struct {
	IDs []string `json:"ids"`
}

// Validate reglas de ReorderTodosRequest.
func (r ReorderTodosRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.IDs, validation.Required, validation.Each(is.UUID)),
	))
}

// TodoResponse salida de una tarea.
type TodoResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Content     string    `json:"content"`
	IsCompleted bool      `json:"is_completed"`
	SortOrder   int       `json:"sort_order"`
	StartDate   *string   `json:"start_date"`
	DueDate     *string   `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	RelatedID   string    `json:"related_id"`
	RelatedType string    `json:"related_type"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// MarkAllReadResponse cantidad de notificaciones marcadas.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
