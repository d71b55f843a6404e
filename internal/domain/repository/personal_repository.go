package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// MemoRepository nota personal (una por usuario).
type MemoRepository interface {
	Get(ctx context.Context, userID string) (*entity.Memo, error)
	Upsert(ctx context.Context, m *entity.Memo) error
}

// TodoRepository tareas personales.
type TodoRepository interface {
	Create(ctx context.Context, t *entity.Todo) error
	GetByID(ctx context.Context, id string) (*entity.Todo, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Todo, error)
	Update(ctx context.Context, t *entity.Todo) error
	Delete(ctx context.Context, id string) error
	// MaxSortOrder devuelve -1 si el usuario no tiene tareas.
	MaxSortOrder(ctx context.Context, userID string) (int, error)
	// SetSortOrder solo afecta filas del usuario; devuelve false si id no es suyo.
	SetSortOrder(ctx context.Context, userID, id string, order int) (bool, error)
}

// NotificationRepository notificaciones en la aplicación.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int, error)
	MarkRead(ctx context.Context, userID, id string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
