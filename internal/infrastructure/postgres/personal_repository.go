package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var (
	_ repository.MemoRepository         = (*MemoRepo)(nil)
	_ repository.TodoRepository         = (*TodoRepo)(nil)
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
)

// MemoRepo nota personal por usuario.
type MemoRepo struct {
	q Querier
}

// NewMemoRepository construye el adaptador.
func NewMemoRepository(q Querier) *MemoRepo {
	return &MemoRepo{q: q}
}

// Get nota del usuario; nil si nunca guardó una.
func (r *MemoRepo) Get(ctx context.Context, userID string) (*entity.Memo, error) {
	var m entity.Memo
	err := r.q.QueryRow(ctx, `SELECT user_id, content, updated_at FROM memos WHERE user_id = $1`, userID).
		Scan(&m.UserID, &m.Content, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get memo: %w", err)
	}
	return &m, nil
}

// Upsert crea o reemplaza la nota del usuario.
func (r *MemoRepo) Upsert(ctx context.Context, m *entity.Memo) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO memos (user_id, content, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at`,
		m.UserID, m.Content, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert memo: %w", err)
	}
	return nil
}

// TodoRepo tareas personales.
type TodoRepo struct {
	q Querier
}

// NewTodoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTodoRepository(q Querier) *TodoRepo {
	return &TodoRepo{q: q}
}

const todoColumns = `id, user_id, content, is_completed, sort_order, start_date, due_date, created_at, updated_at`

func scanTodo(row pgx.Row) (*entity.Todo, error) {
	var t entity.Todo
	if err := row.Scan(&t.ID, &t.UserID, &t.Content, &t.IsCompleted, &t.SortOrder, &t.StartDate, &t.DueDate,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste una tarea.
func (r *TodoRepo) Create(ctx context.Context, t *entity.Todo) error {
	_, err := r.q.Exec(ctx, `INSERT INTO todos (`+todoColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.UserID, t.Content, t.IsCompleted, t.SortOrder, t.StartDate, t.DueDate, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea; nil si no existe.
func (r *TodoRepo) GetByID(ctx context.Context, id string) (*entity.Todo, error) {
	t, err := scanTodo(r.q.QueryRow(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return t, nil
}

// ListByUser tareas del usuario por posición y luego más recientes.
func (r *TodoRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Todo, error) {
	rows, err := r.q.Query(ctx, `SELECT `+todoColumns+` FROM todos WHERE user_id = $1 ORDER BY sort_order ASC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update actualiza contenido, estado y fechas.
func (r *TodoRepo) Update(ctx context.Context, t *entity.Todo) error {
	_, err := r.q.Exec(ctx, `
		UPDATE todos SET content = $2, is_completed = $3, start_date = $4, due_date = $5, updated_at = $6
		WHERE id = $1`, t.ID, t.Content, t.IsCompleted, t.StartDate, t.DueDate, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	return nil
}

// Delete elimina una tarea.
func (r *TodoRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

// MaxSortOrder mayor sort_order del usuario; -1 sin tareas.
func (r *TodoRepo) MaxSortOrder(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(sort_order), -1) FROM todos WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("max todo order: %w", err)
	}
	return n, nil
}

// SetSortOrder fija la posición de una tarea del usuario.
func (r *TodoRepo) SetSortOrder(ctx context.Context, userID, id string, order int) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE todos SET sort_order = $3, updated_at = now() WHERE id = $1 AND user_id = $2`, id, userID, order)
	if err != nil {
		return false, fmt.Errorf("reorder todo: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// NotificationRepo notificaciones en la aplicación.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste una notificación.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO notifications (id, user_id, type, title, message, related_id, related_type, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.RelatedID, n.RelatedType, n.Read, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByUser notificaciones del usuario, más recientes primero.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int, error) {
	var w where
	w.add("user_id = ?", userID)
	if unreadOnly {
		w.add("read = FALSE")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, type, title, message, related_id, related_type, read, created_at
		FROM notifications`+w.sql()+` ORDER BY created_at DESC, id DESC LIMIT `+w.next(limit)+` OFFSET `+w.next(offset), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.RelatedID, &n.RelatedType, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, total, rows.Err()
}

// MarkRead marca como leída una notificación del usuario.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkAllRead marca como leídas todas las notificaciones pendientes del usuario.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}
