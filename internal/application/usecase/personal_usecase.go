package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// MemoUseCase nota personal del usuario.
type MemoUseCase struct {
	repo repository.MemoRepository
}

// NewMemoUseCase construye el caso de uso.
func NewMemoUseCase(repo repository.MemoRepository) *MemoUseCase {
	return &MemoUseCase{repo: repo}
}

// Get devuelve la nota; si no existe, contenido vacío.
func (uc *MemoUseCase) Get(ctx context.Context, userID string) (*dto.MemoResponse, error) {
	m, err := uc.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return &dto.MemoResponse{UserID: userID}, nil
	}
	updated := m.UpdatedAt
	return &dto.MemoResponse{UserID: m.UserID, Content: m.Content, UpdatedAt: &updated}, nil
}

// Save crea o reemplaza la nota.
func (uc *MemoUseCase) Save(ctx context.Context, userID string, in dto.UpsertMemoRequest) (*dto.MemoResponse, error) {
	m := &entity.Memo{UserID: userID, Content: in.Content, UpdatedAt: now()}
	if err := uc.repo.Upsert(ctx, m); err != nil {
		return nil, err
	}
	updated := m.UpdatedAt
	return &dto.MemoResponse{UserID: m.UserID, Content: m.Content, UpdatedAt: &updated}, nil
}

// TodoUseCase tareas personales ordenables.
type TodoUseCase struct {
	repo repository.TodoRepository
	tx   ports.TxRunner
}

// NewTodoUseCase construye el caso de uso.
func NewTodoUseCase(repo repository.TodoRepository, tx ports.TxRunner) *TodoUseCase {
	return &TodoUseCase{repo: repo, tx: tx}
}

// List tareas del usuario por sort_order.
func (uc *TodoUseCase) List(ctx context.Context, userID string) ([]dto.TodoResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TodoResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTodoResponse(t))
	}
	return out, nil
}

// Create agrega la tarea al final de la lista del usuario.
func (uc *TodoUseCase) Create(ctx context.Context, userID string, in dto.CreateTodoRequest) (*dto.TodoResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	start, err := parseOptionalDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	due, err := parseOptionalDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	last, err := uc.repo.MaxSortOrder(ctx, userID)
	if err != nil {
		return nil, err
	}
	t := now()
	todo := &entity.Todo{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   in.Content,
		SortOrder: last + 1,
		StartDate: start,
		DueDate:   due,
		CreatedAt: t,
		UpdatedAt: t,
	}
	if err := uc.repo.Create(ctx, todo); err != nil {
		return nil, err
	}
	resp := toTodoResponse(todo)
	return &resp, nil
}

// Update actualización parcial; solo el dueño puede modificarla.
func (uc *TodoUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateTodoRequest) (*dto.TodoResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	todo, err := uc.own(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	setString(&todo.Content, in.Content)
	if in.IsCompleted != nil {
		todo.IsCompleted = *in.IsCompleted
	}
	if in.StartDate != nil {
		if todo.StartDate, err = parseOptionalDate(in.StartDate); err != nil {
			return nil, err
		}
	}
	if in.DueDate != nil {
		if todo.DueDate, err = parseOptionalDate(in.DueDate); err != nil {
			return nil, err
		}
	}
	todo.UpdatedAt = now()
	if err := uc.repo.Update(ctx, todo); err != nil {
		return nil, err
	}
	resp := toTodoResponse(todo)
	return &resp, nil
}

// Delete borra una tarea propia.
func (uc *TodoUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.own(ctx, userID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Reorder asigna sort_order = índice de cada id en una transacción.
// Un id ajeno o inexistente anula todo el cambio.
func (uc *TodoUseCase) Reorder(ctx context.Context, userID string, in dto.ReorderTodosRequest) ([]dto.TodoResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		for i, id := range in.IDs {
			ok, err := r.Todos.SetSortOrder(ctx, userID, id, i)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("todo %s: %w", id, domain.ErrNotFound)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.List(ctx, userID)
}

func (uc *TodoUseCase) own(ctx context.Context, userID, id string) (*entity.Todo, error) {
	todo, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, domain.ErrNotFound
	}
	if todo.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return todo, nil
}

func toTodoResponse(t *entity.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Content:     t.Content,
		IsCompleted: t.IsCompleted,
		SortOrder:   t.SortOrder,
		StartDate:   dto.FormatDatePtr(t.StartDate),
		DueDate:     dto.FormatDatePtr(t.DueDate),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NotificationUseCase notificaciones del usuario.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List notificaciones del usuario, más recientes primero.
func (uc *NotificationUseCase) List(ctx context.Context, userID string, unreadOnly bool, page dto.PageQuery) (*dto.ListResponse[dto.NotificationResponse], error) {
	page.Normalize(dto.DefaultLimit)
	list, total, err := uc.repo.ListByUser(ctx, userID, unreadOnly, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, dto.NotificationResponse{
			ID:          n.ID,
			Type:        n.Type,
			Title:       n.Title,
			Message:     n.Message,
			RelatedID:   n.RelatedID,
			RelatedType: n.RelatedType,
			Read:        n.Read,
			CreatedAt:   n.CreatedAt,
		})
	}
	resp := dto.NewListResponse(items, total, page)
	return &resp, nil
}

// MarkRead marca una notificación propia como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	ok, err := uc.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marca todas como leídas.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) (*dto.MarkAllReadResponse, error) {
	n, err := uc.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.MarkAllReadResponse{Updated: n}, nil
}

func newNotification(userID, kind, title, message, relatedID, relatedType string) *entity.Notification {
	return &entity.Notification{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        kind,
		Title:       title,
		Message:     message,
		RelatedID:   relatedID,
		RelatedType: relatedType,
		CreatedAt:   now(),
	}
}
