package usecase

import (
	"context"
	"testing"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTodos(s *store, userID string, ids ...string) {
	for i, id := range ids {
		s.todos.rows[id] = &entity.Todo{ID: id, UserID: userID, Content: "할일 " + id, SortOrder: i}
	}
}

func todoIDs(list []dto.TodoResponse) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.ID)
	}
	return out
}

func TestTodoCreate_AlFinalDeLaLista(t *testing.T) {
	s := newStore()
	seedTodos(s, ownerID, "a", "b")
	seedTodos(s, actorID, "x", "y", "z")
	uc := NewTodoUseCase(s.todos, s.tx)

	out, err := uc.Create(context.Background(), ownerID, dto.CreateTodoRequest{Content: "전화하기", DueDate: strPtr("2025-03-20")})
	require.NoError(t, err)
	assert.Equal(t, 2, out.SortOrder)
	require.NotNil(t, out.DueDate)
	assert.Equal(t, "2025-03-20", *out.DueDate)
}

func TestTodoCreate_PrimeraTarea(t *testing.T) {
	s := newStore()
	uc := NewTodoUseCase(s.todos, s.tx)

	out, err := uc.Create(context.Background(), ownerID, dto.CreateTodoRequest{Content: "첫 할일"})
	require.NoError(t, err)
	assert.Equal(t, 0, out.SortOrder)
}

const (
	todoA = "a1000000-0000-4000-8000-00000000000a"
	todoB = "b2000000-0000-4000-8000-00000000000b"
	todoC = "c3000000-0000-4000-8000-00000000000c"
	todoX = "f9000000-0000-4000-8000-00000000000f"
)

func TestTodoReorder_AsignaIndices(t *testing.T) {
	s := newStore()
	seedTodos(s, ownerID, todoA, todoB, todoC)
	uc := NewTodoUseCase(s.todos, s.tx)

	out, err := uc.Reorder(context.Background(), ownerID, dto.ReorderTodosRequest{IDs: []string{todoC, todoA, todoB}})
	require.NoError(t, err)
	assert.Equal(t, []string{todoC, todoA, todoB}, todoIDs(out))
	assert.Equal(t, 0, s.todos.rows[todoC].SortOrder)
	assert.Equal(t, 2, s.todos.rows[todoB].SortOrder)
}

func TestTodoReorder_IDAjenoAnulaTodo(t *testing.T) {
	s := newStore()
	seedTodos(s, ownerID, todoA, todoB)
	seedTodos(s, actorID, todoX)
	uc := NewTodoUseCase(s.todos, s.tx)

	_, err := uc.Reorder(context.Background(), ownerID, dto.ReorderTodosRequest{IDs: []string{todoB, todoX, todoA}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, s.todos.rows[todoA].SortOrder)
	assert.Equal(t, 1, s.todos.rows[todoB].SortOrder)
}

func TestTodoReorder_IDNoUUIDEsValidacion(t *testing.T) {
	s := newStore()
	seedTodos(s, ownerID, todoA)
	uc := NewTodoUseCase(s.todos, s.tx)

	_, err := uc.Reorder(context.Background(), ownerID, dto.ReorderTodosRequest{IDs: []string{todoA, "x"}})
	var ve *dto.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"ids.1"}, ve.Invalid)
	assert.Zero(t, s.tx.runs)
}

func TestTodoReorder_ListaVacia(t *testing.T) {
	s := newStore()
	uc := NewTodoUseCase(s.todos, s.tx)

	_, err := uc.Reorder(context.Background(), ownerID, dto.ReorderTodosRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTodoUpdate_SoloElDueno(t *testing.T) {
	s := newStore()
	seedTodos(s, ownerID, "a")
	uc := NewTodoUseCase(s.todos, s.tx)
	done := true

	_, err := uc.Update(context.Background(), actorID, "a", dto.UpdateTodoRequest{IsCompleted: &done})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Update(context.Background(), ownerID, "a", dto.UpdateTodoRequest{IsCompleted: &done})
	require.NoError(t, err)
	assert.True(t, out.IsCompleted)
	assert.Equal(t, "할일 a", out.Content)
}

func TestTodoDelete_NoExiste(t *testing.T) {
	s := newStore()
	uc := NewTodoUseCase(s.todos, s.tx)

	assert.ErrorIs(t, uc.Delete(context.Background(), ownerID, "nope"), domain.ErrNotFound)
}

func TestNotifications_MarcarLeidas(t *testing.T) {
	s := newStore()
	s.notifications.rows = []*entity.Notification{
		{ID: "n-1", UserID: ownerID},
		{ID: "n-2", UserID: ownerID},
		{ID: "n-3", UserID: actorID},
	}
	uc := NewNotificationUseCase(s.notifications)
	ctx := context.Background()

	require.NoError(t, uc.MarkRead(ctx, ownerID, "n-1"))
	assert.ErrorIs(t, uc.MarkRead(ctx, ownerID, "n-3"), domain.ErrNotFound)

	unread, err := uc.List(ctx, ownerID, true, dto.PageQuery{})
	require.NoError(t, err)
	require.Len(t, unread.Data, 1)
	assert.Equal(t, "n-2", unread.Data[0].ID)

	res, err := uc.MarkAllRead(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Updated)
	assert.False(t, s.notifications.rows[2].Read)
}

type memoStore map[string]*entity.Memo

func (m memoStore) Get(_ context.Context, userID string) (*entity.Memo, error) {
	return m[userID], nil
}

func (m memoStore) Upsert(_ context.Context, memo *entity.Memo) error {
	m[memo.UserID] = memo
	return nil
}

func TestMemo_VaciaHastaGuardar(t *testing.T) {
	memos := memoStore{}
	uc := NewMemoUseCase(memos)
	ctx := context.Background()

	out, err := uc.Get(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, out.Content)
	assert.Nil(t, out.UpdatedAt)

	_, err = uc.Save(ctx, ownerID, dto.UpsertMemoRequest{Content: "월요일 회의"})
	require.NoError(t, err)
	_, err = uc.Save(ctx, ownerID, dto.UpsertMemoRequest{Content: "화요일 회의"})
	require.NoError(t, err)

	out, err = uc.Get(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "화요일 회의", out.Content)
	assert.NotNil(t, out.UpdatedAt)
	assert.Len(t, memos, 1)
}
