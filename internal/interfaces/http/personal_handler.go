package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
)

// PersonalHandler memo, tareas y notificaciones del usuario de la sesión.
type PersonalHandler struct {
	memos         *usecase.MemoUseCase
	todos         *usecase.TodoUseCase
	notifications *usecase.NotificationUseCase
}

// NewPersonalHandler construye el handler.
func NewPersonalHandler(memos *usecase.MemoUseCase, todos *usecase.TodoUseCase, notifications *usecase.NotificationUseCase) *PersonalHandler {
	return &PersonalHandler{memos: memos, todos: todos, notifications: notifications}
}

// GetMemo godoc
// @Summary      Memo del usuario
// @Tags         memos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MemoResponse
// @Router       /api/memos/me [get]
func (h *PersonalHandler) GetMemo(c *fiber.Ctx) error {
	out, err := h.memos.Get(c.UserContext(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SaveMemo godoc
// @Summary      Guardar memo
// @Tags         memos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertMemoRequest  true  "Contenido"
// @Success      200   {object}  dto.MemoResponse
// @Router       /api/memos/me [put]
func (h *PersonalHandler) SaveMemo(c *fiber.Ctx) error {
	var in dto.UpsertMemoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.memos.Save(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListTodos godoc
// @Summary      Tareas del usuario
// @Tags         todos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TodoResponse
// @Router       /api/todos [get]
func (h *PersonalHandler) ListTodos(c *fiber.Ctx) error {
	out, err := h.todos.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CreateTodo godoc
// @Summary      Crear tarea (al final de la lista)
// @Tags         todos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTodoRequest  true  "content obligatorio"
// @Success      201   {object}  dto.TodoResponse
// @Router       /api/todos [post]
func (h *PersonalHandler) CreateTodo(c *fiber.Ctx) error {
	var in dto.CreateTodoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.todos.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateTodo godoc
// @Summary      Actualizar tarea
// @Tags         todos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la tarea"
// @Param        body  body  dto.UpdateTodoRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.TodoResponse
// @Router       /api/todos/{id} [patch]
func (h *PersonalHandler) UpdateTodo(c *fiber.Ctx) error {
	var in dto.UpdateTodoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.todos.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DeleteTodo godoc
// @Summary      Eliminar tarea
// @Tags         todos
// @Security     Bearer
// @Param        id   path  string  true  "ID de la tarea"
// @Success      204
// @Router       /api/todos/{id} [delete]
func (h *PersonalHandler) DeleteTodo(c *fiber.Ctx) error {
	if err := h.todos.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReorderTodos godoc
// @Summary      Reordenar tareas
// @Tags         todos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReorderTodosRequest  true  "IDs en el nuevo orden"
// @Success      200   {array}  dto.TodoResponse
// @Router       /api/todos/reorder [put]
func (h *PersonalHandler) ReorderTodos(c *fiber.Ctx) error {
	var in dto.ReorderTodosRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.todos.Reorder(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListNotifications godoc
// @Summary      Notificaciones del usuario
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        unreadOnly  query  bool  false  "Solo no leídas"
// @Success      200  {object}  dto.ListResponse[dto.NotificationResponse]
// @Router       /api/notifications [get]
func (h *PersonalHandler) ListNotifications(c *fiber.Ctx) error {
	unread := c.QueryBool("unreadOnly", false)
	out, err := h.notifications.List(c.UserContext(), GetUserID(c), unread, pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Security     Bearer
// @Param        id   path  string  true  "ID de la notificación"
// @Success      204
// @Router       /api/notifications/{id}/read [patch]
func (h *PersonalHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.notifications.MarkRead(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead godoc
// @Summary      Marcar todas como leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MarkAllReadResponse
// @Router       /api/notifications/read-all [patch]
func (h *PersonalHandler) MarkAllRead(c *fiber.Ctx) error {
	out, err := h.notifications.MarkAllRead(c.UserContext(), GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
