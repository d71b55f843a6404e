package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// UserHandler usuarios del CRM y registro de accesos.
type UserHandler struct {
	uc   *usecase.UserUseCase
	auth *auth.AuthUseCase
	logs *usecase.LoginLogUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, authUC *auth.AuthUseCase, logs *usecase.LoginLogUseCase) *UserHandler {
	return &UserHandler{uc: uc, auth: authUC, logs: logs}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        name      query  string  false  "Nombre (parcial)"
// @Param        role      query  string  false  "admin | manager | user"
// @Param        isActive  query  bool    false  "Activo"
// @Success      200  {object}  dto.ListResponse[dto.UserResponse]
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	f := repository.UserFilter{
		Name:     c.Query("name"),
		Role:     c.Query("role"),
		IsActive: queryBool(c, "isActive"),
	}
	out, err := h.uc.List(c.UserContext(), f, pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario (admin)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "email, name y password (mín. 8)"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.auth.RegisterUser(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Description  Un admin cambia cualquier campo; el propio usuario solo nombre, cargo y nivel.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar la contraseña propia
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                     true  "ID del usuario (debe ser el de la sesión)"
// @Param        body  body  dto.ChangePasswordRequest  true  "Contraseña actual y nueva"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/password [patch]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	if c.Params("id") != GetUserID(c) {
		return respond(c, fiber.StatusForbidden, CodeForbidden, "본인 비밀번호만 변경할 수 있습니다")
	}
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.auth.ChangePassword(c.UserContext(), GetUserID(c), in); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LoginLogs godoc
// @Summary      Registro de accesos (admin)
// @Tags         login-logs
// @Security     Bearer
// @Produce      json
// @Param        email      query  string  false  "Email (parcial)"
// @Param        startDate  query  string  false  "Desde"
// @Param        endDate    query  string  false  "Hasta"
// @Success      200  {object}  dto.ListResponse[dto.LoginLogResponse]
// @Router       /api/login-logs [get]
func (h *UserHandler) LoginLogs(c *fiber.Ctx) error {
	from, to, bad := dateRange(c)
	if bad != "" {
		return badQuery(c, bad)
	}
	f := repository.LoginLogFilter{Email: c.Query("email"), StartDate: from, EndDate: to}
	out, err := h.logs.List(c.UserContext(), f, pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
