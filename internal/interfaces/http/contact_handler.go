package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// ContactHandler contactos de las empresas.
type ContactHandler struct {
	uc *usecase.ContactUseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// List godoc
// @Summary      Listar contactos
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        contactName  query  string  false  "Nombre"
// @Param        email        query  string  false  "Email"
// @Param        mobile       query  string  false  "Móvil"
// @Param        companyName  query  string  false  "Empresa"
// @Param        companyId    query  string  false  "ID de empresa"
// @Param        resign       query  bool    false  "De baja"
// @Success      200  {object}  dto.ListResponse[dto.ContactResponse]
// @Router       /api/contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	if bad := invalidIDs(c, "companyId"); bad != "" {
		return badQuery(c, bad)
	}
	f := repository.ContactFilter{
		ContactName: c.Query("contactName"),
		Email:       c.Query("email"),
		Mobile:      c.Query("mobile"),
		CompanyName: c.Query("companyName"),
		CompanyID:   c.Query("companyId"),
		Resign:      queryBool(c, "resign"),
	}
	out, err := h.uc.List(c.UserContext(), f, pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener contacto
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del contacto"
// @Success      200  {object}  dto.ContactResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [get]
func (h *ContactHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear contacto
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContactRequest  true  "company_id y contact_name obligatorios"
// @Success      201   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contacts [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar contacto (parcial)
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del contacto"
// @Param        body  body  dto.UpdateContactRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ContactResponse
// @Router       /api/contacts/{id} [patch]
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Resign godoc
// @Summary      Marcar o desmarcar baja del contacto
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del contacto"
// @Param        body  body  dto.ResignRequest  true  "resign"
// @Success      200   {object}  dto.ContactResponse
// @Router       /api/contacts/{id}/resign [patch]
func (h *ContactHandler) Resign(c *fiber.Ctx) error {
	var in dto.ResignRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetResign(c.UserContext(), c.Params("id"), in.Resign)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar contacto
// @Tags         contacts
// @Security     Bearer
// @Param        id   path  string  true  "ID del contacto"
// @Success      204
// @Router       /api/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
