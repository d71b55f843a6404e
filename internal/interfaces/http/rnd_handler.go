package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// RndHandler programas de I+D y sus consultas.
type RndHandler struct {
	uc *usecase.RndUseCase
}

// NewRndHandler construye el handler.
func NewRndHandler(uc *usecase.RndUseCase) *RndHandler {
	return &RndHandler{uc: uc}
}

// List godoc
// @Summary      Listar programas de I+D
// @Tags         rnds
// @Security     Bearer
// @Produce      json
// @Param        name         query  string  false  "Nombre, número de proyecto o programa"
// @Param        status       query  string  false  "Estado"
// @Param        projectType  query  string  false  "Tipo de proyecto"
// @Param        orgId        query  string  false  "Organismo"
// @Param        type         query  string  false  "rnd | brnd | develop"  default(rnd)
// @Success      200  {object}  dto.ListResponse[dto.RndResponse]
// @Router       /api/rnds [get]
func (h *RndHandler) List(c *fiber.Ctx) error {
	if bad := invalidIDs(c, "orgId"); bad != "" {
		return badQuery(c, bad)
	}
	f := repository.RndFilter{
		Search:      c.Query("name"),
		Status:      c.Query("status"),
		ProjectType: c.Query("projectType"),
		OrgID:       c.Query("orgId"),
		Type:        c.Query("type"),
	}
	out, err := h.uc.List(c.UserContext(), f, pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle del programa con organismo y contactos
// @Tags         rnds
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del programa"
// @Success      200  {object}  dto.RndResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rnds/{id} [get]
func (h *RndHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear programa de I+D
// @Tags         rnds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRndRequest  true  "name obligatorio"
// @Success      201   {object}  dto.RndResponse
// @Router       /api/rnds [post]
func (h *RndHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRndRequest
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
// @Summary      Actualizar programa (parcial)
// @Tags         rnds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del programa"
// @Param        body  body  dto.UpdateRndRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.RndResponse
// @Router       /api/rnds/{id} [patch]
func (h *RndHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRndRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar programa y sus consultas
// @Tags         rnds
// @Security     Bearer
// @Param        id   path  string  true  "ID del programa"
// @Success      204
// @Router       /api/rnds/{id} [delete]
func (h *RndHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListConsultations godoc
// @Summary      Consultas del programa
// @Tags         rnds
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del programa"
// @Success      200  {object}  dto.ListResponse[dto.RndConsultationResponse]
// @Router       /api/rnds/{id}/consultations [get]
func (h *RndHandler) ListConsultations(c *fiber.Ctx) error {
	out, err := h.uc.ListConsultations(c.UserContext(), c.Params("id"), pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CreateConsultation godoc
// @Summary      Registrar consulta del programa
// @Tags         rnds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID del programa"
// @Param        body  body  dto.CreateRndConsultationRequest  true  "Consulta"
// @Success      201   {object}  dto.RndConsultationResponse
// @Router       /api/rnds/{id}/consultations [post]
func (h *RndHandler) CreateConsultation(c *fiber.Ctx) error {
	var in dto.CreateRndConsultationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.UserID == "" {
		in.UserID = GetUserID(c)
	}
	out, err := h.uc.CreateConsultation(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateConsultation godoc
// @Summary      Actualizar consulta del programa
// @Tags         rnds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        cid   path  string                            true  "ID de la consulta"
// @Param        body  body  dto.UpdateRndConsultationRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.RndConsultationResponse
// @Router       /api/rnds/consultations/{cid} [patch]
func (h *RndHandler) UpdateConsultation(c *fiber.Ctx) error {
	var in dto.UpdateRndConsultationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateConsultation(c.UserContext(), c.Params("cid"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DeleteConsultation godoc
// @Summary      Eliminar consulta del programa
// @Tags         rnds
// @Security     Bearer
// @Param        cid  path  string  true  "ID de la consulta"
// @Success      204
// @Router       /api/rnds/consultations/{cid} [delete]
func (h *RndHandler) DeleteConsultation(c *fiber.Ctx) error {
	if err := h.uc.DeleteConsultation(c.UserContext(), c.Params("cid")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RndOrgHandler organismos de apoyo a la I+D.
type RndOrgHandler struct {
	uc *usecase.RndOrgUseCase
}

// NewRndOrgHandler construye el handler.
func NewRndOrgHandler(uc *usecase.RndOrgUseCase) *RndOrgHandler {
	return &RndOrgHandler{uc: uc}
}

// List godoc
// @Summary      Listar organismos
// @Description  Con page o limit devuelve la página con contactos; sin ellos la lista completa por nombre.
// @Tags         rnd-orgs
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"
// @Param        limit  query  int  false  "Límite"
// @Success      200  {object}  dto.ListResponse[dto.RndOrgResponse]
// @Router       /api/rnd-orgs [get]
func (h *RndOrgHandler) List(c *fiber.Ctx) error {
	if c.Query("page") == "" && c.Query("limit") == "" {
		out, err := h.uc.ListAll(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.ListPage(c.UserContext(), pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de organismo con contactos
// @Tags         rnd-orgs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del organismo"
// @Success      200  {object}  dto.RndOrgResponse
// @Router       /api/rnd-orgs/{id} [get]
func (h *RndOrgHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear organismo con contactos
// @Tags         rnd-orgs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RndOrgRequest  true  "name obligatorio"
// @Success      201   {object}  dto.RndOrgResponse
// @Router       /api/rnd-orgs [post]
func (h *RndOrgHandler) Create(c *fiber.Ctx) error {
	var in dto.RndOrgRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Replace godoc
// @Summary      Reemplazar organismo y sincronizar sus contactos
// @Tags         rnd-orgs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del organismo"
// @Param        body  body  dto.RndOrgRequest  true  "Organismo completo"
// @Success      200   {object}  dto.RndOrgResponse
// @Router       /api/rnd-orgs/{id} [put]
func (h *RndOrgHandler) Replace(c *fiber.Ctx) error {
	var in dto.RndOrgRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Replace(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar organismo
// @Tags         rnd-orgs
// @Security     Bearer
// @Param        id   path  string  true  "ID del organismo"
// @Success      204
// @Router       /api/rnd-orgs/{id} [delete]
func (h *RndOrgHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
