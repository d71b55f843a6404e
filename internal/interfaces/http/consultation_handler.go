package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// ConsultationHandler historial de consultas (상담) con las empresas.
type ConsultationHandler struct {
	uc *usecase.ConsultationUseCase
}

// NewConsultationHandler construye el handler.
func NewConsultationHandler(uc *usecase.ConsultationUseCase) *ConsultationHandler {
	return &ConsultationHandler{uc: uc}
}

// List godoc
// @Summary      Listar consultas
// @Description  Con companyId devuelve el historial de la empresa (4 por página, search separado por comas,
// @Description  highlightId salta a la página que la contiene). Sin companyId es el listado global.
// @Tags         consultations
// @Security     Bearer
// @Produce      json
// @Param        companyId    query  string  false  "ID de empresa"
// @Param        search       query  string  false  "Términos separados por coma (título o contenido)"
// @Param        highlightId  query  string  false  "Consulta a resaltar"
// @Param        keyword      query  string  false  "Contenido (parcial)"
// @Param        userId       query  string  false  "Responsable"
// @Param        startDate    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        endDate      query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        page         query  int     false  "Página"
// @Param        limit        query  int     false  "Límite"
// @Success      200  {object}  dto.ListResponse[dto.ConsultationResponse]
// @Router       /api/consultations [get]
func (h *ConsultationHandler) List(c *fiber.Ctx) error {
	if bad := invalidIDs(c, "companyId", "highlightId", "userId"); bad != "" {
		return badQuery(c, bad)
	}
	if companyID := c.Query("companyId"); companyID != "" {
		out, err := h.uc.ListByCompany(c.UserContext(), usecase.CompanyListQuery{
			CompanyID:   companyID,
			Search:      c.Query("search"),
			HighlightID: c.Query("highlightId"),
			PageQuery:   pageQuery(c),
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(out)
	}
	from, to, bad := dateRange(c)
	if bad != "" {
		return badQuery(c, bad)
	}
	f := repository.ConsultationFilter{
		UserID:    c.Query("userId"),
		Keyword:   c.Query("keyword"),
		StartDate: from,
		EndDate:   to,
	}
	out, err := h.uc.List(c.UserContext(), f, pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Recent godoc
// @Summary      Consultas recientes de todas las empresas
// @Tags         consultations
// @Security     Bearer
// @Produce      json
// @Param        userId       query  string  false  "Responsable"
// @Param        companyName  query  string  false  "Empresa (parcial)"
// @Param        startDate    query  string  false  "Desde"
// @Param        endDate      query  string  false  "Hasta"
// @Success      200  {object}  dto.ListResponse[dto.ConsultationResponse]
// @Router       /api/consultations/recent [get]
func (h *ConsultationHandler) Recent(c *fiber.Ctx) error {
	if bad := invalidIDs(c, "userId"); bad != "" {
		return badQuery(c, bad)
	}
	from, to, bad := dateRange(c)
	if bad != "" {
		return badQuery(c, bad)
	}
	f := repository.ConsultationFilter{
		UserID:      c.Query("userId"),
		CompanyName: c.Query("companyName"),
		StartDate:   from,
		EndDate:     to,
	}
	out, err := h.uc.Recent(c.UserContext(), f, pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// FollowUps godoc
// @Summary      Seguimientos de los próximos 7 días
// @Tags         consultations
// @Security     Bearer
// @Produce      json
// @Param        userId  query  string  false  "Responsable (por defecto el usuario de la sesión)"
// @Success      200  {array}  dto.ConsultationResponse
// @Router       /api/consultations/follow-ups [get]
func (h *ConsultationHandler) FollowUps(c *fiber.Ctx) error {
	if bad := invalidIDs(c, "userId"); bad != "" {
		return badQuery(c, bad)
	}
	out, err := h.uc.FollowUps(c.UserContext(), c.Query("userId", GetUserID(c)))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de consulta
// @Tags         consultations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la consulta"
// @Success      200  {object}  dto.ConsultationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consultations/{id} [get]
func (h *ConsultationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar consulta
// @Tags         consultations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateConsultationRequest  true  "company_id, content y user_id obligatorios"
// @Success      201   {object}  dto.CreatedConsultationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/consultations [post]
func (h *ConsultationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateConsultationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.UserID == "" {
		in.UserID = GetUserID(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar consulta (parcial)
// @Tags         consultations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID de la consulta"
// @Param        body  body  dto.UpdateConsultationRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ConsultationResponse
// @Router       /api/consultations/{id} [patch]
func (h *ConsultationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateConsultationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar consulta (lógico) y sus documentos
// @Tags         consultations
// @Security     Bearer
// @Param        id   path  string  true  "ID de la consulta"
// @Success      204
// @Router       /api/consultations/{id} [delete]
func (h *ConsultationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
