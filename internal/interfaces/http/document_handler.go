package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// DocumentHandler presupuestos, pedidos y solicitudes de cotización.
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        type        query  string    false  "estimate | order | requestQuote"  default(estimate)
// @Param        status      query  string    false  "all | pending | completed | canceled | expired | expiring_soon"
// @Param        userId      query  string    false  "Responsable"
// @Param        docNumber   query  string    false  "Número (parcial)"
// @Param        companyIds  query  []string  false  "Empresas (repetible)"
// @Param        notes       query  string    false  "Notas del contenido (parcial)"
// @Success      200  {object}  dto.ListResponse[dto.DocumentResponse]
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	if bad := invalidIDs(c, "userId", "companyIds"); bad != "" {
		return badQuery(c, bad)
	}
	f := repository.DocumentFilter{
		Type:       c.Query("type"),
		Status:     c.Query("status"),
		UserID:     c.Query("userId"),
		DocNumber:  c.Query("docNumber"),
		CompanyIDs: queryIDs(c, "companyIds"),
		Notes:      c.Query("notes"),
	}
	out, err := h.uc.List(c.UserContext(), f, pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de documento
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ByConsultation godoc
// @Summary      Documentos de una consulta
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        consultationId  path  string  true  "ID de la consulta"
// @Success      200  {array}  dto.DocumentResponse
// @Router       /api/documents/by-consultation/{consultationId} [get]
func (h *DocumentHandler) ByConsultation(c *fiber.Ctx) error {
	out, err := h.uc.ListByConsultation(c.UserContext(), c.Params("consultationId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Conteos por tipo y estado
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        userId  query  string  false  "Responsable (vacío = todos)"
// @Success      200  {object}  dto.DocumentSummaryResponse
// @Router       /api/documents/summary [get]
func (h *DocumentHandler) Summary(c *fiber.Ctx) error {
	if bad := invalidIDs(c, "userId"); bad != "" {
		return badQuery(c, bad)
	}
	out, err := h.uc.Summary(c.UserContext(), c.Query("userId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear documento
// @Description  La empresa se toma de la consulta; si se envía otra distinta responde 422.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentRequest  true  "consultation_id, type, user_id y content obligatorios"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
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
// @Summary      Actualizar documento (parcial)
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del documento"
// @Param        body  body  dto.UpdateDocumentRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [patch]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del documento
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID del documento"
// @Param        body  body  dto.UpdateDocumentStatusRequest  true  "status y status_reason"
// @Success      200   {object}  dto.DocumentResponse
// @Router       /api/documents/{id}/status [patch]
func (h *DocumentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateDocumentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento
// @Tags         documents
// @Security     Bearer
// @Param        id   path  string  true  "ID del documento"
// @Success      204
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Documento en PDF
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
