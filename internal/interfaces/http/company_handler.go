package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc    *usecase.CompanyUseCase
	stats *analytics.CompanyStatsUseCase
	files *usecase.CompanyFileUseCase // nil si no hay almacenamiento configurado
}

// NewCompanyHandler construye el handler inyectando los casos de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, stats *analytics.CompanyStatsUseCase, files *usecase.CompanyFileUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc, stats: stats, files: files}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa y contactos opcionales"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener empresa con sus contactos
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        name        query  string  false  "Nombre (parcial)"
// @Param        address     query  string  false  "Dirección (parcial)"
// @Param        email       query  string  false  "Email (parcial)"
// @Param        industry    query  string  false  "Industria"
// @Param        isOverseas  query  bool    false  "Extranjera"
// @Param        companyIds  query  []string false "IDs (repetible)"
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(10)
// @Success      200  {object}  dto.ListResponse[dto.CompanyResponse]
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	if bad := invalidIDs(c, "companyIds"); bad != "" {
		return badQuery(c, bad)
	}
	f := repository.CompanyFilter{
		Name:       c.Query("name"),
		Address:    c.Query("address"),
		Email:      c.Query("email"),
		Industry:   c.Query("industry"),
		IsOverseas: queryBool(c, "isOverseas"),
		CompanyIDs: queryIDs(c, "companyIds"),
	}
	out, err := h.uc.List(c.UserContext(), f, pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empresa (parcial)
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la empresa"
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [patch]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
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
// @Summary      Eliminar empresa con contactos, consultas y documentos
// @Tags         companies
// @Security     Bearer
// @Param        id   path  string  true  "ID de la empresa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if errors.Is(err, usecase.ErrStorageCleanup) {
		// la empresa ya no existe; los objetos huérfanos quedan registrados para borrarlos a mano
		requestLog(c).Warn().Err(err).Str("company_id", c.Params("id")).Msg("adjuntos sin borrar")
		err = nil
	}
	if err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats godoc
// @Summary      Estadísticas de la empresa
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyStatsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/stats [get]
func (h *CompanyHandler) Stats(c *fiber.Ctx) error {
	out, err := h.stats.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListFiles godoc
// @Summary      Archivos adjuntos de la empresa
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {array}  dto.CompanyFileResponse
// @Router       /api/companies/{id}/files [get]
func (h *CompanyHandler) ListFiles(c *fiber.Ctx) error {
	out, err := h.files.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UploadFile godoc
// @Summary      Subir archivo adjunto
// @Tags         companies
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID de la empresa"
// @Param        file  formData  file    true  "Archivo"
// @Success      201   {object}  dto.CompanyFileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/files [post]
func (h *CompanyHandler) UploadFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respond(c, fiber.StatusBadRequest, CodeValidation, "필수 값이 없습니다: file")
	}
	f, err := fh.Open()
	if err != nil {
		return badBody(c)
	}
	defer f.Close()

	out, err := h.files.Upload(c.UserContext(), usecase.UploadInput{
		CompanyID:   c.Params("id"),
		UserID:      GetUserID(c),
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// FileURL godoc
// @Summary      URL firmada de descarga
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        fileId  path  string  true  "ID del archivo"
// @Success      200  {object}  dto.FileURLResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/files/{fileId}/url [get]
func (h *CompanyHandler) FileURL(c *fiber.Ctx) error {
	out, err := h.files.DownloadURL(c.UserContext(), c.Params("fileId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DeleteFile godoc
// @Summary      Eliminar archivo adjunto
// @Tags         companies
// @Security     Bearer
// @Param        fileId  path  string  true  "ID del archivo"
// @Success      204
// @Router       /api/companies/files/{fileId} [delete]
func (h *CompanyHandler) DeleteFile(c *fiber.Ctx) error {
	if err := h.files.Delete(c.UserContext(), c.Params("fileId")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
