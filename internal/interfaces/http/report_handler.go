package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/report"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// ReportHandler reportes de rendimiento y diario de trabajo.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Performance godoc
// @Summary      Rendimiento anual por tipo, estado, mes y artículo
// @Description  Los documentos creados antes del 2024-12-01 cuentan como completados.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        userId  query  string  false  "Responsable (vacío = todos)"
// @Param        year    query  int     false  "Año (por defecto el actual)"
// @Success      200  {object}  dto.PerformanceResponse
// @Router       /api/reports/performance [get]
func (h *ReportHandler) Performance(c *fiber.Ctx) error {
	if bad := invalidIDs(c, "userId"); bad != "" {
		return badQuery(c, bad)
	}
	out, err := h.uc.Performance(c.UserContext(), c.Query("userId"), c.QueryInt("year", 0))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Companies godoc
// @Summary      Rendimiento por empresa (10 por página)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        userId     query  string  false  "Responsable"
// @Param        type       query  string  false  "estimate | order"
// @Param        startDate  query  string  false  "Desde"
// @Param        endDate    query  string  false  "Hasta"
// @Param        search     query  string  false  "Empresa (parcial)"
// @Param        page       query  int     false  "Página"
// @Success      200  {object}  dto.ListResponse[dto.CompanyPerformanceResponse]
// @Router       /api/reports/performance/companies [get]
func (h *ReportHandler) Companies(c *fiber.Ctx) error {
	if bad := invalidIDs(c, "userId"); bad != "" {
		return badQuery(c, bad)
	}
	from, to, bad := dateRange(c)
	if bad != "" {
		return badQuery(c, bad)
	}
	f := repository.ReportFilter{
		UserID:    c.Query("userId"),
		Type:      c.Query("type"),
		Search:    c.Query("search"),
		StartDate: from,
		EndDate:   to,
	}
	out, err := h.uc.Companies(c.UserContext(), f, c.QueryInt("page", 1))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// IndustryAverage godoc
// @Summary      Venta media por empresa de una industria
// @Description  Sin empresas en la industria average es null y company_count 0.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        industry   query  string  true   "Industria"
// @Param        startDate  query  string  false  "Desde"
// @Param        endDate    query  string  false  "Hasta"
// @Success      200  {object}  dto.IndustryAverageResponse
// @Router       /api/reports/industry-average [get]
func (h *ReportHandler) IndustryAverage(c *fiber.Ctx) error {
	from, to, bad := dateRange(c)
	if bad != "" {
		return badQuery(c, bad)
	}
	out, err := h.uc.IndustryAverage(c.UserContext(), c.Query("industry"), from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Daily godoc
// @Summary      Diario de trabajo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date      query  string  false  "Fecha de referencia (por defecto hoy)"
// @Param        userId    query  string  false  "Responsable (por defecto el de la sesión)"
// @Param        mode      query  string  false  "daily | weekly | monthly"  default(daily)
// @Param        allUsers  query  bool    false  "Todos los usuarios"
// @Success      200  {object}  dto.DailyReportResponse
// @Router       /api/reports/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	if bad := invalidIDs(c, "userId"); bad != "" {
		return badQuery(c, bad)
	}
	out, err := h.uc.Daily(c.UserContext(), report.DailyQuery{
		Date:     c.Query("date"),
		UserID:   c.Query("userId", GetUserID(c)),
		Mode:     c.Query("mode"),
		AllUsers: c.QueryBool("allUsers", false),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
