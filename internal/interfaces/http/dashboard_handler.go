package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/crm-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del mes del usuario.
// GET /api/dashboard/summary?userId=
//
// Consultas del mes, documentos por tipo y estado, ventas y compras completadas
// frente al mes anterior, seguimientos y vencimientos de los próximos 7 días
// y las 5 consultas más recientes. Sin userId se usa el de la sesión.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), c.Query("userId", GetUserID(c)))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
