package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/labinventaris/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del inventario y de los préstamos.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_units, status_counts, maintenance_items,
// lab_distribution, active_loans, overdue_loans, unread_notifications, recent_logs[5]).
// El vencimiento de los préstamos se calcula al momento de la consulta.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
