package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/granja-pro/internal/application/analytics"
	"github.com/tu-usuario/granja-pro/internal/application/dto"
)

// DashboardHandler resumen financiero del negocio activo.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen financiero (inversión, ingresos, gastos, utilidad)
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context(), GetBusinessID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
