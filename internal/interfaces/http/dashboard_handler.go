package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Baristo-api/internal/application/analytics"
	"github.com/jhoicas/Baristo-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del dashboard de inicio.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del día y del mes
// @Description  KPIs en una sola llamada: catálogo, valorización y alertas de bodega, producción de hoy y del mes, metas del día, top productos por margen y avance del recorrido. Las fechas se calculan en el servidor.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "business_id no encontrado en el token",
		})
	}

	summary, err := h.uc.GetSummary(c.Context(), businessID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	return c.JSON(summary)
}
