package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Baristo-api/internal/application/costing"
	"github.com/jhoicas/Baristo-api/internal/application/dto"
)

// COGSHandler expone el simulador de costos por taza (protegido).
type COGSHandler struct {
	uc *costing.PlaygroundUseCase
}

// NewCOGSHandler construye el handler.
func NewCOGSHandler(uc *costing.PlaygroundUseCase) *COGSHandler {
	return &COGSHandler{uc: uc}
}

// Playground godoc
// @Summary      Simular COGS por taza
// @Description  Calcula costo por taza, margen y precio sugerido sin persistir nada. Cada renglón toma el costo del catálogo (ingredient_id) o define un ingrediente hipotético ad-hoc.
// @Tags         cogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaygroundRequest  true  "Renglones y precio opcional"
// @Success      200   {object}  dto.PlaygroundResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cogs/playground [post]
func (h *COGSHandler) Playground(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	var in dto.PlaygroundRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere al menos un renglón en lines"})
	}
	out, err := h.uc.Compute(businessID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
