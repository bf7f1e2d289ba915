package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/application/usecase"
)

// JourneyHandler expone el recorrido de puesta en marcha (protegido).
type JourneyHandler struct {
	uc *usecase.JourneyUseCase
}

// NewJourneyHandler construye el handler.
func NewJourneyHandler(uc *usecase.JourneyUseCase) *JourneyHandler {
	return &JourneyHandler{uc: uc}
}

// Get godoc
// @Summary      Recorrido de puesta en marcha
// @Description  Pasos del arranque del negocio con su avance porcentual. Los pasos se marcan solos la primera vez que se completa cada hito.
// @Tags         journey
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.JourneyResponse
// @Router       /api/journey [get]
func (h *JourneyHandler) Get(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	out, err := h.uc.Get(businessID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetStep godoc
// @Summary      Marcar o desmarcar un paso
// @Tags         journey
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        step  path  string  true  "Clave del paso"
// @Param        body  body  dto.UpdateJourneyStepRequest  true  "done"
// @Success      200   {object}  dto.JourneyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/journey/{step} [put]
func (h *JourneyHandler) SetStep(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	var in dto.UpdateJourneyStepRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetStep(businessID, c.Params("step"), in.Done)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
