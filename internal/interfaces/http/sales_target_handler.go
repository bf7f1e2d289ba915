package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/application/usecase"
	"github.com/jhoicas/Baristo-api/internal/domain"
)

// SalesTargetHandler maneja las metas diarias de venta (protegido).
type SalesTargetHandler struct {
	uc *usecase.SalesTargetUseCase
}

// NewSalesTargetHandler construye el handler.
func NewSalesTargetHandler(uc *usecase.SalesTargetUseCase) *SalesTargetHandler {
	return &SalesTargetHandler{uc: uc}
}

// Create godoc
// @Summary      Definir meta diaria
// @Tags         sales-targets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesTargetRequest  true  "branch_id, date, target_amount, target_cups"
// @Success      201   {object}  dto.SalesTargetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "DUPLICATE si la sucursal ya tiene meta ese día"
// @Router       /api/sales-targets [post]
func (h *SalesTargetHandler) Create(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	var in dto.CreateSalesTargetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BranchID == "" || in.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id y date son requeridos"})
	}
	out, err := h.uc.Create(businessID, in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "la sucursal ya tiene meta para ese día"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener meta por ID
// @Tags         sales-targets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la meta"
// @Success      200  {object}  dto.SalesTargetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-targets/{id} [get]
func (h *SalesTargetHandler) GetByID(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	out, err := h.uc.GetByID(businessID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar meta
// @Description  Solo cambia montos, tazas y nota; la fecha y la sucursal no se mueven.
// @Tags         sales-targets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la meta"
// @Param        body  body  dto.UpdateSalesTargetRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SalesTargetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales-targets/{id} [put]
func (h *SalesTargetHandler) Update(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	var in dto.UpdateSalesTargetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(businessID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar meta
// @Tags         sales-targets
// @Security     Bearer
// @Param        id   path  string  true  "ID de la meta"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-targets/{id} [delete]
func (h *SalesTargetHandler) Delete(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	if err := h.uc.Delete(businessID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRange godoc
// @Summary      Metas en un rango de fechas
// @Description  Vista calendario: metas entre from y to, opcionalmente de una sola sucursal.
// @Tags         sales-targets
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Filtrar por sucursal"
// @Param        from       query  string  true   "Desde (2006-01-02)"
// @Param        to         query  string  true   "Hasta (2006-01-02, inclusive)"
// @Success      200        {object}  dto.SalesTargetListResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/sales-targets [get]
func (h *SalesTargetHandler) ListRange(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	out, err := h.uc.ListRange(businessID, c.Query("branch_id"), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MonthSummary godoc
// @Summary      Resumen de metas del mes
// @Tags         sales-targets
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  true  "Mes (2006-01)"
// @Success      200    {object}  dto.SalesTargetSummaryResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/sales-targets/summary [get]
func (h *SalesTargetHandler) MonthSummary(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	out, err := h.uc.MonthSummary(businessID, c.Query("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
