package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/application/production"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// ProductionHandler maneja el ciclo de lotes de producción: planificar,
// confirmar, cancelar y la ficha en PDF (protegido).
type ProductionHandler struct {
	uc  *production.UseCase
	pdf *production.PDFUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.UseCase, pdf *production.PDFUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc, pdf: pdf}
}

// Plan godoc
// @Summary      Planificar lote de producción
// @Description  Expande la receta por el número de tazas, reserva el stock y congela los costos unitarios. Si falta stock responde 409 con el detalle de faltantes por ingrediente.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlanProductionRequest  true  "branch_id, product_id, quantity"
// @Success      201   {object}  dto.ProductionBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/production-batches [post]
func (h *ProductionHandler) Plan(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	userID := GetUserID(c)
	if businessID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.PlanProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BranchID == "" || in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id y product_id son requeridos"})
	}
	out, err := h.uc.Plan(c.Context(), businessID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener lote por ID
// @Description  Incluye las líneas congeladas de la receta con sus costos.
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.ProductionBatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-batches/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
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

// List godoc
// @Summary      Listar lotes de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Filtrar por sucursal"
// @Param        status     query  string  false  "Filtrar por estado"  Enums(PLANNED, COMMITTED, CANCELLED)
// @Param        from       query  string  false  "Desde (2006-01-02)"
// @Param        to         query  string  false  "Hasta (2006-01-02, inclusive)"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200        {object}  dto.ProductionBatchListResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/production-batches [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	filter := repository.ProductionBatchFilter{
		BranchID: c.Query("branch_id"),
		Status:   c.Query("status"),
	}
	var err error
	if filter.From, err = dateQuery(c, "from", false); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe tener formato 2006-01-02"})
	}
	if filter.To, err = dateQuery(c, "to", true); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe tener formato 2006-01-02"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(businessID, filter, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Commit godoc
// @Summary      Confirmar lote
// @Description  Descuenta el stock reservado y asienta los movimientos OUT. Solo lotes en estado PLANNED.
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.ProductionBatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "BATCH_NOT_EDITABLE si ya fue confirmado o cancelado"
// @Router       /api/production-batches/{id}/commit [post]
func (h *ProductionHandler) Commit(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	userID := GetUserID(c)
	if businessID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.Commit(c.Context(), businessID, userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar lote
// @Description  Libera el stock reservado sin consumirlo. Solo lotes en estado PLANNED.
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.ProductionBatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "BATCH_NOT_EDITABLE si ya fue confirmado o cancelado"
// @Router       /api/production-batches/{id}/cancel [post]
func (h *ProductionHandler) Cancel(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	out, err := h.uc.Cancel(c.Context(), businessID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Descargar ficha de producción en PDF
// @Tags         production
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-batches/{id}/report.pdf [get]
func (h *ProductionHandler) ReportPDF(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	pdfBytes, filename, err := h.pdf.DownloadBatchSheet(c.Context(), businessID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
