package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/application/warehouse"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// WarehouseHandler maneja las peticiones HTTP de bodega: recepción de lotes,
// niveles de stock, movimientos y alertas de reposición (protegido).
type WarehouseHandler struct {
	uc *warehouse.UseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *warehouse.UseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// ReceiveBatch godoc
// @Summary      Recibir lote en bodega
// @Description  Registra el lote, asienta la entrada y actualiza el costo promedio ponderado del ingrediente.
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveBatchRequest  true  "branch_id, ingredient_id, quantity, total_cost"
// @Success      201   {object}  dto.WarehouseBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warehouse/batches [post]
func (h *WarehouseHandler) ReceiveBatch(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	userID := GetUserID(c)
	if businessID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ReceiveBatch(c.Context(), businessID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBatches godoc
// @Summary      Listar lotes recibidos
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Param        branch_id      query  string  false  "Filtrar por sucursal"
// @Param        ingredient_id  query  string  false  "Filtrar por ingrediente"
// @Param        limit          query  int     false  "Límite"   default(20)
// @Param        offset         query  int     false  "Offset"   default(0)
// @Success      200            {object}  dto.WarehouseBatchListResponse
// @Router       /api/warehouse/batches [get]
func (h *WarehouseHandler) ListBatches(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	filter := repository.WarehouseBatchFilter{
		BranchID:     c.Query("branch_id"),
		IngredientID: c.Query("ingredient_id"),
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListBatches(businessID, filter, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListStock godoc
// @Summary      Niveles de stock de una sucursal
// @Description  Incluye cantidad, reservado y disponible por ingrediente.
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  true   "Sucursal"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200        {object}  dto.StockListResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/warehouse/stock [get]
func (h *WarehouseHandler) ListStock(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	branchID := c.Query("branch_id")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id es requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListStock(businessID, branchID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterMovement godoc
// @Summary      Registrar ajuste o traslado
// @Description  ADJUSTMENT suma o resta con cantidad firmada; TRANSFER mueve stock entre sucursales con doble asiento. Las entradas van por lotes y las salidas por producción.
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "ingredient_id, type y sucursales según el tipo"
// @Success      201   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouse/movements [post]
func (h *WarehouseHandler) RegisterMovement(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	userID := GetUserID(c)
	if businessID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterMovement(c.Context(), businessID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Libro de movimientos
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Param        branch_id      query  string  false  "Filtrar por sucursal"
// @Param        ingredient_id  query  string  false  "Filtrar por ingrediente"
// @Param        type           query  string  false  "Filtrar por tipo"  Enums(IN, OUT, ADJUSTMENT, TRANSFER)
// @Param        from           query  string  false  "Desde (2006-01-02)"
// @Param        to             query  string  false  "Hasta (2006-01-02, inclusive)"
// @Param        limit          query  int     false  "Límite"   default(20)
// @Param        offset         query  int     false  "Offset"   default(0)
// @Success      200            {object}  dto.MovementListResponse
// @Failure      400            {object}  dto.ErrorResponse
// @Router       /api/warehouse/movements [get]
func (h *WarehouseHandler) ListMovements(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	filter := repository.StockMovementFilter{
		BranchID:     c.Query("branch_id"),
		IngredientID: c.Query("ingredient_id"),
		Type:         c.Query("type"),
	}
	var err error
	if filter.From, err = dateQuery(c, "from", false); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe tener formato 2006-01-02"})
	}
	if filter.To, err = dateQuery(c, "to", true); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe tener formato 2006-01-02"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListMovements(businessID, filter, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Alertas de reposición
// @Description  Ingredientes bajo su punto de reorden en la sucursal, con cantidad sugerida de pedido y costo estimado.
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  true  "Sucursal"
// @Success      200        {object}  dto.StockAlertListResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/warehouse/alerts [get]
func (h *WarehouseHandler) Alerts(c *fiber.Ctx) error {
	businessID := GetBusinessID(c)
	if businessID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "business_id requerido"})
	}
	branchID := c.Query("branch_id")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id es requerido"})
	}
	out, err := h.uc.Alerts(c.Context(), businessID, branchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// dateQuery parsea un parámetro de fecha 2006-01-02. Con endOfDay el instante
// devuelto cubre el día completo para que el rango sea inclusivo.
func dateQuery(c *fiber.Ctx, name string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return &t, nil
}
