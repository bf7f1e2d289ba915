package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseBatch representa un lote de ingrediente recibido en la bodega de
// una sucursal (una compra). UnitCost se deriva al recibir: TotalCost / Quantity.
type WarehouseBatch struct {
	ID           string
	BusinessID   string
	BranchID     string
	IngredientID string
	Quantity     decimal.Decimal // > 0, en la unidad del ingrediente
	TotalCost    decimal.Decimal // >= 0, costo total del lote
	UnitCost     decimal.Decimal // TotalCost / Quantity
	ReceivedAt   time.Time
	ExpiresAt    *time.Time // nil = sin vencimiento
	Note         string
	CreatedBy    string
	CreatedAt    time.Time
}
