package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote de producción.
const (
	ProductionStatusPlanned   = "PLANNED"   // reservó stock, pendiente de confirmar
	ProductionStatusCommitted = "COMMITTED" // consumió stock (movimientos OUT)
	ProductionStatusCancelled = "CANCELLED" // liberó la reserva
)

// ProductionBatch representa la producción de N tazas de un producto en una
// sucursal. Al planificar se reserva stock (Reserved += necesario por
// ingrediente); al confirmar se consume (Quantity -= y movimientos OUT); al
// cancelar se libera la reserva. TotalCost queda congelado al planificar.
type ProductionBatch struct {
	ID          string
	BusinessID  string
	BranchID    string
	ProductID   string
	Quantity    int64 // tazas a producir (> 0)
	Status      string
	TotalCost   decimal.Decimal // Σ líneas: cantidad × costo unitario congelado
	Note        string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CommittedAt *time.Time
}

// CostPerCup devuelve TotalCost / Quantity (cero si Quantity no es positivo).
func (b *ProductionBatch) CostPerCup() decimal.Decimal {
	if b.Quantity <= 0 {
		return decimal.Zero
	}
	return b.TotalCost.Div(decimal.NewFromInt(b.Quantity))
}

// ProductionBatchLine es la asignación congelada por ingrediente de un lote:
// cantidad reservada (tazas × uso por taza) y costo unitario al momento de
// planificar. Con estas líneas se confirma (OUT) o se cancela (liberar reserva)
// sin depender de ediciones posteriores de la receta.
type ProductionBatchLine struct {
	ID           string
	BatchID      string
	IngredientID string
	Quantity     decimal.Decimal // reservado en la unidad del ingrediente
	UnitCost     decimal.Decimal // costo unitario congelado al planificar
}

// LineTotal devuelve Quantity × UnitCost.
func (l *ProductionBatchLine) LineTotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitCost)
}
