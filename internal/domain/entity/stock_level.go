package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel representa el stock actual de un ingrediente en una sucursal.
// Reserved es la cantidad comprometida por lotes de producción planificados
// (aún no confirmados); nunca debe superar Quantity.
type StockLevel struct {
	BranchID     string
	IngredientID string
	Quantity     decimal.Decimal
	Reserved     decimal.Decimal
	UpdatedAt    time.Time
}

// Available devuelve el stock disponible para nuevas reservas: Quantity - Reserved.
func (s *StockLevel) Available() decimal.Decimal {
	return s.Quantity.Sub(s.Reserved)
}
