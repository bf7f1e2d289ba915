package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN         = "IN"         // entrada (lote recibido)
	MovementTypeOUT        = "OUT"        // salida (producción confirmada)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual (merma, conteo físico)
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre sucursales
)

// StockMovement representa un asiento del libro de movimientos de bodega.
// Las reservas de producción NO generan movimientos: solo cambian Reserved en
// StockLevel; el libro registra únicamente eventos que alteran Quantity.
type StockMovement struct {
	ID            string
	TransactionID string // agrupa asientos de una misma operación (lote, producción, traslado)
	BranchID      string
	IngredientID  string
	Type          string
	Quantity      decimal.Decimal // positivo entrada/ajuste+, negativo salida
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	Reason        string
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}
