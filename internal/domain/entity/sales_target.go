package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesTarget es la meta de ventas de un día para una sucursal.
// Única por (BusinessID, BranchID, Date); la fecha se guarda sin hora.
type DailySalesTarget struct {
	ID           string
	BusinessID   string
	BranchID     string
	Date         time.Time
	TargetAmount decimal.Decimal // meta en dinero (>= 0)
	TargetCups   int64           // meta en tazas (>= 0)
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
