package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSalesTargetRequest entrada para crear la meta de un día.
// Date en formato "2006-01-02".
type CreateSalesTargetRequest struct {
	BranchID     string          `json:"branch_id" validate:"required,uuid"`
	Date         string          `json:"date" validate:"required,datetime=2006-01-02"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetCups   int64           `json:"target_cups"`
	Note         string          `json:"note,omitempty"`
}

// UpdateSalesTargetRequest entrada para actualizar una meta (la fecha no cambia).
type UpdateSalesTargetRequest struct {
	TargetAmount *decimal.Decimal `json:"target_amount"`
	TargetCups   *int64           `json:"target_cups"`
	Note         *string          `json:"note"`
}

// SalesTargetResponse salida de una meta diaria.
type SalesTargetResponse struct {
	ID           string          `json:"id"`
	BranchID     string          `json:"branch_id"`
	Date         string          `json:"date"` // 2006-01-02
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetCups   int64           `json:"target_cups"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SalesTargetListResponse metas de un rango (vista calendario).
type SalesTargetListResponse struct {
	BranchID string                `json:"branch_id,omitempty"`
	From     string                `json:"from"`
	To       string                `json:"to"`
	Items    []SalesTargetResponse `json:"items"`
}

// SalesTargetSummaryResponse agregado de metas de un mes.
type SalesTargetSummaryResponse struct {
	Month       string          `json:"month"` // 2006-01
	Days        int             `json:"days_with_target"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalCups   int64           `json:"total_cups"`
	AvgAmount   decimal.Decimal `json:"avg_amount_per_day"`
}
