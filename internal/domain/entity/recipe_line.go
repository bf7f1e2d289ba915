package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLine representa un renglón de la receta de un producto: cuánto de un
// ingrediente se usa por taza, expresado en la unidad base del ingrediente.
// Única por (ProductID, IngredientID).
type RecipeLine struct {
	ID           string
	ProductID    string
	IngredientID string
	UsagePerCup  decimal.Decimal // > 0, en la unidad del ingrediente
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
