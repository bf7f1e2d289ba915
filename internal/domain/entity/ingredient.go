package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades base de medida para ingredientes.
const (
	UnitGram = "g"      // gramos
	UnitMl   = "ml"     // mililitros
	UnitUnit = "unidad" // piezas (vasos, tapas, sobres)
)

// Categorías de ingrediente.
const (
	IngredientCategoryCafe       = "cafe"
	IngredientCategoryLacteo     = "lacteo"
	IngredientCategoryEndulzante = "endulzante"
	IngredientCategoryEmpaque    = "empaque"
	IngredientCategoryOtro       = "otro"
)

// Ingredient representa un insumo del catálogo (café en grano, leche, vasos...).
// El costo de referencia se captura como "costo por presentación": BaseUnitCost
// pesos por BaseUnitQty unidades (ej. 45.000 COP por 1.000 g de café).
// AvgCost es el costo promedio ponderado por unidad, actualizado con cada lote
// recibido en bodega; se usa para valorizar stock, no para el COGS de catálogo.
type Ingredient struct {
	ID           string
	BusinessID   string
	Name         string
	Category     string // ver constantes IngredientCategory*
	Unit         string // g, ml, unidad
	BaseUnitCost decimal.Decimal // costo de la presentación (>= 0)
	BaseUnitQty  decimal.Decimal // cantidad de la presentación (> 0)
	AvgCost      decimal.Decimal // costo promedio ponderado por unidad (inicia en UnitCost)
	ReorderPoint decimal.Decimal // umbral de alerta de stock por sucursal
	Status       string          // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UnitCost devuelve el costo por unidad base: BaseUnitCost / BaseUnitQty.
// Si BaseUnitQty no es positivo devuelve cero (el caso de uso lo valida antes).
func (i *Ingredient) UnitCost() decimal.Decimal {
	if i.BaseUnitQty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return i.BaseUnitCost.Div(i.BaseUnitQty)
}
