// Package costing agrupa la aritmética de costos del dominio: costo unitario
// en unidad base, COGS por taza con su desglose, margen sobre precio y costo
// promedio ponderado de inventario. Todas las funciones son puras.
package costing

import "github.com/shopspring/decimal"

// WeightedAverage implementa el costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverage(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// UnitCost devuelve el costo por unidad base: BaseUnitCost / BaseUnitQty.
// Ej: bolsa de café de 500g a $25.000 → $50 por gramo. Cero si la cantidad
// base no es positiva.
func UnitCost(baseUnitCost, baseUnitQty decimal.Decimal) decimal.Decimal {
	if baseUnitQty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return baseUnitCost.Div(baseUnitQty)
}

// Component es un ingrediente dentro de una receta a costear: cuánto se usa
// por taza y cuánto cuesta su unidad base. Puede venir del catálogo o ser
// hipotético (playground).
type Component struct {
	IngredientID string
	Name         string
	Unit         string
	UsagePerCup  decimal.Decimal
	UnitCost     decimal.Decimal
}

// Line es el aporte de un componente al costo de la taza.
type Line struct {
	Component
	LineCost decimal.Decimal // UsagePerCup × UnitCost
	SharePct decimal.Decimal // LineCost / COGSPerCup × 100, redondeado a 2
}

// Cup resume el costeo de una taza: desglose por ingrediente y COGS total.
type Cup struct {
	Lines      []Line
	COGSPerCup decimal.Decimal
}

// CostCup calcula el COGS por taza y el desglose por componente.
// cogs_per_cup = Σ(usage_per_cup × unit_cost).
func CostCup(components []Component) Cup {
	cup := Cup{Lines: make([]Line, 0, len(components)), COGSPerCup: decimal.Zero}
	for _, c := range components {
		lineCost := c.UsagePerCup.Mul(c.UnitCost)
		cup.Lines = append(cup.Lines, Line{Component: c, LineCost: lineCost})
		cup.COGSPerCup = cup.COGSPerCup.Add(lineCost)
	}
	if cup.COGSPerCup.IsPositive() {
		cien := decimal.NewFromInt(100)
		for i := range cup.Lines {
			cup.Lines[i].SharePct = cup.Lines[i].LineCost.Div(cup.COGSPerCup).Mul(cien).Round(2)
		}
	}
	return cup
}

// MarginPct devuelve el margen sobre precio: (precio - cogs) / precio × 100,
// redondeado a 2 decimales. Cero si el precio no es positivo.
func MarginPct(salePrice, cogs decimal.Decimal) decimal.Decimal {
	if salePrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return salePrice.Sub(cogs).Div(salePrice).Mul(decimal.NewFromInt(100)).Round(2)
}

// MarkupPct devuelve el recargo sobre costo: (precio - cogs) / cogs × 100,
// redondeado a 2 decimales. Cero si el costo no es positivo.
func MarkupPct(salePrice, cogs decimal.Decimal) decimal.Decimal {
	if cogs.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return salePrice.Sub(cogs).Div(cogs).Mul(decimal.NewFromInt(100)).Round(2)
}

// SuggestedPrice despeja el precio que logra el margen objetivo:
// precio = cogs / (1 - margen/100), redondeado a 2 decimales.
// Cero si el margen objetivo es >= 100% o negativo.
func SuggestedPrice(cogs, targetMarginPct decimal.Decimal) decimal.Decimal {
	cien := decimal.NewFromInt(100)
	if targetMarginPct.IsNegative() || targetMarginPct.GreaterThanOrEqual(cien) {
		return decimal.Zero
	}
	factor := decimal.NewFromInt(1).Sub(targetMarginPct.Div(cien))
	return cogs.Div(factor).Round(2)
}
