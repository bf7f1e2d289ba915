package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Baristo-api/internal/domain/costing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la aritmética de costos. Son el contrato numérico del sistema: si
// alguien cambia una fórmula (costo unitario, COGS, margen, promedio
// ponderado) estos tests fallan antes de que el error llegue a un precio.
//
// Vector de referencia del capuchino:
//
//	Café:   bolsa 500g a $25.000  → $50/g,   18 g/taza → $900
//	Leche:  bolsa 1000ml a $4.800 → $4,8/ml, 150 ml/taza → $720
//	Vaso:   paquete 50u a $15.000 → $300/u,  1 u/taza → $300
//	COGS  = 900 + 720 + 300 = $1.920
//	Precio $6.000 → margen = (6000-1920)/6000 = 68%
// ──────────────────────────────────────────────────────────────────────────────

func TestUnitCost_BolsaDeCafe(t *testing.T) {
	// 500 g por $25.000 → $50 por gramo
	got := costing.UnitCost(dec("25000"), dec("500"))
	assert.True(t, dec("50").Equal(got), "costo unitario esperado 50, obtuvo %s", got)
}

func TestUnitCost_CantidadBaseCeroDevuelveCero(t *testing.T) {
	got := costing.UnitCost(dec("25000"), decimal.Zero)
	assert.True(t, got.IsZero(), "con cantidad base cero el costo unitario debe ser cero, no un pánico de división")
}

func TestUnitCost_CantidadBaseNegativaDevuelveCero(t *testing.T) {
	got := costing.UnitCost(dec("25000"), dec("-1"))
	assert.True(t, got.IsZero())
}

func TestCostCup_VectorCapuchino(t *testing.T) {
	cup := costing.CostCup(capuchino())

	require.Len(t, cup.Lines, 3)
	assert.True(t, dec("1920").Equal(cup.COGSPerCup),
		"COGS del capuchino esperado 1920, obtuvo %s", cup.COGSPerCup)

	// Desglose por línea: café $900, leche $720, vaso $300.
	assert.True(t, dec("900").Equal(cup.Lines[0].LineCost), "línea café: %s", cup.Lines[0].LineCost)
	assert.True(t, dec("720").Equal(cup.Lines[1].LineCost), "línea leche: %s", cup.Lines[1].LineCost)
	assert.True(t, dec("300").Equal(cup.Lines[2].LineCost), "línea vaso: %s", cup.Lines[2].LineCost)
}

func TestCostCup_ParticipacionSuma100(t *testing.T) {
	cup := costing.CostCup(capuchino())

	total := decimal.Zero
	for _, l := range cup.Lines {
		total = total.Add(l.SharePct)
	}
	// 46.88 + 37.5 + 15.63 = 100.01 por redondeo; tolerancia de ±0.05.
	diff := total.Sub(dec("100")).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.05")),
		"la participación de las líneas debe sumar ~100%%, obtuvo %s", total)
}

func TestCostCup_SinComponentes(t *testing.T) {
	cup := costing.CostCup(nil)
	assert.True(t, cup.COGSPerCup.IsZero())
	assert.Empty(t, cup.Lines)
}

func TestMarginPct_VectorCapuchino(t *testing.T) {
	// (6000 - 1920) / 6000 × 100 = 68%
	got := costing.MarginPct(dec("6000"), dec("1920"))
	assert.True(t, dec("68").Equal(got), "margen esperado 68, obtuvo %s", got)
}

func TestMarginPct_PrecioCeroDevuelveCero(t *testing.T) {
	got := costing.MarginPct(decimal.Zero, dec("1920"))
	assert.True(t, got.IsZero(), "precio cero no debe dividir por cero")
}

func TestMarginPct_CostoMayorQuePrecioEsNegativo(t *testing.T) {
	got := costing.MarginPct(dec("1000"), dec("1920"))
	assert.True(t, got.IsNegative(), "vender bajo costo debe dar margen negativo, obtuvo %s", got)
}

func TestMarkupPct_VectorCapuchino(t *testing.T) {
	// (6000 - 1920) / 1920 × 100 = 212.5%
	got := costing.MarkupPct(dec("6000"), dec("1920"))
	assert.True(t, dec("212.5").Equal(got), "markup esperado 212.5, obtuvo %s", got)
}

func TestSuggestedPrice_MargenObjetivo(t *testing.T) {
	// Para 70% de margen: 1920 / 0.30 = 6400
	got := costing.SuggestedPrice(dec("1920"), dec("70"))
	assert.True(t, dec("6400").Equal(got), "precio sugerido esperado 6400, obtuvo %s", got)
}

func TestSuggestedPrice_Margen100DevuelveCero(t *testing.T) {
	got := costing.SuggestedPrice(dec("1920"), dec("100"))
	assert.True(t, got.IsZero(), "margen objetivo del 100%% no tiene precio finito")
}

// ── Promedio ponderado ────────────────────────────────────────────────────────

func TestWeightedAverage_MezclaDeLotes(t *testing.T) {
	// 10 kg a $100 en bodega + entran 10 kg a $200 → promedio $150.
	got := costing.WeightedAverage(dec("10"), dec("100"), dec("10"), dec("200"))
	assert.True(t, dec("150").Equal(got), "promedio esperado 150, obtuvo %s", got)
}

func TestWeightedAverage_SinStockPrevioTomaCostoEntrada(t *testing.T) {
	got := costing.WeightedAverage(decimal.Zero, decimal.Zero, dec("5"), dec("320"))
	assert.True(t, dec("320").Equal(got),
		"sin stock previo el promedio es el costo del lote entrante, obtuvo %s", got)
}

func TestWeightedAverage_SumaCeroDevuelveCero(t *testing.T) {
	got := costing.WeightedAverage(decimal.Zero, dec("100"), decimal.Zero, dec("200"))
	assert.True(t, got.IsZero(), "sin cantidades no hay promedio que calcular")
}

// ── helpers ───────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func capuchino() []costing.Component {
	return []costing.Component{
		{IngredientID: "ing-cafe", Name: "Café en grano", Unit: "g", UsagePerCup: dec("18"), UnitCost: dec("50")},
		{IngredientID: "ing-leche", Name: "Leche entera", Unit: "ml", UsagePerCup: dec("150"), UnitCost: dec("4.8")},
		{IngredientID: "ing-vaso", Name: "Vaso 12oz", Unit: "unidad", UsagePerCup: dec("1"), UnitCost: dec("300")},
	}
}
