package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Baristo-api/internal/application/costing"
	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de catálogo
// ──────────────────────────────────────────────────────────────────────────────

const bizID = "biz-1"

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type fakeIngredientRepo struct {
	ingredients map[string]*entity.Ingredient
}

func (f *fakeIngredientRepo) Create(*entity.Ingredient) error { return nil }
func (f *fakeIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	return f.ingredients[id], nil
}
func (f *fakeIngredientRepo) GetByBusinessAndName(string, string) (*entity.Ingredient, error) {
	return nil, nil
}
func (f *fakeIngredientRepo) Update(*entity.Ingredient) error             { return nil }
func (f *fakeIngredientRepo) UpdateAvgCost(string, decimal.Decimal) error { return nil }
func (f *fakeIngredientRepo) ListByBusiness(string, string, int, int) ([]*entity.Ingredient, error) {
	return nil, nil
}
func (f *fakeIngredientRepo) ListByIDs(ids []string) ([]*entity.Ingredient, error) {
	out := make([]*entity.Ingredient, 0, len(ids))
	for _, id := range ids {
		if ing := f.ingredients[id]; ing != nil {
			out = append(out, ing)
		}
	}
	return out, nil
}
func (f *fakeIngredientRepo) Delete(string) error { return nil }

// newPlayground arma el simulador con el catálogo del capuchino: café a
// 45.000/1.000 g, leche a 3.800/1.000 ml y vaso a 350/unidad.
func newPlayground() *costing.PlaygroundUseCase {
	repo := &fakeIngredientRepo{ingredients: map[string]*entity.Ingredient{
		"ing-cafe": {
			ID: "ing-cafe", BusinessID: bizID, Name: "Café en grano", Unit: entity.UnitGram,
			BaseUnitCost: dec("45000"), BaseUnitQty: dec("1000"),
		},
		"ing-leche": {
			ID: "ing-leche", BusinessID: bizID, Name: "Leche entera", Unit: entity.UnitMl,
			BaseUnitCost: dec("3800"), BaseUnitQty: dec("1000"),
		},
		"ing-vaso": {
			ID: "ing-vaso", BusinessID: bizID, Name: "Vaso 12oz", Unit: entity.UnitUnit,
			BaseUnitCost: dec("350"), BaseUnitQty: dec("1"),
		},
		"ing-ajeno": {
			ID: "ing-ajeno", BusinessID: "biz-ajeno", Name: "Cacao", Unit: entity.UnitGram,
			BaseUnitCost: dec("20000"), BaseUnitQty: dec("500"),
		},
	}}
	return costing.NewPlaygroundUseCase(repo)
}

func capuchinoLines() []dto.PlaygroundLineRequest {
	return []dto.PlaygroundLineRequest{
		{IngredientID: "ing-cafe", UsagePerCup: dec("18")},
		{IngredientID: "ing-leche", UsagePerCup: dec("200")},
		{IngredientID: "ing-vaso", UsagePerCup: dec("1")},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el capuchino de referencia cuesta 1.920 la taza; con precio 6.000 el
// margen es 68% (recargo 212,5%) y para un margen objetivo del 70% el precio
// sugerido es 6.400.
func TestCompute_Capuchino_DesglosaCOGS(t *testing.T) {
	uc := newPlayground()

	resp, err := uc.Compute(bizID, dto.PlaygroundRequest{
		Lines:           capuchinoLines(),
		SalePrice:       decPtr("6000"),
		TargetMarginPct: decPtr("70"),
	})
	require.NoError(t, err)

	// 18×45 + 200×3,8 + 1×350 = 810 + 760 + 350 = 1.920.
	assert.True(t, resp.COGSPerCup.Equal(dec("1920")), "COGS: %s", resp.COGSPerCup)
	require.Len(t, resp.Lines, 3)
	assert.True(t, resp.Lines[0].LineCost.Equal(dec("810")))
	assert.True(t, resp.Lines[1].LineCost.Equal(dec("760")))
	assert.True(t, resp.Lines[2].LineCost.Equal(dec("350")))
	// Participación de cada renglón en el COGS.
	assert.True(t, resp.Lines[0].SharePct.Equal(dec("42.19")), "share café: %s", resp.Lines[0].SharePct)
	assert.True(t, resp.Lines[1].SharePct.Equal(dec("39.58")))
	assert.True(t, resp.Lines[2].SharePct.Equal(dec("18.23")))

	require.NotNil(t, resp.MarginPct)
	assert.True(t, resp.MarginPct.Equal(dec("68")), "margen: %s", resp.MarginPct)
	require.NotNil(t, resp.MarkupPct)
	assert.True(t, resp.MarkupPct.Equal(dec("212.5")), "recargo: %s", resp.MarkupPct)
	require.NotNil(t, resp.MarginAmount)
	assert.True(t, resp.MarginAmount.Equal(dec("4080")))
	require.NotNil(t, resp.SuggestedPrice)
	assert.True(t, resp.SuggestedPrice.Equal(dec("6400")), "precio sugerido: %s", resp.SuggestedPrice)
}

// Caso 2: las líneas ad-hoc usan su propia presentación sin tocar el catálogo.
func TestCompute_LineaAdHoc_UsaPresentacionPropia(t *testing.T) {
	uc := newPlayground()

	resp, err := uc.Compute(bizID, dto.PlaygroundRequest{
		Lines: []dto.PlaygroundLineRequest{
			{IngredientID: "ing-cafe", UsagePerCup: dec("18")},
			{
				Name: "Sirope de vainilla", Unit: entity.UnitMl,
				BaseUnitCost: dec("12000"), BaseUnitQty: dec("750"),
				UsagePerCup: dec("15"),
			},
		},
	})
	require.NoError(t, err)

	// Sirope: 12.000/750 = 16/ml × 15 ml = 240; total 810 + 240 = 1.050.
	assert.True(t, resp.COGSPerCup.Equal(dec("1050")), "COGS: %s", resp.COGSPerCup)
	require.Len(t, resp.Lines, 2)
	adhoc := resp.Lines[1]
	assert.Empty(t, adhoc.IngredientID)
	assert.Equal(t, "Sirope de vainilla", adhoc.Name)
	assert.True(t, adhoc.UnitCost.Equal(dec("16")))
	assert.True(t, adhoc.LineCost.Equal(dec("240")))

	// Sin precio de venta no hay campos de margen.
	assert.Nil(t, resp.MarginPct)
	assert.Nil(t, resp.SuggestedPrice)
}

// Caso 3: márgenes objetivo fuera de [0, 100) se rechazan.
func TestCompute_MargenObjetivoInvalido(t *testing.T) {
	uc := newPlayground()

	_, err := uc.Compute(bizID, dto.PlaygroundRequest{
		Lines:           capuchinoLines(),
		TargetMarginPct: decPtr("100"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "margen 100% no tiene precio finito")

	_, err = uc.Compute(bizID, dto.PlaygroundRequest{
		Lines:           capuchinoLines(),
		TargetMarginPct: decPtr("-5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 4: un ingrediente de catálogo de otro negocio es invisible.
func TestCompute_IngredienteAjeno_RetornaNotFound(t *testing.T) {
	uc := newPlayground()

	_, err := uc.Compute(bizID, dto.PlaygroundRequest{
		Lines: []dto.PlaygroundLineRequest{{IngredientID: "ing-ajeno", UsagePerCup: dec("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Caso 5: entradas malformadas.
func TestCompute_EntradasInvalidas(t *testing.T) {
	uc := newPlayground()

	_, err := uc.Compute(bizID, dto.PlaygroundRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.Compute(bizID, dto.PlaygroundRequest{
		Lines: []dto.PlaygroundLineRequest{{IngredientID: "ing-cafe", UsagePerCup: decimal.Zero}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "uso por taza cero")

	_, err = uc.Compute(bizID, dto.PlaygroundRequest{
		Lines: []dto.PlaygroundLineRequest{{
			// Ad-hoc sin nombre.
			BaseUnitCost: dec("1000"), BaseUnitQty: dec("100"), UsagePerCup: dec("5"),
		}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
