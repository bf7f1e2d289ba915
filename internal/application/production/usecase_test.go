package production_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/application/production"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	bizID    = "biz-1"
	branchID = "branch-1"
	userID   = "user-1"
	prodID   = "prod-capuchino"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fakeBranchRepo struct {
	branches map[string]*entity.Branch
}

func (f *fakeBranchRepo) Create(*entity.Branch) error               { return nil }
func (f *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) { return f.branches[id], nil }
func (f *fakeBranchRepo) Update(*entity.Branch) error               { return nil }
func (f *fakeBranchRepo) Delete(string) error                       { return nil }
func (f *fakeBranchRepo) ListByBusiness(string, int, int) ([]*entity.Branch, error) {
	return nil, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(*entity.Product) error               { return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return f.products[id], nil }
func (f *fakeProductRepo) GetByBusinessAndSKU(string, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(*entity.Product) error             { return nil }
func (f *fakeProductRepo) UpdateCOGS(string, decimal.Decimal) error { return nil }
func (f *fakeProductRepo) Delete(string) error                      { return nil }
func (f *fakeProductRepo) ListByBusiness(string, string, string, int, int) ([]*entity.Product, error) {
	return nil, nil
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
func (f *fakeIngredientRepo) Update(*entity.Ingredient) error { return nil }
func (f *fakeIngredientRepo) UpdateAvgCost(id string, avg decimal.Decimal) error {
	if ing := f.ingredients[id]; ing != nil {
		ing.AvgCost = avg
	}
	return nil
}
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

type fakeRecipeRepo struct {
	lines map[string][]*entity.RecipeLine // productID → líneas
}

func (f *fakeRecipeRepo) Create(line *entity.RecipeLine) error {
	f.lines[line.ProductID] = append(f.lines[line.ProductID], line)
	return nil
}
func (f *fakeRecipeRepo) ListByProduct(productID string) ([]*entity.RecipeLine, error) {
	return f.lines[productID], nil
}
func (f *fakeRecipeRepo) DeleteByProduct(productID string) error {
	delete(f.lines, productID)
	return nil
}
func (f *fakeRecipeRepo) ListProductIDsByIngredient(string) ([]string, error) { return nil, nil }
func (f *fakeRecipeRepo) CountByIngredient(string) (int, error)               { return 0, nil }

// fakeStockRepo emula stock_levels devolviendo copias, como el escaneo de
// filas real: mutar lo devuelto no cambia nada hasta Upsert.
type fakeStockRepo struct {
	levels map[string]*entity.StockLevel // branchID|ingredientID
}

func stockKey(branchID, ingredientID string) string { return branchID + "|" + ingredientID }

func (f *fakeStockRepo) Get(branchID, ingredientID string) (*entity.StockLevel, error) {
	if lv, ok := f.levels[stockKey(branchID, ingredientID)]; ok {
		cp := *lv
		return &cp, nil
	}
	return &entity.StockLevel{BranchID: branchID, IngredientID: ingredientID}, nil
}
func (f *fakeStockRepo) GetForUpdate(branchID, ingredientID string) (*entity.StockLevel, error) {
	return f.Get(branchID, ingredientID)
}
func (f *fakeStockRepo) Upsert(level *entity.StockLevel) error {
	cp := *level
	f.levels[stockKey(level.BranchID, level.IngredientID)] = &cp
	return nil
}
func (f *fakeStockRepo) ListByBranch(string, int, int) ([]*entity.StockLevel, error) {
	return nil, nil
}
func (f *fakeStockRepo) ListByIngredient(string) ([]*entity.StockLevel, error) { return nil, nil }
func (f *fakeStockRepo) ListBelowReorderPoint(context.Context, string, string) ([]repository.StockAlertItem, error) {
	return nil, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	f.movements = append(f.movements, m)
	return nil
}
func (f *fakeMovementRepo) GetByID(string) (*entity.StockMovement, error) { return nil, nil }
func (f *fakeMovementRepo) ListByBusiness(string, repository.StockMovementFilter, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (f *fakeMovementRepo) ListByTransaction(txID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movements {
		if m.TransactionID == txID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeProductionRepo struct {
	batches map[string]*entity.ProductionBatch
	lines   map[string][]*entity.ProductionBatchLine
}

func (f *fakeProductionRepo) Create(batch *entity.ProductionBatch, lines []*entity.ProductionBatchLine) error {
	cp := *batch
	f.batches[batch.ID] = &cp
	f.lines[batch.ID] = lines
	return nil
}
func (f *fakeProductionRepo) GetByID(id string) (*entity.ProductionBatch, error) {
	if b, ok := f.batches[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeProductionRepo) GetByIDForUpdate(id string) (*entity.ProductionBatch, error) {
	return f.GetByID(id)
}
func (f *fakeProductionRepo) ListLines(batchID string) ([]*entity.ProductionBatchLine, error) {
	return f.lines[batchID], nil
}
func (f *fakeProductionRepo) UpdateStatus(batchID, status string, committedAt *time.Time) error {
	b := f.batches[batchID]
	if b == nil {
		return domain.ErrNotFound
	}
	b.Status = status
	if committedAt != nil {
		b.CommittedAt = committedAt
	}
	return nil
}
func (f *fakeProductionRepo) ListByBusiness(string, repository.ProductionBatchFilter, int, int) ([]*entity.ProductionBatch, error) {
	return nil, nil
}

type fakeJourney struct {
	marked []string
}

func (f *fakeJourney) MarkStepDone(_, stepKey string) { f.marked = append(f.marked, stepKey) }

// fakeTxRunner pasa los fakes directamente al callback, sin transacción real.
type fakeTxRunner struct {
	prod       *fakeProductionRepo
	stock      *fakeStockRepo
	mov        *fakeMovementRepo
	product    *fakeProductRepo
	recipe     *fakeRecipeRepo
	ingredient *fakeIngredientRepo
}

func (f *fakeTxRunner) RunProduction(_ context.Context, fn func(
	repository.ProductionBatchRepository,
	repository.StockLevelRepository,
	repository.StockMovementRepository,
	repository.ProductRepository,
	repository.RecipeLineRepository,
	repository.IngredientRepository,
) error) error {
	return fn(f.prod, f.stock, f.mov, f.product, f.recipe, f.ingredient)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de pruebas: capuchino con café (g), leche (ml) y vaso (unidad)
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	uc      *production.UseCase
	stock   *fakeStockRepo
	mov     *fakeMovementRepo
	prod    *fakeProductionRepo
	recipe  *fakeRecipeRepo
	journey *fakeJourney
}

// newTestEnv arma el caso de uso con la receta del capuchino:
//   - café:  18 g/taza, costo 45.000/1.000 g  → 45/g
//   - leche: 200 ml/taza, costo 3.800/1.000 ml → 3,8/ml
//   - vaso:  1 unidad/taza a 350
//
// COGS por taza = 810 + 760 + 350 = 1.920.
func newTestEnv() *testEnv {
	ingredients := map[string]*entity.Ingredient{
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
	}
	recipe := map[string][]*entity.RecipeLine{
		prodID: {
			{ID: "rl-1", ProductID: prodID, IngredientID: "ing-cafe", UsagePerCup: dec("18")},
			{ID: "rl-2", ProductID: prodID, IngredientID: "ing-leche", UsagePerCup: dec("200")},
			{ID: "rl-3", ProductID: prodID, IngredientID: "ing-vaso", UsagePerCup: dec("1")},
		},
	}
	stock := &fakeStockRepo{levels: map[string]*entity.StockLevel{
		stockKey(branchID, "ing-cafe"):  {BranchID: branchID, IngredientID: "ing-cafe", Quantity: dec("500")},
		stockKey(branchID, "ing-leche"): {BranchID: branchID, IngredientID: "ing-leche", Quantity: dec("2500")},
		stockKey(branchID, "ing-vaso"):  {BranchID: branchID, IngredientID: "ing-vaso", Quantity: dec("50")},
	}}

	branchRepo := &fakeBranchRepo{branches: map[string]*entity.Branch{
		branchID: {ID: branchID, BusinessID: bizID, Name: "Sucursal Centro"},
	}}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		prodID: {ID: prodID, BusinessID: bizID, SKU: "CAP-12", Name: "Capuchino 12oz"},
	}}
	ingredientRepo := &fakeIngredientRepo{ingredients: ingredients}
	recipeRepo := &fakeRecipeRepo{lines: recipe}
	movRepo := &fakeMovementRepo{}
	prodRepo := &fakeProductionRepo{
		batches: map[string]*entity.ProductionBatch{},
		lines:   map[string][]*entity.ProductionBatchLine{},
	}
	journey := &fakeJourney{}

	runner := &fakeTxRunner{
		prod:       prodRepo,
		stock:      stock,
		mov:        movRepo,
		product:    productRepo,
		recipe:     recipeRepo,
		ingredient: ingredientRepo,
	}
	uc := production.NewUseCase(runner, branchRepo, productRepo, ingredientRepo, prodRepo, journey)
	return &testEnv{uc: uc, stock: stock, mov: movRepo, prod: prodRepo, recipe: recipeRepo, journey: journey}
}

func planRequest(cups int64) dto.PlanProductionRequest {
	return dto.PlanProductionRequest{BranchID: branchID, ProductID: prodID, Quantity: cups}
}

func (env *testEnv) level(t *testing.T, ingredientID string) *entity.StockLevel {
	t.Helper()
	lv, err := env.stock.Get(branchID, ingredientID)
	require.NoError(t, err)
	return lv
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Plan
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: planificar 10 tazas reserva la expansión de la receta y congela los
// costos unitarios de catálogo.
func TestPlan_ReservaStockYCongelaCostos(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Plan(context.Background(), bizID, userID, planRequest(10))
	require.NoError(t, err)

	assert.Equal(t, entity.ProductionStatusPlanned, resp.Status)
	assert.Equal(t, "Capuchino 12oz", resp.ProductName)
	require.Len(t, resp.Lines, 3)

	// 10 tazas: 180 g de café, 2.000 ml de leche, 10 vasos.
	cafe := env.level(t, "ing-cafe")
	assert.True(t, cafe.Reserved.Equal(dec("180")), "reserva de café: %s", cafe.Reserved)
	assert.True(t, cafe.Quantity.Equal(dec("500")), "planificar no descuenta cantidad")

	leche := env.level(t, "ing-leche")
	assert.True(t, leche.Reserved.Equal(dec("2000")))

	vaso := env.level(t, "ing-vaso")
	assert.True(t, vaso.Reserved.Equal(dec("10")))

	// TotalCost = 180×45 + 2000×3,8 + 10×350 = 19.200; por taza 1.920.
	assert.True(t, resp.TotalCost.Equal(dec("19200")), "TotalCost: %s", resp.TotalCost)
	assert.True(t, resp.CostPerCup.Equal(dec("1920")), "CostPerCup: %s", resp.CostPerCup)

	// Planificar no asienta movimientos: el libro solo registra consumos.
	assert.Empty(t, env.mov.movements)
	// El paso primera_produccion se marca al confirmar, no al planificar.
	assert.Empty(t, env.journey.marked)
}

// Caso 2: si algún ingrediente no alcanza, devuelve el detalle por ingrediente
// y no reserva nada.
func TestPlan_StockInsuficiente_DevuelveFaltantes(t *testing.T) {
	env := newTestEnv()
	// Dejar la leche corta: disponible 1.500 ml para una necesidad de 2.000.
	env.stock.levels[stockKey(branchID, "ing-leche")] = &entity.StockLevel{
		BranchID: branchID, IngredientID: "ing-leche",
		Quantity: dec("2000"), Reserved: dec("500"),
	}

	_, err := env.uc.Plan(context.Background(), bizID, userID, planRequest(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var shortage *production.ShortageError
	require.True(t, errors.As(err, &shortage), "el error debe traer el detalle de faltantes")
	require.Len(t, shortage.Shortages, 1)
	detail := shortage.Shortages[0]
	assert.Equal(t, "ing-leche", detail.IngredientID)
	assert.True(t, detail.Needed.Equal(dec("2000")))
	assert.True(t, detail.Available.Equal(dec("1500")))
	assert.True(t, detail.Missing.Equal(dec("500")))

	// Nada quedó reservado: ni el café que sí alcanzaba.
	assert.True(t, env.level(t, "ing-cafe").Reserved.IsZero())
	assert.True(t, env.level(t, "ing-vaso").Reserved.IsZero())
	assert.Empty(t, env.prod.batches, "no debe quedar lote creado")
}

// Caso 3: un producto sin receta no se puede planificar.
func TestPlan_SinReceta_RetornaConflicto(t *testing.T) {
	env := newTestEnv()
	req := planRequest(5)
	req.ProductID = "prod-sin-receta"

	_, err := env.uc.Plan(context.Background(), bizID, userID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	// Producto real pero con receta vacía.
	env2 := newTestEnv()
	delete(env2.recipe.lines, prodID)
	_, err = env2.uc.Plan(context.Background(), bizID, userID, planRequest(5))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Commit / Cancel
// ──────────────────────────────────────────────────────────────────────────────

// Caso 4: confirmar descuenta cantidad y reserva, y asienta un OUT por línea
// con el ID del lote como transacción.
func TestCommit_DescuentaStockYAsientaSalidas(t *testing.T) {
	env := newTestEnv()
	planned, err := env.uc.Plan(context.Background(), bizID, userID, planRequest(10))
	require.NoError(t, err)

	resp, err := env.uc.Commit(context.Background(), bizID, userID, planned.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusCommitted, resp.Status)
	require.NotNil(t, resp.CommittedAt)

	cafe := env.level(t, "ing-cafe")
	assert.True(t, cafe.Quantity.Equal(dec("320")), "500 - 180 = 320, quedó %s", cafe.Quantity)
	assert.True(t, cafe.Reserved.IsZero())

	leche := env.level(t, "ing-leche")
	assert.True(t, leche.Quantity.Equal(dec("500")), "2500 - 2000 = 500")
	assert.True(t, leche.Reserved.IsZero())

	// Tres asientos OUT negativos que suman el costo del lote.
	movs, err := env.mov.ListByTransaction(planned.ID)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	total := decimal.Zero
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeOUT, m.Type)
		assert.True(t, m.Quantity.IsNegative(), "los OUT se asientan en negativo")
		total = total.Add(m.TotalCost)
	}
	assert.True(t, total.Equal(dec("-19200")), "Σ TotalCost de los OUT: %s", total)

	// La primera producción confirmada marca el paso del recorrido.
	assert.Contains(t, env.journey.marked, entity.JourneyStepPrimeraProduccion)
}

// Caso 5: confirmar dos veces no es válido.
func TestCommit_LoteYaConfirmado_RetornaNoEditable(t *testing.T) {
	env := newTestEnv()
	planned, err := env.uc.Plan(context.Background(), bizID, userID, planRequest(4))
	require.NoError(t, err)

	_, err = env.uc.Commit(context.Background(), bizID, userID, planned.ID)
	require.NoError(t, err)

	_, err = env.uc.Commit(context.Background(), bizID, userID, planned.ID)
	assert.ErrorIs(t, err, domain.ErrBatchNotEditable)
}

// Caso 6: planificar y cancelar deja las cantidades intactas y libera toda la
// reserva, sin asientos en el libro.
func TestPlanYCancel_NoAlteraCantidades(t *testing.T) {
	env := newTestEnv()
	planned, err := env.uc.Plan(context.Background(), bizID, userID, planRequest(10))
	require.NoError(t, err)

	resp, err := env.uc.Cancel(context.Background(), bizID, planned.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusCancelled, resp.Status)

	for _, ing := range []string{"ing-cafe", "ing-leche", "ing-vaso"} {
		lv := env.level(t, ing)
		assert.True(t, lv.Reserved.IsZero(), "reserva liberada para %s", ing)
	}
	assert.True(t, env.level(t, "ing-cafe").Quantity.Equal(dec("500")))
	assert.True(t, env.level(t, "ing-leche").Quantity.Equal(dec("2500")))
	assert.Empty(t, env.mov.movements, "cancelar no escribe movimientos")
}

// Caso 7: cancelar un lote confirmado no es válido.
func TestCancel_LoteConfirmado_RetornaNoEditable(t *testing.T) {
	env := newTestEnv()
	planned, err := env.uc.Plan(context.Background(), bizID, userID, planRequest(2))
	require.NoError(t, err)
	_, err = env.uc.Commit(context.Background(), bizID, userID, planned.ID)
	require.NoError(t, err)

	_, err = env.uc.Cancel(context.Background(), bizID, planned.ID)
	assert.ErrorIs(t, err, domain.ErrBatchNotEditable)
}

// Caso 8: un lote de otro negocio es invisible.
func TestCommit_LoteDeOtroNegocio_RetornaNotFound(t *testing.T) {
	env := newTestEnv()
	planned, err := env.uc.Plan(context.Background(), bizID, userID, planRequest(2))
	require.NoError(t, err)

	_, err = env.uc.Commit(context.Background(), "biz-ajeno", userID, planned.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
