package warehouse_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/application/warehouse"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	bizID     = "biz-1"
	branchID  = "branch-centro"
	branchID2 = "branch-norte"
	userID    = "user-1"
	lecheID   = "ing-leche"
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

type fakeWarehouseBatchRepo struct {
	batches []*entity.WarehouseBatch
}

func (f *fakeWarehouseBatchRepo) Create(b *entity.WarehouseBatch) error {
	f.batches = append(f.batches, b)
	return nil
}
func (f *fakeWarehouseBatchRepo) GetByID(string) (*entity.WarehouseBatch, error) { return nil, nil }
func (f *fakeWarehouseBatchRepo) ListByBusiness(string, repository.WarehouseBatchFilter, int, int) ([]*entity.WarehouseBatch, error) {
	return nil, nil
}

// fakeStockRepo emula stock_levels devolviendo copias, como el escaneo de
// filas real: mutar lo devuelto no cambia nada hasta Upsert.
type fakeStockRepo struct {
	levels map[string]*entity.StockLevel // branchID|ingredientID
	alerts []repository.StockAlertItem
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
	return f.alerts, nil
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

type fakeJourney struct {
	marked []string
}

func (f *fakeJourney) MarkStepDone(_, stepKey string) { f.marked = append(f.marked, stepKey) }

type fakeTxRunner struct {
	batch      *fakeWarehouseBatchRepo
	stock      *fakeStockRepo
	mov        *fakeMovementRepo
	ingredient *fakeIngredientRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.WarehouseBatchRepository,
	repository.StockLevelRepository,
	repository.StockMovementRepository,
	repository.IngredientRepository,
) error) error {
	return fn(f.batch, f.stock, f.mov, f.ingredient)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de pruebas
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	uc          *warehouse.UseCase
	stock       *fakeStockRepo
	mov         *fakeMovementRepo
	batches     *fakeWarehouseBatchRepo
	ingredients *fakeIngredientRepo
	journey     *fakeJourney
}

// newTestEnv arma el caso de uso con dos sucursales y leche a costo
// promedio 4/ml, con 400 ml en la sucursal centro.
func newTestEnv() *testEnv {
	branchRepo := &fakeBranchRepo{branches: map[string]*entity.Branch{
		branchID:  {ID: branchID, BusinessID: bizID, Name: "Sucursal Centro"},
		branchID2: {ID: branchID2, BusinessID: bizID, Name: "Sucursal Norte"},
	}}
	ingredientRepo := &fakeIngredientRepo{ingredients: map[string]*entity.Ingredient{
		lecheID: {
			ID: lecheID, BusinessID: bizID, Name: "Leche entera", Unit: entity.UnitMl,
			BaseUnitCost: dec("4000"), BaseUnitQty: dec("1000"),
			AvgCost: dec("4"), ReorderPoint: dec("500"),
		},
	}}
	stock := &fakeStockRepo{levels: map[string]*entity.StockLevel{
		stockKey(branchID, lecheID): {BranchID: branchID, IngredientID: lecheID, Quantity: dec("400")},
	}}
	batchRepo := &fakeWarehouseBatchRepo{}
	movRepo := &fakeMovementRepo{}
	journey := &fakeJourney{}

	runner := &fakeTxRunner{batch: batchRepo, stock: stock, mov: movRepo, ingredient: ingredientRepo}
	uc := warehouse.NewUseCase(runner, branchRepo, ingredientRepo, batchRepo, stock, movRepo, journey)
	return &testEnv{
		uc: uc, stock: stock, mov: movRepo,
		batches: batchRepo, ingredients: ingredientRepo, journey: journey,
	}
}

func (env *testEnv) level(t *testing.T, branch, ingredient string) *entity.StockLevel {
	t.Helper()
	lv, err := env.stock.Get(branch, ingredient)
	require.NoError(t, err)
	return lv
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ReceiveBatch
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: recibir un lote suma al stock, recalcula el promedio ponderado y
// asienta el IN con el ID del lote como transacción.
func TestReceiveBatch_PromediaCostoYAsientaEntrada(t *testing.T) {
	env := newTestEnv()

	// 600 ml por 2.700 → 4,5/ml; promedio: (400×4 + 600×4,5) / 1.000 = 4,3.
	resp, err := env.uc.ReceiveBatch(context.Background(), bizID, userID, dto.ReceiveBatchRequest{
		BranchID:     branchID,
		IngredientID: lecheID,
		Quantity:     dec("600"),
		TotalCost:    dec("2700"),
	})
	require.NoError(t, err)
	assert.True(t, resp.UnitCost.Equal(dec("4.5")), "costo unitario del lote: %s", resp.UnitCost)

	lv := env.level(t, branchID, lecheID)
	assert.True(t, lv.Quantity.Equal(dec("1000")), "400 + 600 = 1000, quedó %s", lv.Quantity)

	leche := env.ingredients.ingredients[lecheID]
	assert.True(t, leche.AvgCost.Equal(dec("4.3")), "promedio ponderado: %s", leche.AvgCost)

	movs, err := env.mov.ListByTransaction(resp.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(dec("600")))
	assert.True(t, movs[0].TotalCost.Equal(dec("2700")))

	require.Len(t, env.batches.batches, 1)
	assert.Contains(t, env.journey.marked, entity.JourneyStepRecibirLote)
}

// Caso 2: cantidad no positiva o costo negativo se rechazan.
func TestReceiveBatch_EntradaInvalida(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.ReceiveBatch(context.Background(), bizID, userID, dto.ReceiveBatchRequest{
		BranchID: branchID, IngredientID: lecheID,
		Quantity: decimal.Zero, TotalCost: dec("1000"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = env.uc.ReceiveBatch(context.Background(), bizID, userID, dto.ReceiveBatchRequest{
		BranchID: branchID, IngredientID: lecheID,
		Quantity: dec("10"), TotalCost: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "costo negativo")
}

// Caso 3: la sucursal de otro negocio es invisible.
func TestReceiveBatch_SucursalAjena_RetornaNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.ReceiveBatch(context.Background(), "biz-ajeno", userID, dto.ReceiveBatchRequest{
		BranchID: branchID, IngredientID: lecheID,
		Quantity: dec("100"), TotalCost: dec("450"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, env.batches.batches)
	assert.Empty(t, env.mov.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RegisterMovement: ajustes
// ──────────────────────────────────────────────────────────────────────────────

// Caso 4: un ajuste negativo descuenta y asienta con signo.
func TestAjuste_Negativo_DescuentaYAsienta(t *testing.T) {
	env := newTestEnv()

	items, err := env.uc.RegisterMovement(context.Background(), bizID, userID, dto.RegisterMovementRequest{
		IngredientID: lecheID,
		BranchID:     branchID,
		Type:         entity.MovementTypeADJUSTMENT,
		Quantity:     dec("-40"),
		Reason:       "merma por vencimiento",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, items[0].Type)
	assert.True(t, items[0].Quantity.Equal(dec("-40")))
	// Costo de referencia: promedio vigente 4/ml.
	assert.True(t, items[0].TotalCost.Equal(dec("-160")), "TotalCost: %s", items[0].TotalCost)

	lv := env.level(t, branchID, lecheID)
	assert.True(t, lv.Quantity.Equal(dec("360")), "400 - 40 = 360")
}

// Caso 5: el ajuste no puede dejar la cantidad por debajo de lo reservado
// para producción.
func TestAjuste_DebajoDeReserva_RetornaReservado(t *testing.T) {
	env := newTestEnv()
	env.stock.levels[stockKey(branchID, lecheID)] = &entity.StockLevel{
		BranchID: branchID, IngredientID: lecheID,
		Quantity: dec("400"), Reserved: dec("380"),
	}

	_, err := env.uc.RegisterMovement(context.Background(), bizID, userID, dto.RegisterMovementRequest{
		IngredientID: lecheID,
		BranchID:     branchID,
		Type:         entity.MovementTypeADJUSTMENT,
		Quantity:     dec("-30"), // quedaría en 370 < 380 reservados
	})
	assert.ErrorIs(t, err, domain.ErrReservedStock)

	lv := env.level(t, branchID, lecheID)
	assert.True(t, lv.Quantity.Equal(dec("400")), "el stock no debe cambiar")
	assert.Empty(t, env.mov.movements)
}

// Caso 6: el ajuste no puede dejar la cantidad negativa.
func TestAjuste_MasQueStock_RetornaInsuficiente(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.RegisterMovement(context.Background(), bizID, userID, dto.RegisterMovementRequest{
		IngredientID: lecheID,
		BranchID:     branchID,
		Type:         entity.MovementTypeADJUSTMENT,
		Quantity:     dec("-500"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// Caso 7: un ajuste sin sucursal o con cantidad cero es inválido, igual que
// un tipo desconocido.
func TestAjuste_EntradaInvalida(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.RegisterMovement(context.Background(), bizID, userID, dto.RegisterMovementRequest{
		IngredientID: lecheID, Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin sucursal")

	_, err = env.uc.RegisterMovement(context.Background(), bizID, userID, dto.RegisterMovementRequest{
		IngredientID: lecheID, BranchID: branchID, Type: entity.MovementTypeADJUSTMENT,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = env.uc.RegisterMovement(context.Background(), bizID, userID, dto.RegisterMovementRequest{
		IngredientID: lecheID, BranchID: branchID, Type: "IN", Quantity: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "las entradas llegan por recepción de lotes")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RegisterMovement: traslados
// ──────────────────────────────────────────────────────────────────────────────

// Caso 8: el traslado resta en origen, suma en destino y asienta doble apunte
// bajo la misma transacción.
func TestTraslado_MueveStockYAsientaDobleApunte(t *testing.T) {
	env := newTestEnv()
	env.stock.levels[stockKey(branchID2, lecheID)] = &entity.StockLevel{
		BranchID: branchID2, IngredientID: lecheID, Quantity: dec("20"),
	}

	items, err := env.uc.RegisterMovement(context.Background(), bizID, userID, dto.RegisterMovementRequest{
		IngredientID: lecheID,
		FromBranchID: branchID,
		ToBranchID:   branchID2,
		Type:         entity.MovementTypeTRANSFER,
		Quantity:     dec("150"),
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	out, in := items[0], items[1]
	assert.Equal(t, branchID, out.BranchID)
	assert.True(t, out.Quantity.Equal(dec("-150")), "el apunte de origen va en negativo")
	assert.Equal(t, branchID2, in.BranchID)
	assert.True(t, in.Quantity.Equal(dec("150")))
	assert.Equal(t, out.TransactionID, in.TransactionID, "ambos apuntes comparten transacción")

	assert.True(t, env.level(t, branchID, lecheID).Quantity.Equal(dec("250")), "400 - 150")
	assert.True(t, env.level(t, branchID2, lecheID).Quantity.Equal(dec("170")), "20 + 150")
}

// Caso 9: el stock reservado en el origen no se puede trasladar.
func TestTraslado_ReservaEnOrigen_RetornaReservado(t *testing.T) {
	env := newTestEnv()
	env.stock.levels[stockKey(branchID, lecheID)] = &entity.StockLevel{
		BranchID: branchID, IngredientID: lecheID,
		Quantity: dec("400"), Reserved: dec("300"), // disponible 100
	}

	_, err := env.uc.RegisterMovement(context.Background(), bizID, userID, dto.RegisterMovementRequest{
		IngredientID: lecheID,
		FromBranchID: branchID,
		ToBranchID:   branchID2,
		Type:         entity.MovementTypeTRANSFER,
		Quantity:     dec("150"),
	})
	assert.ErrorIs(t, err, domain.ErrReservedStock)
	assert.True(t, env.level(t, branchID, lecheID).Quantity.Equal(dec("400")))
	assert.Empty(t, env.mov.movements)
}

// Caso 10: trasladar a la misma sucursal es inválido.
func TestTraslado_MismaSucursal_RetornaInvalido(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.RegisterMovement(context.Background(), bizID, userID, dto.RegisterMovementRequest{
		IngredientID: lecheID,
		FromBranchID: branchID,
		ToBranchID:   branchID,
		Type:         entity.MovementTypeTRANSFER,
		Quantity:     dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Alerts
// ──────────────────────────────────────────────────────────────────────────────

// Caso 11: la alerta sugiere pedir hasta el stock ideal (reorden × 1,5) y
// estima el costo al promedio vigente.
func TestAlertas_SugierePedidoYCosto(t *testing.T) {
	env := newTestEnv()
	env.stock.alerts = []repository.StockAlertItem{{
		IngredientID:   lecheID,
		IngredientName: "Leche entera",
		Unit:           entity.UnitMl,
		BranchID:       branchID,
		BranchName:     "Sucursal Centro",
		Quantity:       dec("300"),
		Reserved:       dec("100"),
		ReorderPoint:   dec("500"),
		AvgCost:        dec("4.3"),
	}}

	resp, err := env.uc.Alerts(context.Background(), bizID, branchID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	item := resp.Items[0]
	assert.True(t, item.Available.Equal(dec("200")), "300 - 100 reservados")
	assert.True(t, item.Deficit.Equal(dec("300")), "500 - 200")
	// Ideal 750; sugerido 750 - 200 = 550; costo 550 × 4,3 = 2.365.
	assert.True(t, item.SuggestedOrderQty.Equal(dec("550")), "sugerido: %s", item.SuggestedOrderQty)
	assert.True(t, item.EstimatedCost.Equal(dec("2365")), "costo estimado: %s", item.EstimatedCost)
}

// Caso 12: alertas de una sucursal ajena no se consultan.
func TestAlertas_SucursalAjena_RetornaNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Alerts(context.Background(), "biz-ajeno", branchID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
