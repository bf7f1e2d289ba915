package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/application/usecase"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
)

type ingredientEnv struct {
	uc       *usecase.IngredientUseCase
	recipes  *fakeRecipeRepo
	recoster *spyRecoster
	journey  *spyJourney
}

func newIngredientEnv() *ingredientEnv {
	recipes := &fakeRecipeRepo{refs: map[string]int{}}
	recoster := &spyRecoster{}
	journey := &spyJourney{}
	uc := usecase.NewIngredientUseCase(
		&fakeIngredientRepo{ingredients: map[string]*entity.Ingredient{}},
		recipes,
		recoster,
		journey,
	)
	return &ingredientEnv{uc: uc, recipes: recipes, recoster: recoster, journey: journey}
}

func cafeRequest() dto.CreateIngredientRequest {
	return dto.CreateIngredientRequest{
		Name:         "Café en grano",
		Category:     entity.IngredientCategoryCafe,
		Unit:         entity.UnitGram,
		BaseUnitCost: dec("45000"),
		BaseUnitQty:  dec("1000"),
		ReorderPoint: dec("500"),
	}
}

// Caso 1: crear deriva el costo unitario de la presentación y arranca el
// promedio ahí; el nombre es único por negocio.
func TestIngredientes_CrearCalculaCostoUnitario(t *testing.T) {
	env := newIngredientEnv()

	resp, err := env.uc.Create(bizID, cafeRequest())
	require.NoError(t, err)
	assert.True(t, resp.UnitCost.Equal(dec("45")), "45.000/1.000 g: %s", resp.UnitCost)
	assert.True(t, resp.AvgCost.Equal(dec("45")), "el promedio arranca en el costo de presentación")
	assert.Equal(t, "active", resp.Status)
	assert.Contains(t, env.journey.marked, entity.JourneyStepAgregarIngredientes)

	_, err = env.uc.Create(bizID, cafeRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate, "nombre repetido en el negocio")
}

// Caso 2: sin categoría queda en "otro".
func TestIngredientes_CategoriaPorDefecto(t *testing.T) {
	env := newIngredientEnv()

	req := cafeRequest()
	req.Category = ""
	resp, err := env.uc.Create(bizID, req)
	require.NoError(t, err)
	assert.Equal(t, entity.IngredientCategoryOtro, resp.Category)
}

// Caso 3: cambiar el costo o la cantidad de la presentación encola el
// recosteo; cambiar solo el nombre no.
func TestIngredientes_CambioDeCostoEncolaRecosteo(t *testing.T) {
	env := newIngredientEnv()
	created, err := env.uc.Create(bizID, cafeRequest())
	require.NoError(t, err)

	_, err = env.uc.Update(bizID, created.ID, dto.UpdateIngredientRequest{
		Name: strPtr("Café en grano premium"),
	})
	require.NoError(t, err)
	assert.Empty(t, env.recoster.enqueued, "renombrar no cambia costos")

	updated, err := env.uc.Update(bizID, created.ID, dto.UpdateIngredientRequest{
		BaseUnitCost: decPtr("50000"),
	})
	require.NoError(t, err)
	assert.True(t, updated.UnitCost.Equal(dec("50")))
	assert.Equal(t, []string{created.ID}, env.recoster.enqueued)

	// Cambiar la cantidad base también altera el costo unitario.
	_, err = env.uc.Update(bizID, created.ID, dto.UpdateIngredientRequest{
		BaseUnitQty: decPtr("500"),
	})
	require.NoError(t, err)
	assert.Len(t, env.recoster.enqueued, 2)
}

// Caso 4: el ingrediente referenciado por recetas no se puede eliminar.
func TestIngredientes_EliminarEnUso(t *testing.T) {
	env := newIngredientEnv()
	created, err := env.uc.Create(bizID, cafeRequest())
	require.NoError(t, err)

	env.recipes.refs[created.ID] = 3
	err = env.uc.Delete(bizID, created.ID)
	assert.ErrorIs(t, err, domain.ErrIngredientInUse)

	env.recipes.refs[created.ID] = 0
	require.NoError(t, env.uc.Delete(bizID, created.ID))
	_, err = env.uc.GetByID(bizID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Caso 5: presentaciones inválidas.
func TestIngredientes_PresentacionInvalida(t *testing.T) {
	env := newIngredientEnv()

	req := cafeRequest()
	req.BaseUnitQty = dec("0")
	_, err := env.uc.Create(bizID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad base cero")

	req = cafeRequest()
	req.BaseUnitCost = dec("-100")
	_, err = env.uc.Create(bizID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "costo negativo")
}

// Caso 6: el ingrediente de otro negocio es invisible.
func TestIngredientes_NegocioAjeno_RetornaNotFound(t *testing.T) {
	env := newIngredientEnv()
	created, err := env.uc.Create(bizID, cafeRequest())
	require.NoError(t, err)

	_, err = env.uc.GetByID("biz-ajeno", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = env.uc.Delete("biz-ajeno", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
