package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// IngredientUseCase casos de uso CRUD para el catálogo de ingredientes.
// Cuando cambia el costo de presentación se encola el recosteo de todos los
// productos cuya receta usa el ingrediente.
type IngredientUseCase struct {
	repo       repository.IngredientRepository
	recipeRepo repository.RecipeLineRepository
	recoster   Recoster
	journey    JourneyMarker
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(
	repo repository.IngredientRepository,
	recipeRepo repository.RecipeLineRepository,
	recoster Recoster,
	journey JourneyMarker,
) *IngredientUseCase {
	return &IngredientUseCase{repo: repo, recipeRepo: recipeRepo, recoster: recoster, journey: journey}
}

// Create crea un ingrediente. El costo promedio arranca en el costo unitario
// de la presentación. ErrDuplicate si el nombre ya existe en el negocio.
func (uc *IngredientUseCase) Create(businessID string, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	if err := validatePresentation(in.BaseUnitCost, in.BaseUnitQty, in.ReorderPoint); err != nil {
		return nil, err
	}
	existing, _ := uc.repo.GetByBusinessAndName(businessID, in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category := in.Category
	if category == "" {
		category = entity.IngredientCategoryOtro
	}
	now := time.Now()
	ingredient := &entity.Ingredient{
		ID:           uuid.New().String(),
		BusinessID:   businessID,
		Name:         in.Name,
		Category:     category,
		Unit:         in.Unit,
		BaseUnitCost: in.BaseUnitCost,
		BaseUnitQty:  in.BaseUnitQty,
		ReorderPoint: in.ReorderPoint,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	ingredient.AvgCost = ingredient.UnitCost()
	if err := uc.repo.Create(ingredient); err != nil {
		return nil, err
	}
	uc.journey.MarkStepDone(businessID, entity.JourneyStepAgregarIngredientes)
	return toIngredientResponse(ingredient), nil
}

// GetByID obtiene un ingrediente del negocio.
func (uc *IngredientUseCase) GetByID(businessID, id string) (*dto.IngredientResponse, error) {
	ingredient, err := uc.findOwned(businessID, id)
	if err != nil {
		return nil, err
	}
	return toIngredientResponse(ingredient), nil
}

// Update actualiza un ingrediente. Si cambió el costo o la cantidad de la
// presentación, encola el recosteo de los productos que lo usan.
func (uc *IngredientUseCase) Update(businessID, id string, in dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ingredient, err := uc.findOwned(businessID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name != ingredient.Name {
		existing, _ := uc.repo.GetByBusinessAndName(businessID, *in.Name)
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		ingredient.Name = *in.Name
	}
	if in.Category != nil {
		ingredient.Category = *in.Category
	}
	if in.Unit != nil {
		ingredient.Unit = *in.Unit
	}
	costChanged := false
	if in.BaseUnitCost != nil && !in.BaseUnitCost.Equal(ingredient.BaseUnitCost) {
		ingredient.BaseUnitCost = *in.BaseUnitCost
		costChanged = true
	}
	if in.BaseUnitQty != nil && !in.BaseUnitQty.Equal(ingredient.BaseUnitQty) {
		ingredient.BaseUnitQty = *in.BaseUnitQty
		costChanged = true
	}
	if in.ReorderPoint != nil {
		ingredient.ReorderPoint = *in.ReorderPoint
	}
	if in.Status != nil {
		ingredient.Status = *in.Status
	}
	if err := validatePresentation(ingredient.BaseUnitCost, ingredient.BaseUnitQty, ingredient.ReorderPoint); err != nil {
		return nil, err
	}
	ingredient.UpdatedAt = time.Now()
	if err := uc.repo.Update(ingredient); err != nil {
		return nil, err
	}
	if costChanged {
		uc.recoster.EnqueueIngredient(ingredient.ID)
	}
	return toIngredientResponse(ingredient), nil
}

// List lista ingredientes del negocio, opcionalmente por categoría.
func (uc *IngredientUseCase) List(businessID, category string, limit, offset int) (*dto.IngredientListResponse, error) {
	list, err := uc.repo.ListByBusiness(businessID, category, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		items = append(items, *toIngredientResponse(ing))
	}
	return &dto.IngredientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un ingrediente. ErrIngredientInUse mientras alguna receta lo
// referencie.
func (uc *IngredientUseCase) Delete(businessID, id string) error {
	if _, err := uc.findOwned(businessID, id); err != nil {
		return err
	}
	refs, err := uc.recipeRepo.CountByIngredient(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrIngredientInUse
	}
	return uc.repo.Delete(id)
}

func (uc *IngredientUseCase) findOwned(businessID, id string) (*entity.Ingredient, error) {
	ingredient, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil || ingredient.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	return ingredient, nil
}

// validatePresentation valida costo >= 0, cantidad > 0 y reorden >= 0.
func validatePresentation(baseUnitCost, baseUnitQty, reorderPoint decimal.Decimal) error {
	if baseUnitCost.IsNegative() {
		return domain.ErrInvalidInput
	}
	if baseUnitQty.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if reorderPoint.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

func toIngredientResponse(i *entity.Ingredient) *dto.IngredientResponse {
	if i == nil {
		return nil
	}
	return &dto.IngredientResponse{
		ID:           i.ID,
		BusinessID:   i.BusinessID,
		Name:         i.Name,
		Category:     i.Category,
		Unit:         i.Unit,
		BaseUnitCost: i.BaseUnitCost,
		BaseUnitQty:  i.BaseUnitQty,
		UnitCost:     i.UnitCost(),
		AvgCost:      i.AvgCost,
		ReorderPoint: i.ReorderPoint,
		Status:       i.Status,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}
