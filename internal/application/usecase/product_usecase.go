package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/costing"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// ProductUseCase casos de uso para productos de la carta y sus recetas.
// COGSPerCup no se edita directo: se materializa al reemplazar la receta y
// en el recosteo asíncrono cuando cambian costos de ingredientes.
type ProductUseCase struct {
	repo           repository.ProductRepository
	recipeRepo     repository.RecipeLineRepository
	ingredientRepo repository.IngredientRepository
	txRunner       RecipeTxRunner
	journey        JourneyMarker
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	recipeRepo repository.RecipeLineRepository,
	ingredientRepo repository.IngredientRepository,
	txRunner RecipeTxRunner,
	journey JourneyMarker,
) *ProductUseCase {
	return &ProductUseCase{
		repo:           repo,
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		txRunner:       txRunner,
		journey:        journey,
	}
}

// Create crea un producto con receta vacía (COGS en cero). ErrDuplicate si el
// SKU ya existe en el negocio.
func (uc *ProductUseCase) Create(businessID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByBusinessAndSKU(businessID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category := in.Category
	if category == "" {
		category = entity.ProductCategoryOtro
	}
	status := in.Status
	if status == "" {
		status = entity.ProductStatusActive
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		SKU:        in.SKU,
		Name:       in.Name,
		Category:   category,
		SalePrice:  in.SalePrice,
		COGSPerCup: decimal.Zero,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	uc.journey.MarkStepDone(businessID, entity.JourneyStepCrearProducto)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del negocio.
func (uc *ProductUseCase) GetByID(businessID, id string) (*dto.ProductResponse, error) {
	product, err := uc.findOwned(businessID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. La receta se edita aparte (ReplaceRecipe).
func (uc *ProductUseCase) Update(businessID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.findOwned(businessID, id)
	if err != nil {
		return nil, err
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		existing, _ := uc.repo.GetByBusinessAndSKU(businessID, *in.SKU)
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos del negocio con filtros opcionales.
func (uc *ProductUseCase) List(businessID, category, status string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByBusiness(businessID, category, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto y su receta (cascada). ErrConflict si tiene
// lotes de producción asociados.
func (uc *ProductUseCase) Delete(businessID, id string) error {
	if _, err := uc.findOwned(businessID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

// GetRecipe devuelve la receta del producto con el aporte de cada ingrediente
// al COGS por taza.
func (uc *ProductUseCase) GetRecipe(businessID, productID string) (*dto.RecipeResponse, error) {
	if _, err := uc.findOwned(businessID, productID); err != nil {
		return nil, err
	}
	lines, err := uc.recipeRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	cup, err := costRecipe(lines, uc.ingredientRepo)
	if err != nil {
		return nil, err
	}
	return toRecipeResponse(productID, cup), nil
}

// ReplaceRecipe reemplaza la receta completa de forma atómica y materializa
// el COGS resultante en el producto. Valida que cada ingrediente exista,
// pertenezca al negocio, no se repita y su uso por taza sea positivo.
func (uc *ProductUseCase) ReplaceRecipe(ctx context.Context, businessID, productID string, in dto.ReplaceRecipeRequest) (*dto.RecipeResponse, error) {
	if _, err := uc.findOwned(businessID, productID); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(in.Lines))
	for _, line := range in.Lines {
		if line.IngredientID == "" || !line.UsagePerCup.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if seen[line.IngredientID] {
			return nil, domain.ErrInvalidInput
		}
		seen[line.IngredientID] = true
	}

	var result *dto.RecipeResponse
	err := uc.txRunner.RunRecipe(ctx, func(
		productRepo repository.ProductRepository,
		recipeRepo repository.RecipeLineRepository,
		ingredientRepo repository.IngredientRepository,
	) error {
		ids := make([]string, 0, len(in.Lines))
		for _, line := range in.Lines {
			ids = append(ids, line.IngredientID)
		}
		ingredients, err := ingredientRepo.ListByIDs(ids)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.Ingredient, len(ingredients))
		for _, ing := range ingredients {
			if ing.BusinessID == businessID {
				byID[ing.ID] = ing
			}
		}
		for _, line := range in.Lines {
			if byID[line.IngredientID] == nil {
				return domain.ErrNotFound
			}
		}

		if err := recipeRepo.DeleteByProduct(productID); err != nil {
			return err
		}
		now := time.Now()
		components := make([]costing.Component, 0, len(in.Lines))
		for _, line := range in.Lines {
			ing := byID[line.IngredientID]
			if err := recipeRepo.Create(&entity.RecipeLine{
				ID:           uuid.New().String(),
				ProductID:    productID,
				IngredientID: line.IngredientID,
				UsagePerCup:  line.UsagePerCup,
				CreatedAt:    now,
				UpdatedAt:    now,
			}); err != nil {
				return err
			}
			components = append(components, costing.Component{
				IngredientID: ing.ID,
				Name:         ing.Name,
				Unit:         ing.Unit,
				UsagePerCup:  line.UsagePerCup,
				UnitCost:     ing.UnitCost(),
			})
		}
		cup := costing.CostCup(components)
		if err := productRepo.UpdateCOGS(productID, cup.COGSPerCup); err != nil {
			return err
		}
		result = toRecipeResponse(productID, cup)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *ProductUseCase) findOwned(businessID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// costRecipe expande las líneas con su ingrediente y calcula el costeo.
func costRecipe(lines []*entity.RecipeLine, ingredientRepo repository.IngredientRepository) (costing.Cup, error) {
	if len(lines) == 0 {
		return costing.Cup{Lines: []costing.Line{}, COGSPerCup: decimal.Zero}, nil
	}
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.IngredientID)
	}
	ingredients, err := ingredientRepo.ListByIDs(ids)
	if err != nil {
		return costing.Cup{}, err
	}
	byID := make(map[string]*entity.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}
	components := make([]costing.Component, 0, len(lines))
	for _, line := range lines {
		ing := byID[line.IngredientID]
		if ing == nil {
			return costing.Cup{}, domain.ErrNotFound
		}
		components = append(components, costing.Component{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Unit:         ing.Unit,
			UsagePerCup:  line.UsagePerCup,
			UnitCost:     ing.UnitCost(),
		})
	}
	return costing.CostCup(components), nil
}

func toRecipeResponse(productID string, cup costing.Cup) *dto.RecipeResponse {
	lines := make([]dto.RecipeLineResponse, 0, len(cup.Lines))
	for _, l := range cup.Lines {
		lines = append(lines, dto.RecipeLineResponse{
			IngredientID:   l.IngredientID,
			IngredientName: l.Name,
			Unit:           l.Unit,
			UsagePerCup:    l.UsagePerCup,
			UnitCost:       l.UnitCost,
			LineCost:       l.LineCost,
			SharePct:       l.SharePct,
		})
	}
	return &dto.RecipeResponse{
		ProductID:  productID,
		Lines:      lines,
		COGSPerCup: cup.COGSPerCup,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		BusinessID:   p.BusinessID,
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     p.Category,
		SalePrice:    p.SalePrice,
		COGSPerCup:   p.COGSPerCup,
		MarginPct:    p.MarginPct(),
		MarginAmount: p.SalePrice.Sub(p.COGSPerCup),
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
