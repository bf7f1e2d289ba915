package costing

import (
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/jhoicas/Baristo-api/internal/application/usecase"
	"github.com/jhoicas/Baristo-api/internal/domain/costing"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
	"github.com/jhoicas/Baristo-api/pkg/logger"
)

var _ usecase.Recoster = (*RecostService)(nil)

// RecostService recalcula en segundo plano el COGS de los productos cuya
// receta usa un ingrediente cuyo costo de presentación cambió. El trabajo
// corre en un pool de workers acotado; el caso de uso que lo dispara no
// espera el resultado.
type RecostService struct {
	pool           *ants.Pool
	productRepo    repository.ProductRepository
	recipeRepo     repository.RecipeLineRepository
	ingredientRepo repository.IngredientRepository
	log            *logger.Logger
}

// NewRecostService construye el servicio con su pool de workers.
func NewRecostService(
	poolSize int,
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeLineRepository,
	ingredientRepo repository.IngredientRepository,
	log *logger.Logger,
) (*RecostService, error) {
	if poolSize <= 0 {
		poolSize = 4
	}
	panicHandler := func(p interface{}) {
		log.Error().Interface("panic", p).Msg("pánico recuperado en worker de recosteo")
	}
	pool, err := ants.NewPool(poolSize,
		ants.WithPanicHandler(panicHandler),
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(10*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &RecostService{
		pool:           pool,
		productRepo:    productRepo,
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		log:            log,
	}, nil
}

// EnqueueIngredient encola el recosteo de todos los productos que usan el
// ingrediente. Si el pool está cerrado solo lo registra: el COGS guardado
// queda desactualizado hasta la próxima edición de receta.
func (s *RecostService) EnqueueIngredient(ingredientID string) {
	err := s.pool.Submit(func() {
		s.recostIngredient(ingredientID)
	})
	if err != nil {
		s.log.Error().Err(err).Str("ingredient_id", ingredientID).
			Msg("no se pudo encolar el recosteo")
	}
}

// Release cierra el pool esperando a que terminen los trabajos en curso.
func (s *RecostService) Release() {
	if err := s.pool.ReleaseTimeout(10 * time.Second); err != nil {
		s.log.Warn().Err(err).Msg("timeout cerrando el pool de recosteo")
	}
}

func (s *RecostService) recostIngredient(ingredientID string) {
	productIDs, err := s.recipeRepo.ListProductIDsByIngredient(ingredientID)
	if err != nil {
		s.log.Error().Err(err).Str("ingredient_id", ingredientID).
			Msg("recosteo: no se pudieron listar los productos afectados")
		return
	}
	recosted := 0
	for _, productID := range productIDs {
		if err := s.recostProduct(productID); err != nil {
			s.log.Error().Err(err).Str("product_id", productID).
				Msg("recosteo: no se pudo actualizar el COGS del producto")
			continue
		}
		recosted++
	}
	if recosted > 0 {
		s.log.Info().Str("ingredient_id", ingredientID).Int("products", recosted).
			Msg("recosteo completado")
	}
}

// recostProduct recalcula el COGS de un producto desde su receta vigente y
// lo materializa.
func (s *RecostService) recostProduct(productID string) error {
	lines, err := s.recipeRepo.ListByProduct(productID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.IngredientID)
	}
	ingredients, err := s.ingredientRepo.ListByIDs(ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*entity.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}
	components := make([]costing.Component, 0, len(lines))
	for _, line := range lines {
		ing := byID[line.IngredientID]
		if ing == nil {
			continue // línea huérfana, no aporta costo
		}
		components = append(components, costing.Component{
			IngredientID: ing.ID,
			UsagePerCup:  line.UsagePerCup,
			UnitCost:     ing.UnitCost(),
		})
	}
	cup := costing.CostCup(components)
	return s.productRepo.UpdateCOGS(productID, cup.COGSPerCup)
}
