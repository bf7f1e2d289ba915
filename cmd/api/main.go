package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Baristo-api/docs"
	appanalytics "github.com/jhoicas/Baristo-api/internal/application/analytics"
	"github.com/jhoicas/Baristo-api/internal/application/auth"
	"github.com/jhoicas/Baristo-api/internal/application/costing"
	"github.com/jhoicas/Baristo-api/internal/application/production"
	"github.com/jhoicas/Baristo-api/internal/application/usecase"
	"github.com/jhoicas/Baristo-api/internal/application/warehouse"
	infrapdf "github.com/jhoicas/Baristo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Baristo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Baristo-api/internal/interfaces/http"
	"github.com/jhoicas/Baristo-api/pkg/config"
	"github.com/jhoicas/Baristo-api/pkg/logger"
)

// @title Baristo API
// @version 1.0
// @description API de trastienda para cafeterías: catálogo con recetas y costeo, bodega por sucursal, lotes de producción y metas de venta.
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Token JWT con prefijo "Bearer ". Ejemplo: "Bearer eyJhbGci..."
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	businessRepo := postgres.NewBusinessRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	ingredientRepo := postgres.NewIngredientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	recipeRepo := postgres.NewRecipeLineRepository(pool)
	batchRepo := postgres.NewWarehouseBatchRepository(pool)
	stockRepo := postgres.NewStockLevelRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	productionRepo := postgres.NewProductionBatchRepository(pool)
	targetRepo := postgres.NewSalesTargetRepository(pool)
	journeyRepo := postgres.NewJourneyRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	journeyUC := usecase.NewJourneyUseCase(journeyRepo, log)

	// Recosteo de COGS en segundo plano: cuando cambia el costo de una
	// presentación se reenvían a costear los productos que la usan.
	recostSvc, err := costing.NewRecostService(
		cfg.Costing.RecostPoolSize, productRepo, recipeRepo, ingredientRepo, log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("pool de recosteo")
	}

	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}

	authUC := auth.NewAuthUseCase(userRepo, businessRepo, jwtCfg)
	businessUC := usecase.NewBusinessUseCase(businessRepo, userRepo, journeyRepo, jwtCfg, log)
	branchUC := usecase.NewBranchUseCase(branchRepo, journeyUC)
	ingredientUC := usecase.NewIngredientUseCase(ingredientRepo, recipeRepo, recostSvc, journeyUC)
	productUC := usecase.NewProductUseCase(productRepo, recipeRepo, ingredientRepo, txRunner, journeyUC)
	playgroundUC := costing.NewPlaygroundUseCase(ingredientRepo)
	warehouseUC := warehouse.NewUseCase(
		txRunner, branchRepo, ingredientRepo, batchRepo, stockRepo, movementRepo, journeyUC,
	)
	productionUC := production.NewUseCase(
		txRunner, branchRepo, productRepo, ingredientRepo, productionRepo, journeyUC,
	)
	targetUC := usecase.NewSalesTargetUseCase(targetRepo, branchRepo, journeyUC)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, journeyRepo)

	// PDF: ficha imprimible del lote de producción
	sheetGenerator := infrapdf.NewMarotoSheetGenerator()
	productionPDF := production.NewPDFUseCase(productionUC, businessRepo, sheetGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Baristo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		BusinessUC:    businessUC,
		BranchUC:      branchUC,
		IngredientUC:  ingredientUC,
		ProductUC:     productUC,
		PlaygroundUC:  playgroundUC,
		WarehouseUC:   warehouseUC,
		ProductionUC:  productionUC,
		ProductionPDF: productionPDF,
		SalesTargetUC: targetUC,
		JourneyUC:     journeyUC,
		DashboardUC:   dashboardUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Drena los recosteos pendientes antes de cerrar el pool de conexiones.
	recostSvc.Release()

	log.Info().Msg("aplicación detenida")
}
