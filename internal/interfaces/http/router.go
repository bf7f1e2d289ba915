package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Baristo-api/internal/application/analytics"
	"github.com/jhoicas/Baristo-api/internal/application/auth"
	"github.com/jhoicas/Baristo-api/internal/application/costing"
	"github.com/jhoicas/Baristo-api/internal/application/production"
	"github.com/jhoicas/Baristo-api/internal/application/usecase"
	"github.com/jhoicas/Baristo-api/internal/application/warehouse"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	BusinessUC    *usecase.BusinessUseCase
	BranchUC      *usecase.BranchUseCase
	IngredientUC  *usecase.IngredientUseCase
	ProductUC     *usecase.ProductUseCase
	PlaygroundUC  *costing.PlaygroundUseCase
	WarehouseUC   *warehouse.UseCase
	ProductionUC  *production.UseCase
	ProductionPDF *production.PDFUseCase
	SalesTargetUC *usecase.SalesTargetUseCase
	JourneyUC     *usecase.JourneyUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
//
// Público: auth y el onboarding de negocios. Todo lo demás exige Bearer Token;
// las escrituras de catálogo y bodega además exigen rol admin o encargado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	requireAdmin := RequireRole(entity.RoleAdmin)
	requireManager := RequireRole(entity.RoleAdmin, entity.RoleEncargado)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Businesses (onboarding público; la edición exige token de admin)
	businesses := api.Group("/businesses")
	businessHandler := NewBusinessHandler(deps.BusinessUC)
	businesses.Post("/", businessHandler.Create)
	businesses.Get("/", businessHandler.List)
	businesses.Put("/me", AuthMiddleware(deps.JWTSecret), requireAdmin, businessHandler.Update)
	businesses.Get("/:id", businessHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Branches
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", requireManager, branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id", requireManager, branchHandler.Update)
	branches.Delete("/:id", requireAdmin, branchHandler.Delete)

	// Ingredients
	ingredients := protected.Group("/ingredients")
	ingredientHandler := NewIngredientHandler(deps.IngredientUC)
	ingredients.Post("/", requireManager, ingredientHandler.Create)
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Get("/:id", ingredientHandler.GetByID)
	ingredients.Put("/:id", requireManager, ingredientHandler.Update)
	ingredients.Delete("/:id", requireManager, ingredientHandler.Delete)

	// Products y recetas
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", requireManager, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", requireManager, productHandler.Update)
	products.Delete("/:id", requireManager, productHandler.Delete)
	products.Get("/:id/recipe", productHandler.GetRecipe)
	products.Put("/:id/recipe", requireManager, productHandler.ReplaceRecipe)

	// COGS playground (cualquier rol: es una calculadora)
	cogs := protected.Group("/cogs")
	cogsHandler := NewCOGSHandler(deps.PlaygroundUC)
	cogs.Post("/playground", cogsHandler.Playground)

	// Warehouse
	wh := protected.Group("/warehouse")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	wh.Post("/batches", requireManager, warehouseHandler.ReceiveBatch)
	wh.Get("/batches", warehouseHandler.ListBatches)
	wh.Get("/stock", warehouseHandler.ListStock)
	wh.Post("/movements", requireManager, warehouseHandler.RegisterMovement)
	wh.Get("/movements", warehouseHandler.ListMovements)
	wh.Get("/alerts", warehouseHandler.Alerts)

	// Production (operación diaria: cualquier rol autenticado)
	prod := protected.Group("/production-batches")
	productionHandler := NewProductionHandler(deps.ProductionUC, deps.ProductionPDF)
	prod.Post("/", productionHandler.Plan)
	prod.Get("/", productionHandler.List)
	prod.Get("/:id", productionHandler.GetByID)
	prod.Post("/:id/commit", productionHandler.Commit)
	prod.Post("/:id/cancel", productionHandler.Cancel)
	prod.Get("/:id/report.pdf", productionHandler.ReportPDF)

	// Sales targets ("/summary" antes de "/:id" para que no lo capture el parámetro)
	targets := protected.Group("/sales-targets")
	salesTargetHandler := NewSalesTargetHandler(deps.SalesTargetUC)
	targets.Post("/", requireManager, salesTargetHandler.Create)
	targets.Get("/", salesTargetHandler.ListRange)
	targets.Get("/summary", salesTargetHandler.MonthSummary)
	targets.Get("/:id", salesTargetHandler.GetByID)
	targets.Put("/:id", requireManager, salesTargetHandler.Update)
	targets.Delete("/:id", requireManager, salesTargetHandler.Delete)

	// Journey
	journey := protected.Group("/journey")
	journeyHandler := NewJourneyHandler(deps.JourneyUC)
	journey.Get("/", journeyHandler.Get)
	journey.Put("/:step", journeyHandler.SetStep)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
