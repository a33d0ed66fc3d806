package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/granel-api/internal/application/barcode"
	"github.com/jhoicas/granel-api/internal/application/inventory"
	"github.com/jhoicas/granel-api/internal/application/usecase"
	"github.com/jhoicas/granel-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog     *usecase.CatalogUseCase
	Pool        *barcode.PoolUseCase
	Scale       *barcode.ScaleUseCase
	Plu         *barcode.PluUseCase
	Scan        *barcode.ScanUseCase
	Consumption *inventory.ConsumptionUseCase
	Packaging   *inventory.PackagingUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(jwt.RoleAdmin)
	staff := RequireRole(jwt.RoleAdmin, jwt.RoleEncargado)
	anyone := RequireRole(jwt.RoleAdmin, jwt.RoleEncargado, jwt.RoleCajero)

	catalog := NewCatalogHandler(deps.Catalog)
	protected.Post("/products", staff, catalog.CreateProduct)
	protected.Get("/products/:id", anyone, catalog.GetProduct)
	protected.Post("/variants", staff, catalog.CreateVariant)
	protected.Get("/variants/:id", anyone, catalog.GetVariant)

	barcodes := NewBarcodeHandler(deps.Pool, deps.Scale)
	protected.Post("/barcodes/batch", admin, barcodes.Allocate)
	protected.Get("/barcodes", staff, barcodes.List)
	protected.Post("/barcodes/assign", staff, barcodes.Assign)
	protected.Post("/barcodes/:ean13/release", admin, barcodes.Release)
	protected.Post("/variants/:id/scale-barcode", staff, barcodes.GenerateScale)
	protected.Get("/variants/:id/scale-barcode", anyone, barcodes.DecodeScale)

	plu := NewPluHandler(deps.Plu, deps.Scan)
	protected.Post("/plu", admin, plu.Create)
	protected.Post("/plu/encode", staff, plu.Encode)
	protected.Get("/plu/parse/:code", anyone, plu.Parse)
	protected.Get("/scan/:code", anyone, plu.Scan)

	inv := NewInventoryHandler(deps.Consumption, deps.Packaging)
	protected.Post("/inventory/plans", anyone, inv.ResolvePlan)
	protected.Post("/inventory/commit", anyone, inv.CommitPlan)
	protected.Post("/inventory/consume", anyone, inv.Consume)
	protected.Post("/inventory/packaging", staff, inv.Package)
	protected.Get("/inventory/ledger", staff, inv.Ledger)
}
