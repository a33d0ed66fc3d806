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

	"github.com/jhoicas/granel-api/internal/application/barcode"
	"github.com/jhoicas/granel-api/internal/application/inventory"
	"github.com/jhoicas/granel-api/internal/application/usecase"
	"github.com/jhoicas/granel-api/internal/domain/repository"
	"github.com/jhoicas/granel-api/internal/infrastructure/audit"
	"github.com/jhoicas/granel-api/internal/infrastructure/labels"
	"github.com/jhoicas/granel-api/internal/infrastructure/memory"
	"github.com/jhoicas/granel-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/granel-api/internal/interfaces/http"
	"github.com/jhoicas/granel-api/pkg/config"
	"github.com/jhoicas/granel-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner inventory.TxRunner
		repos    repository.Repos
	)
	switch cfg.App.Store {
	case config.StoreMemory:
		store := memory.New(1)
		txRunner, repos = store, store.Repos()
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewRepos(pool)
	}

	// Etiquetas: sin REDIS_URL no se imprime nada, el resto funciona igual.
	var publisher barcode.LabelPublisher = labels.Noop{}
	if cfg.Redis.URL != "" {
		rdb, err := labels.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		publisher = labels.NewRedisPublisher(rdb, cfg.Redis.LabelQueue)
		log.Info().Str("queue", cfg.Redis.LabelQueue).Msg("cola de etiquetas habilitada")
	}

	recorder := audit.NewLogger(log.Component("audit"))

	pluUC := barcode.NewPluUseCase(repos, cfg.Barcode)
	deps := httpRouter.RouterDeps{
		Catalog:     usecase.NewCatalogUseCase(repos),
		Pool:        barcode.NewPoolUseCase(txRunner, repos, cfg.Barcode, publisher, recorder, log.Component("barcodes")),
		Scale:       barcode.NewScaleUseCase(txRunner, repos, cfg.Barcode),
		Plu:         pluUC,
		Scan:        barcode.NewScanUseCase(repos, pluUC),
		Consumption: inventory.NewConsumptionUseCase(txRunner, repos, recorder, log.Component("inventory")),
		Packaging:   inventory.NewPackagingUseCase(txRunner, recorder),
		JWTSecret:   cfg.JWT.Secret,
	}

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
		Title:    "Granel API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

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

	log.Info().Msg("aplicación detenida")
}
