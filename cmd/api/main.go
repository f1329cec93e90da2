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

	applledger "github.com/obrasoft/almacen-api/internal/application/ledger"
	"github.com/obrasoft/almacen-api/internal/application/project"
	"github.com/obrasoft/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/obrasoft/almacen-api/internal/interfaces/http"
	"github.com/obrasoft/almacen-api/pkg/config"
	"github.com/obrasoft/almacen-api/pkg/logger"
)

// @title                      Almacén API
// @version                    1.0
// @description                Libro de movimientos de inventario por proyecto, con motor de correcciones auditadas.
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Int("edit_window_hours", cfg.Ledger.EditWindowHours).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	recordRepo := postgres.NewTransactionRecordRepository(pool)
	modRepo := postgres.NewModificationRecordRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	window := time.Duration(cfg.Ledger.EditWindowHours) * time.Hour
	projectUC := project.NewUseCase(projectRepo, nil)
	movementUC := applledger.NewRecordMovementUseCase(txRunner, projectRepo, nil)
	correctionUC := applledger.NewSubmitCorrectionUseCase(txRunner, recordRepo, window, nil)
	eligibilityUC := applledger.NewCheckEligibilityUseCase(recordRepo, window, nil)
	snapshotUC := applledger.NewSnapshotUseCase(recordRepo, projectRepo)
	queryUC := applledger.NewQueryUseCase(recordRepo, modRepo, projectRepo)

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
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProjectUC:   projectUC,
		Movement:    movementUC,
		Correction:  correctionUC,
		Eligibility: eligibilityUC,
		Snapshot:    snapshotUC,
		Query:       queryUC,
		JWTSecret:   cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
