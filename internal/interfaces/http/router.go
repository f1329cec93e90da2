package http

import (
	"github.com/gofiber/fiber/v2"

	applledger "github.com/obrasoft/almacen-api/internal/application/ledger"
	"github.com/obrasoft/almacen-api/internal/application/project"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProjectUC   *project.UseCase
	Movement    *applledger.RecordMovementUseCase
	Correction  *applledger.SubmitCorrectionUseCase
	Eligibility *applledger.CheckEligibilityUseCase
	Snapshot    *applledger.SnapshotUseCase
	Query       *applledger.QueryUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todo el libro queda detrás del
// middleware de actor: cada escritura debe llegar firmada.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	ledgerHandler := NewLedgerHandler(deps.Movement, deps.Correction, deps.Eligibility, deps.Snapshot, deps.Query)
	projectHandler := NewProjectHandler(deps.ProjectUC)

	projects := api.Group("/projects")
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)

	// Operaciones del libro por proyecto
	projects.Post("/:id/movements", ledgerHandler.RecordMovement)
	projects.Get("/:id/snapshot", ledgerHandler.GetSnapshot)
	projects.Get("/:id/records", ledgerHandler.QueryRecords)
	projects.Get("/:id/modifications", ledgerHandler.ListModifications)

	// Correcciones por registro
	records := api.Group("/ledger/records")
	records.Get("/:id/eligibility", ledgerHandler.CheckEligibility)
	records.Post("/:id/corrections", ledgerHandler.SubmitCorrection)
}
