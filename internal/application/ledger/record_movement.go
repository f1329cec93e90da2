package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obrasoft/almacen-api/internal/domain"
	"github.com/obrasoft/almacen-api/internal/domain/entity"
	domledger "github.com/obrasoft/almacen-api/internal/domain/ledger"
	"github.com/obrasoft/almacen-api/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos originales (IN/OUT) de forma
// transaccional, con bloqueo de la fila de stock por (proyecto, ítem) para que
// dos commits concurrentes del mismo ítem no puedan dejar stock negativo.
type RecordMovementUseCase struct {
	txRunner    TxRunner
	projectRepo repository.ProjectRepository
	now         func() time.Time
}

// NewRecordMovementUseCase construye el caso de uso. clock nil usa time.Now.
func NewRecordMovementUseCase(txRunner TxRunner, projectRepo repository.ProjectRepository, clock func() time.Time) *RecordMovementUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &RecordMovementUseCase{txRunner: txRunner, projectRepo: projectRepo, now: clock}
}

// MovementInput entrada para registrar un movimiento original.
// Los ajustes no entran por aquí: solo los crea el motor de correcciones.
type MovementInput struct {
	ProjectID     string
	Actor         string
	ItemName      string
	Category      string
	Operation     string // IN u OUT
	Quantity      decimal.Decimal
	Counterparty  string // obligatorio en OUT
	Notes         string
	ShelfLifeDays *int
}

// Record valida la entrada, abre la transacción, bloquea la fila de stock,
// verifica no-negatividad para salidas y agrega el registro al libro.
func (uc *RecordMovementUseCase) Record(ctx context.Context, input MovementInput) (*entity.TransactionRecord, error) {
	if input.Operation != entity.OperationIN && input.Operation != entity.OperationOUT {
		return nil, domain.ErrInvalidInput
	}
	if input.ProjectID == "" || input.ItemName == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if input.Operation == entity.OperationOUT && input.Counterparty == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.ShelfLifeDays != nil && *input.ShelfLifeDays < 0 {
		return nil, domain.ErrInvalidInput
	}

	project, err := uc.projectRepo.GetByID(input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	rec := &entity.TransactionRecord{
		ProjectID:     input.ProjectID,
		ItemName:      input.ItemName,
		Category:      input.Category,
		Operation:     input.Operation,
		Quantity:      input.Quantity,
		Timestamp:     now,
		Counterparty:  input.Counterparty,
		ShelfLifeDays: input.ShelfLifeDays,
		Notes:         input.Notes,
		CreatedBy:     input.Actor,
	}

	err = uc.txRunner.Run(ctx, func(
		recordRepo repository.TransactionRecordRepository,
		_ repository.ModificationRecordRepository,
		stockRepo repository.StockRepository,
	) error {
		// Bloquea la fila de stock del ítem; serializa contra otros commits
		stock, err := stockRepo.GetForUpdate(input.ProjectID, input.ItemName)
		if err != nil {
			return err
		}
		ledgerRecords, err := recordRepo.ScanByItem(input.ProjectID, input.ItemName)
		if err != nil {
			return err
		}
		snap := domledger.Snapshot(input.ProjectID, input.ItemName, ledgerRecords)
		newCurrent := snap.CurrentStock
		if input.Operation == entity.OperationIN {
			newCurrent = newCurrent.Add(input.Quantity)
		} else {
			newCurrent = newCurrent.Sub(input.Quantity)
			if newCurrent.IsNegative() {
				return domain.ErrInsufficientStock
			}
		}
		if err := recordRepo.Append(rec); err != nil {
			return err
		}
		stock.Quantity = newCurrent
		stock.UpdatedAt = now
		return stockRepo.Upsert(stock)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}
