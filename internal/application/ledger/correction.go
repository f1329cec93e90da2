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

// SubmitCorrectionUseCase convierte una corrección aprobada en cambios
// durables: una ModificationRecord de auditoría, un registro de ajuste con la
// delta, y la cantidad corregida (solo display) sobre el registro original.
// Nunca elimina historia. Toda la ruta corre bajo el bloqueo de la fila de
// stock del ítem, con re-chequeo de elegibilidad en el commit para cerrar la
// carrera entre consulta y envío.
type SubmitCorrectionUseCase struct {
	txRunner   TxRunner
	recordRepo repository.TransactionRecordRepository
	window     time.Duration
	now        func() time.Time
}

// NewSubmitCorrectionUseCase construye el caso de uso. window <= 0 usa las 24h
// por defecto; clock nil usa time.Now.
func NewSubmitCorrectionUseCase(txRunner TxRunner, recordRepo repository.TransactionRecordRepository, window time.Duration, clock func() time.Time) *SubmitCorrectionUseCase {
	if window <= 0 {
		window = domledger.EditWindow
	}
	if clock == nil {
		clock = time.Now
	}
	return &SubmitCorrectionUseCase{txRunner: txRunner, recordRepo: recordRepo, window: window, now: clock}
}

// CorrectionInput entrada aprobada por el caller.
type CorrectionInput struct {
	RecordID    string
	NewQuantity decimal.Decimal
	Reason      string
	Notes       string
	Actor       string
}

// Submit aplica la corrección de forma atómica. Veredictos posibles:
// ErrRecordNotFound, ErrExpired, ErrProtected, ErrNoChange, ErrWouldUnderflow,
// ErrWouldGoNegative. Todos recuperables; el caller presenta el motivo.
func (uc *SubmitCorrectionUseCase) Submit(ctx context.Context, input CorrectionInput) (*entity.ModificationRecord, error) {
	if input.RecordID == "" || !entity.ValidReason(input.Reason) {
		return nil, domain.ErrInvalidInput
	}
	if input.NewQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	var mod *entity.ModificationRecord

	err := uc.txRunner.Run(ctx, func(
		recordRepo repository.TransactionRecordRepository,
		modRepo repository.ModificationRecordRepository,
		stockRepo repository.StockRepository,
	) error {
		rec, err := recordRepo.GetByID(input.RecordID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrRecordNotFound
		}

		// Serializa contra otros commits del mismo (proyecto, ítem)
		stock, err := stockRepo.GetForUpdate(rec.ProjectID, rec.ItemName)
		if err != nil {
			return err
		}
		ledgerRecords, err := recordRepo.ScanByItem(rec.ProjectID, rec.ItemName)
		if err != nil {
			return err
		}
		// Relee el registro ya bajo el bloqueo: una corrección rival pudo
		// comprometerse entre la carga inicial y el FOR UPDATE, y la cantidad
		// efectiva debe salir del estado posterior al bloqueo.
		for _, r := range ledgerRecords {
			if r.ID == rec.ID {
				rec = r
				break
			}
		}

		// Re-chequeo de elegibilidad en el commit, no solo en pantalla
		elig := domledger.CheckEligibility(rec, ledgerRecords, now, uc.window)
		switch elig.Status {
		case domledger.StatusExpired:
			return domain.ErrExpired
		case domledger.StatusProtected:
			return domain.ErrProtected
		}

		original := rec.EffectiveQuantity()
		delta := input.NewQuantity.Sub(original)
		if delta.IsZero() {
			return domain.ErrNoChange
		}

		if rec.IsOutflow() {
			if elig.Available == nil || input.NewQuantity.GreaterThan(*elig.Available) {
				return domain.ErrWouldUnderflow
			}
		}

		// Efecto sobre el stock: la delta de una salida actúa en sentido inverso
		stockDelta := delta
		if rec.IsOutflow() {
			stockDelta = delta.Neg()
		}
		snap := domledger.Snapshot(rec.ProjectID, rec.ItemName, ledgerRecords)
		newCurrent := snap.CurrentStock.Add(stockDelta)
		if newCurrent.IsNegative() {
			return domain.ErrWouldGoNegative
		}

		mod = &entity.ModificationRecord{
			ProjectID:             rec.ProjectID,
			ModifiedAt:            now,
			OriginalTransactionID: rec.ID,
			ItemName:              rec.ItemName,
			Category:              rec.Category,
			OperationType:         rec.Operation,
			OriginalDate:          rec.Timestamp,
			OriginalQuantity:      original,
			NewQuantity:           input.NewQuantity,
			Delta:                 delta,
			Reason:                input.Reason,
			Notes:                 input.Notes,
			Actor:                 input.Actor,
		}
		if err := modRepo.Create(mod); err != nil {
			return err
		}

		adjustment := &entity.TransactionRecord{
			ProjectID:     rec.ProjectID,
			ItemName:      rec.ItemName,
			Category:      rec.Category,
			Operation:     adjustmentOperation(stockDelta),
			Quantity:      stockDelta.Abs(),
			Timestamp:     now,
			ShelfLifeDays: rec.ShelfLifeDays,
			Notes:         input.Notes,
			ReferenceID:   rec.ID,
			CreatedBy:     input.Actor,
		}
		if err := recordRepo.Append(adjustment); err != nil {
			return err
		}

		// Cantidad corregida sobre el registro original (solo presentación);
		// la delta sigue siendo reconstruible desde el ajuste y la auditoría.
		// Si el registro desapareció entre el scan y aquí, la historia está
		// corrupta: se aborta y el rollback descarta los appends.
		if err := recordRepo.UpdateQuantity(rec.ID, input.NewQuantity); err != nil {
			return err
		}

		stock.Quantity = newCurrent
		stock.UpdatedAt = now
		return stockRepo.Upsert(stock)
	})
	if err != nil {
		return nil, err
	}
	return mod, nil
}

func adjustmentOperation(stockDelta decimal.Decimal) string {
	if stockDelta.IsPositive() {
		return entity.OperationAdjustIncrease
	}
	return entity.OperationAdjustDecrease
}
