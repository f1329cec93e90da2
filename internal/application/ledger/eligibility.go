package ledger

import (
	"time"

	"github.com/obrasoft/almacen-api/internal/domain"
	"github.com/obrasoft/almacen-api/internal/domain/entity"
	domledger "github.com/obrasoft/almacen-api/internal/domain/ledger"
	"github.com/obrasoft/almacen-api/internal/domain/repository"
)

// CheckEligibilityUseCase responde si un registro aún puede corregirse.
// Es una lectura de pantalla: el motor de correcciones repite el chequeo en
// el commit, así que aquí no se toma ningún bloqueo.
type CheckEligibilityUseCase struct {
	recordRepo repository.TransactionRecordRepository
	window     time.Duration
	now        func() time.Time
}

// NewCheckEligibilityUseCase construye el caso de uso.
func NewCheckEligibilityUseCase(recordRepo repository.TransactionRecordRepository, window time.Duration, clock func() time.Time) *CheckEligibilityUseCase {
	if window <= 0 {
		window = domledger.EditWindow
	}
	if clock == nil {
		clock = time.Now
	}
	return &CheckEligibilityUseCase{recordRepo: recordRepo, window: window, now: clock}
}

// EligibilityView veredicto para el caller, con código de motivo específico.
type EligibilityView struct {
	Record *entity.TransactionRecord
	Result domledger.EligibilityResult
}

// Check evalúa el registro contra el libro actual de su ítem.
func (uc *CheckEligibilityUseCase) Check(recordID string) (*EligibilityView, error) {
	rec, err := uc.recordRepo.GetByID(recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrRecordNotFound
	}
	ledgerRecords, err := uc.recordRepo.ScanByItem(rec.ProjectID, rec.ItemName)
	if err != nil {
		return nil, err
	}
	res := domledger.CheckEligibility(rec, ledgerRecords, uc.now(), uc.window)
	return &EligibilityView{Record: rec, Result: res}, nil
}
