package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/obrasoft/almacen-api/internal/domain/entity"
)

// EditWindow es la ventana por defecto durante la cual un registro sigue siendo corregible.
const EditWindow = 24 * time.Hour

// Estados de elegibilidad. Se derivan en cada consulta, nunca se persisten.
type EligibilityStatus string

const (
	StatusEditable  EligibilityStatus = "ok"
	StatusExpired   EligibilityStatus = "expired"
	StatusProtected EligibilityStatus = "protected_by_later_outflow"
)

// EligibilityResult es el veredicto del chequeo más, para salidas editables,
// la cota superior que debe respetar la nueva cantidad.
type EligibilityResult struct {
	Status    EligibilityStatus
	Available *decimal.Decimal // solo para OUT/ADJUST_DECREASE editables
}

// Editable responde si el registro aún puede corregirse.
func (r EligibilityResult) Editable() bool { return r.Status == StatusEditable }

// CheckEligibility evalúa el estado de un registro contra el libro completo
// de su ítem. Reglas, en orden:
//
//  1. EXPIRED si now - timestamp > window.
//  2. PROTECTED si es una entrada (IN/ADJUST_INCREASE) con salidas posteriores
//     del mismo ítem: reducirla implicaría stock negativo retroactivo, así que
//     se rechaza en vez de recalcular en cascada.
//  3. EDITABLE en otro caso. Para salidas se calcula además el disponible
//     excluyendo la contribución del propio registro.
func CheckEligibility(rec *entity.TransactionRecord, records []*entity.TransactionRecord, now time.Time, window time.Duration) EligibilityResult {
	if window <= 0 {
		window = EditWindow
	}
	if now.Sub(rec.Timestamp) > window {
		return EligibilityResult{Status: StatusExpired}
	}
	if rec.IsInflow() && hasLaterOutflow(rec, records) {
		return EligibilityResult{Status: StatusProtected}
	}
	res := EligibilityResult{Status: StatusEditable}
	if rec.IsOutflow() {
		avail := SnapshotExcluding(rec.ProjectID, rec.ItemName, records, rec.ID).CurrentStock
		res.Available = &avail
	}
	return res
}

// hasLaterOutflow busca una salida del mismo ítem estrictamente posterior al
// registro. La cadena de ajustes del propio registro no cuenta: una
// corrección a la baja no debe bloquear la siguiente.
func hasLaterOutflow(rec *entity.TransactionRecord, records []*entity.TransactionRecord) bool {
	own := contributionOf(records, rec.ID)
	for _, r := range records {
		if r.ProjectID != rec.ProjectID || r.ItemName != rec.ItemName {
			continue
		}
		if _, ok := own[r.ID]; ok {
			continue
		}
		if r.IsOutflow() && r.Timestamp.After(rec.Timestamp) {
			return true
		}
	}
	return false
}
