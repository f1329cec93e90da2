package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operaciones del libro de movimientos (conjunto cerrado).
// Los ajustes nacen solo del motor de correcciones, nunca como IN/OUT planos.
const (
	OperationIN             = "IN"              // entrada al proyecto
	OperationOUT            = "OUT"             // salida (requiere destinatario)
	OperationAdjustIncrease = "ADJUST_INCREASE" // ajuste que suma stock
	OperationAdjustDecrease = "ADJUST_DECREASE" // ajuste que resta stock
)

// Motivos estandarizados de una corrección.
const (
	ReasonInputError    = "input-error-correction" // error de digitación
	ReasonRecount       = "recount"                // reconteo físico
	ReasonDamageLoss    = "damage/loss"            // daño o pérdida
	ReasonExtraQuantity = "additional-quantity"    // cantidad adicional
	ReasonOther         = "other"
)

// ValidOperation indica si op pertenece al conjunto cerrado de operaciones.
func ValidOperation(op string) bool {
	switch op {
	case OperationIN, OperationOUT, OperationAdjustIncrease, OperationAdjustDecrease:
		return true
	}
	return false
}

// ValidReason indica si reason es uno de los motivos estandarizados.
func ValidReason(reason string) bool {
	switch reason {
	case ReasonInputError, ReasonRecount, ReasonDamageLoss, ReasonExtraQuantity, ReasonOther:
		return true
	}
	return false
}

// TransactionRecord es una anotación inmutable del libro de movimientos de un proyecto.
// Una vez agregada, Operation, Timestamp, ItemName y ProjectID nunca cambian; Quantity
// es la cantidad canónica original y tampoco se reescribe. La única mutación permitida
// es CorrectedQuantity (solo presentación), vía el motor de correcciones.
type TransactionRecord struct {
	ID                string
	Seq               int64 // secuencia de inserción dentro del proyecto (desempate de orden)
	ProjectID         string
	ItemName          string
	Category          string
	Operation         string
	Quantity          decimal.Decimal  // cantidad canónica, positiva
	CorrectedQuantity *decimal.Decimal // solo display; la delta vive en el registro de ajuste
	Timestamp         time.Time
	Counterparty      string // destinatario (obligatorio en OUT)
	ShelfLifeDays     *int   // vida útil heredada del IN de origen
	Notes             string
	ReferenceID       string // id del registro que este ajuste corrige (vacío si no es ajuste)
	CreatedBy         string // actor
}

// EffectiveQuantity devuelve la cantidad a mostrar: la corregida si existe, si no la original.
func (r *TransactionRecord) EffectiveQuantity() decimal.Decimal {
	if r.CorrectedQuantity != nil {
		return *r.CorrectedQuantity
	}
	return r.Quantity
}

// IsInflow indica si la operación suma stock al proyecto.
func (r *TransactionRecord) IsInflow() bool {
	return r.Operation == OperationIN || r.Operation == OperationAdjustIncrease
}

// IsOutflow indica si la operación resta stock al proyecto.
func (r *TransactionRecord) IsOutflow() bool {
	return r.Operation == OperationOUT || r.Operation == OperationAdjustDecrease
}
