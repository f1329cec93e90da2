package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ModificationRecord es la pista de auditoría de una corrección aceptada.
// Se crea exactamente una vez por corrección y nunca se modifica ni elimina.
type ModificationRecord struct {
	ID                    string
	ProjectID             string
	ModifiedAt            time.Time
	OriginalTransactionID string
	ItemName              string
	Category              string
	OperationType         string // operación del registro original
	OriginalDate          time.Time
	OriginalQuantity      decimal.Decimal
	NewQuantity           decimal.Decimal
	Delta                 decimal.Decimal // NewQuantity - OriginalQuantity
	Reason                string          // motivo estandarizado (ReasonInputError, ...)
	Notes                 string
	Actor                 string
}
