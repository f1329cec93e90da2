package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock es la fila materializada del stock de un ítem en un proyecto.
// Sirve como portador del bloqueo por (proyecto, ítem) en la ruta de commit
// y como caché de consulta; las decisiones de commit siempre repliegan el libro.
type Stock struct {
	ProjectID string
	ItemName  string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
