package ledger

import (
	"context"

	"github.com/obrasoft/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén de
// registros, pasando repositorios atados a esa transacción. Garantiza que un
// commit del motor (movimiento o corrección) sea todo-o-nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		recordRepo repository.TransactionRecordRepository,
		modRepo repository.ModificationRecordRepository,
		stockRepo repository.StockRepository,
	) error) error
}
