package repository

import "github.com/obrasoft/almacen-api/internal/domain/entity"

// StockRepository define el puerto de la fila materializada de stock por
// (proyecto, ítem). Dentro de transacciones es el portador del bloqueo que
// serializa la ruta de commit sobre un mismo ítem.
type StockRepository interface {
	Get(projectID, itemName string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// GetForUpdate asegura que la fila exista y la bloquea (SELECT FOR UPDATE).
	GetForUpdate(projectID, itemName string) (*entity.Stock, error)
}
