package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/obrasoft/almacen-api/internal/domain/entity"
	"github.com/obrasoft/almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de la fila materializada de stock sobre PostgreSQL
// (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la fila de stock de un ítem. Sin fila devuelve cantidad cero.
func (r *StockRepo) Get(projectID, itemName string) (*entity.Stock, error) {
	query := `
		SELECT project_id, item_name, quantity, updated_at
		FROM stock WHERE project_id = $1 AND item_name = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, projectID, itemName).Scan(
		&s.ProjectID, &s.ItemName, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProjectID: projectID, ItemName: itemName, Quantity: decimal.Zero}, nil
		}
		return nil, wrapStoreErr("get stock", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad materializada (por proyecto e ítem).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (project_id, item_name, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (project_id, item_name)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProjectID, stock.ItemName, stock.Quantity)
	if err != nil {
		return wrapStoreErr("upsert stock", err)
	}
	return nil
}

// GetForUpdate asegura que la fila exista y la bloquea (SELECT FOR UPDATE).
// El primer movimiento de un ítem también queda serializado: el INSERT previo
// garantiza que siempre hay fila que bloquear.
func (r *StockRepo) GetForUpdate(projectID, itemName string) (*entity.Stock, error) {
	ensure := `
		INSERT INTO stock (project_id, item_name, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (project_id, item_name) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), ensure, projectID, itemName); err != nil {
		return nil, wrapStoreErr("ensure stock row", err)
	}
	query := `
		SELECT project_id, item_name, quantity, updated_at
		FROM stock WHERE project_id = $1 AND item_name = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, projectID, itemName).Scan(
		&s.ProjectID, &s.ItemName, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, wrapStoreErr("get stock for update", err)
	}
	return &s, nil
}
