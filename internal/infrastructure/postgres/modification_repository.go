package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/obrasoft/almacen-api/internal/domain/entity"
	"github.com/obrasoft/almacen-api/internal/domain/repository"
)

var _ repository.ModificationRecordRepository = (*ModificationRecordRepo)(nil)

const modificationColumns = `id, project_id, modified_at, original_transaction_id, item_name, category,
		operation_type, original_date, original_quantity, new_quantity, delta, reason, notes, actor`

// ModificationRecordRepo implementación de la pista de auditoría sobre
// PostgreSQL. Solo INSERT y SELECT: la tabla no conoce UPDATE ni DELETE.
type ModificationRecordRepo struct {
	q Querier
}

// NewModificationRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewModificationRecordRepository(q Querier) *ModificationRecordRepo {
	return &ModificationRecordRepo{q: q}
}

// Create persiste una entrada de auditoría.
func (r *ModificationRecordRepo) Create(mod *entity.ModificationRecord) error {
	if mod.ID == "" {
		mod.ID = uuid.New().String()
	}
	query := `
		INSERT INTO modification_records (id, project_id, modified_at, original_transaction_id, item_name, category, operation_type, original_date, original_quantity, new_quantity, delta, reason, notes, actor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		mod.ID, mod.ProjectID, mod.ModifiedAt, mod.OriginalTransactionID,
		mod.ItemName, nullable(mod.Category), mod.OperationType, mod.OriginalDate,
		mod.OriginalQuantity, mod.NewQuantity, mod.Delta, mod.Reason,
		nullable(mod.Notes), nullable(mod.Actor),
	)
	if err != nil {
		return wrapStoreErr("create modification record", err)
	}
	return nil
}

// ListByProject lista la auditoría de un proyecto, más reciente primero.
func (r *ModificationRecordRepo) ListByProject(projectID string) ([]*entity.ModificationRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM modification_records
		WHERE project_id = $1
		ORDER BY modified_at DESC`, modificationColumns)
	return r.queryMods("list modifications by project", query, projectID)
}

// ListByRecord lista las correcciones aplicadas sobre un registro.
func (r *ModificationRecordRepo) ListByRecord(originalTransactionID string) ([]*entity.ModificationRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM modification_records
		WHERE original_transaction_id = $1
		ORDER BY modified_at`, modificationColumns)
	return r.queryMods("list modifications by record", query, originalTransactionID)
}

func (r *ModificationRecordRepo) queryMods(op, query string, args ...any) ([]*entity.ModificationRecord, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, wrapStoreErr(op, err)
	}
	defer rows.Close()
	var list []*entity.ModificationRecord
	for rows.Next() {
		var m entity.ModificationRecord
		var category, notes, actor *string
		if err := rows.Scan(
			&m.ID, &m.ProjectID, &m.ModifiedAt, &m.OriginalTransactionID,
			&m.ItemName, &category, &m.OperationType, &m.OriginalDate,
			&m.OriginalQuantity, &m.NewQuantity, &m.Delta, &m.Reason,
			&notes, &actor,
		); err != nil {
			return nil, wrapStoreErr(op+": scan", err)
		}
		m.Category = deref(category)
		m.Notes = deref(notes)
		m.Actor = deref(actor)
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr(op, err)
	}
	return list, nil
}
