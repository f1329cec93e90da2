package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/obrasoft/almacen-api/internal/domain"
	"github.com/obrasoft/almacen-api/internal/domain/entity"
	"github.com/obrasoft/almacen-api/internal/domain/repository"
)

var _ repository.TransactionRecordRepository = (*TransactionRecordRepo)(nil)

const transactionColumns = `id, seq, project_id, item_name, category, operation, quantity,
		corrected_quantity, timestamp, counterparty, shelf_life_days, notes, reference_id, created_by`

// TransactionRecordRepo implementación del libro de movimientos sobre
// PostgreSQL (usable con pool o tx). La secuencia seq la asigna la base
// (bigserial) y fija el orden de inserción ante timestamps empatados.
type TransactionRecordRepo struct {
	q Querier
}

// NewTransactionRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRecordRepository(q Querier) *TransactionRecordRepo {
	return &TransactionRecordRepo{q: q}
}

// Append persiste un registro nuevo; nunca escribe parcial (una sola fila, un INSERT).
func (r *TransactionRecordRepo) Append(record *entity.TransactionRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transaction_records (id, project_id, item_name, category, operation, quantity, timestamp, counterparty, shelf_life_days, notes, reference_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING seq`
	referenceID := (*string)(nil)
	if record.ReferenceID != "" {
		referenceID = &record.ReferenceID
	}
	err := r.q.QueryRow(context.Background(), query,
		record.ID, record.ProjectID, record.ItemName, record.Category, record.Operation,
		record.Quantity, record.Timestamp, nullable(record.Counterparty),
		record.ShelfLifeDays, nullable(record.Notes), referenceID, nullable(record.CreatedBy),
	).Scan(&record.Seq)
	if err != nil {
		return wrapStoreErr("append transaction record", err)
	}
	return nil
}

// ScanByProject devuelve el libro completo del proyecto, ordenado por
// timestamp y secuencia de inserción en empates.
func (r *TransactionRecordRepo) ScanByProject(projectID string) ([]*entity.TransactionRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transaction_records
		WHERE project_id = $1
		ORDER BY timestamp, seq`, transactionColumns)
	return r.queryRecords("scan by project", query, projectID)
}

// ScanByItem devuelve el libro de un ítem del proyecto en el mismo orden.
func (r *TransactionRecordRepo) ScanByItem(projectID, itemName string) ([]*entity.TransactionRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transaction_records
		WHERE project_id = $1 AND item_name = $2
		ORDER BY timestamp, seq`, transactionColumns)
	return r.queryRecords("scan by item", query, projectID, itemName)
}

// GetByID obtiene un registro por ID. Devuelve nil si no existe.
func (r *TransactionRecordRepo) GetByID(id string) (*entity.TransactionRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM transaction_records WHERE id = $1`, transactionColumns)
	row := r.q.QueryRow(context.Background(), query, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get transaction record", err)
	}
	return rec, nil
}

// UpdateQuantity fija la cantidad corregida (solo display). La cantidad
// canónica y el resto de la fila no se tocan jamás.
func (r *TransactionRecordRepo) UpdateQuantity(id string, newQuantity decimal.Decimal) error {
	query := `UPDATE transaction_records SET corrected_quantity = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, newQuantity)
	if err != nil {
		return wrapStoreErr("update corrected quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// List filtra el libro de un proyecto con predicados AND-combinados; un
// límite ausente acepta todo.
func (r *TransactionRecordRepo) List(projectID string, filter repository.RecordFilter) ([]*entity.TransactionRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM transaction_records WHERE project_id = $1`, transactionColumns)
	args := []any{projectID}
	pos := 2
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", pos)
		args = append(args, *filter.DateFrom)
		pos++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", pos)
		args = append(args, *filter.DateTo)
		pos++
	}
	if filter.ItemName != "" {
		query += fmt.Sprintf(" AND item_name = $%d", pos)
		args = append(args, filter.ItemName)
		pos++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}
	query += " ORDER BY timestamp, seq"
	return r.queryRecords("list records", query, args...)
}

func (r *TransactionRecordRepo) queryRecords(op, query string, args ...any) ([]*entity.TransactionRecord, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, wrapStoreErr(op, err)
	}
	defer rows.Close()
	var list []*entity.TransactionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, wrapStoreErr(op+": scan", err)
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr(op, err)
	}
	return list, nil
}

func scanRecord(row pgx.Row) (*entity.TransactionRecord, error) {
	var rec entity.TransactionRecord
	var category, counterparty, notes, referenceID, createdBy *string
	err := row.Scan(
		&rec.ID, &rec.Seq, &rec.ProjectID, &rec.ItemName, &category, &rec.Operation,
		&rec.Quantity, &rec.CorrectedQuantity, &rec.Timestamp, &counterparty,
		&rec.ShelfLifeDays, &notes, &referenceID, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	rec.Category = deref(category)
	rec.Counterparty = deref(counterparty)
	rec.Notes = deref(notes)
	rec.ReferenceID = deref(referenceID)
	rec.CreatedBy = deref(createdBy)
	return &rec, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
