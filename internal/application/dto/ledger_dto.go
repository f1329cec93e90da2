package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/obrasoft/almacen-api/internal/domain/entity"
	"github.com/obrasoft/almacen-api/internal/domain/ledger"
)

// RecordMovementRequest body para POST /api/projects/:id/movements.
type RecordMovementRequest struct {
	ItemName      string          `json:"item_name"`
	Category      string          `json:"category,omitempty"`
	Operation     string          `json:"operation"` // IN u OUT
	Quantity      decimal.Decimal `json:"quantity"`
	Counterparty  string          `json:"counterparty,omitempty"` // obligatorio en OUT
	Notes         string          `json:"notes,omitempty"`
	ShelfLifeDays *int            `json:"shelf_life_days,omitempty"`
}

// CorrectionRequest body para POST /api/ledger/records/:id/corrections.
type CorrectionRequest struct {
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Reason      string          `json:"reason"`
	Notes       string          `json:"notes,omitempty"`
}

// TransactionRecordDTO fila del libro en respuestas.
type TransactionRecordDTO struct {
	ID                string           `json:"id"`
	ProjectID         string           `json:"project_id"`
	ItemName          string           `json:"item_name"`
	Category          string           `json:"category,omitempty"`
	Operation         string           `json:"operation"`
	Quantity          decimal.Decimal  `json:"quantity"`
	CorrectedQuantity *decimal.Decimal `json:"corrected_quantity,omitempty"`
	Timestamp         time.Time        `json:"timestamp"`
	Counterparty      string           `json:"counterparty,omitempty"`
	ShelfLifeDays     *int             `json:"shelf_life_days,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	ReferenceID       string           `json:"reference_id,omitempty"`
	CreatedBy         string           `json:"created_by,omitempty"`
}

// FromTransactionRecord mapea la entidad al DTO de respuesta.
func FromTransactionRecord(r *entity.TransactionRecord) TransactionRecordDTO {
	return TransactionRecordDTO{
		ID:                r.ID,
		ProjectID:         r.ProjectID,
		ItemName:          r.ItemName,
		Category:          r.Category,
		Operation:         r.Operation,
		Quantity:          r.Quantity,
		CorrectedQuantity: r.CorrectedQuantity,
		Timestamp:         r.Timestamp,
		Counterparty:      r.Counterparty,
		ShelfLifeDays:     r.ShelfLifeDays,
		Notes:             r.Notes,
		ReferenceID:       r.ReferenceID,
		CreatedBy:         r.CreatedBy,
	}
}

// FromTransactionRecords mapea una secuencia completa.
func FromTransactionRecords(records []*entity.TransactionRecord) []TransactionRecordDTO {
	out := make([]TransactionRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, FromTransactionRecord(r))
	}
	return out
}

// StockSnapshotDTO vista derivada de stock de un ítem.
type StockSnapshotDTO struct {
	ProjectID     string          `json:"project_id"`
	ItemName      string          `json:"item_name"`
	IncomingTotal decimal.Decimal `json:"incoming_total"`
	OutgoingTotal decimal.Decimal `json:"outgoing_total"`
	IncreaseTotal decimal.Decimal `json:"increase_total"`
	DecreaseTotal decimal.Decimal `json:"decrease_total"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
}

// FromStockSnapshot mapea la vista derivada.
func FromStockSnapshot(s *entity.StockSnapshot) StockSnapshotDTO {
	return StockSnapshotDTO{
		ProjectID:     s.ProjectID,
		ItemName:      s.ItemName,
		IncomingTotal: s.IncomingTotal,
		OutgoingTotal: s.OutgoingTotal,
		IncreaseTotal: s.IncreaseTotal,
		DecreaseTotal: s.DecreaseTotal,
		CurrentStock:  s.CurrentStock,
	}
}

// EligibilityResponse veredicto de elegibilidad con cota de disponible.
type EligibilityResponse struct {
	RecordID  string           `json:"record_id"`
	Status    string           `json:"status"` // ok | expired | protected_by_later_outflow
	Available *decimal.Decimal `json:"available_if_outflow,omitempty"`
}

// ReportTotalsDTO contadores agregados de una consulta.
type ReportTotalsDTO struct {
	TotalIn  decimal.Decimal `json:"total_in"`
	TotalOut decimal.Decimal `json:"total_out"`
	Net      decimal.Decimal `json:"net"`
	InCount  int             `json:"in_count"`
	OutCount int             `json:"out_count"`
}

// FromReportTotals mapea los agregados.
func FromReportTotals(t ledger.ReportTotals) ReportTotalsDTO {
	return ReportTotalsDTO{
		TotalIn:  t.TotalIn,
		TotalOut: t.TotalOut,
		Net:      t.Net,
		InCount:  t.InCount,
		OutCount: t.OutCount,
	}
}

// QueryResponse respuesta de GET /api/projects/:id/records.
type QueryResponse struct {
	Records      []TransactionRecordDTO `json:"records"`
	Aggregate    ReportTotalsDTO        `json:"aggregate"`
	MissingDates []string               `json:"missing_dates,omitempty"` // YYYY-MM-DD
}

// ModificationRecordDTO fila de la pista de auditoría.
type ModificationRecordDTO struct {
	ID                    string          `json:"id"`
	ProjectID             string          `json:"project_id"`
	ModifiedAt            time.Time       `json:"modified_at"`
	OriginalTransactionID string          `json:"original_transaction_id"`
	ItemName              string          `json:"item_name"`
	Category              string          `json:"category,omitempty"`
	OperationType         string          `json:"operation_type"`
	OriginalDate          time.Time       `json:"original_date"`
	OriginalQuantity      decimal.Decimal `json:"original_quantity"`
	NewQuantity           decimal.Decimal `json:"new_quantity"`
	Delta                 decimal.Decimal `json:"delta"`
	Reason                string          `json:"reason"`
	Notes                 string          `json:"notes,omitempty"`
	Actor                 string          `json:"actor"`
}

// FromModificationRecord mapea la entidad de auditoría.
func FromModificationRecord(m *entity.ModificationRecord) ModificationRecordDTO {
	return ModificationRecordDTO{
		ID:                    m.ID,
		ProjectID:             m.ProjectID,
		ModifiedAt:            m.ModifiedAt,
		OriginalTransactionID: m.OriginalTransactionID,
		ItemName:              m.ItemName,
		Category:              m.Category,
		OperationType:         m.OperationType,
		OriginalDate:          m.OriginalDate,
		OriginalQuantity:      m.OriginalQuantity,
		NewQuantity:           m.NewQuantity,
		Delta:                 m.Delta,
		Reason:                m.Reason,
		Notes:                 m.Notes,
		Actor:                 m.Actor,
	}
}
