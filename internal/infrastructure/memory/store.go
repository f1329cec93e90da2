// Package memory implementa el almacén de registros en memoria: los mismos
// puertos que la implementación PostgreSQL, respaldados por slices y mapas.
// Se usa en tests y como medio efímero de desarrollo.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/obrasoft/almacen-api/internal/application/ledger"
	"github.com/obrasoft/almacen-api/internal/domain"
	"github.com/obrasoft/almacen-api/internal/domain/entity"
	"github.com/obrasoft/almacen-api/internal/domain/repository"
)

// Store guarda el estado completo bajo un solo mutex. El orden de inserción
// se materializa en Seq, igual que el bigserial de la tabla real.
type Store struct {
	mu            sync.Mutex
	nextSeq       int64
	records       []*entity.TransactionRecord
	modifications []*entity.ModificationRecord
	stock         map[string]*entity.Stock // clave projectID + "\x00" + itemName
	projects      map[string]*entity.Project
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		stock:    make(map[string]*entity.Stock),
		projects: make(map[string]*entity.Project),
	}
}

func stockKey(projectID, itemName string) string { return projectID + "\x00" + itemName }

// Records devuelve el repositorio del libro de movimientos.
func (s *Store) Records() repository.TransactionRecordRepository { return &recordRepo{s: s} }

// Modifications devuelve el repositorio de la pista de auditoría.
func (s *Store) Modifications() repository.ModificationRecordRepository { return &modRepo{s: s} }

// Stock devuelve el repositorio de la fila materializada de stock.
func (s *Store) Stock() repository.StockRepository { return &stockRepo{s: s} }

// Projects devuelve el repositorio de proyectos.
func (s *Store) Projects() repository.ProjectRepository { return &projectRepo{s: s} }

// TxRunner devuelve un runner que serializa cada commit bajo el mutex del
// almacén. Los casos de uso validan todos los veredictos antes del primer
// append, así que aquí no hace falta deshacer escrituras.
func (s *Store) TxRunner() ledger.TxRunner { return &txRunner{s: s} }

type txRunner struct{ s *Store }

func (r *txRunner) Run(_ context.Context, fn func(
	recordRepo repository.TransactionRecordRepository,
	modRepo repository.ModificationRecordRepository,
	stockRepo repository.StockRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(&txRecordRepo{s: r.s}, &txModRepo{s: r.s}, &txStockRepo{s: r.s})
}

// ── Libro de movimientos ──────────────────────────────────────────────────────

type recordRepo struct{ s *Store }

func (r *recordRepo) Append(rec *entity.TransactionRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.append(rec)
}

func (r *recordRepo) ScanByProject(projectID string) ([]*entity.TransactionRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.scan(projectID, ""), nil
}

func (r *recordRepo) ScanByItem(projectID, itemName string) ([]*entity.TransactionRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.scan(projectID, itemName), nil
}

func (r *recordRepo) GetByID(id string) (*entity.TransactionRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.get(id), nil
}

func (r *recordRepo) UpdateQuantity(id string, newQuantity decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.updateQuantity(id, newQuantity)
}

func (r *recordRepo) List(projectID string, filter repository.RecordFilter) ([]*entity.TransactionRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.list(projectID, filter), nil
}

// txRecordRepo es la variante usada dentro de un TxRunner.Run: el mutex ya
// está tomado por el runner.
type txRecordRepo struct{ s *Store }

func (r *txRecordRepo) Append(rec *entity.TransactionRecord) error { return r.s.append(rec) }
func (r *txRecordRepo) ScanByProject(projectID string) ([]*entity.TransactionRecord, error) {
	return r.s.scan(projectID, ""), nil
}
func (r *txRecordRepo) ScanByItem(projectID, itemName string) ([]*entity.TransactionRecord, error) {
	return r.s.scan(projectID, itemName), nil
}
func (r *txRecordRepo) GetByID(id string) (*entity.TransactionRecord, error) {
	return r.s.get(id), nil
}
func (r *txRecordRepo) UpdateQuantity(id string, newQuantity decimal.Decimal) error {
	return r.s.updateQuantity(id, newQuantity)
}
func (r *txRecordRepo) List(projectID string, filter repository.RecordFilter) ([]*entity.TransactionRecord, error) {
	return r.s.list(projectID, filter), nil
}

func (s *Store) append(rec *entity.TransactionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	s.nextSeq++
	rec.Seq = s.nextSeq
	clone := *rec
	s.records = append(s.records, &clone)
	return nil
}

func (s *Store) scan(projectID, itemName string) []*entity.TransactionRecord {
	var out []*entity.TransactionRecord
	for _, r := range s.records {
		if r.ProjectID != projectID {
			continue
		}
		if itemName != "" && r.ItemName != itemName {
			continue
		}
		clone := *r
		out = append(out, &clone)
	}
	sortRecords(out)
	return out
}

func (s *Store) get(id string) *entity.TransactionRecord {
	for _, r := range s.records {
		if r.ID == id {
			clone := *r
			return &clone
		}
	}
	return nil
}

func (s *Store) updateQuantity(id string, newQuantity decimal.Decimal) error {
	for _, r := range s.records {
		if r.ID == id {
			q := newQuantity
			r.CorrectedQuantity = &q
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

func (s *Store) list(projectID string, filter repository.RecordFilter) []*entity.TransactionRecord {
	var out []*entity.TransactionRecord
	for _, r := range s.records {
		if r.ProjectID != projectID {
			continue
		}
		if filter.DateFrom != nil && r.Timestamp.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && r.Timestamp.After(*filter.DateTo) {
			continue
		}
		if filter.ItemName != "" && r.ItemName != filter.ItemName {
			continue
		}
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		clone := *r
		out = append(out, &clone)
	}
	sortRecords(out)
	return out
}

// sortRecords ordena por timestamp y, en empates, por secuencia de inserción.
func sortRecords(records []*entity.TransactionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].Seq < records[j].Seq
		}
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
}

// ── Pista de auditoría ────────────────────────────────────────────────────────

type modRepo struct{ s *Store }

func (r *modRepo) Create(mod *entity.ModificationRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.createMod(mod)
}

func (r *modRepo) ListByProject(projectID string) ([]*entity.ModificationRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.listMods(func(m *entity.ModificationRecord) bool { return m.ProjectID == projectID }), nil
}

func (r *modRepo) ListByRecord(originalTransactionID string) ([]*entity.ModificationRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.listMods(func(m *entity.ModificationRecord) bool {
		return m.OriginalTransactionID == originalTransactionID
	}), nil
}

type txModRepo struct{ s *Store }

func (r *txModRepo) Create(mod *entity.ModificationRecord) error { return r.s.createMod(mod) }
func (r *txModRepo) ListByProject(projectID string) ([]*entity.ModificationRecord, error) {
	return r.s.listMods(func(m *entity.ModificationRecord) bool { return m.ProjectID == projectID }), nil
}
func (r *txModRepo) ListByRecord(originalTransactionID string) ([]*entity.ModificationRecord, error) {
	return r.s.listMods(func(m *entity.ModificationRecord) bool {
		return m.OriginalTransactionID == originalTransactionID
	}), nil
}

func (s *Store) createMod(mod *entity.ModificationRecord) error {
	if mod.ID == "" {
		mod.ID = uuid.New().String()
	}
	clone := *mod
	s.modifications = append(s.modifications, &clone)
	return nil
}

func (s *Store) listMods(match func(*entity.ModificationRecord) bool) []*entity.ModificationRecord {
	var out []*entity.ModificationRecord
	for _, m := range s.modifications {
		if match(m) {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out
}

// ── Stock materializado ───────────────────────────────────────────────────────

type stockRepo struct{ s *Store }

func (r *stockRepo) Get(projectID, itemName string) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.getStock(projectID, itemName), nil
}

func (r *stockRepo) Upsert(stock *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.upsertStock(stock)
}

func (r *stockRepo) GetForUpdate(projectID, itemName string) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.getStock(projectID, itemName), nil
}

type txStockRepo struct{ s *Store }

func (r *txStockRepo) Get(projectID, itemName string) (*entity.Stock, error) {
	return r.s.getStock(projectID, itemName), nil
}
func (r *txStockRepo) Upsert(stock *entity.Stock) error { return r.s.upsertStock(stock) }
func (r *txStockRepo) GetForUpdate(projectID, itemName string) (*entity.Stock, error) {
	// El mutex del runner ya serializa todo el commit
	return r.s.getStock(projectID, itemName), nil
}

func (s *Store) getStock(projectID, itemName string) *entity.Stock {
	if st, ok := s.stock[stockKey(projectID, itemName)]; ok {
		clone := *st
		return &clone
	}
	return &entity.Stock{ProjectID: projectID, ItemName: itemName, Quantity: decimal.Zero}
}

func (s *Store) upsertStock(stock *entity.Stock) error {
	clone := *stock
	if clone.UpdatedAt.IsZero() {
		clone.UpdatedAt = time.Now()
	}
	s.stock[stockKey(stock.ProjectID, stock.ItemName)] = &clone
	return nil
}

// ── Proyectos ─────────────────────────────────────────────────────────────────

type projectRepo struct{ s *Store }

func (r *projectRepo) Create(project *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	clone := *project
	r.s.projects[project.ID] = &clone
	return nil
}

func (r *projectRepo) GetByID(id string) (*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.projects[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, nil
}

func (r *projectRepo) List() ([]*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
