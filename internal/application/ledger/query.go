package ledger

import (
	"time"

	"github.com/obrasoft/almacen-api/internal/domain"
	"github.com/obrasoft/almacen-api/internal/domain/entity"
	domledger "github.com/obrasoft/almacen-api/internal/domain/ledger"
	"github.com/obrasoft/almacen-api/internal/domain/repository"
)

// QueryUseCase responde consultas acotadas del motor de reportes: filtro
// AND-combinado, contadores agregados y huecos de fechas. Lecturas sin
// bloqueo: tolera leer el almacén a mitad de un append.
type QueryUseCase struct {
	recordRepo  repository.TransactionRecordRepository
	modRepo     repository.ModificationRecordRepository
	projectRepo repository.ProjectRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(recordRepo repository.TransactionRecordRepository, modRepo repository.ModificationRecordRepository, projectRepo repository.ProjectRepository) *QueryUseCase {
	return &QueryUseCase{recordRepo: recordRepo, modRepo: modRepo, projectRepo: projectRepo}
}

// QueryInput filtros opcionales; un límite ausente acepta todo.
// DateFrom y DateTo son fechas calendario inclusivas.
type QueryInput struct {
	ProjectID string
	DateFrom  *time.Time
	DateTo    *time.Time
	ItemName  string
	Category  string
}

// QueryResult registros filtrados más agregados y fechas faltantes.
type QueryResult struct {
	Records      []*entity.TransactionRecord
	Totals       domledger.ReportTotals
	MissingDates []time.Time
}

// Query filtra el libro del proyecto. DateTo se extiende implícitamente a las
// 23:59:59 de ese día para que el límite sea inclusivo.
func (uc *QueryUseCase) Query(input QueryInput) (*QueryResult, error) {
	if input.ProjectID == "" {
		return nil, domain.ErrInvalidInput
	}
	project, err := uc.projectRepo.GetByID(input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	filter := repository.RecordFilter{
		DateFrom: input.DateFrom,
		ItemName: input.ItemName,
		Category: input.Category,
	}
	if input.DateTo != nil {
		end := endOfDay(*input.DateTo)
		filter.DateTo = &end
	}

	records, err := uc.recordRepo.List(input.ProjectID, filter)
	if err != nil {
		return nil, err
	}
	return &QueryResult{
		Records:      records,
		Totals:       domledger.Aggregate(records),
		MissingDates: domledger.MissingDates(records),
	}, nil
}

// ListModifications devuelve la pista de auditoría del proyecto.
func (uc *QueryUseCase) ListModifications(projectID string) ([]*entity.ModificationRecord, error) {
	if projectID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.modRepo.ListByProject(projectID)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
