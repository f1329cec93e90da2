package ledger

import (
	"github.com/obrasoft/almacen-api/internal/domain"
	"github.com/obrasoft/almacen-api/internal/domain/entity"
	domledger "github.com/obrasoft/almacen-api/internal/domain/ledger"
	"github.com/obrasoft/almacen-api/internal/domain/repository"
)

// SnapshotUseCase calcula la vista de stock actual de un ítem plegando el
// libro completo. Lectura idempotente: dos llamadas sin escrituras intermedias
// devuelven exactamente lo mismo.
type SnapshotUseCase struct {
	recordRepo  repository.TransactionRecordRepository
	projectRepo repository.ProjectRepository
}

// NewSnapshotUseCase construye el caso de uso.
func NewSnapshotUseCase(recordRepo repository.TransactionRecordRepository, projectRepo repository.ProjectRepository) *SnapshotUseCase {
	return &SnapshotUseCase{recordRepo: recordRepo, projectRepo: projectRepo}
}

// Snapshot devuelve el stock derivado de un ítem del proyecto.
func (uc *SnapshotUseCase) Snapshot(projectID, itemName string) (*entity.StockSnapshot, error) {
	if projectID == "" || itemName == "" {
		return nil, domain.ErrInvalidInput
	}
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	records, err := uc.recordRepo.ScanByItem(projectID, itemName)
	if err != nil {
		return nil, err
	}
	snap := domledger.Snapshot(projectID, itemName, records)
	return &snap, nil
}
