package repository

import "github.com/obrasoft/almacen-api/internal/domain/entity"

// ModificationRecordRepository define el puerto de la pista de auditoría
// (append-only: no hay update ni delete).
type ModificationRecordRepository interface {
	Create(mod *entity.ModificationRecord) error
	ListByProject(projectID string) ([]*entity.ModificationRecord, error)
	ListByRecord(originalTransactionID string) ([]*entity.ModificationRecord, error)
}
