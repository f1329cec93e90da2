package repository

import "github.com/obrasoft/almacen-api/internal/domain/entity"

// ProjectRepository define el puerto de persistencia de proyectos.
type ProjectRepository interface {
	Create(project *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	List() ([]*entity.Project, error)
}
