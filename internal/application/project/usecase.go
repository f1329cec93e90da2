package project

import (
	"time"

	"github.com/obrasoft/almacen-api/internal/domain"
	"github.com/obrasoft/almacen-api/internal/domain/entity"
	"github.com/obrasoft/almacen-api/internal/domain/repository"
)

// UseCase administra proyectos (el ámbito de cada libro de movimientos).
type UseCase struct {
	repo repository.ProjectRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso. clock nil usa time.Now.
func NewUseCase(repo repository.ProjectRepository, clock func() time.Time) *UseCase {
	if clock == nil {
		clock = time.Now
	}
	return &UseCase{repo: repo, now: clock}
}

// Create registra un proyecto nuevo.
func (uc *UseCase) Create(name, notes, actor string) (*entity.Project, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Project{
		Name:      name,
		Notes:     notes,
		CreatedAt: uc.now(),
		CreatedBy: actor,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID obtiene un proyecto.
func (uc *UseCase) GetByID(id string) (*entity.Project, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// List lista todos los proyectos.
func (uc *UseCase) List() ([]*entity.Project, error) {
	return uc.repo.List()
}
