package dto

import (
	"time"

	"github.com/obrasoft/almacen-api/internal/domain/entity"
)

// CreateProjectRequest body para POST /api/projects.
type CreateProjectRequest struct {
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

// ProjectDTO proyecto en respuestas.
type ProjectDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
}

// FromProject mapea la entidad al DTO.
func FromProject(p *entity.Project) ProjectDTO {
	return ProjectDTO{
		ID:        p.ID,
		Name:      p.Name,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		CreatedBy: p.CreatedBy,
	}
}
