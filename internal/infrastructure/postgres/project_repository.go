package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/obrasoft/almacen-api/internal/domain/entity"
	"github.com/obrasoft/almacen-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación de proyectos sobre PostgreSQL.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

// Create persiste un proyecto nuevo.
func (r *ProjectRepo) Create(project *entity.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	query := `
		INSERT INTO projects (id, name, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.Name, nullable(project.Notes), project.CreatedAt, nullable(project.CreatedBy),
	)
	if err != nil {
		return wrapStoreErr("create project", err)
	}
	return nil
}

// GetByID obtiene un proyecto. Devuelve nil si no existe.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	query := `SELECT id, name, notes, created_at, created_by FROM projects WHERE id = $1`
	var p entity.Project
	var notes, createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &notes, &p.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get project", err)
	}
	p.Notes = deref(notes)
	p.CreatedBy = deref(createdBy)
	return &p, nil
}

// List lista todos los proyectos, más reciente primero.
func (r *ProjectRepo) List() ([]*entity.Project, error) {
	query := `SELECT id, name, notes, created_at, created_by FROM projects ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, wrapStoreErr("list projects", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		var p entity.Project
		var notes, createdBy *string
		if err := rows.Scan(&p.ID, &p.Name, &notes, &p.CreatedAt, &createdBy); err != nil {
			return nil, wrapStoreErr("list projects: scan", err)
		}
		p.Notes = deref(notes)
		p.CreatedBy = deref(createdBy)
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("list projects", err)
	}
	return list, nil
}
