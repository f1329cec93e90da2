package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/obrasoft/almacen-api/internal/application/dto"
	"github.com/obrasoft/almacen-api/internal/application/project"
	"github.com/obrasoft/almacen-api/internal/domain"
)

// ProjectHandler maneja las peticiones HTTP de proyectos.
type ProjectHandler struct {
	uc *project.UseCase
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *project.UseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proyecto
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "name, notes"
// @Success      201   {object}  dto.ProjectDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.Create(in.Name, in.Notes, GetActorName(c))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromProject(p))
}

// List godoc
// @Summary      Listar proyectos
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.uc.List()
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.ProjectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, dto.FromProject(p))
	}
	return c.JSON(fiber.Map{"total": len(out), "projects": out})
}

// GetByID godoc
// @Summary      Obtener proyecto
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proyecto no encontrado"})
		}
		return ledgerError(c, err)
	}
	return c.JSON(dto.FromProject(p))
}
