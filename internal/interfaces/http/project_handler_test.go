package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_CicloDeProyecto(t *testing.T) {
	f := newAPIFixture(t)

	resp, payload := f.do(t, http.MethodPost, "/api/projects/", map[string]any{
		"name": "Bodega Norte", "notes": "obra calle 80",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	projectID := payload["id"].(string)
	assert.Equal(t, "Bodega Norte", payload["name"])
	assert.Equal(t, testActorName, payload["created_by"])

	resp, payload = f.do(t, http.MethodGet, "/api/projects/"+projectID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "obra calle 80", payload["notes"])

	resp, payload = f.do(t, http.MethodGet, "/api/projects/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), payload["total"])
}

func TestAPI_ProyectoSinNombreDevuelve400(t *testing.T) {
	f := newAPIFixture(t)

	resp, payload := f.do(t, http.MethodPost, "/api/projects/", map[string]any{"notes": "sin nombre"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", payload["code"])
}

func TestAPI_ObtenerProyectoInexistente(t *testing.T) {
	f := newAPIFixture(t)

	resp, payload := f.do(t, http.MethodGet, "/api/projects/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", payload["code"])
}
