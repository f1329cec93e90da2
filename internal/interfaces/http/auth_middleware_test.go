package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/obrasoft/almacen-api/internal/interfaces/http"
	pkgjwt "github.com/obrasoft/almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testActorID   = "00000000-0000-0000-0000-000000000001"
	testActorName = "Ana Torres"
	testIssuer    = "almacen-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con el AuthMiddleware y
// un handler dummy que devuelve la identidad cargada en locals.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protegido", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"actor_id":   apphttp.GetActorID(c),
			"actor_name": apphttp.GetActorName(c),
		})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (*http.Response, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]string
	_ = json.Unmarshal(body, &payload)
	return resp, payload
}

func validToken(t *testing.T) string {
	t.Helper()
	token, err := pkgjwt.Generate(testJWTSecret, testActorID, testActorName, testIssuer, testExpMin)
	require.NoError(t, err)
	return token
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValidoCargaElActor(t *testing.T) {
	app := buildTestApp()

	resp, payload := doRequest(t, app, "Bearer "+validToken(t))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, testActorID, payload["actor_id"])
	assert.Equal(t, testActorName, payload["actor_name"])
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp()

	resp, payload := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", payload["code"])
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp()

	resp, payload := doRequest(t, app, "Basic abc123")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", payload["code"])
}

func TestAuthMiddleware_TokenConFirmaIncorrecta(t *testing.T) {
	app := buildTestApp()
	token, err := pkgjwt.Generate("otro-secreto", testActorID, testActorName, testIssuer, testExpMin)
	require.NoError(t, err)

	resp, payload := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", payload["code"])
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp()
	token, err := pkgjwt.Generate(testJWTSecret, testActorID, testActorName, testIssuer, -1)
	require.NoError(t, err)

	resp, payload := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", payload["code"])
}

func TestAuthMiddleware_TokenSinActor(t *testing.T) {
	app := buildTestApp()
	token, err := pkgjwt.Generate(testJWTSecret, "", "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp, payload := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ACTOR", payload["code"])
}

func TestGetActorName_CaeAlIDSinNombre(t *testing.T) {
	app := buildTestApp()
	token, err := pkgjwt.Generate(testJWTSecret, testActorID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp, payload := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, testActorID, payload["actor_name"])
}

func TestJWT_GenerateParseRoundTrip(t *testing.T) {
	token := validToken(t)

	actorID, actorName, err := pkgjwt.Parse(testJWTSecret, token)
	require.NoError(t, err)
	assert.Equal(t, testActorID, actorID)
	assert.Equal(t, testActorName, actorName)

	_, _, err = pkgjwt.Parse("secreto-equivocado", token)
	assert.Error(t, err)
}
