package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/scheduler-admin/internal/chrome"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests descriptor de barra superior por petición
// ──────────────────────────────────────────────────────────────────────────────

func testViews(t *testing.T) *html.Engine {
	t.Helper()
	engine := html.New("../../../web/templates", ".html")
	engine.AddFunc("fmtDate", func(tm time.Time) string {
		if tm.IsZero() {
			return "—"
		}
		return tm.Format("02/01/2006")
	})
	engine.AddFunc("hasPrefix", strings.HasPrefix)
	engine.AddFunc("add", func(a, b int) int { return a + b })
	engine.AddFunc("sub", func(a, b int) int { return a - b })
	return engine
}

// render pinta el descriptor fijado por el handler de la propia petición: un
// Set de otra petición concurrente entre setChrome y render no debe colar el
// título ni los filtros de otra página en esta.
func TestRender_UsaElDescriptorDeLaPropiaPeticion(t *testing.T) {
	store := chrome.NewStore()
	base := &Base{Chrome: store}

	app := fiber.New(fiber.Config{Views: testViews(t)})
	app.Get("/perfis", func(c *fiber.Ctx) error {
		base.setChrome(c, chrome.Descriptor{Title: "Perfis"})
		// Otra petición escribe el almacén global antes de este render.
		store.Set(chrome.Descriptor{Title: "Outra página"})
		return base.render(c, "roles", fiber.Map{})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/perfis", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "<title>Perfis — Scheduler Admin</title>")
	assert.Contains(t, string(body), `<h1 class="topbar-title">Perfis</h1>`)
	assert.NotContains(t, string(body), "Outra página")
}

// Sin descriptor local (render fuera de un handler de página) se cae al más
// reciente del almacén.
func TestRender_SinDescriptorLocalCaeAlMasReciente(t *testing.T) {
	store := chrome.NewStore()
	store.Set(chrome.Descriptor{Title: "Contagens"})
	base := &Base{Chrome: store}

	app := fiber.New(fiber.Config{Views: testViews(t)})
	app.Get("/", func(c *fiber.Ctx) error {
		return base.render(c, "roles", fiber.Map{})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `<h1 class="topbar-title">Contagens</h1>`)
}
