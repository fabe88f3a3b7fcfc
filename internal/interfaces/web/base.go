// Package web contiene el router Fiber, los guards de sesión y los handlers
// de página del cliente de administración. Cada página sigue el mismo
// contrato: sobrescribir el descriptor de la barra superior, pedir sus datos
// upstream y renderizar; las mutaciones re-renderizan con el modal abierto
// cuando el upstream falla.
package web

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scheduler-admin/internal/chrome"
	"github.com/jhoicas/scheduler-admin/internal/domain"
	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
	"github.com/jhoicas/scheduler-admin/internal/listing"
	"github.com/jhoicas/scheduler-admin/internal/session"
	"github.com/jhoicas/scheduler-admin/pkg/config"
	"github.com/jhoicas/scheduler-admin/pkg/logger"
)

// Locals keys para la sesión resuelta por el middleware.
const (
	LocalSessionID = "session_id"
	LocalSession   = "session"
)

// localChrome descriptor de barra superior fijado por el handler de esta
// petición.
const localChrome = "chrome"

const flashCookie = "scheduler_flash"

// Base dependencias y helpers compartidos por todos los handlers de página.
type Base struct {
	Chrome   *chrome.Store
	Sessions *session.Store
	Cookie   config.SessionConfig
	Log      *logger.Logger
}

// currentSession devuelve la sesión resuelta por el middleware; la segunda
// salida es false en rutas públicas o cookies inválidas.
func currentSession(c *fiber.Ctx) (entity.Session, bool) {
	sess, ok := c.Locals(LocalSession).(entity.Session)
	return sess, ok
}

// currentSessionID devuelve el ID de sesión de la cookie, si lo hay.
func currentSessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalSessionID).(string)
	return id
}

// setChrome fija el descriptor de la página: queda como "más reciente" en el
// almacén y, además, en los locals de la petición. render lee la copia local,
// de modo que un Set de otra petición concurrente nunca pinta esta página con
// el título o los filtros de otra.
func (b *Base) setChrome(c *fiber.Ctx, d chrome.Descriptor) {
	c.Locals(localChrome, b.Chrome.Set(d))
}

// render renderiza una vista dentro del layout principal, inyectando el
// descriptor de la barra superior de esta petición y el estado común de la
// shell.
func (b *Base) render(c *fiber.Ctx, view string, data fiber.Map) error {
	sess, _ := currentSession(c)
	desc, ok := c.Locals(localChrome).(chrome.Descriptor)
	if !ok {
		desc = b.Chrome.Current()
	}
	bind := fiber.Map{
		"Chrome":      desc,
		"Session":     sess,
		"Flash":       takeFlash(c),
		"DebounceMs":  listing.SearchDebounce.Milliseconds(),
		"Breakpoint":  chrome.SidebarBreakpoint,
		"Path":        c.Path(),
		"QueryString": string(c.Request().URI().QueryString()),
		"OpenModal":   "", // id del modal a abrir tras una mutación fallida
	}
	for k, v := range data {
		bind[k] = v
	}
	return c.Render(view, bind, "layouts/main")
}

// renderBare renderiza una vista de sesión (login, register...) sin layout.
func (b *Base) renderBare(c *fiber.Ctx, view string, data fiber.Map) error {
	bind := fiber.Map{"Flash": takeFlash(c)}
	for k, v := range data {
		bind[k] = v
	}
	return c.Render(view, bind)
}

// expireSession interceptor central de 401/403 upstream: cierra la sesión,
// borra la cookie y redirige a login con aviso. Las páginas no tienen que
// tratar la expiración una a una.
func (b *Base) expireSession(c *fiber.Ctx) error {
	if id := currentSessionID(c); id != "" {
		b.Sessions.Logout(id)
	}
	clearSessionCookie(c, b.Cookie.CookieName)
	setFlash(c, "Sessão expirada. Inicie sessão novamente.")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// isUnauthorized azúcar sobre errors.Is.
func isUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}

// upstreamMessage mensaje a mostrar en la UI para un error upstream.
func upstreamMessage(err error, fallback string) string {
	if ue, ok := domain.AsUpstream(err); ok {
		return ue.UserMessage(fallback)
	}
	return fallback
}

// queryFrom lee el estado de listado de la URL (search, filter, page, limit).
func queryFrom(c *fiber.Ctx, defaultLimit int) listing.Query {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return listing.NewQuery(c.Query("search"), c.Query("filter"), page, limit, defaultLimit)
}

// setFlash guarda un mensaje efímero que la siguiente página consumirá.
// El valor viaja URL-encoded porque las cookies no admiten espacios.
func setFlash(c *fiber.Ctx, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(time.Minute),
	})
}

// takeFlash lee y borra el mensaje efímero.
func takeFlash(c *fiber.Ctx) string {
	msg, _ := url.QueryUnescape(c.Cookies(flashCookie))
	if msg != "" {
		c.Cookie(&fiber.Cookie{
			Name:     flashCookie,
			Value:    "",
			Path:     "/",
			HTTPOnly: true,
			Expires:  time.Now().Add(-time.Hour),
		})
	}
	return msg
}

func clearSessionCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
}
