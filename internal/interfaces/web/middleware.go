package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scheduler-admin/internal/session"
	"github.com/jhoicas/scheduler-admin/pkg/config"
	"github.com/jhoicas/scheduler-admin/pkg/token"
)

// ResolveSession middleware global: valida la cookie firmada y, si el ID
// referencia una sesión almacenada, carga sesión e ID en c.Locals. Nunca
// rechaza por sí mismo; eso es cosa de los guards.
func ResolveSession(sessions *session.Store, cookieCfg config.SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(cookieCfg.CookieName)
		if raw == "" {
			return c.Next()
		}
		id, err := token.Parse(cookieCfg.Secret, raw)
		if err != nil {
			// Cookie corrupta o caducada: se limpia y se sigue como anónimo.
			clearSessionCookie(c, cookieCfg.CookieName)
			return c.Next()
		}
		c.Locals(LocalSessionID, id)
		if sess, ok := sessions.Get(id); ok {
			c.Locals(LocalSession, sess)
		}
		return c.Next()
	}
}

// RequireSession guard de rutas autenticadas: sin sesión redirige a login.
// Mientras la rehidratación inicial está en curso no renderiza nada (204),
// para que un navegador que recarga no vea un flash de redirección antes de
// que sus sesiones persistidas estén disponibles.
func RequireSession(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sessions.IsLoading() {
			return c.SendStatus(fiber.StatusNoContent)
		}
		if _, ok := currentSession(c); !ok {
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// RequireAnonymous guard inverso: con sesión redirige al dashboard. Misma
// supresión durante la rehidratación.
func RequireAnonymous(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sessions.IsLoading() {
			return c.SendStatus(fiber.StatusNoContent)
		}
		if _, ok := currentSession(c); ok {
			return c.Redirect("/dashboard", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
