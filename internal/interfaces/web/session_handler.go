package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/scheduler-admin/internal/application/dto"
	"github.com/jhoicas/scheduler-admin/internal/infrastructure/upstream"
	"github.com/jhoicas/scheduler-admin/pkg/token"
)

// SessionHandler páginas públicas de sesión: login, registo, recuperación y
// restablecimiento de contraseña, más el logout.
type SessionHandler struct {
	*Base
	auth *upstream.AuthClient
}

// NewSessionHandler construye el handler.
func NewSessionHandler(base *Base, auth *upstream.AuthClient) *SessionHandler {
	return &SessionHandler{Base: base, auth: auth}
}

// LoginPage GET /.
func (h *SessionHandler) LoginPage(c *fiber.Ctx) error {
	return h.renderBare(c, "sessions/login", fiber.Map{})
}

// Login POST /sessions/login: autentica upstream, almacena la sesión y
// emite la cookie firmada.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return h.renderBare(c, "sessions/login", fiber.Map{
			"Error":    "Preencha o nome de utilizador e a palavra-passe.",
			"Username": username,
		})
	}

	sess, err := h.auth.Login(c.Context(), dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		h.Log.Info().Err(err).Str("username", username).Msg("login rechazado")
		return h.renderBare(c, "sessions/login", fiber.Map{
			"Error":    "Credenciais inválidas",
			"Username": username,
		})
	}

	id := uuid.NewString()
	if err := h.Sessions.Login(id, sess); err != nil {
		return h.renderBare(c, "sessions/login", fiber.Map{
			"Error":    "Login inválido: token de sessão inválido ou permissões insuficientes.",
			"Username": username,
		})
	}
	signed, err := token.Generate(h.Cookie.Secret, id, h.Cookie.Issuer, h.Cookie.ExpMinutes)
	if err != nil {
		h.Log.Error().Err(err).Msg("firmar cookie de sesión")
		return h.renderBare(c, "sessions/login", fiber.Map{"Error": "Erro interno. Tente novamente."})
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.Cookie.CookieName,
		Value:    signed,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// Logout POST /sessions/logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if id := currentSessionID(c); id != "" {
		h.Sessions.Logout(id)
	}
	clearSessionCookie(c, h.Cookie.CookieName)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// RegisterPage GET /register.
func (h *SessionHandler) RegisterPage(c *fiber.Ctx) error {
	return h.renderBare(c, "sessions/register", fiber.Map{})
}

// Register POST /sessions/register. La confirmación de contraseña se valida
// localmente: si no coincide, no sale ninguna petición.
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	confirm := c.FormValue("confirm")

	if password != confirm {
		return h.renderBare(c, "sessions/register", fiber.Map{
			"Error":    "As palavras-passe não coincidem.",
			"Username": username,
		})
	}
	if username == "" || password == "" {
		return h.renderBare(c, "sessions/register", fiber.Map{
			"Error":    "Preencha o nome de utilizador e a palavra-passe.",
			"Username": username,
		})
	}

	if err := h.auth.Register(c.Context(), dto.RegisterRequest{Username: username, Password: password}); err != nil {
		return h.renderBare(c, "sessions/register", fiber.Map{
			"Error":    "Erro ao registar o utilizador: " + upstreamMessage(err, "tente novamente"),
			"Username": username,
		})
	}
	return h.renderBare(c, "sessions/register", fiber.Map{
		"Success": "Registo efetuado com sucesso!",
	})
}

// ForgotPasswordPage GET /forgot-password.
func (h *SessionHandler) ForgotPasswordPage(c *fiber.Ctx) error {
	return h.renderBare(c, "sessions/forgot_password", fiber.Map{})
}

// ForgotPassword POST /sessions/forgot-password.
func (h *SessionHandler) ForgotPassword(c *fiber.Ctx) error {
	email := c.FormValue("email")
	if email == "" {
		return h.renderBare(c, "sessions/forgot_password", fiber.Map{
			"Error": "Indique o seu e-mail.",
		})
	}
	if err := h.auth.ForgotPassword(c.Context(), email); err != nil {
		return h.renderBare(c, "sessions/forgot_password", fiber.Map{
			"Error": upstreamMessage(err, "Erro ao pedir o link de recuperação."),
			"Email": email,
		})
	}
	return h.renderBare(c, "sessions/forgot_password", fiber.Map{
		"Success": "Se o e-mail existir, receberá um link de recuperação.",
	})
}

// ResetPasswordPage GET /reset-password?email&token. Sin email+token el
// enlace es inválido.
func (h *SessionHandler) ResetPasswordPage(c *fiber.Ctx) error {
	email := c.Query("email")
	reset := c.Query("token")
	data := fiber.Map{"Email": email, "Token": reset}
	if email == "" || reset == "" {
		data["Error"] = "Link inválido."
	}
	return h.renderBare(c, "sessions/reset_password", data)
}

// ResetPassword POST /sessions/reset-password. Confirmación local primero:
// con mismatch no se emite ninguna petición.
func (h *SessionHandler) ResetPassword(c *fiber.Ctx) error {
	email := c.FormValue("email")
	reset := c.FormValue("token")
	password := c.FormValue("password")
	confirm := c.FormValue("confirm")

	data := fiber.Map{"Email": email, "Token": reset}
	if password != confirm {
		data["Error"] = "As palavras-passe não coincidem."
		return h.renderBare(c, "sessions/reset_password", data)
	}
	if email == "" || reset == "" {
		data["Error"] = "Link inválido."
		return h.renderBare(c, "sessions/reset_password", data)
	}

	in := dto.ResetPasswordRequest{Email: email, Token: reset, Password: password}
	if err := h.auth.ResetPassword(c.Context(), in); err != nil {
		data["Error"] = "Erro ao alterar a palavra-passe: " + upstreamMessage(err, "tente novamente")
		return h.renderBare(c, "sessions/reset_password", data)
	}

	setFlash(c, "Palavra-passe alterada com sucesso. Pode iniciar sessão.")
	return c.Redirect("/", fiber.StatusSeeOther)
}
