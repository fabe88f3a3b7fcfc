package web

import (
	"encoding/base64"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scheduler-admin/internal/application/dto"
	"github.com/jhoicas/scheduler-admin/internal/chrome"
	"github.com/jhoicas/scheduler-admin/internal/infrastructure/upstream"
)

// ProfileHandler pantalla "A minha conta": datos del principal y cambio de
// foto de perfil.
type ProfileHandler struct {
	*Base
	auth *upstream.AuthClient
}

// NewProfileHandler construye el handler.
func NewProfileHandler(base *Base, auth *upstream.AuthClient) *ProfileHandler {
	return &ProfileHandler{Base: base, auth: auth}
}

// Index GET /profile.
func (h *ProfileHandler) Index(c *fiber.Ctx) error {
	return h.renderProfile(c, fiber.Map{})
}

func (h *ProfileHandler) renderProfile(c *fiber.Ctx, extra fiber.Map) error {
	sess, _ := currentSession(c)

	user, err := h.auth.UserByUsername(c.Context(), sess.Token, sess.Principal.Username)
	if err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		h.Log.Error().Err(err).Msg("cargar perfil")
		extra["Error"] = upstreamMessage(err, "Erro ao carregar o perfil.")
	}

	h.setChrome(c, chrome.Descriptor{
		Title:    "A minha conta",
		BasePath: "/profile",
	})

	data := fiber.Map{"User": user}
	for k, v := range extra {
		data[k] = v
	}
	return h.render(c, "profile", data)
}

// Update POST /profile: guarda los datos y, si hay foto nueva, la sube como
// multipart y refresca la imagen de la sesión en memoria.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	sess, _ := currentSession(c)

	in := dto.UpdateUserRequest{
		Email:     c.FormValue("email"),
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		Birthdate: c.FormValue("birthdate"),
	}
	if fh, err := c.FormFile("profilePicture"); err == nil && fh != nil {
		f, err := fh.Open()
		if err == nil {
			in.Picture, _ = io.ReadAll(f)
			in.PictureName = fh.Filename
			f.Close()
		}
	}

	if err := h.auth.UpdateUser(c.Context(), sess.Token, sess.Principal.ID, in); err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		return h.renderProfile(c, fiber.Map{
			"Error": upstreamMessage(err, "Erro ao atualizar o perfil"),
			"Form":  in,
		})
	}

	if in.Picture != nil {
		uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(in.Picture)
		h.Sessions.SetProfilePicture(currentSessionID(c), uri)
	}

	setFlash(c, "Perfil atualizado com sucesso!")
	return c.Redirect("/profile", fiber.StatusSeeOther)
}
