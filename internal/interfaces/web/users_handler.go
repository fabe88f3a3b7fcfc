package web

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scheduler-admin/internal/application/dto"
	"github.com/jhoicas/scheduler-admin/internal/chrome"
	"github.com/jhoicas/scheduler-admin/internal/infrastructure/upstream"
	"github.com/jhoicas/scheduler-admin/internal/listing"
)

// userFilters etiquetas fijas del filtro de perfil y su valor upstream.
var userFilters = listing.NewFilterSet(
	[2]string{"Gestor", "manager"},
	[2]string{"Administrador", "admin"},
	[2]string{"Utilizador", "user"},
	[2]string{"Utilizador externo", "external"},
)

// UsersHandler pantalla de gestión de usuarios: listado paginado con
// búsqueda y filtro de perfil, edición y borrado con confirmación.
type UsersHandler struct {
	*Base
	auth *upstream.AuthClient
}

// NewUsersHandler construye el handler.
func NewUsersHandler(base *Base, auth *upstream.AuthClient) *UsersHandler {
	return &UsersHandler{Base: base, auth: auth}
}

// Index GET /users.
func (h *UsersHandler) Index(c *fiber.Ctx) error {
	return h.renderIndex(c, fiber.Map{})
}

// renderIndex listado + estado opcional de modal (re-render tras mutación
// fallida: el modal queda abierto con el mensaje del servidor y los valores
// del formulario intactos).
func (h *UsersHandler) renderIndex(c *fiber.Ctx, extra fiber.Map) error {
	sess, _ := currentSession(c)
	q := queryFrom(c, 10)
	if !userFilters.Contains(q.Filter) {
		q.Filter = listing.FilterAll
	}

	users, totalPages, err := h.auth.Users(c.Context(), sess.Token,
		dto.PageQuery{Page: q.Page, Limit: q.Limit}, userFilters.Value(q.Filter), q.Search)
	if err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		h.Log.Error().Err(err).Msg("cargar utilizadores")
		extra["Error"] = upstreamMessage(err, "Erro ao carregar utilizadores.")
		totalPages = 1
	}
	if clamped := q.ClampPage(totalPages); clamped.Page != q.Page {
		// El total bajó (p. ej. cambió el tamaño de página): se repite la
		// petición con la página válida en lugar de confiar en el servidor.
		q = clamped
		users, totalPages, err = h.auth.Users(c.Context(), sess.Token,
			dto.PageQuery{Page: q.Page, Limit: q.Limit}, userFilters.Value(q.Filter), q.Search)
		if err != nil && isUnauthorized(err) {
			return h.expireSession(c)
		}
	}

	h.setChrome(c, chrome.Descriptor{
		Title:             "Utilizadores",
		BasePath:          "/users",
		Search:            true,
		SearchPlaceholder: "Pesquisar utilizador...",
		Filters:           userFilters.Labels,
		ActiveFilter:      q.Filter,
		Buttons: []chrome.Button{
			{Label: "Adicionar", Variant: "primary", Action: "/register"},
		},
	})

	data := fiber.Map{
		"Users":      users,
		"Query":      q,
		"Pagination": listing.NewPagination(q, totalPages),
	}
	for k, v := range extra {
		data[k] = v
	}
	return h.render(c, "users", data)
}

// Update POST /users/:id/edit. JSON o multipart según haya foto nueva.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	sess, _ := currentSession(c)
	id := c.Params("id")

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

	if err := h.auth.UpdateUser(c.Context(), sess.Token, id, in); err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		return h.renderIndex(c, fiber.Map{
			"OpenModal": "edit-" + id,
			"EditError": upstreamMessage(err, "Erro ao atualizar utilizador"),
			"EditForm":  in,
		})
	}

	setFlash(c, "Utilizador atualizado com sucesso!")
	return c.Redirect(withQuery("/users", c), fiber.StatusSeeOther)
}

// Delete POST /users/:id/delete: borrado por username confirmado con la
// contraseña de quien opera.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	sess, _ := currentSession(c)
	id := c.Params("id")
	username := c.FormValue("username")
	password := c.FormValue("password")

	if password == "" {
		return h.renderIndex(c, fiber.Map{
			"OpenModal":   "delete-" + id,
			"DeleteError": "Confirme a sua palavra-passe.",
		})
	}

	in := dto.DeleteUserRequest{Username: username, Password: password}
	if err := h.auth.DeleteUser(c.Context(), sess.Token, in); err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		return h.renderIndex(c, fiber.Map{
			"OpenModal":   "delete-" + id,
			"DeleteError": upstreamMessage(err, "Erro ao remover utilizador"),
		})
	}

	setFlash(c, "Utilizador removido com sucesso!")
	return c.Redirect(withQuery("/users", c), fiber.StatusSeeOther)
}

// withQuery conserva el estado de listado (page, limit, filter, search) al
// redirigir tras una mutación: las acciones de los modales llevan la query
// de la página en la que se abrieron.
func withQuery(path string, c *fiber.Ctx) string {
	qs := string(c.Request().URI().QueryString())
	if qs == "" {
		return path
	}
	return path + "?" + qs
}
