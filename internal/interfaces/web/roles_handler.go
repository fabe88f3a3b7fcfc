package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scheduler-admin/internal/application/dto"
	"github.com/jhoicas/scheduler-admin/internal/chrome"
	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
	"github.com/jhoicas/scheduler-admin/internal/infrastructure/upstream"
	"github.com/jhoicas/scheduler-admin/internal/listing"
)

// RolesHandler pantalla de perfiles: asignación de rol a usuarios.
type RolesHandler struct {
	*Base
	auth  *upstream.AuthClient
	roles *listing.Ref[entity.Role]
}

// NewRolesHandler construye el handler.
func NewRolesHandler(base *Base, auth *upstream.AuthClient, roles *listing.Ref[entity.Role]) *RolesHandler {
	return &RolesHandler{Base: base, auth: auth, roles: roles}
}

// Index GET /roles: usuarios con su rol actual + selects de asignación.
func (h *RolesHandler) Index(c *fiber.Ctx) error {
	return h.renderIndex(c, fiber.Map{})
}

func (h *RolesHandler) renderIndex(c *fiber.Ctx, extra fiber.Map) error {
	sess, _ := currentSession(c)

	users, err := h.auth.AllUsers(c.Context(), sess.Token)
	if err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		h.Log.Error().Err(err).Msg("cargar utilizadores para perfiles")
		extra["Error"] = upstreamMessage(err, "Erro ao carregar utilizadores.")
	}
	roles, rerr := h.roles.Get(c.Context(), sess.Token)
	if rerr != nil {
		if isUnauthorized(rerr) {
			return h.expireSession(c)
		}
		extra["Error"] = upstreamMessage(rerr, "Erro ao carregar perfis.")
	}

	h.setChrome(c, chrome.Descriptor{
		Title:    "Perfis",
		BasePath: "/roles",
	})

	data := fiber.Map{
		"Users":        users,
		"Roles":        roles,
		"FailedUser":   "", // fila cuya asignación acaba de fallar
		"FailedRoleID": "",
	}
	for k, v := range extra {
		data[k] = v
	}
	return h.render(c, "roles", data)
}

// Assign POST /roles/assign.
func (h *RolesHandler) Assign(c *fiber.Ctx) error {
	sess, _ := currentSession(c)
	username := c.FormValue("username")
	roleID := c.FormValue("role_id")

	if username == "" || roleID == "" {
		return h.renderIndex(c, fiber.Map{"Error": "Selecione um utilizador e um perfil."})
	}

	in := dto.AssignRoleRequest{Username: username, RoleID: roleID}
	if err := h.auth.AssignRole(c.Context(), sess.Token, in); err != nil {
		if isUnauthorized(err) {
			return h.expireSession(c)
		}
		return h.renderIndex(c, fiber.Map{
			"Error":        upstreamMessage(err, "Erro ao atribuir perfil"),
			"FailedUser":   username,
			"FailedRoleID": roleID,
		})
	}

	setFlash(c, "Perfil atribuído com sucesso!")
	return c.Redirect("/roles", fiber.StatusSeeOther)
}
