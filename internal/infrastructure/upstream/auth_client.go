package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/scheduler-admin/internal/application/dto"
	"github.com/jhoicas/scheduler-admin/internal/domain"
	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
	"github.com/jhoicas/scheduler-admin/pkg/logger"
)

// AuthClient cliente de la API de auth: sesiones, usuarios y perfiles.
type AuthClient struct {
	*Client
}

// NewAuthClient construye el cliente de auth.
func NewAuthClient(baseURL string, log *logger.Logger) *AuthClient {
	return &AuthClient{Client: NewClient(baseURL, log)}
}

// Login autentica y devuelve la sesión (principal + token).
func (c *AuthClient) Login(ctx context.Context, in dto.LoginRequest) (entity.Session, error) {
	var out dto.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "sessions/login", "", nil, in, &out); err != nil {
		return entity.Session{}, err
	}
	sess := out.ToSession()
	if !sess.Valid() {
		// Un 2xx sin token no autoriza nada; se trata como credenciales inválidas.
		return entity.Session{}, domain.ErrUnauthorized
	}
	return sess, nil
}

// Register crea una cuenta nueva.
func (c *AuthClient) Register(ctx context.Context, in dto.RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, "sessions/register", "", nil, in, nil)
}

// ForgotPassword pide el envío del enlace de restablecimiento.
func (c *AuthClient) ForgotPassword(ctx context.Context, email string) error {
	in := dto.ForgotPasswordRequest{Email: email}
	return c.doJSON(ctx, http.MethodPatch, "sessions/forgot-password", "", nil, in, nil)
}

// ResetPassword aplica la nueva contraseña con el email+token del enlace.
func (c *AuthClient) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	return c.doJSON(ctx, http.MethodPatch, "sessions/reset-password", "", nil, in, nil)
}

// Users lista usuarios paginados con filtro de rol y búsqueda libre.
// role vacío significa "todos" (el parámetro viaja vacío, igual que la UI original).
func (c *AuthClient) Users(ctx context.Context, token string, page dto.PageQuery, role, search string) ([]entity.User, int, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page.Page))
	q.Set("limit", strconv.Itoa(page.Limit))
	q.Set("role", role)
	q.Set("search", search)

	var out dto.UserListResponse
	if err := c.doJSON(ctx, http.MethodGet, "users", token, q, nil, &out); err != nil {
		return nil, 0, err
	}
	users := make([]entity.User, 0, len(out.Users))
	for _, u := range out.Users {
		users = append(users, u.ToEntity())
	}
	return users, out.TotalPages, nil
}

// AllUsers lista usuarios sin paginación (pantalla de perfiles).
func (c *AuthClient) AllUsers(ctx context.Context, token string) ([]entity.User, error) {
	var out dto.UserListResponse
	if err := c.doJSON(ctx, http.MethodGet, "users", token, nil, nil, &out); err != nil {
		return nil, err
	}
	users := make([]entity.User, 0, len(out.Users))
	for _, u := range out.Users {
		users = append(users, u.ToEntity())
	}
	return users, nil
}

// UserByUsername devuelve los detalles de un usuario.
func (c *AuthClient) UserByUsername(ctx context.Context, token, username string) (entity.User, error) {
	q := url.Values{}
	q.Set("username", username)
	var out dto.UserByUsernameResponse
	if err := c.doJSON(ctx, http.MethodGet, "users/getByUsername/", token, q, nil, &out); err != nil {
		return entity.User{}, err
	}
	return out.User.ToEntity(), nil
}

// UpdateUser actualiza los datos de un usuario. Con foto la petición sale
// como multipart/form-data; sin foto, como JSON.
func (c *AuthClient) UpdateUser(ctx context.Context, token, id string, in dto.UpdateUserRequest) error {
	path := "users/" + id
	if in.Picture == nil {
		return c.doJSON(ctx, http.MethodPut, path, token, nil, in, nil)
	}
	fields := map[string]string{
		"email":      in.Email,
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"birthdate":  in.Birthdate,
	}
	return c.doMultipart(ctx, http.MethodPut, path, token, fields, "profilePicture", in.PictureName, in.Picture, nil)
}

// DeleteUser elimina un usuario por username, confirmado con la contraseña
// de quien opera.
func (c *AuthClient) DeleteUser(ctx context.Context, token string, in dto.DeleteUserRequest) error {
	form := url.Values{}
	form.Set("username", in.Username)
	form.Set("password", in.Password)
	return c.doForm(ctx, http.MethodPatch, "users/delete", token, form, nil)
}

// Roles lista los perfiles disponibles.
func (c *AuthClient) Roles(ctx context.Context, token string) ([]entity.Role, error) {
	var out dto.RolesResponse
	if err := c.doJSON(ctx, http.MethodGet, "roles", token, nil, nil, &out); err != nil {
		return nil, err
	}
	roles := make([]entity.Role, 0, len(out.Roles))
	for _, r := range out.Roles {
		roles = append(roles, r.ToEntity())
	}
	return roles, nil
}

// AssignRole asigna un perfil a un usuario.
func (c *AuthClient) AssignRole(ctx context.Context, token string, in dto.AssignRoleRequest) error {
	form := url.Values{}
	form.Set("username", in.Username)
	form.Set("role_id", in.RoleID)
	return c.doForm(ctx, http.MethodPatch, "roles/assign", token, form, nil)
}

// ProfilePicture obtiene la foto de perfil como bytes PNG; nil sin error si
// el backend no devuelve un Buffer.
func (c *AuthClient) ProfilePicture(ctx context.Context, token, userID string) ([]byte, error) {
	var out dto.ProfilePictureResponse
	if err := c.doJSON(ctx, http.MethodGet, "users/"+userID+"/profilePicture", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
