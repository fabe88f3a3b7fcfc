package dto

import (
	"strings"

	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
)

// UserDTO usuario tal como lo serializa la API de auth.
type UserDTO struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthdate string `json:"birthdate"` // ISO con hora; la UI solo usa la fecha
	Role      string `json:"role"`
	RoleID    string `json:"role_id"`
}

// ToEntity normaliza el DTO (recorta la parte horaria del birthdate).
func (d UserDTO) ToEntity() entity.User {
	birth := d.Birthdate
	if i := strings.IndexByte(birth, 'T'); i >= 0 {
		birth = birth[:i]
	}
	return entity.User{
		ID:        d.ID,
		Username:  d.Username,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Birthdate: birth,
		Role:      d.Role,
		RoleID:    d.RoleID,
	}
}

// UserListResponse respuesta paginada de GET users.
type UserListResponse struct {
	Users      []UserDTO `json:"users"`
	TotalPages int       `json:"totalPages"`
}

// UserByUsernameResponse respuesta de GET users/getByUsername.
type UserByUsernameResponse struct {
	User UserDTO `json:"user"`
}

// UpdateUserRequest datos editables de un usuario (PUT users/{id}).
// Si Picture no es nil la petición sale como multipart; si no, JSON.
type UpdateUserRequest struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Birthdate   string `json:"birthdate"`
	Picture     []byte `json:"-"`
	PictureName string `json:"-"`
}

// DeleteUserRequest borrado por username con confirmación de contraseña
// (PATCH users/delete, x-www-form-urlencoded).
type DeleteUserRequest struct {
	Username string
	Password string
}

// RoleDTO perfil asignable.
type RoleDTO struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// ToEntity mapeo directo.
func (d RoleDTO) ToEntity() entity.Role {
	return entity.Role{ID: d.ID, Name: d.Name}
}

// RolesResponse respuesta de GET roles.
type RolesResponse struct {
	Roles []RoleDTO `json:"roles"`
}

// AssignRoleRequest asignación de perfil (PATCH roles/assign, urlencoded).
type AssignRoleRequest struct {
	Username string
	RoleID   string
}

// ProfilePictureResponse respuesta de GET users/{id}/profilePicture.
// El backend serializa un Buffer de Node: {"data":{"type":"Buffer","data":[...]}}.
type ProfilePictureResponse struct {
	Data struct {
		Type string `json:"type"`
		Data []int  `json:"data"`
	} `json:"data"`
}

// Bytes reconstruye los bytes de la imagen; nil si la respuesta no trae Buffer.
func (r ProfilePictureResponse) Bytes() []byte {
	if r.Data.Type != "Buffer" || len(r.Data.Data) == 0 {
		return nil
	}
	b := make([]byte, len(r.Data.Data))
	for i, v := range r.Data.Data {
		b[i] = byte(v)
	}
	return b
}
