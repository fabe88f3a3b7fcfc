package dto

import "github.com/jhoicas/scheduler-admin/internal/domain/entity"

// LoginRequest credenciales para sessions/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse respuesta de sessions/login: token + principal.
type LoginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

// ToSession convierte la respuesta de login en la sesión a almacenar.
func (r LoginResponse) ToSession() entity.Session {
	return entity.Session{
		Principal: entity.Principal{ID: r.User.ID, Username: r.User.Username},
		Token:     r.Token,
	}
}

// RegisterRequest entrada para sessions/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ForgotPasswordRequest entrada para sessions/forgot-password (PATCH).
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest entrada para sessions/reset-password (PATCH).
// Email y Token vienen del enlace recibido por correo.
type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Password string `json:"password"`
}
