package entity

// User representa un usuario del sistema de scheduling (recurso upstream;
// solo los campos que la UI muestra o edita).
type User struct {
	ID        string
	Username  string
	Email     string
	FirstName string
	LastName  string
	Birthdate string // YYYY-MM-DD; vacío si no está definido
	Role      string
	RoleID    string
}

// FullName nombre a mostrar en listados.
func (u User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Role representa un perfil asignable a un usuario.
type Role struct {
	ID   string
	Name string
}
