package entity

// Principal es el usuario autenticado tal como lo devuelve la API de auth.
type Principal struct {
	ID       string
	Username string
}

// Session es el objeto de sesión que el cliente persiste localmente:
// principal + bearer token. Un token vacío nunca se almacena.
type Session struct {
	Principal Principal
	Token     string
	// ProfilePicture es un data-URI PNG obtenido en el enrichment al
	// rehidratar; vacío si el fetch falló (la sesión sigue siendo válida).
	ProfilePicture string
}

// Valid indica si la sesión puede autorizar rutas protegidas.
func (s Session) Valid() bool {
	return s.Token != ""
}
