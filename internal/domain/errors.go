package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUnauthorized = errors.New("sesión inválida o expirada")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnavailable  = errors.New("servicio upstream no disponible")
)

// UpstreamError es un fallo no-2xx reportado por una API upstream.
// Message conserva el mensaje del servidor tal cual (puede ser vacío si el
// cuerpo no trae un {message} parseable).
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "error upstream sin mensaje"
}

// UserMessage devuelve el mensaje a mostrar en la UI: el del servidor si
// existe, o el fallback indicado.
func (e *UpstreamError) UserMessage(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// AsUpstream extrae un *UpstreamError de la cadena de errores, si lo hay.
func AsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	ok := errors.As(err, &ue)
	return ue, ok
}
