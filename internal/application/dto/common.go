package dto

// ErrorResponse cuerpo de error de las APIs upstream. El único contrato
// estable es un {message} opcional; no hay códigos estructurados.
type ErrorResponse struct {
	Message string `json:"message"`
}

// PageQuery parámetros de paginación enviados upstream (1-based).
type PageQuery struct {
	Page  int
	Limit int
}
