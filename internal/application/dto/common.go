package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y límites a Limit/Offset.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NotFoundResponse cuerpo para rutas inexistentes.
type NotFoundResponse struct {
	Message string `json:"message"`
}

// InternalErrorResponse cuerpo para errores no controlados.
type InternalErrorResponse struct {
	Msg   string `json:"msg"`
	Error string `json:"error"`
}

// MessageResponse confirmación simple (ej. borrado).
type MessageResponse struct {
	Msg string `json:"msg"`
}

// trimPtr recorta el valor apuntado si existe.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := trim(*s)
	return &v
}
