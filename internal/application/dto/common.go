package dto

import "time"

// DateLayout formato de fechas calendario en el wire.
const DateLayout = "2006-01-02"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MutationResponse respuesta de toda operación que modifica el estado.
// Persisted=false indica que el cambio quedó solo en memoria (fallo del gateway).
type MutationResponse struct {
	ID        string `json:"id,omitempty"`
	Persisted bool   `json:"persisted"`
	Reverted  bool   `json:"reverted,omitempty"`
	Warning   string `json:"warning,omitempty"`
}

// ParseDate interpreta YYYY-MM-DD en loc. Vacío devuelve nil.
func ParseDate(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t time.Time) string { return t.Format(DateLayout) }

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}
