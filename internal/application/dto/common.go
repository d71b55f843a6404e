package dto

import (
	"time"
)

// Límites de paginación.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// DateLayout formato de las fechas (sin hora) en entradas y salidas.
const DateLayout = "2006-01-02"

// PageQuery paginación por número de página (base 1).
type PageQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica valores por defecto: página 1 y defLimit (acotado a MaxLimit).
func (p *PageQuery) Normalize(defLimit int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset desplazamiento de la página actual.
func (p PageQuery) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// ListResponse sobre de listados paginados.
type ListResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewListResponse construye el sobre; totalPages = ceil(total/limit).
func NewListResponse[T any](data []T, total int, p PageQuery) ListResponse[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return ListResponse[T]{Data: data, Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

// ParseDate interpreta "2006-01-02" o RFC3339. Cadena vacía devuelve nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate formatea una fecha sin hora.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatDatePtr igual que FormatDate para fechas opcionales.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
