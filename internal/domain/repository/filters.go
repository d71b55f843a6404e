package repository

import "time"

// CompanyFilter filtros de listado de empresas. Campos vacíos no filtran.
type CompanyFilter struct {
	Name       string
	Address    string
	Email      string
	Industry   string
	IsOverseas *bool
	CompanyIDs []string
}

// ContactFilter filtros de listado de contactos.
type ContactFilter struct {
	ContactName string
	Email       string
	Mobile      string
	CompanyName string
	CompanyID   string
	Resign      *bool
}

// ConsultationFilter filtros del listado global de consultas.
// Terms se combina con OR contra título y contenido.
type ConsultationFilter struct {
	CompanyID   string
	CompanyName string
	UserID      string
	Keyword     string
	Terms       []string
	StartDate   *time.Time
	EndDate     *time.Time
	Ascending   bool // orden cronológico (diario de trabajo)
}

// DocumentFilter filtros de listado de documentos.
type DocumentFilter struct {
	Type         string
	Status       string // vacío o "all" no filtra; "expiring_soon" = pendiente que vence entre ExpiringFrom y ExpiringTo
	UserID       string
	DocNumber    string
	CompanyIDs   []string
	Notes        string
	ExpiringFrom time.Time
	ExpiringTo   time.Time
}

// ProductFilter filtros de productos.
type ProductFilter struct {
	Name     string
	Spec     string
	Category string
}

// PriceHistoryFilter filtros del historial de precios.
type PriceHistoryFilter struct {
	Name string
	Spec string
	Type string
}

// RndFilter filtros de programas de I+D.
type RndFilter struct {
	Search      string // nombre, número de proyecto o programa
	Status      string
	ProjectType string
	OrgID       string
	Type        string
}

// UserFilter filtros de usuarios.
type UserFilter struct {
	Name     string
	Role     string
	IsActive *bool
}

// LoginLogFilter filtros del registro de accesos.
type LoginLogFilter struct {
	Email     string
	StartDate *time.Time
	EndDate   *time.Time
}

// ReportFilter filtros comunes a los reportes.
type ReportFilter struct {
	UserID    string
	Type      string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
}
