package entity

import "time"

// Contact persona de contacto (담당자) que pertenece a exactamente una Company.
type Contact struct {
	ID          string
	CompanyID   string
	ContactName string
	Department  string
	Level       string // cargo
	Mobile      string
	Email       string
	Resign      bool // dejó la empresa
	Note        string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	CompanyName string // proyección en listados
}
