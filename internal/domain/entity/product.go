package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo de la organización.
type Product struct {
	ID          string
	Name        string
	Spec        string
	Category    string
	Unit        string
	UnitPrice   decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PriceHistoryEntry precio unitario observado en una línea de un documento completado.
type PriceHistoryEntry struct {
	DocumentID     string
	DocumentNumber string
	DocumentType   string
	Date           time.Time
	CompanyID      string
	CompanyName    string
	ItemName       string
	Spec           string
	Quantity       string
	UnitPrice      decimal.Decimal
}
