package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento.
const (
	DocumentTypeEstimate     = "estimate"     // 견적서 (venta)
	DocumentTypeOrder        = "order"        // 발주서 (compra)
	DocumentTypeRequestQuote = "requestQuote" // 의뢰서
)

// Estados de documento.
const (
	DocumentStatusPending   = "pending"
	DocumentStatusCompleted = "completed"
	DocumentStatusCanceled  = "canceled"
	DocumentStatusExpired   = "expired"
)

// ValidDocumentType indica si t es un tipo conocido.
func ValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeEstimate, DocumentTypeOrder, DocumentTypeRequestQuote:
		return true
	}
	return false
}

// ValidDocumentStatus indica si s es un estado conocido.
func ValidDocumentStatus(s string) bool {
	switch s {
	case DocumentStatusPending, DocumentStatusCompleted, DocumentStatusCanceled, DocumentStatusExpired:
		return true
	}
	return false
}

// DocumentItem línea del contenido de un documento.
type DocumentItem struct {
	Name      string          `json:"name"`
	Spec      string          `json:"spec,omitempty"`
	Quantity  Quantity        `json:"quantity"`
	Unit      string          `json:"unit,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// Quantity cantidad en texto libre ("10 EA", "2set"); acepta también números JSON.
type Quantity string

// UnmarshalJSON acepta cadenas y números.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*q = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*q = Quantity(s)
		return nil
	}
	*q = Quantity(b)
	return nil
}

// DocumentContent blob JSON del documento (columna content jsonb).
type DocumentContent struct {
	Items         []DocumentItem   `json:"items"`
	TotalAmount   *decimal.Decimal `json:"total_amount,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	DeliveryPlace string           `json:"delivery_place,omitempty"`
	DeliveryTerm  string           `json:"delivery_term,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
}

// Total devuelve total_amount del contenido o, si falta, la suma de los importes de las líneas.
func (c DocumentContent) Total() decimal.Decimal {
	if c.TotalAmount != nil {
		return *c.TotalAmount
	}
	sum := decimal.Zero
	for _, it := range c.Items {
		sum = sum.Add(it.Amount)
	}
	return sum
}

// StatusReason motivo asociado a un cambio de estado (completed / canceled).
type StatusReason struct {
	Completed *ReasonDetail `json:"completed,omitempty"`
	Canceled  *ReasonDetail `json:"canceled,omitempty"`
}

// ReasonDetail detalle del motivo.
type ReasonDetail struct {
	Reason string           `json:"reason"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// Document documento comercial (presupuesto, orden de compra, solicitud de cotización)
// derivado de una Consultation. CompanyID debe coincidir con la empresa de la consulta.
type Document struct {
	ID             string
	ConsultationID string
	CompanyID      string
	UserID         string
	Type           string
	DocumentNumber string
	Date           time.Time
	ValidUntil     *time.Time
	DeliveryDate   *time.Time
	Content        DocumentContent
	TotalAmount    decimal.Decimal
	Status         string
	StatusReason   *StatusReason
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Proyecciones aplanadas (contacto, usuario y empresa).
	ContactID     string
	ContactName   string
	ContactLevel  string
	ContactMobile string
	UserName      string
	UserLevel     string
	CompanyName   string
	CompanyPhone  string
	CompanyFax    string
}

// LegacyCompletedCutoff los documentos creados antes de esta fecha se migraron sin estado fiable
// y los reportes los cuentan como completados.
var LegacyCompletedCutoff = time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

// CountsAsCompleted indica si el documento suma en ventas/compras de los reportes.
func (d *Document) CountsAsCompleted() bool {
	return d.Status == DocumentStatusCompleted || d.CreatedAt.Before(LegacyCompletedCutoff)
}

// DocumentNumberPrefix prefijo del número de documento por tipo.
func DocumentNumberPrefix(docType string) string {
	switch docType {
	case DocumentTypeOrder:
		return "ORD"
	case DocumentTypeRequestQuote:
		return "REQ"
	default:
		return "EST"
	}
}
