package entity

import "time"

// Medios de contacto de una consulta.
const (
	ContactMethodEmail = "email"
	ContactMethodPhone = "phone"
	ContactMethodVisit = "visit"
	ContactMethodFax   = "fax"
	ContactMethodOther = "other"
)

// Consultation registro de un contacto con el cliente (상담), de una Company y un User.
type Consultation struct {
	ID            string
	CompanyID     string
	UserID        string
	Date          time.Time
	Title         string
	Content       string
	ContactMethod string
	FollowUpDate  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time

	// Proyecciones para listados y detalle.
	CompanyName string
	UserName    string
	ContactID   string
	ContactName string
	Documents   []DocumentRef
}

// DocumentRef resumen de un documento embebido en una consulta.
type DocumentRef struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	DocumentNumber string `json:"document_number"`
	Status         string `json:"status"`
}
