package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateContactRequest entrada para crear un contacto. Dentro de CreateCompanyRequest
// company_id se ignora.
type CreateContactRequest struct {
	CompanyID   string `json:"company_id"`
	ContactName string `json:"contact_name"`
	Department  string `json:"department"`
	Level       string `json:"level"`
	Mobile      string `json:"mobile"`
	Email       string `json:"email"`
	Resign      bool   `json:"resign"`
	Note        string `json:"note"`
}

// Validate reglas comunes (company_id se exige en ValidateStandalone).
func (r CreateContactRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.ContactName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, is.EmailFormat),
	))
}

// ValidateStandalone reglas para POST /api/contacts.
func (r CreateContactRequest) ValidateStandalone() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.CompanyID, validation.Required, is.UUID),
		validation.Field(&r.ContactName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, is.EmailFormat),
	))
}

// UpdateContactRequest actualización parcial.
type UpdateContactRequest struct {
	CompanyID   *string `json:"company_id"`
	ContactName *string `json:"contact_name"`
	Department  *string `json:"department"`
	Level       *string `json:"level"`
	Mobile      *string `json:"mobile"`
	Email       *string `json:"email"`
	Resign      *bool   `json:"resign"`
	Note        *string `json:"note"`
}

// Validate reglas de UpdateContactRequest.
func (r UpdateContactRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.CompanyID, validation.NilOrNotEmpty, is.UUID),
		validation.Field(&r.ContactName, validation.NilOrNotEmpty),
		validation.Field(&r.Email, is.EmailFormat),
	))
}

// ResignRequest cambia el estado de baja del contacto.
type ResignRequest struct {
	Resign bool `json:"resign"`
}

// ContactResponse salida de un contacto.
type ContactResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	CompanyName string    `json:"company_name,omitempty"`
	ContactName string    `json:"contact_name"`
	Department  string    `json:"department"`
	Level       string    `json:"level"`
	Mobile      string    `json:"mobile"`
	Email       string    `json:"email"`
	Resign      bool      `json:"resign"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
