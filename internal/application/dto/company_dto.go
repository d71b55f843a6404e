package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateCompanyRequest entrada para crear una empresa (opcionalmente con sus contactos).
type CreateCompanyRequest struct {
	Name           string                 `json:"name"`
	BusinessNumber string                 `json:"business_number"`
	Address        string                 `json:"address"`
	Phone          string                 `json:"phone"`
	Fax            string                 `json:"fax"`
	Email          string                 `json:"email"`
	Notes          string                 `json:"notes"`
	Parcel         string                 `json:"parcel"`
	Industry       []string               `json:"industry"`
	IsOverseas     bool                   `json:"is_overseas"`
	Contacts       []CreateContactRequest `json:"contacts"`
}

// Validate reglas de CreateCompanyRequest.
func (r CreateCompanyRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Contacts),
	))
}

// UpdateCompanyRequest actualización parcial: solo los campos no nulos cambian.
type UpdateCompanyRequest struct {
	Name           *string   `json:"name"`
	BusinessNumber *string   `json:"business_number"`
	Address        *string   `json:"address"`
	Phone          *string   `json:"phone"`
	Fax            *string   `json:"fax"`
	Email          *string   `json:"email"`
	Notes          *string   `json:"notes"`
	Parcel         *string   `json:"parcel"`
	Industry       *[]string `json:"industry"`
	IsOverseas     *bool     `json:"is_overseas"`
}

// Validate reglas de UpdateCompanyRequest.
func (r UpdateCompanyRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Email, is.EmailFormat),
	))
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	BusinessNumber string            `json:"business_number"`
	Address        string            `json:"address"`
	Phone          string            `json:"phone"`
	Fax            string            `json:"fax"`
	Email          string            `json:"email"`
	Notes          string            `json:"notes"`
	Parcel         string            `json:"parcel"`
	Industry       []string          `json:"industry"`
	IsOverseas     bool              `json:"is_overseas"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Contacts       []ContactResponse `json:"contacts,omitempty"`
}

// CompanyFileResponse metadatos de un adjunto.
type CompanyFileResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	UserID      string    `json:"user_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// FileURLResponse URL temporal de descarga.
type FileURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
