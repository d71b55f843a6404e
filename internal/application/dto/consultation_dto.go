package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var contactMethods = []interface{}{"email", "phone", "visit", "fax", "other"}

// CreateConsultationRequest entrada para registrar una consulta.
type CreateConsultationRequest struct {
	CompanyID     string  `json:"company_id"`
	UserID        string  `json:"user_id"`
	ContactID     string  `json:"contact_id"`
	Date          string  `json:"date"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	ContactMethod string  `json:"contact_method"`
	FollowUpDate  *string `json:"follow_up_date"`
}

// Validate reglas de CreateConsultationRequest.
func (r CreateConsultationRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.CompanyID, validation.Required, is.UUID),
		validation.Field(&r.UserID, validation.Required, is.UUID),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.ContactID, is.UUID),
		validation.Field(&r.Date, isDate),
		validation.Field(&r.FollowUpDate, isDate),
		validation.Field(&r.ContactMethod, validation.In(contactMethods...)),
	))
}

// UpdateConsultationRequest actualización parcial. follow_up_date "" borra la fecha.
type UpdateConsultationRequest struct {
	UserID        *string `json:"user_id"`
	ContactID     *string `json:"contact_id"`
	Date          *string `json:"date"`
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	ContactMethod *string `json:"contact_method"`
	FollowUpDate  *string `json:"follow_up_date"`
}

// Validate reglas de UpdateConsultationRequest.
func (r UpdateConsultationRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.NilOrNotEmpty, is.UUID),
		validation.Field(&r.ContactID, is.UUID),
		validation.Field(&r.Content, validation.NilOrNotEmpty),
		validation.Field(&r.Date, validation.NilOrNotEmpty, isDate),
		validation.Field(&r.FollowUpDate, isDate),
		validation.Field(&r.ContactMethod, validation.In(contactMethods...)),
	))
}

// ConsultationDocument documento embebido en una consulta.
type ConsultationDocument struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	DocumentNumber string `json:"document_number"`
	Status         string `json:"status"`
}

// ConsultationResponse salida de una consulta.
type ConsultationResponse struct {
	ID            string                 `json:"id"`
	CompanyID     string                 `json:"company_id"`
	CompanyName   string                 `json:"company_name,omitempty"`
	UserID        string                 `json:"user_id"`
	UserName      string                 `json:"user_name,omitempty"`
	ContactID     string                 `json:"contact_id,omitempty"`
	ContactName   string                 `json:"contact_name,omitempty"`
	Date          string                 `json:"date"`
	Title         string                 `json:"title"`
	Content       string                 `json:"content"`
	ContactMethod string                 `json:"contact_method"`
	FollowUpDate  *string                `json:"follow_up_date"`
	Documents     []ConsultationDocument `json:"documents"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// CreatedConsultationResponse respuesta de POST con el id explícito.
type CreatedConsultationResponse struct {
	ConsultationID string `json:"consultation_id"`
	ConsultationResponse
}
