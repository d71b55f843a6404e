package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	documentTypes    = []interface{}{entity.DocumentTypeEstimate, entity.DocumentTypeOrder, entity.DocumentTypeRequestQuote}
	documentStatuses = []interface{}{entity.DocumentStatusPending, entity.DocumentStatusCompleted, entity.DocumentStatusCanceled, entity.DocumentStatusExpired}
)

// CreateDocumentRequest entrada para crear un documento a partir de una consulta.
type CreateDocumentRequest struct {
	ConsultationID string                  `json:"consultation_id"`
	CompanyID      string                  `json:"company_id"`
	UserID         string                  `json:"user_id"`
	ContactID      string                  `json:"contact_id"`
	Type           string                  `json:"type"`
	DocumentNumber string                  `json:"document_number"`
	Date           string                  `json:"date"`
	ValidUntil     *string                 `json:"valid_until"`
	DeliveryDate   *string                 `json:"delivery_date"`
	Status         string                  `json:"status"`
	Content        *entity.DocumentContent `json:"content"`
}

// Validate reglas de CreateDocumentRequest.
func (r CreateDocumentRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.ConsultationID, validation.Required, is.UUID),
		validation.Field(&r.UserID, validation.Required, is.UUID),
		validation.Field(&r.Type, validation.Required, validation.In(documentTypes...)),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.CompanyID, is.UUID),
		validation.Field(&r.ContactID, is.UUID),
		validation.Field(&r.Date, isDate),
		validation.Field(&r.ValidUntil, isDate),
		validation.Field(&r.DeliveryDate, isDate),
		validation.Field(&r.Status, validation.In(documentStatuses...)),
	))
}

// UpdateDocumentRequest actualización parcial de un documento.
type UpdateDocumentRequest struct {
	CompanyID      *string                 `json:"company_id"`
	ContactID      *string                 `json:"contact_id"`
	DocumentNumber *string                 `json:"document_number"`
	Date           *string                 `json:"date"`
	ValidUntil     *string                 `json:"valid_until"`
	DeliveryDate   *string                 `json:"delivery_date"`
	Content        *entity.DocumentContent `json:"content"`
}

// Validate reglas de UpdateDocumentRequest.
func (r UpdateDocumentRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.CompanyID, is.UUID),
		validation.Field(&r.ContactID, is.UUID),
		validation.Field(&r.DocumentNumber, validation.NilOrNotEmpty),
		validation.Field(&r.Date, validation.NilOrNotEmpty, isDate),
		validation.Field(&r.ValidUntil, isDate),
		validation.Field(&r.DeliveryDate, isDate),
	))
}

// UpdateDocumentStatusRequest cambio de estado con motivo opcional.
type UpdateDocumentStatusRequest struct {
	Status       string               `json:"status"`
	StatusReason *entity.StatusReason `json:"status_reason"`
}

// Validate reglas de UpdateDocumentStatusRequest.
func (r UpdateDocumentStatusRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(documentStatuses...)),
	))
}

// DocumentResponse documento aplanado con datos de contacto, usuario y empresa.
type DocumentResponse struct {
	ID             string                 `json:"id"`
	ConsultationID string                 `json:"consultation_id"`
	CompanyID      string                 `json:"company_id"`
	UserID         string                 `json:"user_id"`
	Type           string                 `json:"type"`
	DocumentNumber string                 `json:"document_number"`
	Date           string                 `json:"date"`
	ValidUntil     *string                `json:"valid_until"`
	DeliveryDate   *string                `json:"delivery_date"`
	Content        entity.DocumentContent `json:"content"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	Status         string                 `json:"status"`
	StatusReason   *entity.StatusReason   `json:"status_reason"`
	ContactID      string                 `json:"contact_id,omitempty"`
	ContactName    string                 `json:"contact_name"`
	ContactLevel   string                 `json:"contact_level"`
	ContactMobile  string                 `json:"contact_mobile"`
	UserName       string                 `json:"user_name"`
	UserLevel      string                 `json:"user_level"`
	CompanyName    string                 `json:"company_name"`
	CompanyPhone   string                 `json:"company_phone"`
	CompanyFax     string                 `json:"company_fax"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// DocumentSummaryResponse conteos por tipo y estado.
type DocumentSummaryResponse struct {
	Estimate     map[string]int `json:"estimate"`
	Order        map[string]int `json:"order"`
	RequestQuote map[string]int `json:"requestQuote"`
}
