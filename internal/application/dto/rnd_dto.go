package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

var (
	rndTypes    = []interface{}{"rnd", "brnd", "develop"}
	rndStatuses = []interface{}{
		"planning", "application", "evaluation", "selected", "contracting",
		"ongoing", "final_report", "completed", "settlement", "closed",
	}
)

// CreateRndRequest entrada para crear un programa de I+D.
// support_org es el nombre del organismo (formato antiguo) y se usa si falta org_id.
type CreateRndRequest struct {
	Name            string           `json:"name"`
	Type            string           `json:"type"`
	ProjectNumber   string           `json:"project_number"`
	ProjectType     string           `json:"project_type"`
	Status          string           `json:"status"`
	ProgramName     string           `json:"program_name"`
	OrgID           *string          `json:"org_id"`
	SupportOrg      string           `json:"support_org"`
	StartDate       *string          `json:"start_date"`
	EndDate         *string          `json:"end_date"`
	GovContribution decimal.Decimal  `json:"gov_contribution"`
	PriContribution decimal.Decimal  `json:"pri_contribution"`
	TotalCost       *decimal.Decimal `json:"total_cost"`
	Notes           string           `json:"notes"`
}

// Validate reglas de CreateRndRequest.
func (r CreateRndRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 300)),
		validation.Field(&r.Type, validation.In(rndTypes...)),
		validation.Field(&r.Status, validation.In(rndStatuses...)),
		validation.Field(&r.OrgID, is.UUID),
		validation.Field(&r.StartDate, isDate),
		validation.Field(&r.EndDate, isDate),
		validation.Field(&r.GovContribution, validation.By(nonNegative)),
		validation.Field(&r.PriContribution, validation.By(nonNegative)),
		validation.Field(&r.TotalCost, validation.By(nonNegative)),
	))
}

// UpdateRndRequest actualización parcial.
type UpdateRndRequest struct {
	Name            *string          `json:"name"`
	Type            *string          `json:"type"`
	ProjectNumber   *string          `json:"project_number"`
	ProjectType     *string          `json:"project_type"`
	Status          *string          `json:"status"`
	ProgramName     *string          `json:"program_name"`
	OrgID           *string          `json:"org_id"`
	StartDate       *string          `json:"start_date"`
	EndDate         *string          `json:"end_date"`
	GovContribution *decimal.Decimal `json:"gov_contribution"`
	PriContribution *decimal.Decimal `json:"pri_contribution"`
	TotalCost       *decimal.Decimal `json:"total_cost"`
	Notes           *string          `json:"notes"`
}

// Validate reglas de UpdateRndRequest.
func (r UpdateRndRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty),
		validation.Field(&r.Type, validation.In(rndTypes...)),
		validation.Field(&r.Status, validation.In(rndStatuses...)),
		validation.Field(&r.OrgID, is.UUID),
		validation.Field(&r.StartDate, isDate),
		validation.Field(&r.EndDate, isDate),
		validation.Field(&r.GovContribution, validation.By(nonNegative)),
		validation.Field(&r.PriContribution, validation.By(nonNegative)),
		validation.Field(&r.TotalCost, validation.By(nonNegative)),
	))
}

// RndOrgSummary resumen del organismo embebido en un programa.
type RndOrgSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// RndResponse salida de un programa de I+D.
type RndResponse struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Type            string               `json:"type"`
	ProjectNumber   string               `json:"project_number"`
	ProjectType     string               `json:"project_type"`
	Status          string               `json:"status"`
	ProgramName     string               `json:"program_name"`
	OrgID           *string              `json:"org_id"`
	StartDate       *string              `json:"start_date"`
	EndDate         *string              `json:"end_date"`
	GovContribution decimal.Decimal      `json:"gov_contribution"`
	PriContribution decimal.Decimal      `json:"pri_contribution"`
	TotalCost       decimal.Decimal      `json:"total_cost"`
	Notes           string               `json:"notes"`
	Org             *RndOrgSummary       `json:"rnd_orgs"`
	Contacts        []RndContactResponse `json:"contacts,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// CreateRndConsultationRequest registro de seguimiento de un programa.
type CreateRndConsultationRequest struct {
	UserID       string  `json:"user_id"`
	Date         string  `json:"date"`
	Content      string  `json:"content"`
	FollowUpDate *string `json:"follow_up_date"`
}

// Validate reglas de CreateRndConsultationRequest.
func (r CreateRndConsultationRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required, is.UUID),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Date, isDate),
		validation.Field(&r.FollowUpDate, isDate),
	))
}

// UpdateRndConsultationRequest actualización parcial.
type UpdateRndConsultationRequest struct {
	Date         *string `json:"date"`
	Content      *string `json:"content"`
	FollowUpDate *string `json:"follow_up_date"`
}

// Validate reglas de UpdateRndConsultationRequest.
func (r UpdateRndConsultationRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.NilOrNotEmpty),
		validation.Field(&r.Date, validation.NilOrNotEmpty, isDate),
		validation.Field(&r.FollowUpDate, isDate),
	))
}

// RndConsultationResponse salida de un seguimiento.
type RndConsultationResponse struct {
	ID           string    `json:"id"`
	RndID        string    `json:"rnd_id"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name,omitempty"`
	Date         string    `json:"date"`
	Content      string    `json:"content"`
	FollowUpDate *string   `json:"follow_up_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// RndContactInput contacto de un organismo; ID vacío indica alta.
type RndContactInput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Level      string `json:"level"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Resign     bool   `json:"resign"`
}

// Validate reglas de RndContactInput.
func (r RndContactInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, is.UUID),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, is.EmailFormat),
	)
}

// RndOrgRequest entrada para crear o reemplazar un organismo con sus contactos.
type RndOrgRequest struct {
	Name     string            `json:"name"`
	Address  string            `json:"address"`
	Phone    string            `json:"phone"`
	Fax      string            `json:"fax"`
	Email    string            `json:"email"`
	Notes    string            `json:"notes"`
	Contacts []RndContactInput `json:"contacts"`
}

// Validate reglas de RndOrgRequest.
func (r RndOrgRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Contacts),
	))
}

// RndContactResponse salida de un contacto de organismo.
type RndContactResponse struct {
	ID         string `json:"id"`
	OrgID      string `json:"org_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Level      string `json:"level"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Resign     bool   `json:"resign"`
}

// RndOrgResponse salida de un organismo.
type RndOrgResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Address   string               `json:"address"`
	Phone     string               `json:"phone"`
	Fax       string               `json:"fax"`
	Email     string               `json:"email"`
	Notes     string               `json:"notes"`
	Contacts  []RndContactResponse `json:"rnds_contacts"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}
