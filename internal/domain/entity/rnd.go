package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un programa de I+D (국가과제).
const (
	RndStatusPlanning    = "planning"
	RndStatusApplication = "application"
	RndStatusEvaluation  = "evaluation"
	RndStatusSelected    = "selected"
	RndStatusContracting = "contracting"
	RndStatusOngoing     = "ongoing"
	RndStatusFinalReport = "final_report"
	RndStatusCompleted   = "completed"
	RndStatusSettlement  = "settlement"
	RndStatusClosed      = "closed"
)

// ValidRndStatus indica si s es un estado conocido.
func ValidRndStatus(s string) bool {
	switch s {
	case RndStatusPlanning, RndStatusApplication, RndStatusEvaluation, RndStatusSelected,
		RndStatusContracting, RndStatusOngoing, RndStatusFinalReport, RndStatusCompleted,
		RndStatusSettlement, RndStatusClosed:
		return true
	}
	return false
}

// Rnd programa de investigación financiado por el gobierno.
type Rnd struct {
	ID              string
	Name            string
	Type            string // rnd, brnd, develop
	ProjectNumber   string
	ProjectType     string
	Status          string
	ProgramName     string
	OrgID           *string
	StartDate       *time.Time
	EndDate         *time.Time
	GovContribution decimal.Decimal
	PriContribution decimal.Decimal
	TotalCost       decimal.Decimal
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Org *RndOrg // resumen del organismo de apoyo
}

// RndOrg organismo (지원기관) que administra programas de I+D.
type RndOrg struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Fax       string
	Email     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time

	Contacts []*RndContact
}

// RndContact contacto de un organismo de I+D.
type RndContact struct {
	ID         string
	OrgID      string
	Name       string
	Department string
	Level      string
	Phone      string
	Email      string
	Resign     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RndConsultation registro de seguimiento de un programa de I+D.
type RndConsultation struct {
	ID           string
	RndID        string
	UserID       string
	Date         time.Time
	Content      string
	FollowUpDate *time.Time
	CreatedAt    time.Time

	UserName string
}
