package dto

import "github.com/shopspring/decimal"

// DashboardSummaryResponse respuesta de GET /api/dashboard/summary.
type DashboardSummaryResponse struct {
	UserID              string                    `json:"user_id"`
	Period              string                    `json:"period"` // YYYY-MM
	ConsultationCount   int                       `json:"consultation_count"`
	Documents           map[string]map[string]int `json:"documents"` // tipo -> estado -> cantidad
	Sales               PeriodComparison          `json:"sales"`
	Purchases           PeriodComparison          `json:"purchases"`
	FollowUps           []ConsultationResponse    `json:"follow_ups"`
	ExpiringDocuments   []DocumentResponse        `json:"expiring_documents"`
	RecentConsultations []ConsultationResponse    `json:"recent_consultations"`
}

// PeriodComparison total del mes contra el mes anterior.
// GrowthRate es nulo cuando el mes anterior es cero.
type PeriodComparison struct {
	ThisMonth  decimal.Decimal  `json:"this_month"`
	LastMonth  decimal.Decimal  `json:"last_month"`
	GrowthRate *decimal.Decimal `json:"growth_rate"`
}

// CompanyStatsResponse estadísticas de GET /api/companies/:id/stats.
type CompanyStatsResponse struct {
	CompanyID          string                    `json:"company_id"`
	DocumentCounts     map[string]map[string]int `json:"document_counts"`
	Yearly             []PeriodAmount            `json:"yearly"`
	Quarterly          []PeriodAmount            `json:"quarterly"`
	Monthly            []PeriodAmount            `json:"monthly"`
	TopItems           []ItemAmount              `json:"top_items"`
	Users              []UserActivityResponse    `json:"users"`
	ContactCount       int                       `json:"contact_count"`
	ActiveContactCount int                       `json:"active_contact_count"`
	FirstTransaction   *string                   `json:"first_transaction"`
	LastTransaction    *string                   `json:"last_transaction"`
	TotalSales         decimal.Decimal           `json:"total_sales"`
	TotalPurchases     decimal.Decimal           `json:"total_purchases"`
}

// PeriodAmount ventas (presupuestos) y compras (órdenes) completadas en un periodo.
type PeriodAmount struct {
	Period    string          `json:"period"`
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
}

// ItemAmount importe acumulado de un artículo.
type ItemAmount struct {
	Name   string          `json:"name"`
	Spec   string          `json:"spec"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// UserActivityResponse actividad de un usuario sobre la empresa.
type UserActivityResponse struct {
	UserID            string `json:"user_id"`
	UserName          string `json:"user_name"`
	ConsultationCount int    `json:"consultation_count"`
	DocumentCount     int    `json:"document_count"`
}
