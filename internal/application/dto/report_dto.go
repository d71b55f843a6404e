package dto

import "github.com/shopspring/decimal"

// CountTotal cantidad de documentos y suma de importes.
type CountTotal struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// PerformanceResponse respuesta de GET /api/reports/performance.
type PerformanceResponse struct {
	Year     int                              `json:"year"`
	UserID   string                           `json:"user_id,omitempty"`
	Summary  map[string]map[string]CountTotal `json:"summary"` // tipo -> estado
	Monthly  map[string][]decimal.Decimal     `json:"monthly"` // tipo -> 12 meses (completados)
	Products []ProductMonthly                 `json:"products"`
}

// ProductMonthly importes mensuales de un artículo en documentos completados.
type ProductMonthly struct {
	Name    string            `json:"name"`
	Type    string            `json:"type"`
	Monthly []decimal.Decimal `json:"monthly"`
	Total   decimal.Decimal   `json:"total"`
}

// CompanyPerformanceResponse fila del reporte por empresa.
type CompanyPerformanceResponse struct {
	CompanyID        string          `json:"company_id"`
	CompanyName      string          `json:"company_name"`
	EstimateCount    int             `json:"estimate_count"`
	CancelRate       decimal.Decimal `json:"cancel_rate"` // %
	OrderRate        decimal.Decimal `json:"order_rate"`  // % de presupuestos completados
	TotalSales       decimal.Decimal `json:"total_sales"`
	OrderCount       int             `json:"order_count"`
	TotalPurchases   decimal.Decimal `json:"total_purchases"`
	LastEstimateDate *string         `json:"last_estimate_date"`
	LastOrderDate    *string         `json:"last_order_date"`
}

// IndustryAverageResponse media de ventas por empresa de una industria.
// Average es nulo cuando no hay empresas en la industria.
type IndustryAverageResponse struct {
	Industry     string           `json:"industry"`
	CompanyCount int              `json:"company_count"`
	TotalSales   decimal.Decimal  `json:"total_sales"`
	Average      *decimal.Decimal `json:"average"`
}

// DailyReportResponse diario de trabajo (daily, weekly o monthly).
type DailyReportResponse struct {
	Date      string            `json:"date"`
	DateEnd   string            `json:"dateEnd,omitempty"`
	DayOfWeek string            `json:"dayOfWeek"`
	Author    string            `json:"author"`
	AuthorID  string            `json:"authorId"`
	ViewMode  string            `json:"viewMode"`
	Items     []DailyReportItem `json:"items"`
}

// DailyReportItem una consulta del periodo con sus documentos.
type DailyReportItem struct {
	No               int                   `json:"no"`
	CompanyName      string                `json:"companyName"`
	CompanyID        string                `json:"companyId"`
	Title            string                `json:"title"`
	Content          string                `json:"content"`
	ConsultationID   string                `json:"consultationId"`
	ConsultationDate string                `json:"consultationDate"`
	AuthorName       string                `json:"authorName,omitempty"`
	Documents        []DailyReportDocument `json:"documents"`
}

// DailyReportDocument documento de una consulta del diario.
type DailyReportDocument struct {
	ID             string            `json:"id"`
	Type           string            `json:"type"`
	DocumentNumber string            `json:"documentNumber"`
	TotalAmount    decimal.Decimal   `json:"totalAmount"`
	Status         string            `json:"status"`
	Items          []DailyReportLine `json:"items"`
}

// DailyReportLine línea de un documento del diario.
type DailyReportLine struct {
	Name      string          `json:"name"`
	Spec      string          `json:"spec,omitempty"`
	Quantity  string          `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}
