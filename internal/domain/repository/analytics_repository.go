package repository

import (
	"context"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// UserActivity actividad de un usuario sobre una empresa.
type UserActivity struct {
	UserID            string
	UserName          string
	ConsultationCount int
	DocumentCount     int
}

// CompanyPerformance fila agregada del reporte de rendimiento por empresa.
type CompanyPerformance struct {
	CompanyID         string
	CompanyName       string
	EstimateCount     int
	CanceledEstimates int
	CompletedEstimate int
	TotalSales        decimal.Decimal
	OrderCount        int
	TotalPurchases    decimal.Decimal
	LastEstimateDate  *time.Time
	LastOrderDate     *time.Time
}

// AnalyticsRepository consultas de solo lectura para dashboard, estadísticas y reportes.
type AnalyticsRepository interface {
	// CountConsultations consultas del usuario (todos si userID vacío) con date en [from, to).
	CountConsultations(ctx context.Context, userID string, from, to time.Time) (int, error)
	// DocumentStatusCounts documentos por tipo y estado con date en [from, to).
	DocumentStatusCounts(ctx context.Context, userID string, from, to time.Time) ([]TypeStatusCount, error)
	// CompletedTotal suma total_amount de documentos completados del tipo en [from, to).
	CompletedTotal(ctx context.Context, userID, docType string, from, to time.Time) (decimal.Decimal, error)

	// CompanyDocuments todos los documentos de una empresa, sin paginar.
	CompanyDocuments(ctx context.Context, companyID string) ([]*entity.Document, error)
	CompanyActivity(ctx context.Context, companyID string) ([]UserActivity, error)

	// ReportDocuments documentos del usuario y tipo con date en el rango, para los reportes.
	ReportDocuments(ctx context.Context, f ReportFilter) ([]*entity.Document, error)
	CompanyPerformance(ctx context.Context, f ReportFilter, limit, offset int) ([]CompanyPerformance, int, error)
	// IndustrySales suma de ventas completadas de empresas de la industria y cuántas empresas hay.
	IndustrySales(ctx context.Context, industry string, from, to *time.Time) (decimal.Decimal, int, error)
}
