// Package analytics contiene los casos de uso del dashboard personal y las
// estadísticas por empresa.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dashboardRecent = 5 // consultas recientes en el widget del dashboard

var hundred = decimal.NewFromInt(100)

// now reloj del paquete; los tests lo fijan.
var now = time.Now

// DashboardUseCase genera el resumen del mes en curso para un usuario.
//
// Los agregados salen de AnalyticsRepository; seguimientos, documentos por vencer y
// consultas recientes reutilizan los casos de uso de consultas y documentos.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	consultations *usecase.ConsultationUseCase
	documents     *usecase.DocumentUseCase
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, consultations *usecase.ConsultationUseCase, documents *usecase.DocumentUseCase) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, consultations: consultations, documents: documents}
}

// GetSummary construye el resumen del usuario. Todas las consultas corren en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string) (*dto.DashboardSummaryResponse, error) {
	t := now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	monthStart := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)
	lastMonth := monthStart.AddDate(0, -1, 0)

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type countResult struct {
		n   int
		err error
	}
	type statusResult struct {
		rows []repository.TypeStatusCount
		err  error
	}
	type amountResult struct {
		v   decimal.Decimal
		err error
	}
	type consultationsResult struct {
		rows []dto.ConsultationResponse
		err  error
	}
	type documentsResult struct {
		rows []dto.DocumentResponse
		err  error
	}

	countCh := make(chan countResult, 1)
	statusCh := make(chan statusResult, 1)
	salesCh := make(chan amountResult, 1)
	salesPrevCh := make(chan amountResult, 1)
	purchCh := make(chan amountResult, 1)
	purchPrevCh := make(chan amountResult, 1)
	followCh := make(chan consultationsResult, 1)
	recentCh := make(chan consultationsResult, 1)
	expiringCh := make(chan documentsResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountConsultations(ctx, userID, monthStart, nextMonth)
		countCh <- countResult{n, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.DocumentStatusCounts(ctx, userID, monthStart, nextMonth)
		statusCh <- statusResult{rows, err}
	}()
	total := func(ch chan<- amountResult, docType string, from, to time.Time) {
		v, err := uc.analyticsRepo.CompletedTotal(ctx, userID, docType, from, to)
		ch <- amountResult{v, err}
	}
	go total(salesCh, entity.DocumentTypeEstimate, monthStart, nextMonth)
	go total(salesPrevCh, entity.DocumentTypeEstimate, lastMonth, monthStart)
	go total(purchCh, entity.DocumentTypeOrder, monthStart, nextMonth)
	go total(purchPrevCh, entity.DocumentTypeOrder, lastMonth, monthStart)
	go func() {
		rows, err := uc.consultations.FollowUps(ctx, userID)
		followCh <- consultationsResult{rows, err}
	}()
	go func() {
		res, err := uc.consultations.Recent(ctx, repository.ConsultationFilter{UserID: userID}, dto.PageQuery{Page: 1, Limit: dashboardRecent})
		if err != nil {
			recentCh <- consultationsResult{err: err}
			return
		}
		recentCh <- consultationsResult{rows: res.Data}
	}()
	go func() {
		res, err := uc.documents.List(ctx, repository.DocumentFilter{Type: entity.DocumentTypeEstimate, Status: "expiring_soon", UserID: userID}, dto.PageQuery{Page: 1, Limit: dto.MaxLimit})
		if err != nil {
			expiringCh <- documentsResult{err: err}
			return
		}
		expiringCh <- documentsResult{rows: res.Data}
	}()

	count := <-countCh
	status := <-statusCh
	sales, salesPrev := <-salesCh, <-salesPrevCh
	purch, purchPrev := <-purchCh, <-purchPrevCh
	follow := <-followCh
	recent := <-recentCh
	expiring := <-expiringCh

	for _, r := range []struct {
		what string
		err  error
	}{
		{"consultas del mes", count.err},
		{"documentos por estado", status.err},
		{"ventas", firstErr(sales.err, salesPrev.err)},
		{"compras", firstErr(purch.err, purchPrev.err)},
		{"seguimientos", follow.err},
		{"consultas recientes", recent.err},
		{"documentos por vencer", expiring.err},
	} {
		if r.err != nil {
			return nil, fmt.Errorf("dashboard: %s: %w", r.what, r.err)
		}
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	return &dto.DashboardSummaryResponse{
		UserID:              userID,
		Period:              monthStart.Format("2006-01"),
		ConsultationCount:   count.n,
		Documents:           repository.StatusMatrix(status.rows),
		Sales:               compare(sales.v, salesPrev.v),
		Purchases:           compare(purch.v, purchPrev.v),
		FollowUps:           follow.rows,
		ExpiringDocuments:   expiring.rows,
		RecentConsultations: recent.rows,
	}, nil
}

// compare arma la comparación mensual. Sin base (mes anterior en cero) no hay tasa.
func compare(this, last decimal.Decimal) dto.PeriodComparison {
	pc := dto.PeriodComparison{ThisMonth: this, LastMonth: last}
	if !last.IsZero() {
		rate := this.Sub(last).Div(last).Mul(hundred).Round(2)
		pc.GrowthRate = &rate
	}
	return pc
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
