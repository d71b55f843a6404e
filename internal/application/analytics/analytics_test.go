package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestCompare_SinBaseNoHayTasa(t *testing.T) {
	pc := compare(dec(500), decimal.Zero)
	assert.Nil(t, pc.GrowthRate)
	assert.True(t, dec(500).Equal(pc.ThisMonth))
}

func TestCompare_Tasas(t *testing.T) {
	cases := []struct {
		name       string
		this, last decimal.Decimal
		want       string
	}{
		{"crece", dec(150), dec(100), "50"},
		{"baja", dec(50), dec(100), "-50"},
		{"igual", dec(100), dec(100), "0"},
		{"redondeo", dec(100), dec(300), "-66.67"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pc := compare(tc.this, tc.last)
			require.NotNil(t, pc.GrowthRate)
			assert.Equal(t, tc.want, pc.GrowthRate.String())
		})
	}
}

func TestBuildCompanyStats(t *testing.T) {
	afterCutoff := day(2025, 1, 5)
	docs := []*entity.Document{
		{ // anterior al corte: cuenta como completado aunque esté pendiente
			Type: entity.DocumentTypeEstimate, Status: entity.DocumentStatusPending,
			Date: day(2024, 10, 2), CreatedAt: day(2024, 10, 2), TotalAmount: dec(300),
			Content: entity.DocumentContent{Items: []entity.DocumentItem{{Name: "염산", Amount: dec(300)}}},
		},
		{
			Type: entity.DocumentTypeEstimate, Status: entity.DocumentStatusCompleted,
			Date: day(2025, 2, 10), CreatedAt: afterCutoff, TotalAmount: dec(1000),
			Content: entity.DocumentContent{Items: []entity.DocumentItem{
				{Name: "수산화나트륨", Spec: "25kg", Amount: dec(800)},
				{Name: "염산", Amount: dec(200)},
			}},
		},
		{ // pendiente posterior al corte: no suma
			Type: entity.DocumentTypeEstimate, Status: entity.DocumentStatusPending,
			Date: day(2025, 2, 20), CreatedAt: afterCutoff, TotalAmount: dec(9999),
		},
		{
			Type: entity.DocumentTypeOrder, Status: entity.DocumentStatusCompleted,
			Date: day(2025, 4, 1), CreatedAt: afterCutoff, TotalAmount: dec(400),
		},
	}

	resp := buildCompanyStats("c-1", docs)

	assert.True(t, dec(1300).Equal(resp.TotalSales), resp.TotalSales.String())
	assert.True(t, dec(400).Equal(resp.TotalPurchases))
	assert.Equal(t, 2, resp.DocumentCounts[entity.DocumentTypeEstimate][entity.DocumentStatusPending])
	assert.Equal(t, 1, resp.DocumentCounts[entity.DocumentTypeOrder][entity.DocumentStatusCompleted])
	assert.Equal(t, 0, resp.DocumentCounts[entity.DocumentTypeRequestQuote][entity.DocumentStatusPending])

	require.NotNil(t, resp.FirstTransaction)
	assert.Equal(t, "2024-10-02", *resp.FirstTransaction)
	assert.Equal(t, "2025-04-01", *resp.LastTransaction)

	require.Len(t, resp.Yearly, 2)
	assert.Equal(t, "2024", resp.Yearly[0].Period)
	assert.True(t, dec(1000).Equal(resp.Yearly[1].Sales))
	assert.True(t, dec(400).Equal(resp.Yearly[1].Purchases))

	quarters := make([]string, 0, len(resp.Quarterly))
	for _, q := range resp.Quarterly {
		quarters = append(quarters, q.Period)
	}
	assert.Equal(t, []string{"2024-Q4", "2025-Q1", "2025-Q2"}, quarters)

	require.Len(t, resp.TopItems, 2)
	assert.Equal(t, "수산화나트륨", resp.TopItems[0].Name)
	assert.Equal(t, "염산", resp.TopItems[1].Name)
	assert.Equal(t, 2, resp.TopItems[1].Count)
	assert.True(t, dec(500).Equal(resp.TopItems[1].Amount))
}

func TestBuildCompanyStats_SinDocumentos(t *testing.T) {
	resp := buildCompanyStats("c-1", nil)
	assert.True(t, resp.TotalSales.IsZero())
	assert.Nil(t, resp.FirstTransaction)
	assert.NotNil(t, resp.TopItems)
	assert.Empty(t, resp.Monthly)
}

// stubAnalytics implementa solo lo que usa cada test; el resto entra en pánico.
type stubAnalytics struct {
	repository.AnalyticsRepository
	totals map[string]decimal.Decimal // tipo + "@" + mes
	docs   []*entity.Document
	err    error
}

func (s *stubAnalytics) CountConsultations(context.Context, string, time.Time, time.Time) (int, error) {
	return 7, s.err
}

func (s *stubAnalytics) DocumentStatusCounts(context.Context, string, time.Time, time.Time) ([]repository.TypeStatusCount, error) {
	return []repository.TypeStatusCount{{Type: entity.DocumentTypeEstimate, Status: entity.DocumentStatusPending, Count: 3}}, nil
}

func (s *stubAnalytics) CompletedTotal(_ context.Context, _ string, docType string, from, _ time.Time) (decimal.Decimal, error) {
	return s.totals[docType+"@"+from.Format("2006-01")], nil
}

func (s *stubAnalytics) CompanyDocuments(context.Context, string) ([]*entity.Document, error) {
	return s.docs, s.err
}

func (s *stubAnalytics) CompanyActivity(context.Context, string) ([]repository.UserActivity, error) {
	return []repository.UserActivity{{UserID: "u-1", UserName: "김영업", ConsultationCount: 4, DocumentCount: 2}}, nil
}

type stubConsultations struct {
	repository.ConsultationRepository
}

func (stubConsultations) List(context.Context, repository.ConsultationFilter, int, int) ([]*entity.Consultation, int, error) {
	return []*entity.Consultation{{ID: "q-1", Date: day(2025, 3, 9)}}, 1, nil
}

func (stubConsultations) FollowUps(context.Context, string, time.Time, time.Time) ([]*entity.Consultation, error) {
	return nil, nil
}

type stubDocuments struct {
	repository.DocumentRepository
	filter *repository.DocumentFilter
}

func (s stubDocuments) List(_ context.Context, f repository.DocumentFilter, _, _ int) ([]*entity.Document, int, error) {
	*s.filter = f
	return nil, 0, nil
}

type stubCompanies struct {
	repository.CompanyRepository
}

func (stubCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	if id != "c-1" {
		return nil, nil
	}
	return &entity.Company{ID: id}, nil
}

type stubContacts struct {
	repository.ContactRepository
}

func (stubContacts) ListByCompany(context.Context, string) ([]*entity.Contact, error) {
	return []*entity.Contact{{ID: "k-1"}, {ID: "k-2", Resign: true}}, nil
}

func TestDashboardSummary(t *testing.T) {
	prev := now
	now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prev })

	repo := &stubAnalytics{totals: map[string]decimal.Decimal{
		entity.DocumentTypeEstimate + "@2025-03": dec(1200),
		entity.DocumentTypeEstimate + "@2025-02": dec(1000),
		entity.DocumentTypeOrder + "@2025-03":    dec(300),
	}}
	var docFilter repository.DocumentFilter
	consultations := usecase.NewConsultationUseCase(stubConsultations{}, nil, nil)
	documents := usecase.NewDocumentUseCase(usecase.DocumentDeps{Documents: stubDocuments{filter: &docFilter}})
	uc := NewDashboardUseCase(repo, consultations, documents)

	out, err := uc.GetSummary(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "2025-03", out.Period)
	assert.Equal(t, 7, out.ConsultationCount)
	assert.Equal(t, 3, out.Documents[entity.DocumentTypeEstimate][entity.DocumentStatusPending])
	require.NotNil(t, out.Sales.GrowthRate)
	assert.Equal(t, "20", out.Sales.GrowthRate.String())
	assert.Nil(t, out.Purchases.GrowthRate)
	assert.Len(t, out.RecentConsultations, 1)
	assert.NotNil(t, out.FollowUps)
	assert.NotNil(t, out.ExpiringDocuments)

	assert.Equal(t, "expiring_soon", docFilter.Status)
	assert.Equal(t, "u-1", docFilter.UserID)
}

func TestDashboardSummary_PropagaErrores(t *testing.T) {
	repo := &stubAnalytics{err: errors.New("db caída")}
	var docFilter repository.DocumentFilter
	consultations := usecase.NewConsultationUseCase(stubConsultations{}, nil, nil)
	documents := usecase.NewDocumentUseCase(usecase.DocumentDeps{Documents: stubDocuments{filter: &docFilter}})
	uc := NewDashboardUseCase(repo, consultations, documents)

	_, err := uc.GetSummary(context.Background(), "u-1")
	assert.ErrorContains(t, err, "db caída")
}

func TestCompanyStats_Get(t *testing.T) {
	repo := &stubAnalytics{docs: []*entity.Document{{
		Type: entity.DocumentTypeEstimate, Status: entity.DocumentStatusCompleted,
		Date: day(2025, 2, 1), CreatedAt: day(2025, 2, 1), TotalAmount: dec(100),
	}}}
	uc := NewCompanyStatsUseCase(repo, stubCompanies{}, stubContacts{})

	out, err := uc.Get(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, 2, out.ContactCount)
	assert.Equal(t, 1, out.ActiveContactCount)
	require.Len(t, out.Users, 1)
	assert.Equal(t, 4, out.Users[0].ConsultationCount)
	assert.True(t, dec(100).Equal(out.TotalSales))

	_, err = uc.Get(context.Background(), "otra")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
