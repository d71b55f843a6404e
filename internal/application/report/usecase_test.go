package report

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestDailyRange(t *testing.T) {
	wed := date(2025, 3, 12)
	cases := []struct {
		mode     string
		day      time.Time
		from, to time.Time
	}{
		{ModeDaily, wed, date(2025, 3, 12), date(2025, 3, 13)},
		{ModeWeekly, wed, date(2025, 3, 10), date(2025, 3, 17)},
		{ModeWeekly, date(2025, 3, 16), date(2025, 3, 10), date(2025, 3, 17)}, // domingo cierra la semana
		{ModeWeekly, date(2025, 3, 10), date(2025, 3, 10), date(2025, 3, 17)},
		{ModeMonthly, wed, date(2025, 3, 1), date(2025, 4, 1)},
		{ModeMonthly, date(2024, 12, 31), date(2024, 12, 1), date(2025, 1, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.mode+" "+tc.day.Format(dto.DateLayout), func(t *testing.T) {
			from, to, err := dailyRange(tc.day, tc.mode)
			require.NoError(t, err)
			assert.Equal(t, tc.from, from)
			assert.Equal(t, tc.to, to)
		})
	}

	_, _, err := dailyRange(wed, "yearly")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRate(t *testing.T) {
	assert.True(t, rate(0, 0).IsZero())
	assert.Equal(t, "33.3", rate(1, 3).String())
	assert.Equal(t, "100", rate(4, 4).String())
}

type stubAnalytics struct {
	repository.AnalyticsRepository
	industryTotal decimal.Decimal
	companies     int
	docs          []*entity.Document
	perf          []repository.CompanyPerformance
	gotLimit      int
	gotOffset     int
}

func (s *stubAnalytics) IndustrySales(context.Context, string, *time.Time, *time.Time) (decimal.Decimal, int, error) {
	return s.industryTotal, s.companies, nil
}

func (s *stubAnalytics) ReportDocuments(context.Context, repository.ReportFilter) ([]*entity.Document, error) {
	return s.docs, nil
}

func (s *stubAnalytics) CompanyPerformance(_ context.Context, _ repository.ReportFilter, limit, offset int) ([]repository.CompanyPerformance, int, error) {
	s.gotLimit, s.gotOffset = limit, offset
	return s.perf, 23, nil
}

func TestIndustryAverage(t *testing.T) {
	uc := NewReportUseCase(&stubAnalytics{industryTotal: dec(1000), companies: 3}, nil, nil, nil)

	out, err := uc.IndustryAverage(context.Background(), "화학", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, out.Average)
	assert.Equal(t, "333.33", out.Average.String())
	assert.Equal(t, 3, out.CompanyCount)
}

func TestIndustryAverage_SinEmpresasEsNulo(t *testing.T) {
	uc := NewReportUseCase(&stubAnalytics{industryTotal: decimal.Zero}, nil, nil, nil)

	out, err := uc.IndustryAverage(context.Background(), "화학", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, out.Average)

	_, err = uc.IndustryAverage(context.Background(), "", nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompanies_PaginaDeDiezYTasas(t *testing.T) {
	last := date(2025, 2, 3)
	repo := &stubAnalytics{perf: []repository.CompanyPerformance{{
		CompanyID: "c-1", CompanyName: "대한화학",
		EstimateCount: 8, CanceledEstimates: 2, CompletedEstimate: 3,
		TotalSales: dec(5000), LastEstimateDate: &last,
	}}}
	uc := NewReportUseCase(repo, nil, nil, nil)

	out, err := uc.Companies(context.Background(), repository.ReportFilter{}, 3)
	require.NoError(t, err)
	assert.Equal(t, CompaniesPageSize, repo.gotLimit)
	assert.Equal(t, 20, repo.gotOffset)
	assert.Equal(t, 3, out.TotalPages)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "25", out.Data[0].CancelRate.String())
	assert.Equal(t, "37.5", out.Data[0].OrderRate.String())
	assert.Equal(t, "2025-02-03", *out.Data[0].LastEstimateDate)
	assert.Nil(t, out.Data[0].LastOrderDate)

	_, err = uc.Companies(context.Background(), repository.ReportFilter{Type: entity.DocumentTypeRequestQuote}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPerformance_CorteHeredadoYMeses(t *testing.T) {
	afterCutoff := date(2025, 1, 10)
	repo := &stubAnalytics{docs: []*entity.Document{
		{
			Type: entity.DocumentTypeEstimate, Status: entity.DocumentStatusCompleted,
			Date: date(2025, 2, 5), CreatedAt: afterCutoff, TotalAmount: dec(1000),
			Content: entity.DocumentContent{Items: []entity.DocumentItem{{Name: "염산", Amount: dec(1000)}}},
		},
		{
			Type: entity.DocumentTypeEstimate, Status: entity.DocumentStatusPending,
			Date: date(2025, 2, 6), CreatedAt: afterCutoff, TotalAmount: dec(50),
		},
		{ // migrado sin estado fiable: completado
			Type: entity.DocumentTypeOrder, Status: entity.DocumentStatusPending,
			Date: date(2024, 11, 20), CreatedAt: date(2024, 11, 20), TotalAmount: dec(70),
		},
	}}
	uc := NewReportUseCase(repo, nil, nil, nil)

	out, err := uc.Performance(context.Background(), "u-1", 2025)
	require.NoError(t, err)
	est := out.Summary[entity.DocumentTypeEstimate]
	assert.Equal(t, 1, est[entity.DocumentStatusCompleted].Count)
	assert.Equal(t, 1, est[entity.DocumentStatusPending].Count)
	assert.True(t, dec(50).Equal(est[entity.DocumentStatusPending].Total))
	assert.Equal(t, 1, out.Summary[entity.DocumentTypeOrder][entity.DocumentStatusCompleted].Count)
	assert.Equal(t, 0, out.Summary[entity.DocumentTypeRequestQuote][entity.DocumentStatusCanceled].Count)

	require.Len(t, out.Monthly[entity.DocumentTypeEstimate], 12)
	assert.True(t, dec(1000).Equal(out.Monthly[entity.DocumentTypeEstimate][1]))
	assert.True(t, dec(70).Equal(out.Monthly[entity.DocumentTypeOrder][10]))

	require.Len(t, out.Products, 1)
	assert.Equal(t, "염산", out.Products[0].Name)

	_, err = uc.Performance(context.Background(), "u-1", 1999)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type stubConsultations struct {
	repository.ConsultationRepository
	mu     sync.Mutex
	filter repository.ConsultationFilter
	rows   []*entity.Consultation
}

func (s *stubConsultations) List(_ context.Context, f repository.ConsultationFilter, _, _ int) ([]*entity.Consultation, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	return s.rows, len(s.rows), nil
}

type stubDocuments struct {
	repository.DocumentRepository
	byConsultation map[string][]*entity.Document
}

func (s stubDocuments) ListByConsultation(_ context.Context, id string) ([]*entity.Document, error) {
	return s.byConsultation[id], nil
}

type stubUsers struct {
	repository.UserRepository
}

func (stubUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if id != "u-1" {
		return nil, nil
	}
	return &entity.User{ID: id, Name: "김영업"}, nil
}

func TestDaily_SemanalConDocumentos(t *testing.T) {
	consultations := &stubConsultations{rows: []*entity.Consultation{
		{ID: "q-1", CompanyName: "대한화학", Date: date(2025, 3, 10), Documents: []entity.DocumentRef{{ID: "d-1"}}},
		{ID: "q-2", CompanyName: "한빛상사", Date: date(2025, 3, 12)},
	}}
	documents := stubDocuments{byConsultation: map[string][]*entity.Document{
		"q-1": {{
			ID: "d-1", Type: entity.DocumentTypeEstimate, DocumentNumber: "EST-20250310-001", TotalAmount: dec(15000),
			Content: entity.DocumentContent{Items: []entity.DocumentItem{{Name: "수산화나트륨", Quantity: "10 EA", Amount: dec(15000)}}},
		}},
	}}
	uc := NewReportUseCase(nil, consultations, documents, stubUsers{})

	out, err := uc.Daily(context.Background(), DailyQuery{Date: "2025-03-12", UserID: "u-1", Mode: ModeWeekly})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", out.Date)
	assert.Equal(t, "2025-03-16", out.DateEnd)
	assert.Equal(t, "주간", out.DayOfWeek)
	assert.Equal(t, "김영업", out.Author)

	require.Len(t, out.Items, 2)
	assert.Equal(t, 1, out.Items[0].No)
	require.Len(t, out.Items[0].Documents, 1)
	assert.Equal(t, "10 EA", out.Items[0].Documents[0].Items[0].Quantity)
	assert.NotNil(t, out.Items[1].Documents)
	assert.Empty(t, out.Items[1].Documents)

	assert.True(t, consultations.filter.Ascending)
	assert.Equal(t, "u-1", consultations.filter.UserID)
	assert.Equal(t, date(2025, 3, 10), *consultations.filter.StartDate)
}

func TestDaily_DiaDeLaSemanaYTodos(t *testing.T) {
	consultations := &stubConsultations{}
	uc := NewReportUseCase(nil, consultations, stubDocuments{}, stubUsers{})

	out, err := uc.Daily(context.Background(), DailyQuery{Date: "2025-03-12", AllUsers: true})
	require.NoError(t, err)
	assert.Equal(t, "수", out.DayOfWeek)
	assert.Equal(t, "전체", out.Author)
	assert.Empty(t, out.DateEnd)
	assert.Empty(t, consultations.filter.UserID)
	assert.NotNil(t, out.Items)
}

func TestDaily_Errores(t *testing.T) {
	uc := NewReportUseCase(nil, &stubConsultations{}, stubDocuments{}, stubUsers{})
	ctx := context.Background()

	_, err := uc.Daily(ctx, DailyQuery{Date: "2025-03-12"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Daily(ctx, DailyQuery{Date: "2025-03-12", UserID: "nadie"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Daily(ctx, DailyQuery{Date: "ayer", UserID: "u-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Daily(ctx, DailyQuery{Date: "2025-03-12", UserID: "u-1", Mode: "yearly"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
