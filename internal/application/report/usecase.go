// Package report contiene los reportes de rendimiento comercial y el diario de trabajo.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// CompaniesPageSize filas por página del reporte por empresa.
const CompaniesPageSize = 10

// dailyWorkers consultas de documentos simultáneas al armar el diario.
const dailyWorkers = 4

// Modos del diario de trabajo.
const (
	ModeDaily   = "daily"
	ModeWeekly  = "weekly"
	ModeMonthly = "monthly"
)

var (
	hundred  = decimal.NewFromInt(100)
	weekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}
	docTypes = []string{entity.DocumentTypeEstimate, entity.DocumentTypeOrder, entity.DocumentTypeRequestQuote}
	statuses = []string{entity.DocumentStatusPending, entity.DocumentStatusCompleted, entity.DocumentStatusCanceled, entity.DocumentStatusExpired}
)

// now reloj del paquete; los tests lo fijan.
var now = time.Now

// ReportUseCase reportes de rendimiento, media por industria y diario de trabajo.
type ReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	consultations repository.ConsultationRepository
	documents     repository.DocumentRepository
	users         repository.UserRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(analyticsRepo repository.AnalyticsRepository, consultations repository.ConsultationRepository, documents repository.DocumentRepository, users repository.UserRepository) *ReportUseCase {
	return &ReportUseCase{analyticsRepo: analyticsRepo, consultations: consultations, documents: documents, users: users}
}

// Performance resumen anual del usuario: conteo y total por tipo y estado, totales
// mensuales completados y montos mensuales por artículo. Los documentos anteriores
// al corte heredado cuentan como completados.
func (uc *ReportUseCase) Performance(ctx context.Context, userID string, year int) (*dto.PerformanceResponse, error) {
	if year == 0 {
		year = now().Year()
	}
	if year < 2000 || year > 2100 {
		return nil, &dto.ValidationError{Invalid: []string{"year"}}
	}
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0).Add(-time.Nanosecond)
	docs, err := uc.analyticsRepo.ReportDocuments(ctx, repository.ReportFilter{UserID: userID, StartDate: &from, EndDate: &to})
	if err != nil {
		return nil, err
	}
	return buildPerformance(year, userID, docs), nil
}

func buildPerformance(year int, userID string, docs []*entity.Document) *dto.PerformanceResponse {
	resp := &dto.PerformanceResponse{
		Year:    year,
		UserID:  userID,
		Summary: map[string]map[string]dto.CountTotal{},
		Monthly: map[string][]decimal.Decimal{},
	}
	for _, t := range docTypes {
		resp.Summary[t] = map[string]dto.CountTotal{}
		for _, s := range statuses {
			resp.Summary[t][s] = dto.CountTotal{Total: decimal.Zero}
		}
		resp.Monthly[t] = zeroMonths()
	}

	type productKey struct{ name, docType string }
	products := map[productKey]*dto.ProductMonthly{}
	for _, d := range docs {
		status := d.Status
		completed := d.CountsAsCompleted()
		if completed {
			status = entity.DocumentStatusCompleted
		}
		if _, ok := resp.Summary[d.Type]; !ok {
			resp.Summary[d.Type] = map[string]dto.CountTotal{}
			resp.Monthly[d.Type] = zeroMonths()
		}
		ct := resp.Summary[d.Type][status]
		ct.Count++
		ct.Total = ct.Total.Add(d.TotalAmount)
		resp.Summary[d.Type][status] = ct

		if !completed {
			continue
		}
		m := int(d.Date.Month()) - 1
		resp.Monthly[d.Type][m] = resp.Monthly[d.Type][m].Add(d.TotalAmount)
		for _, it := range d.Content.Items {
			key := productKey{it.Name, d.Type}
			p, ok := products[key]
			if !ok {
				p = &dto.ProductMonthly{Name: it.Name, Type: d.Type, Monthly: zeroMonths(), Total: decimal.Zero}
				products[key] = p
			}
			p.Monthly[m] = p.Monthly[m].Add(it.Amount)
			p.Total = p.Total.Add(it.Amount)
		}
	}

	resp.Products = make([]dto.ProductMonthly, 0, len(products))
	for _, p := range products {
		resp.Products = append(resp.Products, *p)
	}
	sort.Slice(resp.Products, func(i, j int) bool {
		if c := resp.Products[i].Total.Cmp(resp.Products[j].Total); c != 0 {
			return c > 0
		}
		return resp.Products[i].Name < resp.Products[j].Name
	})
	return resp
}

// Companies rendimiento por empresa, paginado de a 10.
func (uc *ReportUseCase) Companies(ctx context.Context, f repository.ReportFilter, page int) (*dto.ListResponse[dto.CompanyPerformanceResponse], error) {
	if f.Type != "" && f.Type != entity.DocumentTypeEstimate && f.Type != entity.DocumentTypeOrder {
		return nil, &dto.ValidationError{Invalid: []string{"type"}}
	}
	pq := dto.PageQuery{Page: page, Limit: CompaniesPageSize}
	pq.Normalize(CompaniesPageSize)
	rows, total, err := uc.analyticsRepo.CompanyPerformance(ctx, f, pq.Limit, pq.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyPerformanceResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.CompanyPerformanceResponse{
			CompanyID:        r.CompanyID,
			CompanyName:      r.CompanyName,
			EstimateCount:    r.EstimateCount,
			CancelRate:       rate(r.CanceledEstimates, r.EstimateCount),
			OrderRate:        rate(r.CompletedEstimate, r.EstimateCount),
			TotalSales:       r.TotalSales,
			OrderCount:       r.OrderCount,
			TotalPurchases:   r.TotalPurchases,
			LastEstimateDate: dto.FormatDatePtr(r.LastEstimateDate),
			LastOrderDate:    dto.FormatDatePtr(r.LastOrderDate),
		})
	}
	resp := dto.NewListResponse(items, total, pq)
	return &resp, nil
}

// IndustryAverage ventas completadas de la industria divididas por su número de empresas.
// Sin empresas la media no está definida y se devuelve nula.
func (uc *ReportUseCase) IndustryAverage(ctx context.Context, industry string, from, to *time.Time) (*dto.IndustryAverageResponse, error) {
	if industry == "" {
		return nil, dto.NewRequiredError("industry")
	}
	total, companies, err := uc.analyticsRepo.IndustrySales(ctx, industry, from, to)
	if err != nil {
		return nil, err
	}
	resp := &dto.IndustryAverageResponse{Industry: industry, CompanyCount: companies, TotalSales: total}
	if companies > 0 {
		avg := total.Div(decimal.NewFromInt(int64(companies))).Round(2)
		resp.Average = &avg
	}
	return resp, nil
}

// DailyQuery parámetros del diario de trabajo.
type DailyQuery struct {
	Date     string
	UserID   string
	Mode     string
	AllUsers bool
}

// Daily diario de trabajo: consultas del periodo en orden cronológico con sus documentos.
// weekly va de lunes a domingo y monthly del día 1 al último día del mes de Date.
func (uc *ReportUseCase) Daily(ctx context.Context, q DailyQuery) (*dto.DailyReportResponse, error) {
	if q.Mode == "" {
		q.Mode = ModeDaily
	}
	if !q.AllUsers && q.UserID == "" {
		return nil, dto.NewRequiredError("userId")
	}
	day := now()
	if q.Date != "" {
		t, err := dto.ParseDate(q.Date)
		if err != nil {
			return nil, &dto.ValidationError{Invalid: []string{"date"}}
		}
		day = *t
	}
	from, to, err := dailyRange(day, q.Mode)
	if err != nil {
		return nil, err
	}

	resp := &dto.DailyReportResponse{
		Date:     from.Format(dto.DateLayout),
		ViewMode: q.Mode,
		Items:    []dto.DailyReportItem{},
	}
	switch q.Mode {
	case ModeDaily:
		resp.DayOfWeek = weekdays[from.Weekday()]
	case ModeWeekly:
		resp.DayOfWeek = "주간"
	case ModeMonthly:
		resp.DayOfWeek = "월간"
	}
	if q.Mode != ModeDaily {
		resp.DateEnd = to.AddDate(0, 0, -1).Format(dto.DateLayout)
	}

	if q.AllUsers {
		resp.Author = "전체"
	} else {
		user, err := uc.users.GetByID(ctx, q.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
		resp.Author = user.Name
		resp.AuthorID = user.ID
	}

	f := repository.ConsultationFilter{StartDate: &from, EndDate: ptr(to.Add(-time.Nanosecond)), Ascending: true}
	if !q.AllUsers {
		f.UserID = q.UserID
	}
	list, _, err := uc.consultations.List(ctx, f, 0, 0)
	if err != nil {
		return nil, err
	}

	docs := make([][]*entity.Document, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dailyWorkers)
	for i, c := range list {
		if len(c.Documents) == 0 {
			continue
		}
		i, id := i, c.ID
		g.Go(func() error {
			var err error
			docs[i], err = uc.documents.ListByConsultation(gctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("report.Daily: %w", err)
	}

	for i, c := range list {
		item := dto.DailyReportItem{
			No:               i + 1,
			CompanyName:      c.CompanyName,
			CompanyID:        c.CompanyID,
			Title:            c.Title,
			Content:          c.Content,
			ConsultationID:   c.ID,
			ConsultationDate: c.Date.Format(dto.DateLayout),
			Documents:        []dto.DailyReportDocument{},
		}
		if q.AllUsers {
			item.AuthorName = c.UserName
		}
		for _, d := range docs[i] {
			rd := dto.DailyReportDocument{
				ID:             d.ID,
				Type:           d.Type,
				DocumentNumber: d.DocumentNumber,
				TotalAmount:    d.TotalAmount,
				Status:         d.Status,
				Items:          make([]dto.DailyReportLine, 0, len(d.Content.Items)),
			}
			for _, it := range d.Content.Items {
				rd.Items = append(rd.Items, dto.DailyReportLine{
					Name:      it.Name,
					Spec:      it.Spec,
					Quantity:  string(it.Quantity),
					UnitPrice: it.UnitPrice,
					Amount:    it.Amount,
				})
			}
			item.Documents = append(item.Documents, rd)
		}
		resp.Items = append(resp.Items, item)
	}
	return resp, nil
}

// dailyRange devuelve [from, to) del periodo que contiene day.
func dailyRange(day time.Time, mode string) (time.Time, time.Time, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	switch mode {
	case ModeDaily:
		return start, start.AddDate(0, 0, 1), nil
	case ModeWeekly:
		offset := (int(start.Weekday()) + 6) % 7 // lunes = 0
		monday := start.AddDate(0, 0, -offset)
		return monday, monday.AddDate(0, 0, 7), nil
	case ModeMonthly:
		first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		return first, first.AddDate(0, 1, 0), nil
	}
	return time.Time{}, time.Time{}, &dto.ValidationError{Invalid: []string{"mode"}}
}

// rate porcentaje part/whole con un decimal; cero si whole es cero.
func rate(part, whole int) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(whole))).Round(1)
}

func zeroMonths() []decimal.Decimal {
	out := make([]decimal.Decimal, 12)
	for i := range out {
		out[i] = decimal.Zero
	}
	return out
}

func ptr[T any](v T) *T { return &v }
