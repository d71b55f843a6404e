package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const topItemsLimit = 10

// CompanyStatsUseCase estadísticas de una empresa a partir de sus documentos,
// la actividad de los usuarios y sus contactos.
type CompanyStatsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	companies     repository.CompanyRepository
	contacts      repository.ContactRepository
}

// NewCompanyStatsUseCase construye el caso de uso.
func NewCompanyStatsUseCase(analyticsRepo repository.AnalyticsRepository, companies repository.CompanyRepository, contacts repository.ContactRepository) *CompanyStatsUseCase {
	return &CompanyStatsUseCase{analyticsRepo: analyticsRepo, companies: companies, contacts: contacts}
}

// Get calcula las estadísticas. Documentos, actividad y contactos se leen en paralelo;
// el primer error cancela el resto.
func (uc *CompanyStatsUseCase) Get(ctx context.Context, companyID string) (*dto.CompanyStatsResponse, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	var (
		docs     []*entity.Document
		activity []repository.UserActivity
		contacts []*entity.Contact
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = uc.analyticsRepo.CompanyDocuments(gctx, companyID)
		return err
	})
	g.Go(func() error {
		var err error
		activity, err = uc.analyticsRepo.CompanyActivity(gctx, companyID)
		return err
	})
	g.Go(func() error {
		var err error
		contacts, err = uc.contacts.ListByCompany(gctx, companyID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("companyStats: %w", err)
	}

	resp := buildCompanyStats(companyID, docs)
	resp.Users = make([]dto.UserActivityResponse, 0, len(activity))
	for _, a := range activity {
		resp.Users = append(resp.Users, dto.UserActivityResponse{
			UserID:            a.UserID,
			UserName:          a.UserName,
			ConsultationCount: a.ConsultationCount,
			DocumentCount:     a.DocumentCount,
		})
	}
	resp.ContactCount = len(contacts)
	for _, c := range contacts {
		if !c.Resign {
			resp.ActiveContactCount++
		}
	}
	return resp, nil
}

// buildCompanyStats agrega los documentos: conteos, ventas/compras por periodo,
// artículos principales y rango de fechas de transacciones.
func buildCompanyStats(companyID string, docs []*entity.Document) *dto.CompanyStatsResponse {
	resp := &dto.CompanyStatsResponse{
		CompanyID:      companyID,
		TotalSales:     decimal.Zero,
		TotalPurchases: decimal.Zero,
	}
	var counts []repository.TypeStatusCount
	yearly := periodSums{}
	quarterly := periodSums{}
	monthly := periodSums{}
	items := map[string]*dto.ItemAmount{}

	for i, d := range docs {
		counts = append(counts, repository.TypeStatusCount{Type: d.Type, Status: d.Status, Count: 1})
		if i == 0 {
			resp.FirstTransaction = dto.FormatDatePtr(&d.Date)
		}
		resp.LastTransaction = dto.FormatDatePtr(&d.Date)

		if !d.CountsAsCompleted() {
			continue
		}
		year := d.Date.Format("2006")
		quarter := fmt.Sprintf("%s-Q%d", year, (int(d.Date.Month())-1)/3+1)
		month := d.Date.Format("2006-01")
		switch d.Type {
		case entity.DocumentTypeEstimate:
			resp.TotalSales = resp.TotalSales.Add(d.TotalAmount)
			yearly.addSales(year, d.TotalAmount)
			quarterly.addSales(quarter, d.TotalAmount)
			monthly.addSales(month, d.TotalAmount)
			for _, it := range d.Content.Items {
				key := it.Name + "\x00" + it.Spec
				ia, ok := items[key]
				if !ok {
					ia = &dto.ItemAmount{Name: it.Name, Spec: it.Spec, Amount: decimal.Zero}
					items[key] = ia
				}
				ia.Count++
				ia.Amount = ia.Amount.Add(it.Amount)
			}
		case entity.DocumentTypeOrder:
			resp.TotalPurchases = resp.TotalPurchases.Add(d.TotalAmount)
			yearly.addPurchases(year, d.TotalAmount)
			quarterly.addPurchases(quarter, d.TotalAmount)
			monthly.addPurchases(month, d.TotalAmount)
		}
	}

	resp.DocumentCounts = repository.StatusMatrix(counts)
	resp.Yearly = yearly.sorted()
	resp.Quarterly = quarterly.sorted()
	resp.Monthly = monthly.sorted()

	resp.TopItems = make([]dto.ItemAmount, 0, len(items))
	for _, ia := range items {
		resp.TopItems = append(resp.TopItems, *ia)
	}
	sort.Slice(resp.TopItems, func(i, j int) bool {
		if c := resp.TopItems[i].Amount.Cmp(resp.TopItems[j].Amount); c != 0 {
			return c > 0
		}
		return resp.TopItems[i].Name < resp.TopItems[j].Name
	})
	if len(resp.TopItems) > topItemsLimit {
		resp.TopItems = resp.TopItems[:topItemsLimit]
	}
	return resp
}

type periodSums map[string]*dto.PeriodAmount

func (p periodSums) get(period string) *dto.PeriodAmount {
	pa, ok := p[period]
	if !ok {
		pa = &dto.PeriodAmount{Period: period, Sales: decimal.Zero, Purchases: decimal.Zero}
		p[period] = pa
	}
	return pa
}

func (p periodSums) addSales(period string, v decimal.Decimal) {
	pa := p.get(period)
	pa.Sales = pa.Sales.Add(v)
}

func (p periodSums) addPurchases(period string, v decimal.Decimal) {
	pa := p.get(period)
	pa.Purchases = pa.Purchases.Add(v)
}

func (p periodSums) sorted() []dto.PeriodAmount {
	out := make([]dto.PeriodAmount, 0, len(p))
	for _, pa := range p {
		out = append(out, *pa)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
