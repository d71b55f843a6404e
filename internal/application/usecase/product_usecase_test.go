package usecase

import (
	"context"
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

type fakeProducts struct {
	repository.ProductRepository
	rows    map[string]*entity.Product
	history []*entity.PriceHistoryEntry
	// filter y limit de la última consulta de historial
	filter repository.PriceHistoryFilter
	limit  int
}

func (f *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeProducts) PriceHistory(_ context.Context, fl repository.PriceHistoryFilter, limit int) ([]*entity.PriceHistoryEntry, error) {
	f.filter, f.limit = fl, limit
	return f.history, nil
}

func newProductFixture() (*fakeProducts, *ProductUseCase) {
	repo := &fakeProducts{rows: map[string]*entity.Product{
		"p-1": {ID: "p-1", Name: "수산화나트륨", Spec: "25kg", Unit: "포대", UnitPrice: decimal.NewFromInt(1500)},
	}}
	return repo, NewProductUseCase(repo)
}

func TestProductCreate_PrecioNegativo(t *testing.T) {
	repo, uc := newProductFixture()

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "염산", UnitPrice: decimal.NewFromInt(-1)})
	var ve *dto.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"unit_price"}, ve.Invalid)
	assert.Len(t, repo.rows, 1)
}

func TestProductCreate_Guarda(t *testing.T) {
	repo, uc := newProductFixture()
	fixClock(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "염산", Unit: "L", UnitPrice: decimal.NewFromInt(2500)})
	require.NoError(t, err)
	require.Contains(t, repo.rows, out.ID)
	assert.Equal(t, "염산", repo.rows[out.ID].Name)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), out.CreatedAt)
}

func TestProductUpdate_SoloCamposEnviados(t *testing.T) {
	repo, uc := newProductFixture()
	price := decimal.NewFromInt(1800)

	out, err := uc.Update(context.Background(), "p-1", dto.UpdateProductRequest{UnitPrice: &price})
	require.NoError(t, err)
	assert.True(t, price.Equal(out.UnitPrice))
	assert.Equal(t, "25kg", repo.rows["p-1"].Spec)
	assert.Equal(t, "수산화나트륨", repo.rows["p-1"].Name)
}

func TestProductDelete_NoExiste(t *testing.T) {
	_, uc := newProductFixture()

	err := uc.Delete(context.Background(), "p-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductPriceHistory_NombreObligatorio(t *testing.T) {
	_, uc := newProductFixture()

	_, err := uc.PriceHistory(context.Background(), repository.PriceHistoryFilter{Spec: "25kg"})
	var ve *dto.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"name"}, ve.Required)
}

func TestProductPriceHistory_TipoDesconocido(t *testing.T) {
	_, uc := newProductFixture()

	_, err := uc.PriceHistory(context.Background(), repository.PriceHistoryFilter{Name: "염산", Type: "invoice"})
	var ve *dto.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"type"}, ve.Invalid)
}

func TestProductPriceHistory_MapeaEntradas(t *testing.T) {
	repo, uc := newProductFixture()
	repo.history = []*entity.PriceHistoryEntry{{
		DocumentID:     "d-1",
		DocumentNumber: "EST-20250310-001",
		DocumentType:   entity.DocumentTypeEstimate,
		Date:           time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CompanyName:    "대한화학",
		ItemName:       "수산화나트륨",
		Spec:           "25kg",
		Quantity:       "10",
		UnitPrice:      decimal.NewFromInt(1500),
	}}

	out, err := uc.PriceHistory(context.Background(), repository.PriceHistoryFilter{Name: "수산화나트륨", Type: entity.DocumentTypeEstimate})
	require.NoError(t, err)
	assert.Equal(t, priceHistoryLimit, repo.limit)
	assert.Equal(t, "수산화나트륨", repo.filter.Name)
	require.Len(t, out, 1)
	assert.Equal(t, "2025-03-10", out[0].Date)
	assert.Equal(t, "수산화나트륨", out[0].Name)
	assert.Equal(t, entity.DocumentTypeEstimate, out[0].Type)
	assert.True(t, decimal.NewFromInt(1500).Equal(out[0].UnitPrice))
}
