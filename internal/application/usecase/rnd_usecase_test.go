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

const (
	orgID     = "99999999-9999-4999-8999-999999999999"
	keepID    = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	droppedID = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
)

// fakeRnds solo guarda programas; las consultas de I+D no se usan aquí.
type fakeRnds struct {
	rows map[string]*entity.Rnd
}

func (f *fakeRnds) Create(_ context.Context, r *entity.Rnd) error {
	cp := *r
	f.rows[r.ID] = &cp
	return nil
}

func (f *fakeRnds) GetByID(_ context.Context, id string) (*entity.Rnd, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRnds) List(_ context.Context, _ repository.RndFilter, limit, offset int) ([]*entity.Rnd, int, error) {
	var out []*entity.Rnd
	for _, r := range f.rows {
		out = append(out, r)
	}
	return page(out, limit, offset), len(out), nil
}

func (f *fakeRnds) Update(_ context.Context, r *entity.Rnd) error {
	cp := *r
	f.rows[r.ID] = &cp
	return nil
}

func (f *fakeRnds) Delete(_ context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeRnds) CreateConsultation(context.Context, *entity.RndConsultation) error { return nil }

func (f *fakeRnds) GetConsultation(context.Context, string) (*entity.RndConsultation, error) {
	return nil, nil
}

func (f *fakeRnds) ListConsultations(context.Context, string, int, int) ([]*entity.RndConsultation, int, error) {
	return nil, 0, nil
}

func (f *fakeRnds) UpdateConsultation(context.Context, *entity.RndConsultation) error { return nil }
func (f *fakeRnds) DeleteConsultation(context.Context, string) error { return nil }
func (f *fakeRnds) DeleteConsultationsByRnd(context.Context, string) error { return nil }

func seedOrg(s *store) {
	t := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	s.rndOrgs.orgs[orgID] = &entity.RndOrg{ID: orgID, Name: "한국산업기술진흥원", CreatedAt: t}
	s.rndOrgs.contacts[keepID] = &entity.RndContact{ID: keepID, OrgID: orgID, Name: "정연구", CreatedAt: t}
	s.rndOrgs.contacts[droppedID] = &entity.RndContact{ID: droppedID, OrgID: orgID, Name: "최퇴사", CreatedAt: t}
}

func TestRndCreate_TotalPorDefecto(t *testing.T) {
	s := newStore()
	seedOrg(s)
	uc := NewRndUseCase(&fakeRnds{rows: map[string]*entity.Rnd{}}, s.rndOrgs, s.tx)

	out, err := uc.Create(context.Background(), dto.CreateRndRequest{
		Name:            "소재부품기술개발",
		GovContribution: decimal.NewFromInt(300000000),
		PriContribution: decimal.NewFromInt(100000000),
		SupportOrg:      "한국산업기술진흥원",
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(400000000).Equal(out.TotalCost))
	assert.Equal(t, "rnd", out.Type)
	assert.Equal(t, entity.RndStatusPlanning, out.Status)
	require.NotNil(t, out.OrgID)
	assert.Equal(t, orgID, *out.OrgID)
	require.NotNil(t, out.Org)
	assert.Equal(t, "한국산업기술진흥원", out.Org.Name)
}

func TestRndCreate_TotalExplicito(t *testing.T) {
	s := newStore()
	uc := NewRndUseCase(&fakeRnds{rows: map[string]*entity.Rnd{}}, s.rndOrgs, s.tx)
	total := decimal.NewFromInt(10)

	out, err := uc.Create(context.Background(), dto.CreateRndRequest{
		Name:            "과제",
		GovContribution: decimal.NewFromInt(300),
		TotalCost:       &total,
	})
	require.NoError(t, err)
	assert.True(t, total.Equal(out.TotalCost))
	assert.Nil(t, out.OrgID)
}

func TestRndCreate_OrganismoInexistente(t *testing.T) {
	s := newStore()
	uc := NewRndUseCase(&fakeRnds{rows: map[string]*entity.Rnd{}}, s.rndOrgs, s.tx)
	missing := orgID

	_, err := uc.Create(context.Background(), dto.CreateRndRequest{Name: "과제", OrgID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func seedRnd(total, gov, pri int64) *fakeRnds {
	return &fakeRnds{rows: map[string]*entity.Rnd{"r-1": {
		ID:              "r-1",
		Name:            "소재부품기술개발",
		GovContribution: decimal.NewFromInt(gov),
		PriContribution: decimal.NewFromInt(pri),
		TotalCost:       decimal.NewFromInt(total),
	}}}
}

func TestRndUpdate_RecalculaTotalAlCambiarAportes(t *testing.T) {
	s := newStore()
	rnds := seedRnd(400, 300, 100)
	uc := NewRndUseCase(rnds, s.rndOrgs, s.tx)
	pri := decimal.NewFromInt(250)

	out, err := uc.Update(context.Background(), "r-1", dto.UpdateRndRequest{PriContribution: &pri})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(550).Equal(out.TotalCost))
	assert.True(t, decimal.NewFromInt(550).Equal(rnds.rows["r-1"].TotalCost))
}

func TestRndUpdate_TotalExplicitoPrevalece(t *testing.T) {
	s := newStore()
	rnds := seedRnd(400, 300, 100)
	uc := NewRndUseCase(rnds, s.rndOrgs, s.tx)
	gov, total := decimal.NewFromInt(500), decimal.NewFromInt(999)

	out, err := uc.Update(context.Background(), "r-1", dto.UpdateRndRequest{GovContribution: &gov, TotalCost: &total})
	require.NoError(t, err)
	assert.True(t, total.Equal(out.TotalCost))
	assert.True(t, gov.Equal(out.GovContribution))
}

func TestRndUpdate_SinAportesConservaTotal(t *testing.T) {
	s := newStore()
	rnds := seedRnd(1000, 300, 100)
	uc := NewRndUseCase(rnds, s.rndOrgs, s.tx)

	out, err := uc.Update(context.Background(), "r-1", dto.UpdateRndRequest{Name: strPtr("과제명 변경")})
	require.NoError(t, err)
	assert.Equal(t, "과제명 변경", out.Name)
	assert.True(t, decimal.NewFromInt(1000).Equal(out.TotalCost))
}

func TestRndOrgReplace_SincronizaContactos(t *testing.T) {
	s := newStore()
	seedOrg(s)
	fixClock(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	uc := NewRndOrgUseCase(s.rndOrgs, s.tx)

	out, err := uc.Replace(context.Background(), orgID, dto.RndOrgRequest{
		Name: "한국산업기술진흥원",
		Contacts: []dto.RndContactInput{
			{ID: keepID, Name: "정연구", Level: "책임"},
			{Name: "한신규"},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Contacts, 2)

	assert.NotContains(t, s.rndOrgs.contacts, droppedID)
	kept := s.rndOrgs.contacts[keepID]
	require.NotNil(t, kept)
	assert.Equal(t, "책임", kept.Level)
	assert.Equal(t, 2024, kept.CreatedAt.Year())
	assert.Len(t, s.rndOrgs.contacts, 2)

	assert.Contains(t, s.log.calls, "rndOrgs.UpdateContact 정연구")
	assert.Contains(t, s.log.calls, "rndOrgs.CreateContact 한신규")
	assert.Contains(t, s.log.calls, "rndOrgs.DeleteContact "+droppedID)
}

func TestRndOrgReplace_IDDesconocidoSeCrea(t *testing.T) {
	s := newStore()
	seedOrg(s)
	uc := NewRndOrgUseCase(s.rndOrgs, s.tx)
	foreign := "cccccccc-cccc-4ccc-8ccc-cccccccccccc"

	out, err := uc.Replace(context.Background(), orgID, dto.RndOrgRequest{
		Name:     "기관",
		Contacts: []dto.RndContactInput{{ID: foreign, Name: "외부"}},
	})
	require.NoError(t, err)
	require.Len(t, out.Contacts, 1)
	assert.NotEqual(t, foreign, out.Contacts[0].ID)
	assert.Len(t, s.rndOrgs.contacts, 1)
}

func TestRndOrgDelete_ContactosPrimero(t *testing.T) {
	s := newStore()
	seedOrg(s)
	uc := NewRndOrgUseCase(s.rndOrgs, s.tx)

	require.NoError(t, uc.Delete(context.Background(), orgID))
	assert.Equal(t, []string{
		"rndOrgs.DeleteContactsByOrg " + orgID,
		"rndOrgs.Delete " + orgID,
	}, s.log.calls)
	assert.Empty(t, s.rndOrgs.contacts)
}
