package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func seedCompany(s *store, id, name string) *entity.Company {
	c := &entity.Company{ID: id, Name: name, Phone: "02-555-0000", Industry: []string{"화학"}}
	s.companies.rows[id] = c
	return c
}

func TestCompanyCreate_ConContactos(t *testing.T) {
	s := newStore()
	uc := NewCompanyUseCase(s.companies, s.contacts, s.tx)

	out, err := uc.Create(context.Background(), dto.CreateCompanyRequest{
		Name: "대한화학",
		Contacts: []dto.CreateContactRequest{
			{ContactName: "김철수", Level: "과장"},
			{ContactName: "이영희"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, out.Contacts, 2)
	assert.Equal(t, out.ID, out.Contacts[0].CompanyID)
	assert.Equal(t, 1, s.tx.runs)
	assert.Len(t, s.contacts.rows, 2)
	assert.Equal(t, "companies.Create "+out.ID, s.log.calls[0])
}

func TestCompanyCreate_NombreObligatorio(t *testing.T) {
	s := newStore()
	uc := NewCompanyUseCase(s.companies, s.contacts, s.tx)

	_, err := uc.Create(context.Background(), dto.CreateCompanyRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var ve *dto.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Required, "name")
	assert.Zero(t, s.tx.runs)
}

func TestCompanyList_SegundaPagina(t *testing.T) {
	s := newStore()
	for i := 1; i <= 6; i++ {
		seedCompany(s, fmt.Sprintf("c-%d", i), fmt.Sprintf("회사%d", i))
	}
	uc := NewCompanyUseCase(s.companies, s.contacts, s.tx)

	out, err := uc.List(context.Background(), repository.CompanyFilter{}, dto.PageQuery{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, out.Data, 1)
	assert.Equal(t, 6, out.Total)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t, 5, out.Limit)
	assert.Equal(t, 2, out.TotalPages)
	assert.Equal(t, "회사6", out.Data[0].Name)
}

func TestCompanyList_PaginaVaciaNoEsNil(t *testing.T) {
	s := newStore()
	uc := NewCompanyUseCase(s.companies, s.contacts, s.tx)

	out, err := uc.List(context.Background(), repository.CompanyFilter{}, dto.PageQuery{})
	require.NoError(t, err)
	assert.NotNil(t, out.Data)
	assert.Equal(t, dto.DefaultLimit, out.Limit)
	assert.Equal(t, 0, out.TotalPages)
}

func TestCompanyUpdate_Parcial(t *testing.T) {
	s := newStore()
	seedCompany(s, "c-1", "대한화학")
	fixClock(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	uc := NewCompanyUseCase(s.companies, s.contacts, s.tx)

	out, err := uc.Update(context.Background(), "c-1", dto.UpdateCompanyRequest{Fax: strPtr("02-555-1111")})
	require.NoError(t, err)
	assert.Equal(t, "대한화학", out.Name)
	assert.Equal(t, "02-555-0000", out.Phone)
	assert.Equal(t, "02-555-1111", out.Fax)
	assert.Equal(t, []string{"화학"}, out.Industry)
	assert.Equal(t, "02-555-1111", s.companies.rows["c-1"].Fax)
}

func TestCompanyUpdate_NoExiste(t *testing.T) {
	s := newStore()
	uc := NewCompanyUseCase(s.companies, s.contacts, s.tx)

	_, err := uc.Update(context.Background(), "nope", dto.UpdateCompanyRequest{Fax: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyGetByID_ContactosActivosPrimero(t *testing.T) {
	s := newStore()
	seedCompany(s, "c-1", "대한화학")
	s.contacts.rows["k-1"] = &entity.Contact{ID: "k-1", CompanyID: "c-1", ContactName: "가나다", Resign: true}
	s.contacts.rows["k-2"] = &entity.Contact{ID: "k-2", CompanyID: "c-1", ContactName: "하하하"}
	uc := NewCompanyUseCase(s.companies, s.contacts, s.tx)

	out, err := uc.GetByID(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, out.Contacts, 2)
	assert.Equal(t, "k-2", out.Contacts[0].ID)
	assert.True(t, out.Contacts[1].Resign)
}

func TestCompanyDelete_CascadaEnOrden(t *testing.T) {
	s := newStore()
	seedCompany(s, "c-1", "대한화학")
	s.contacts.rows["k-1"] = &entity.Contact{ID: "k-1", CompanyID: "c-1"}
	s.consultations.rows["q-1"] = &entity.Consultation{ID: "q-1", CompanyID: "c-1"}
	s.documents.rows["d-1"] = &entity.Document{ID: "d-1", CompanyID: "c-1", ConsultationID: "q-1"}
	uc := NewCompanyUseCase(s.companies, s.contacts, s.tx)

	require.NoError(t, uc.Delete(context.Background(), "c-1"))
	assert.Equal(t, []string{
		"links.DeleteByCompany c-1",
		"documents.DeleteByCompany c-1",
		"consultations.DeleteByCompany c-1",
		"contacts.DeleteByCompany c-1",
		"companies.Delete c-1",
	}, s.log.calls)
	assert.Empty(t, s.companies.rows)
	assert.Empty(t, s.contacts.rows)
	assert.Empty(t, s.consultations.rows)
	assert.Empty(t, s.documents.rows)
}

func TestCompanyDelete_NoExiste(t *testing.T) {
	s := newStore()
	uc := NewCompanyUseCase(s.companies, s.contacts, s.tx)

	assert.ErrorIs(t, uc.Delete(context.Background(), "nope"), domain.ErrNotFound)
	assert.Zero(t, s.tx.runs)
}
