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

func seedConsultations(s *store, companyID string, n int) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("q-%d", i)
		s.consultations.rows[id] = &entity.Consultation{
			ID:        id,
			CompanyID: companyID,
			UserID:    ownerID,
			Date:      base.AddDate(0, 0, i),
			Content:   "상담 " + id,
		}
	}
}

func TestConsultationListByCompany_PaginaPorDefecto(t *testing.T) {
	s := newStore()
	seedConsultations(s, companyA, 6)
	uc := NewConsultationUseCase(s.consultations, s.contacts, s.tx)

	out, err := uc.ListByCompany(context.Background(), CompanyListQuery{CompanyID: companyA})
	require.NoError(t, err)
	assert.Equal(t, CompanyConsultationLimit, out.Limit)
	assert.Len(t, out.Data, 4)
	assert.Equal(t, "q-6", out.Data[0].ID)
	assert.Equal(t, 2, out.TotalPages)
}

func TestConsultationList_SegundaPaginaConUnaFila(t *testing.T) {
	s := newStore()
	seedConsultations(s, companyA, 6)
	uc := NewConsultationUseCase(s.consultations, s.contacts, s.tx)

	out, err := uc.List(context.Background(), repository.ConsultationFilter{CompanyID: companyA}, dto.PageQuery{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 6, out.Total)
	assert.Equal(t, 2, out.TotalPages)
	assert.Equal(t, 2, out.Page)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "q-1", out.Data[0].ID)
}

func TestConsultationListByCompany_SaltaALaPaginaDelResaltado(t *testing.T) {
	s := newStore()
	seedConsultations(s, companyA, 6)
	uc := NewConsultationUseCase(s.consultations, s.contacts, s.tx)

	// q-2 es la quinta más reciente: segunda página con límite 4.
	out, err := uc.ListByCompany(context.Background(), CompanyListQuery{CompanyID: companyA, HighlightID: "q-2"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page)
	require.Len(t, out.Data, 2)
	assert.Equal(t, "q-2", out.Data[0].ID)
}

func TestConsultationListByCompany_ResaltadoAusenteMantienePagina(t *testing.T) {
	s := newStore()
	seedConsultations(s, companyA, 6)
	uc := NewConsultationUseCase(s.consultations, s.contacts, s.tx)

	out, err := uc.ListByCompany(context.Background(), CompanyListQuery{CompanyID: companyA, HighlightID: "otro"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
}

func TestConsultationListByCompany_EmpresaObligatoria(t *testing.T) {
	s := newStore()
	uc := NewConsultationUseCase(s.consultations, s.contacts, s.tx)

	_, err := uc.ListByCompany(context.Background(), CompanyListQuery{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsultationCreate_EnlazaContactoYDevuelveID(t *testing.T) {
	s := newStore()
	s.contacts.rows[contactA] = &entity.Contact{ID: contactA, CompanyID: companyA, ContactName: "김철수"}
	fixClock(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	uc := NewConsultationUseCase(s.consultations, s.contacts, s.tx)

	out, err := uc.Create(context.Background(), dto.CreateConsultationRequest{
		CompanyID: companyA,
		UserID:    ownerID,
		ContactID: contactA,
		Content:   "견적 요청",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ConsultationID)
	assert.Equal(t, out.ConsultationID, out.ID)
	assert.Equal(t, "2025-03-10", out.Date)
	assert.Equal(t, entity.ContactMethodEmail, out.ContactMethod)
	assert.Equal(t, "김철수", out.ContactName)
	assert.Equal(t, []string{
		"consultations.Create " + out.ID,
		"links.LinkConsultation " + contactA + " " + out.ID,
	}, s.log.calls)
}

func TestConsultationCreate_ContactoDeOtraEmpresa(t *testing.T) {
	s := newStore()
	s.contacts.rows[contactB] = &entity.Contact{ID: contactB, CompanyID: companyB}
	uc := NewConsultationUseCase(s.consultations, s.contacts, s.tx)

	_, err := uc.Create(context.Background(), dto.CreateConsultationRequest{
		CompanyID: companyA,
		UserID:    ownerID,
		ContactID: contactB,
		Content:   "x",
	})
	assert.ErrorIs(t, err, domain.ErrInconsistent)
	assert.Empty(t, s.consultations.rows)
}

func TestConsultationUpdate_ReasignarNotificaAlNuevoResponsable(t *testing.T) {
	s := newStore()
	seedConsultations(s, companyA, 1)
	uc := NewConsultationUseCase(s.consultations, s.contacts, s.tx)

	newOwner := "88888888-8888-4888-8888-888888888888"
	out, err := uc.Update(context.Background(), actorID, "q-1", dto.UpdateConsultationRequest{UserID: &newOwner})
	require.NoError(t, err)
	assert.Equal(t, newOwner, out.UserID)
	require.Len(t, s.notifications.rows, 1)
	n := s.notifications.rows[0]
	assert.Equal(t, newOwner, n.UserID)
	assert.Equal(t, entity.NotificationConsultationAssigned, n.Type)
	assert.Equal(t, "q-1", n.RelatedID)
}

func TestConsultationUpdate_SeguimientoPropioNoNotifica(t *testing.T) {
	s := newStore()
	seedConsultations(s, companyA, 1)
	uc := NewConsultationUseCase(s.consultations, s.contacts, s.tx)

	_, err := uc.Update(context.Background(), ownerID, "q-1", dto.UpdateConsultationRequest{FollowUpDate: strPtr("2025-03-15")})
	require.NoError(t, err)
	assert.Empty(t, s.notifications.rows)
	require.NotNil(t, s.consultations.rows["q-1"].FollowUpDate)
}

func TestConsultationUpdate_SeguimientoAjenoNotifica(t *testing.T) {
	s := newStore()
	seedConsultations(s, companyA, 1)
	uc := NewConsultationUseCase(s.consultations, s.contacts, s.tx)

	_, err := uc.Update(context.Background(), actorID, "q-1", dto.UpdateConsultationRequest{FollowUpDate: strPtr("2025-03-15")})
	require.NoError(t, err)
	require.Len(t, s.notifications.rows, 1)
	assert.Equal(t, entity.NotificationConsultationFollowUp, s.notifications.rows[0].Type)
	assert.Contains(t, s.notifications.rows[0].Message, "2025-03-15")
}

func TestConsultationDelete_BorradoLogico(t *testing.T) {
	s := newStore()
	seedConsultations(s, companyA, 1)
	uc := NewConsultationUseCase(s.consultations, s.contacts, s.tx)

	require.NoError(t, uc.Delete(context.Background(), "q-1"))
	assert.Equal(t, []string{
		"links.DeleteByConsultation q-1",
		"documents.DeleteByConsultation q-1",
		"consultations.SoftDelete q-1",
	}, s.log.calls)
	assert.NotNil(t, s.consultations.rows["q-1"].DeletedAt)

	_, err := uc.GetByID(context.Background(), "q-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConsultationFollowUps_ProximosSieteDias(t *testing.T) {
	s := newStore()
	fixClock(t, time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC))
	in3 := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	in9 := time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)
	s.consultations.rows["soon"] = &entity.Consultation{ID: "soon", UserID: ownerID, FollowUpDate: &in3}
	s.consultations.rows["late"] = &entity.Consultation{ID: "late", UserID: ownerID, FollowUpDate: &in9}
	uc := NewConsultationUseCase(s.consultations, s.contacts, s.tx)

	out, err := uc.FollowUps(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "soon", out[0].ID)
}
