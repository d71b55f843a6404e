package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// CompanyConsultationLimit tamaño de página por defecto del historial de una empresa.
const CompanyConsultationLimit = 4

// followUpWindow horizonte de seguimientos y documentos por vencer.
const followUpWindow = 7 * 24 * time.Hour

// ConsultationUseCase casos de uso de consultas (상담).
type ConsultationUseCase struct {
	repo     repository.ConsultationRepository
	contacts repository.ContactRepository
	tx       ports.TxRunner
}

// NewConsultationUseCase construye el caso de uso.
func NewConsultationUseCase(repo repository.ConsultationRepository, contacts repository.ContactRepository, tx ports.TxRunner) *ConsultationUseCase {
	return &ConsultationUseCase{repo: repo, contacts: contacts, tx: tx}
}

// CompanyListQuery parámetros del historial de una empresa.
type CompanyListQuery struct {
	CompanyID   string
	Search      string // términos separados por coma
	HighlightID string // si se indica, se devuelve la página que la contiene
	dto.PageQuery
}

// ListByCompany historial paginado de la empresa.
func (uc *ConsultationUseCase) ListByCompany(ctx context.Context, q CompanyListQuery) (*dto.ListResponse[dto.ConsultationResponse], error) {
	if q.CompanyID == "" {
		return nil, dto.NewRequiredError("companyId")
	}
	page := q.PageQuery
	page.Normalize(CompanyConsultationLimit)
	f := repository.ConsultationFilter{CompanyID: q.CompanyID, Terms: splitTerms(q.Search)}
	if q.HighlightID != "" {
		pos, err := uc.repo.Position(ctx, f, q.HighlightID)
		if err != nil {
			return nil, err
		}
		if pos >= 0 {
			page.Page = pos/page.Limit + 1
		}
	}
	return uc.list(ctx, f, page)
}

// List listado global con filtros de palabra clave, usuario y fechas.
func (uc *ConsultationUseCase) List(ctx context.Context, f repository.ConsultationFilter, page dto.PageQuery) (*dto.ListResponse[dto.ConsultationResponse], error) {
	page.Normalize(dto.DefaultLimit)
	return uc.list(ctx, f, page)
}

// Recent consultas más recientes de todas las empresas.
func (uc *ConsultationUseCase) Recent(ctx context.Context, f repository.ConsultationFilter, page dto.PageQuery) (*dto.ListResponse[dto.ConsultationResponse], error) {
	f.CompanyID = ""
	f.Ascending = false
	page.Normalize(dto.DefaultLimit)
	return uc.list(ctx, f, page)
}

func (uc *ConsultationUseCase) list(ctx context.Context, f repository.ConsultationFilter, page dto.PageQuery) (*dto.ListResponse[dto.ConsultationResponse], error) {
	list, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ConsultationResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toConsultationResponse(c))
	}
	resp := dto.NewListResponse(items, total, page)
	return &resp, nil
}

// FollowUps consultas con seguimiento entre hoy y los próximos 7 días.
func (uc *ConsultationUseCase) FollowUps(ctx context.Context, userID string) ([]dto.ConsultationResponse, error) {
	from := startOfDay(now())
	list, err := uc.repo.FollowUps(ctx, userID, from, from.Add(followUpWindow))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConsultationResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toConsultationResponse(c))
	}
	return out, nil
}

// GetByID detalle con empresa, usuario, contacto y documentos.
func (uc *ConsultationUseCase) GetByID(ctx context.Context, id string) (*dto.ConsultationResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toConsultationResponse(c)
	return &resp, nil
}

// Create registra la consulta y, si viene contact_id, su enlace en la misma transacción.
func (uc *ConsultationUseCase) Create(ctx context.Context, in dto.CreateConsultationRequest) (*dto.CreatedConsultationResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t := now()
	date, err := parseDateOr(in.Date, t)
	if err != nil {
		return nil, err
	}
	followUp, err := parseOptionalDate(in.FollowUpDate)
	if err != nil {
		return nil, err
	}
	method := in.ContactMethod
	if method == "" {
		method = entity.ContactMethodEmail
	}
	c := &entity.Consultation{
		ID:            uuid.New().String(),
		CompanyID:     in.CompanyID,
		UserID:        in.UserID,
		Date:          date,
		Title:         in.Title,
		Content:       in.Content,
		ContactMethod: method,
		FollowUpDate:  followUp,
		CreatedAt:     t,
		UpdatedAt:     t,
	}
	if in.ContactID != "" {
		contact, err := uc.contactOf(ctx, in.ContactID, in.CompanyID)
		if err != nil {
			return nil, err
		}
		c.ContactID = contact.ID
		c.ContactName = contact.ContactName
	}

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Consultations.Create(ctx, c); err != nil {
			return err
		}
		if c.ContactID != "" {
			return r.Links.LinkConsultation(ctx, c.ContactID, c.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("consultation.Create: %w", err)
	}
	return &dto.CreatedConsultationResponse{ConsultationID: c.ID, ConsultationResponse: toConsultationResponse(c)}, nil
}

// Update actualización parcial hecha por actorID. Reasignar la consulta notifica al nuevo
// responsable; fijar un seguimiento nuevo notifica al responsable si lo hizo otra persona.
func (uc *ConsultationUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateConsultationRequest) (*dto.ConsultationResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	prevUser := c.UserID
	prevFollowUp := c.FollowUpDate

	setString(&c.UserID, in.UserID)
	setString(&c.Title, in.Title)
	setString(&c.Content, in.Content)
	setString(&c.ContactMethod, in.ContactMethod)
	if in.Date != nil {
		if c.Date, err = parseDateOr(*in.Date, c.Date); err != nil {
			return nil, err
		}
	}
	if in.FollowUpDate != nil {
		if c.FollowUpDate, err = parseOptionalDate(in.FollowUpDate); err != nil {
			return nil, err
		}
	}
	if in.ContactID != nil {
		c.ContactID, c.ContactName = "", ""
		if *in.ContactID != "" {
			contact, err := uc.contactOf(ctx, *in.ContactID, c.CompanyID)
			if err != nil {
				return nil, err
			}
			c.ContactID = contact.ID
			c.ContactName = contact.ContactName
		}
	}
	c.UpdatedAt = now()

	var notes []*entity.Notification
	if c.UserID != prevUser && c.UserID != actorID {
		notes = append(notes, newNotification(c.UserID, entity.NotificationConsultationAssigned,
			"상담 담당자 지정", fmt.Sprintf("%s 상담의 담당자로 지정되었습니다.", consultationLabel(c)), c.ID, "consultation"))
	}
	if c.FollowUpDate != nil && !sameDay(c.FollowUpDate, prevFollowUp) && c.UserID != actorID {
		notes = append(notes, newNotification(c.UserID, entity.NotificationConsultationFollowUp,
			"후속 조치 일정", fmt.Sprintf("%s 상담의 후속 조치일이 %s로 설정되었습니다.", consultationLabel(c), dto.FormatDate(*c.FollowUpDate)), c.ID, "consultation"))
	}

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Consultations.Update(ctx, c); err != nil {
			return err
		}
		if in.ContactID != nil {
			if err := r.Links.ReplaceConsultationContact(ctx, c.ID, c.ContactID); err != nil {
				return err
			}
		}
		for _, n := range notes {
			if err := r.Notifications.Create(ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("consultation.Update: %w", err)
	}
	resp := toConsultationResponse(c)
	return &resp, nil
}

// Delete borrado lógico: quita enlaces de contactos, borra los documentos de la consulta
// y marca deleted_at, todo en una transacción.
func (uc *ConsultationUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Links.DeleteByConsultation(ctx, id); err != nil {
			return err
		}
		if err := r.Documents.DeleteByConsultation(ctx, id); err != nil {
			return err
		}
		return r.Consultations.SoftDelete(ctx, id, now())
	})
}

func (uc *ConsultationUseCase) get(ctx context.Context, id string) (*entity.Consultation, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// contactOf exige que el contacto exista y pertenezca a la empresa.
func (uc *ConsultationUseCase) contactOf(ctx context.Context, contactID, companyID string) (*entity.Contact, error) {
	contact, err := uc.contacts.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	if contact.CompanyID != companyID {
		return nil, domain.ErrInconsistent
	}
	return contact, nil
}

func splitTerms(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return dto.FormatDate(*a) == dto.FormatDate(*b)
}

func consultationLabel(c *entity.Consultation) string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	if c.Title != "" {
		return c.Title
	}
	return dto.FormatDate(c.Date)
}

func toConsultationResponse(c *entity.Consultation) dto.ConsultationResponse {
	docs := make([]dto.ConsultationDocument, 0, len(c.Documents))
	for _, d := range c.Documents {
		docs = append(docs, dto.ConsultationDocument{ID: d.ID, Type: d.Type, DocumentNumber: d.DocumentNumber, Status: d.Status})
	}
	return dto.ConsultationResponse{
		ID:            c.ID,
		CompanyID:     c.CompanyID,
		CompanyName:   c.CompanyName,
		UserID:        c.UserID,
		UserName:      c.UserName,
		ContactID:     c.ContactID,
		ContactName:   c.ContactName,
		Date:          dto.FormatDate(c.Date),
		Title:         c.Title,
		Content:       c.Content,
		ContactMethod: c.ContactMethod,
		FollowUpDate:  dto.FormatDatePtr(c.FollowUpDate),
		Documents:     docs,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
