package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// numberAttempts reintentos al generar número de documento si otro alta tomó la misma secuencia.
const numberAttempts = 3

// DocumentUseCase casos de uso de documentos comerciales (presupuesto, orden, solicitud).
type DocumentUseCase struct {
	repo          repository.DocumentRepository
	consultations repository.ConsultationRepository
	contacts      repository.ContactRepository
	companies     repository.CompanyRepository
	users         repository.UserRepository
	pdf           ports.DocumentPDFGenerator
	tx            ports.TxRunner
}

// DocumentDeps dependencias de DocumentUseCase.
type DocumentDeps struct {
	Documents     repository.DocumentRepository
	Consultations repository.ConsultationRepository
	Contacts      repository.ContactRepository
	Companies     repository.CompanyRepository
	Users         repository.UserRepository
	PDF           ports.DocumentPDFGenerator
	Tx            ports.TxRunner
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(d DocumentDeps) *DocumentUseCase {
	return &DocumentUseCase{
		repo:          d.Documents,
		consultations: d.Consultations,
		contacts:      d.Contacts,
		companies:     d.Companies,
		users:         d.Users,
		pdf:           d.PDF,
		tx:            d.Tx,
	}
}

// List lista documentos. Sin tipo se listan presupuestos; "expiring_soon" son pendientes
// que vencen en los próximos 7 días.
func (uc *DocumentUseCase) List(ctx context.Context, f repository.DocumentFilter, page dto.PageQuery) (*dto.ListResponse[dto.DocumentResponse], error) {
	if f.Type == "" {
		f.Type = entity.DocumentTypeEstimate
	}
	if !entity.ValidDocumentType(f.Type) {
		return nil, &dto.ValidationError{Invalid: []string{"type"}}
	}
	switch f.Status {
	case "", "all", "expiring_soon":
	default:
		if !entity.ValidDocumentStatus(f.Status) {
			return nil, &dto.ValidationError{Invalid: []string{"status"}}
		}
	}
	if f.Status == "expiring_soon" {
		f.ExpiringFrom = startOfDay(now())
		f.ExpiringTo = f.ExpiringFrom.Add(followUpWindow)
	}
	page.Normalize(dto.DefaultLimit)
	list, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, toDocumentResponse(d))
	}
	resp := dto.NewListResponse(items, total, page)
	return &resp, nil
}

// GetByID detalle aplanado.
func (uc *DocumentUseCase) GetByID(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	d, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toDocumentResponse(d)
	return &resp, nil
}

// ListByConsultation documentos de una consulta.
func (uc *DocumentUseCase) ListByConsultation(ctx context.Context, consultationID string) ([]dto.DocumentResponse, error) {
	list, err := uc.repo.ListByConsultation(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDocumentResponse(d))
	}
	return out, nil
}

// Summary conteos por tipo y estado; todas las combinaciones aparecen aunque sean cero.
func (uc *DocumentUseCase) Summary(ctx context.Context, userID string) (*dto.DocumentSummaryResponse, error) {
	counts, err := uc.repo.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	m := repository.StatusMatrix(counts)
	return &dto.DocumentSummaryResponse{
		Estimate:     m[entity.DocumentTypeEstimate],
		Order:        m[entity.DocumentTypeOrder],
		RequestQuote: m[entity.DocumentTypeRequestQuote],
	}, nil
}

// Create crea el documento a partir de su consulta. La empresa se toma de la consulta;
// una empresa distinta en la petición es ErrInconsistent.
func (uc *DocumentUseCase) Create(ctx context.Context, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	consultation, err := uc.consultations.GetByID(ctx, in.ConsultationID)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, fmt.Errorf("consultation %s: %w", in.ConsultationID, domain.ErrNotFound)
	}
	if in.CompanyID != "" && in.CompanyID != consultation.CompanyID {
		return nil, domain.ErrInconsistent
	}
	t := now()
	date, err := parseDateOr(in.Date, t)
	if err != nil {
		return nil, err
	}
	validUntil, err := parseOptionalDate(in.ValidUntil)
	if err != nil {
		return nil, err
	}
	delivery, err := parseOptionalDate(in.DeliveryDate)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.DocumentStatusPending
	}
	doc := &entity.Document{
		ConsultationID: consultation.ID,
		CompanyID:      consultation.CompanyID,
		UserID:         in.UserID,
		Type:           in.Type,
		DocumentNumber: in.DocumentNumber,
		Date:           date,
		ValidUntil:     validUntil,
		DeliveryDate:   delivery,
		Content:        *in.Content,
		TotalAmount:    in.Content.Total(),
		Status:         status,
		CreatedAt:      t,
		UpdatedAt:      t,
		CompanyName:    consultation.CompanyName,
	}
	if in.ContactID != "" {
		contact, err := uc.contactOf(ctx, in.ContactID, doc.CompanyID)
		if err != nil {
			return nil, err
		}
		doc.ContactID = contact.ID
		doc.ContactName = contact.ContactName
		doc.ContactLevel = contact.Level
		doc.ContactMobile = contact.Mobile
	}

	generated := doc.DocumentNumber == ""
	for attempt := 1; ; attempt++ {
		doc.ID = uuid.New().String()
		err = uc.tx.Run(ctx, func(r ports.Repos) error {
			if generated {
				n, err := nextDocumentNumber(ctx, r.Documents, doc.Type, t)
				if err != nil {
					return err
				}
				doc.DocumentNumber = n
			}
			if err := r.Documents.Create(ctx, doc); err != nil {
				return err
			}
			if doc.ContactID != "" {
				return r.Links.LinkDocument(ctx, doc.ContactID, doc.ID, doc.UserID)
			}
			return nil
		})
		if err == nil || !generated || !errors.Is(err, domain.ErrDuplicate) || attempt == numberAttempts {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("document.Create: %w", err)
	}
	resp := toDocumentResponse(doc)
	return &resp, nil
}

// Update actualización parcial. Si cambia el contenido se recalcula total_amount.
func (uc *DocumentUseCase) Update(ctx context.Context, id string, in dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	doc, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CompanyID != nil && *in.CompanyID != "" && *in.CompanyID != doc.CompanyID {
		return nil, domain.ErrInconsistent
	}
	setString(&doc.DocumentNumber, in.DocumentNumber)
	if in.Date != nil {
		if doc.Date, err = parseDateOr(*in.Date, doc.Date); err != nil {
			return nil, err
		}
	}
	if in.ValidUntil != nil {
		if doc.ValidUntil, err = parseOptionalDate(in.ValidUntil); err != nil {
			return nil, err
		}
	}
	if in.DeliveryDate != nil {
		if doc.DeliveryDate, err = parseOptionalDate(in.DeliveryDate); err != nil {
			return nil, err
		}
	}
	if in.Content != nil {
		doc.Content = *in.Content
		doc.TotalAmount = in.Content.Total()
	}
	if in.ContactID != nil {
		doc.ContactID, doc.ContactName, doc.ContactLevel, doc.ContactMobile = "", "", "", ""
		if *in.ContactID != "" {
			contact, err := uc.contactOf(ctx, *in.ContactID, doc.CompanyID)
			if err != nil {
				return nil, err
			}
			doc.ContactID = contact.ID
			doc.ContactName = contact.ContactName
			doc.ContactLevel = contact.Level
			doc.ContactMobile = contact.Mobile
		}
	}
	doc.UpdatedAt = now()

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Documents.Update(ctx, doc); err != nil {
			return err
		}
		if in.ContactID != nil {
			return r.Links.ReplaceDocumentContact(ctx, doc.ID, doc.ContactID, doc.UserID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("document.Update: %w", err)
	}
	resp := toDocumentResponse(doc)
	return &resp, nil
}

// UpdateStatus cambia el estado. Si lo cambia alguien distinto del dueño, se le notifica.
func (uc *DocumentUseCase) UpdateStatus(ctx context.Context, actorID, id string, in dto.UpdateDocumentStatusRequest) (*dto.DocumentResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	doc, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	t := now()
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Documents.UpdateStatus(ctx, id, in.Status, in.StatusReason, t); err != nil {
			return err
		}
		if doc.UserID == actorID || doc.UserID == "" {
			return nil
		}
		return r.Notifications.Create(ctx, newNotification(doc.UserID, entity.NotificationDocumentStatus,
			"문서 상태 변경", fmt.Sprintf("%s 문서가 %s 상태로 변경되었습니다.", doc.DocumentNumber, in.Status), doc.ID, "document"))
	})
	if err != nil {
		return nil, fmt.Errorf("document.UpdateStatus: %w", err)
	}
	doc.Status = in.Status
	doc.StatusReason = in.StatusReason
	doc.UpdatedAt = t
	resp := toDocumentResponse(doc)
	return &resp, nil
}

// Delete quita los enlaces de contactos y luego el documento, en una transacción.
func (uc *DocumentUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Links.DeleteByDocument(ctx, id); err != nil {
			return err
		}
		return r.Documents.Delete(ctx, id)
	})
}

// PDF renderiza el documento. Devuelve el contenido y el nombre de archivo sugerido.
func (uc *DocumentUseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := uc.get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companies.GetByID(ctx, doc.CompanyID)
	if err != nil {
		return nil, "", err
	}
	if company == nil {
		company = &entity.Company{ID: doc.CompanyID, Name: doc.CompanyName, Phone: doc.CompanyPhone, Fax: doc.CompanyFax}
	}
	owner, err := uc.users.GetByID(ctx, doc.UserID)
	if err != nil {
		return nil, "", err
	}
	if owner == nil {
		owner = &entity.User{ID: doc.UserID, Name: doc.UserName, Level: doc.UserLevel}
	}
	out, err := uc.pdf.Generate(doc, company, owner)
	if err != nil {
		return nil, "", fmt.Errorf("document.PDF: %w", err)
	}
	return out, doc.DocumentNumber + ".pdf", nil
}

func (uc *DocumentUseCase) get(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (uc *DocumentUseCase) contactOf(ctx context.Context, contactID, companyID string) (*entity.Contact, error) {
	contact, err := uc.contacts.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, fmt.Errorf("contact %s: %w", contactID, domain.ErrNotFound)
	}
	if contact.CompanyID != companyID {
		return nil, domain.ErrInconsistent
	}
	return contact, nil
}

// nextDocumentNumber genera <PREFIJO>-<AAAAMMDD>-<NNN> siguiendo al mayor NNN del día,
// así los huecos que dejan los borrados no se reutilizan.
func nextDocumentNumber(ctx context.Context, repo repository.DocumentRepository, docType string, day time.Time) (string, error) {
	prefix := fmt.Sprintf("%s-%s-", entity.DocumentNumberPrefix(docType), day.Format("20060102"))
	n, err := repo.MaxNumberSequence(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefix, n+1), nil
}

func toDocumentResponse(d *entity.Document) dto.DocumentResponse {
	content := d.Content
	if content.Items == nil {
		content.Items = []entity.DocumentItem{}
	}
	return dto.DocumentResponse{
		ID:             d.ID,
		ConsultationID: d.ConsultationID,
		CompanyID:      d.CompanyID,
		UserID:         d.UserID,
		Type:           d.Type,
		DocumentNumber: d.DocumentNumber,
		Date:           dto.FormatDate(d.Date),
		ValidUntil:     dto.FormatDatePtr(d.ValidUntil),
		DeliveryDate:   dto.FormatDatePtr(d.DeliveryDate),
		Content:        content,
		TotalAmount:    d.TotalAmount,
		Status:         d.Status,
		StatusReason:   d.StatusReason,
		ContactID:      d.ContactID,
		ContactName:    d.ContactName,
		ContactLevel:   d.ContactLevel,
		ContactMobile:  d.ContactMobile,
		UserName:       d.UserName,
		UserLevel:      d.UserLevel,
		CompanyName:    d.CompanyName,
		CompanyPhone:   d.CompanyPhone,
		CompanyFax:     d.CompanyFax,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
