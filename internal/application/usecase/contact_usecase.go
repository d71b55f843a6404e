package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// ContactUseCase casos de uso de contactos de empresas.
type ContactUseCase struct {
	repo      repository.ContactRepository
	companies repository.CompanyRepository
	tx        ports.TxRunner
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.ContactRepository, companies repository.CompanyRepository, tx ports.TxRunner) *ContactUseCase {
	return &ContactUseCase{repo: repo, companies: companies, tx: tx}
}

// Create crea un contacto de una empresa existente.
func (uc *ContactUseCase) Create(ctx context.Context, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if err := in.ValidateStandalone(); err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	contact := newContact(in.CompanyID, in)
	if err := uc.repo.Create(ctx, contact); err != nil {
		return nil, err
	}
	contact.CompanyName = company.Name
	resp := toContactResponse(contact)
	return &resp, nil
}

// GetByID devuelve el contacto con el nombre de su empresa.
func (uc *ContactUseCase) GetByID(ctx context.Context, id string) (*dto.ContactResponse, error) {
	contact, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toContactResponse(contact)
	return &resp, nil
}

// List lista contactos con filtros y paginación.
func (uc *ContactUseCase) List(ctx context.Context, f repository.ContactFilter, page dto.PageQuery) (*dto.ListResponse[dto.ContactResponse], error) {
	page.Normalize(dto.DefaultLimit)
	list, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toContactResponse(c))
	}
	resp := dto.NewListResponse(items, total, page)
	return &resp, nil
}

// Update actualización parcial. Cambiar de empresa exige que la nueva exista.
func (uc *ContactUseCase) Update(ctx context.Context, id string, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	contact, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CompanyID != nil && *in.CompanyID != contact.CompanyID {
		company, err := uc.companies.GetByID(ctx, *in.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrNotFound
		}
		contact.CompanyID = company.ID
		contact.CompanyName = company.Name
	}
	setString(&contact.ContactName, in.ContactName)
	setString(&contact.Department, in.Department)
	setString(&contact.Level, in.Level)
	setString(&contact.Mobile, in.Mobile)
	setString(&contact.Email, in.Email)
	setString(&contact.Note, in.Note)
	if in.Resign != nil {
		contact.Resign = *in.Resign
	}
	contact.UpdatedAt = now()
	if err := uc.repo.Update(ctx, contact); err != nil {
		return nil, err
	}
	resp := toContactResponse(contact)
	return &resp, nil
}

// SetResign marca o desmarca al contacto como retirado de la empresa.
func (uc *ContactUseCase) SetResign(ctx context.Context, id string, resign bool) (*dto.ContactResponse, error) {
	return uc.Update(ctx, id, dto.UpdateContactRequest{Resign: &resign})
}

// Delete borra los enlaces del contacto y luego el contacto, en una transacción.
func (uc *ContactUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Links.DeleteByContact(ctx, id); err != nil {
			return err
		}
		return r.Contacts.Delete(ctx, id)
	})
}

func (uc *ContactUseCase) get(ctx context.Context, id string) (*entity.Contact, error) {
	contact, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	return contact, nil
}

func newContact(companyID string, in dto.CreateContactRequest) *entity.Contact {
	t := now()
	return &entity.Contact{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		ContactName: in.ContactName,
		Department:  in.Department,
		Level:       in.Level,
		Mobile:      in.Mobile,
		Email:       in.Email,
		Resign:      in.Resign,
		Note:        in.Note,
		CreatedAt:   t,
		UpdatedAt:   t,
	}
}

func toContactResponse(c *entity.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		CompanyName: c.CompanyName,
		ContactName: c.ContactName,
		Department:  c.Department,
		Level:       c.Level,
		Mobile:      c.Mobile,
		Email:       c.Email,
		Resign:      c.Resign,
		Note:        c.Note,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
