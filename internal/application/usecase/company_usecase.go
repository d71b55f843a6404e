package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// ErrStorageCleanup la empresa se borró pero quedaron adjuntos en el almacenamiento.
var ErrStorageCleanup = errors.New("empresa eliminada con adjuntos pendientes en almacenamiento")

// companyObjects adjuntos de la empresa guardados fuera de la base de datos.
type companyObjects interface {
	StorageKeys(ctx context.Context, companyID string) ([]string, error)
	PurgeObjects(ctx context.Context, keys []string) error
}

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	contacts repository.ContactRepository
	tx       ports.TxRunner
	objects  companyObjects
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, contacts repository.ContactRepository, tx ports.TxRunner) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, contacts: contacts, tx: tx}
}

// WithFiles hace que Delete borre también los objetos de los adjuntos.
func (uc *CompanyUseCase) WithFiles(files *CompanyFileUseCase) *CompanyUseCase {
	if files != nil {
		uc.objects = files
	}
	return uc
}

// Create crea la empresa y, en la misma transacción, los contactos enviados.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t := now()
	company := &entity.Company{
		ID:             uuid.New().String(),
		Name:           in.Name,
		BusinessNumber: in.BusinessNumber,
		Address:        in.Address,
		Phone:          in.Phone,
		Fax:            in.Fax,
		Email:          in.Email,
		Notes:          in.Notes,
		Parcel:         in.Parcel,
		Industry:       in.Industry,
		IsOverseas:     in.IsOverseas,
		CreatedAt:      t,
		UpdatedAt:      t,
	}
	for _, c := range in.Contacts {
		company.Contacts = append(company.Contacts, newContact(company.ID, c))
	}

	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Companies.Create(ctx, company); err != nil {
			return err
		}
		for _, c := range company.Contacts {
			if err := r.Contacts.Create(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("company.Create: %w", err)
	}
	return toCompanyResponse(company), nil
}

// GetByID devuelve la empresa con sus contactos (activos primero).
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	contacts, err := uc.contacts.ListByCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	company.Contacts = contacts
	resp := toCompanyResponse(company)
	if resp.Contacts == nil {
		resp.Contacts = []dto.ContactResponse{}
	}
	return resp, nil
}

// List lista empresas con filtros y paginación.
func (uc *CompanyUseCase) List(ctx context.Context, f repository.CompanyFilter, page dto.PageQuery) (*dto.ListResponse[dto.CompanyResponse], error) {
	page.Normalize(dto.DefaultLimit)
	list, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	resp := dto.NewListResponse(items, total, page)
	return &resp, nil
}

// Update aplica solo los campos presentes en la petición.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	setString(&company.Name, in.Name)
	setString(&company.BusinessNumber, in.BusinessNumber)
	setString(&company.Address, in.Address)
	setString(&company.Phone, in.Phone)
	setString(&company.Fax, in.Fax)
	setString(&company.Email, in.Email)
	setString(&company.Notes, in.Notes)
	setString(&company.Parcel, in.Parcel)
	if in.Industry != nil {
		company.Industry = *in.Industry
	}
	if in.IsOverseas != nil {
		company.IsOverseas = *in.IsOverseas
	}
	company.UpdatedAt = now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Delete borra la empresa y todo lo que depende de ella en una transacción:
// enlaces de contactos, documentos, consultas, contactos y por último la empresa.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	// las claves se leen antes: la transacción borra sus filas
	var keys []string
	if uc.objects != nil {
		if keys, err = uc.objects.StorageKeys(ctx, id); err != nil {
			return err
		}
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Links.DeleteByCompany(ctx, id); err != nil {
			return err
		}
		if err := r.Documents.DeleteByCompany(ctx, id); err != nil {
			return err
		}
		if err := r.Consultations.DeleteByCompany(ctx, id); err != nil {
			return err
		}
		if err := r.Contacts.DeleteByCompany(ctx, id); err != nil {
			return err
		}
		return r.Companies.Delete(ctx, id)
	})
	if err != nil || len(keys) == 0 {
		return err
	}
	if err := uc.objects.PurgeObjects(ctx, keys); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageCleanup, err)
	}
	return nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	industry := c.Industry
	if industry == nil {
		industry = []string{}
	}
	resp := &dto.CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		BusinessNumber: c.BusinessNumber,
		Address:        c.Address,
		Phone:          c.Phone,
		Fax:            c.Fax,
		Email:          c.Email,
		Notes:          c.Notes,
		Parcel:         c.Parcel,
		Industry:       industry,
		IsOverseas:     c.IsOverseas,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	for _, ct := range c.Contacts {
		resp.Contacts = append(resp.Contacts, toContactResponse(ct))
	}
	return resp
}
