package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// CompanyRepository puerto de persistencia para Company.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context, f CompanyFilter, limit, offset int) ([]*entity.Company, int, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id string) error
}

// CompanyFileRepository metadatos de archivos adjuntos de empresas.
type CompanyFileRepository interface {
	Create(ctx context.Context, f *entity.CompanyFile) error
	GetByID(ctx context.Context, id string) (*entity.CompanyFile, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.CompanyFile, error)
	Delete(ctx context.Context, id string) error
}
