package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// RndRepository puerto de persistencia para programas de I+D y su seguimiento.
type RndRepository interface {
	Create(ctx context.Context, r *entity.Rnd) error
	GetByID(ctx context.Context, id string) (*entity.Rnd, error)
	List(ctx context.Context, f RndFilter, limit, offset int) ([]*entity.Rnd, int, error)
	Update(ctx context.Context, r *entity.Rnd) error
	Delete(ctx context.Context, id string) error

	CreateConsultation(ctx context.Context, c *entity.RndConsultation) error
	GetConsultation(ctx context.Context, id string) (*entity.RndConsultation, error)
	ListConsultations(ctx context.Context, rndID string, limit, offset int) ([]*entity.RndConsultation, int, error)
	UpdateConsultation(ctx context.Context, c *entity.RndConsultation) error
	DeleteConsultation(ctx context.Context, id string) error
	DeleteConsultationsByRnd(ctx context.Context, rndID string) error
}

// RndOrgRepository puerto de persistencia para organismos de I+D y sus contactos.
type RndOrgRepository interface {
	Create(ctx context.Context, o *entity.RndOrg) error
	GetByID(ctx context.Context, id string) (*entity.RndOrg, error)
	GetByName(ctx context.Context, name string) (*entity.RndOrg, error)
	ListAll(ctx context.Context) ([]*entity.RndOrg, error)
	ListPage(ctx context.Context, limit, offset int) ([]*entity.RndOrg, int, error)
	Update(ctx context.Context, o *entity.RndOrg) error
	Delete(ctx context.Context, id string) error

	ListContacts(ctx context.Context, orgID string) ([]*entity.RndContact, error)
	CreateContact(ctx context.Context, c *entity.RndContact) error
	UpdateContact(ctx context.Context, c *entity.RndContact) error
	DeleteContact(ctx context.Context, id string) error
	DeleteContactsByOrg(ctx context.Context, orgID string) error
}
