package ports

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Companies     repository.CompanyRepository
	Contacts      repository.ContactRepository
	Links         repository.ContactLinkRepository
	Consultations repository.ConsultationRepository
	Documents     repository.DocumentRepository
	Rnds          repository.RndRepository
	RndOrgs       repository.RndOrgRepository
	Todos         repository.TodoRepository
	Notifications repository.NotificationRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn retorna error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
