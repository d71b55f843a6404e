package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// ContactRepository puerto de persistencia para Contact.
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id string) (*entity.Contact, error)
	List(ctx context.Context, f ContactFilter, limit, offset int) ([]*entity.Contact, int, error)
	// ListByCompany devuelve los contactos activos primero y luego los que dejaron la empresa.
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, id string) error
	DeleteByCompany(ctx context.Context, companyID string) error
}

// ContactLinkRepository tablas de unión contacts_consultations y contacts_documents.
type ContactLinkRepository interface {
	LinkConsultation(ctx context.Context, contactID, consultationID string) error
	// ReplaceConsultationContact deja contactID como único contacto de la consulta.
	ReplaceConsultationContact(ctx context.Context, consultationID, contactID string) error
	LinkDocument(ctx context.Context, contactID, documentID, userID string) error
	ReplaceDocumentContact(ctx context.Context, documentID, contactID, userID string) error

	DeleteByCompany(ctx context.Context, companyID string) error
	DeleteByContact(ctx context.Context, contactID string) error
	// DeleteByConsultation borra los enlaces de la consulta y de sus documentos.
	DeleteByConsultation(ctx context.Context, consultationID string) error
	DeleteByDocument(ctx context.Context, documentID string) error
}
