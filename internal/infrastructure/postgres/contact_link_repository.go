package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ContactLinkRepository = (*ContactLinkRepo)(nil)

// ContactLinkRepo tablas de unión de contactos con consultas y documentos.
type ContactLinkRepo struct {
	q Querier
}

// NewContactLinkRepository construye el adaptador.
func NewContactLinkRepository(q Querier) *ContactLinkRepo {
	return &ContactLinkRepo{q: q}
}

// LinkConsultation asocia un contacto a una consulta (idempotente).
func (r *ContactLinkRepo) LinkConsultation(ctx context.Context, contactID, consultationID string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contacts_consultations (contact_id, consultation_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, contactID, consultationID)
	if err != nil {
		return fmt.Errorf("link contact consultation: %w", err)
	}
	return nil
}

// ReplaceConsultationContact deja un único contacto asociado a la consulta.
func (r *ContactLinkRepo) ReplaceConsultationContact(ctx context.Context, consultationID, contactID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM contacts_consultations WHERE consultation_id = $1`, consultationID); err != nil {
		return fmt.Errorf("unlink consultation contacts: %w", err)
	}
	if contactID == "" {
		return nil
	}
	return r.LinkConsultation(ctx, contactID, consultationID)
}

// LinkDocument asocia un contacto a un documento (idempotente).
func (r *ContactLinkRepo) LinkDocument(ctx context.Context, contactID, documentID, userID string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contacts_documents (contact_id, document_id, user_id) VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`, contactID, documentID, nullString(userID))
	if err != nil {
		return fmt.Errorf("link contact document: %w", err)
	}
	return nil
}

// ReplaceDocumentContact deja un único contacto asociado al documento.
func (r *ContactLinkRepo) ReplaceDocumentContact(ctx context.Context, documentID, contactID, userID string) error {
	if err := r.DeleteByDocument(ctx, documentID); err != nil {
		return err
	}
	if contactID == "" {
		return nil
	}
	return r.LinkDocument(ctx, contactID, documentID, userID)
}

// DeleteByCompany borra los enlaces de contactos, consultas y documentos de la empresa.
func (r *ContactLinkRepo) DeleteByCompany(ctx context.Context, companyID string) error {
	_, err := r.q.Exec(ctx, `
		DELETE FROM contacts_documents
		WHERE contact_id IN (SELECT id FROM contacts WHERE company_id = $1)
		   OR document_id IN (SELECT id FROM documents WHERE company_id = $1)`, companyID)
	if err != nil {
		return fmt.Errorf("unlink company documents: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		DELETE FROM contacts_consultations
		WHERE contact_id IN (SELECT id FROM contacts WHERE company_id = $1)
		   OR consultation_id IN (SELECT id FROM consultations WHERE company_id = $1)`, companyID)
	if err != nil {
		return fmt.Errorf("unlink company consultations: %w", err)
	}
	return nil
}

// DeleteByContact borra los enlaces de un contacto.
func (r *ContactLinkRepo) DeleteByContact(ctx context.Context, contactID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM contacts_documents WHERE contact_id = $1`, contactID); err != nil {
		return fmt.Errorf("unlink contact documents: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM contacts_consultations WHERE contact_id = $1`, contactID); err != nil {
		return fmt.Errorf("unlink contact consultations: %w", err)
	}
	return nil
}

// DeleteByConsultation borra los enlaces de la consulta y de sus documentos.
func (r *ContactLinkRepo) DeleteByConsultation(ctx context.Context, consultationID string) error {
	_, err := r.q.Exec(ctx, `
		DELETE FROM contacts_documents
		WHERE document_id IN (SELECT id FROM documents WHERE consultation_id = $1)`, consultationID)
	if err != nil {
		return fmt.Errorf("unlink consultation documents: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM contacts_consultations WHERE consultation_id = $1`, consultationID); err != nil {
		return fmt.Errorf("unlink consultation contacts: %w", err)
	}
	return nil
}

// DeleteByDocument borra los enlaces de un documento.
func (r *ContactLinkRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM contacts_documents WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("unlink document contacts: %w", err)
	}
	return nil
}
