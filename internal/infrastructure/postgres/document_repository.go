package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentSelect = `
	SELECT d.id, d.consultation_id, d.company_id, d.user_id, d.type, d.document_number, d.date,
		d.valid_until, d.delivery_date, d.content, d.total_amount, d.status, d.status_reason,
		d.created_at, d.updated_at,
		COALESCE(ct.id::text, ''), COALESCE(ct.contact_name, ''), COALESCE(ct.level, ''), COALESCE(ct.mobile, ''),
		COALESCE(u.name, ''), COALESCE(u.level, ''),
		COALESCE(co.name, ''), COALESCE(co.phone, ''), COALESCE(co.fax, '')
	FROM documents d
	LEFT JOIN companies co ON co.id = d.company_id
	LEFT JOIN users u ON u.id = d.user_id
	LEFT JOIN LATERAL (
		SELECT k.id, k.contact_name, k.level, k.mobile FROM contacts_documents cd
		JOIN contacts k ON k.id = cd.contact_id
		WHERE cd.document_id = d.id
		LIMIT 1
	) ct ON TRUE`

// DocumentRepo implementación de DocumentRepository.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	if err := row.Scan(&d.ID, &d.ConsultationID, &d.CompanyID, &d.UserID, &d.Type, &d.DocumentNumber, &d.Date,
		&d.ValidUntil, &d.DeliveryDate, &d.Content, &d.TotalAmount, &d.Status, &d.StatusReason,
		&d.CreatedAt, &d.UpdatedAt,
		&d.ContactID, &d.ContactName, &d.ContactLevel, &d.ContactMobile,
		&d.UserName, &d.UserLevel,
		&d.CompanyName, &d.CompanyPhone, &d.CompanyFax); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste un documento.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO documents (id, consultation_id, company_id, user_id, type, document_number, date,
			valid_until, delivery_date, content, total_amount, status, status_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		d.ID, d.ConsultationID, d.CompanyID, d.UserID, d.Type, d.DocumentNumber, d.Date,
		d.ValidUntil, d.DeliveryDate, d.Content, d.TotalAmount, d.Status, d.StatusReason, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento aplanado; nil si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, documentSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// documentOrder orden estable de los listados: el id desempata filas con la misma fecha.
const documentOrder = ` ORDER BY d.date DESC, d.created_at DESC, d.id DESC`

// List documentos filtrados, por fecha descendente.
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter, limit, offset int) ([]*entity.Document, int, error) {
	var w where
	w.eq("d.type", f.Type)
	switch f.Status {
	case "", "all":
	case "expiring_soon":
		w.add("d.status = ?", entity.DocumentStatusPending)
		w.add("d.valid_until >= ?", f.ExpiringFrom)
		w.add("d.valid_until <= ?", f.ExpiringTo)
	default:
		w.eq("d.status", f.Status)
	}
	w.eq("d.user_id", f.UserID)
	w.ilike("d.document_number", f.DocNumber)
	if len(f.CompanyIDs) > 0 {
		w.add("d.company_id = ANY(?::uuid[])", f.CompanyIDs)
	}
	w.ilike("d.content->>'notes'", f.Notes)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM documents d`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}
	query := documentSelect + w.sql() + documentOrder
	if limit > 0 {
		query += ` LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	}
	list, err := r.query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByConsultation documentos de una consulta en orden de creación.
func (r *DocumentRepo) ListByConsultation(ctx context.Context, consultationID string) ([]*entity.Document, error) {
	return r.query(ctx, documentSelect+` WHERE d.consultation_id = $1 ORDER BY d.created_at ASC`, consultationID)
}

func (r *DocumentRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Document, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Update reescribe los campos editables del documento (el estado va por UpdateStatus).
func (r *DocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	_, err := r.q.Exec(ctx, `
		UPDATE documents SET company_id = $2, document_number = $3, date = $4, valid_until = $5,
			delivery_date = $6, content = $7, total_amount = $8, updated_at = $9
		WHERE id = $1`,
		d.ID, d.CompanyID, d.DocumentNumber, d.Date, d.ValidUntil, d.DeliveryDate, d.Content, d.TotalAmount, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// UpdateStatus cambia estado y motivo.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, id, status string, reason *entity.StatusReason, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE documents SET status = $2, status_reason = $3, updated_at = $4 WHERE id = $1`,
		id, status, reason, at)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	return nil
}

// Delete elimina un documento (los enlaces deben borrarse antes).
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// DeleteByConsultation elimina los documentos de una consulta.
func (r *DocumentRepo) DeleteByConsultation(ctx context.Context, consultationID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM documents WHERE consultation_id = $1`, consultationID); err != nil {
		return fmt.Errorf("delete consultation documents: %w", err)
	}
	return nil
}

// DeleteByCompany elimina los documentos de una empresa.
func (r *DocumentRepo) DeleteByCompany(ctx context.Context, companyID string) error {
	_, err := r.q.Exec(ctx, `
		DELETE FROM documents
		WHERE company_id = $1 OR consultation_id IN (SELECT id FROM consultations WHERE company_id = $1)`, companyID)
	if err != nil {
		return fmt.Errorf("delete company documents: %w", err)
	}
	return nil
}

// MaxNumberSequence mayor NNN en uso para prefix; los números manuales sin sufijo numérico se ignoran.
func (r *DocumentRepo) MaxNumberSequence(ctx context.Context, prefix string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(substring(document_number FROM length($1) + 1)::int), 0)
		FROM documents
		WHERE starts_with(document_number, $1)
		  AND substring(document_number FROM length($1) + 1) ~ '^[0-9]{1,9}$'`, prefix).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("max document number: %w", err)
	}
	return n, nil
}

// Summary conteo por tipo y estado (de un usuario si userID no está vacío).
func (r *DocumentRepo) Summary(ctx context.Context, userID string) ([]repository.TypeStatusCount, error) {
	var w where
	w.eq("user_id", userID)
	rows, err := r.q.Query(ctx, `SELECT type, status, COUNT(*) FROM documents`+w.sql()+` GROUP BY type, status`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("document summary: %w", err)
	}
	defer rows.Close()
	var out []repository.TypeStatusCount
	for rows.Next() {
		var c repository.TypeStatusCount
		if err := rows.Scan(&c.Type, &c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan document summary: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
