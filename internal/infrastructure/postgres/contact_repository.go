package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

const contactColumns = `ct.id, ct.company_id, ct.contact_name, ct.department, ct.level, ct.mobile,
	ct.email, ct.resign, ct.note, ct.created_at, ct.updated_at, c.name`

// ContactRepo implementación de ContactRepository.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var c entity.Contact
	if err := row.Scan(&c.ID, &c.CompanyID, &c.ContactName, &c.Department, &c.Level, &c.Mobile,
		&c.Email, &c.Resign, &c.Note, &c.CreatedAt, &c.UpdatedAt, &c.CompanyName); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un contacto.
func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contacts (id, company_id, contact_name, department, level, mobile, email, resign, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.CompanyID, c.ContactName, c.Department, c.Level, c.Mobile, c.Email, c.Resign, c.Note,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetByID obtiene un contacto con el nombre de su empresa; nil si no existe.
func (r *ContactRepo) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	c, err := scanContact(r.q.QueryRow(ctx, `
		SELECT `+contactColumns+`
		FROM contacts ct JOIN companies c ON c.id = ct.company_id
		WHERE ct.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// List lista contactos filtrados.
func (r *ContactRepo) List(ctx context.Context, f repository.ContactFilter, limit, offset int) ([]*entity.Contact, int, error) {
	var w where
	w.ilike("ct.contact_name", f.ContactName)
	w.ilike("ct.email", f.Email)
	w.ilike("ct.mobile", f.Mobile)
	w.ilike("c.name", f.CompanyName)
	w.eq("ct.company_id", f.CompanyID)
	if f.Resign != nil {
		w.add("ct.resign = ?", *f.Resign)
	}
	from := ` FROM contacts ct JOIN companies c ON c.id = ct.company_id`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+from+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}
	query := `SELECT ` + contactColumns + from + w.sql() +
		` ORDER BY ct.created_at DESC, ct.id LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// ListByCompany contactos de una empresa: activos primero, luego los que se dieron de baja.
func (r *ContactRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Contact, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+contactColumns+`
		FROM contacts ct JOIN companies c ON c.id = ct.company_id
		WHERE ct.company_id = $1
		ORDER BY ct.resign ASC, ct.contact_name ASC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update reescribe los campos editables del contacto.
func (r *ContactRepo) Update(ctx context.Context, c *entity.Contact) error {
	_, err := r.q.Exec(ctx, `
		UPDATE contacts SET company_id = $2, contact_name = $3, department = $4, level = $5, mobile = $6,
			email = $7, resign = $8, note = $9, updated_at = $10
		WHERE id = $1`,
		c.ID, c.CompanyID, c.ContactName, c.Department, c.Level, c.Mobile, c.Email, c.Resign, c.Note, c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// Delete elimina un contacto (los enlaces deben borrarse antes).
func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

// DeleteByCompany elimina todos los contactos de una empresa.
func (r *ContactRepo) DeleteByCompany(ctx context.Context, companyID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM contacts WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("delete company contacts: %w", err)
	}
	return nil
}
