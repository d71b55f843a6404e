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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, business_number, address, phone, fax, email, notes, parcel,
	industry, is_overseas, created_at, updated_at`

// CompanyRepo implementación de CompanyRepository (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(&c.ID, &c.Name, &c.BusinessNumber, &c.Address, &c.Phone, &c.Fax, &c.Email,
		&c.Notes, &c.Parcel, &c.Industry, &c.IsOverseas, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if c.Industry == nil {
		c.Industry = []string{}
	}
	return &c, nil
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, business_number, address, phone, fax, email, notes, parcel,
			industry, is_overseas, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	industry := c.Industry
	if industry == nil {
		industry = []string{}
	}
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.BusinessNumber, c.Address, c.Phone, c.Fax, c.Email, c.Notes, c.Parcel,
		industry, c.IsOverseas, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID; nil si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// List lista empresas filtradas, más recientes primero, con el total bajo los mismos filtros.
func (r *CompanyRepo) List(ctx context.Context, f repository.CompanyFilter, limit, offset int) ([]*entity.Company, int, error) {
	var w where
	w.ilike("name", f.Name)
	w.ilike("address", f.Address)
	w.ilike("email", f.Email)
	if f.Industry != "" {
		w.add("industry @> ARRAY[?]::text[]", f.Industry)
	}
	if f.IsOverseas != nil {
		w.add("is_overseas = ?", *f.IsOverseas)
	}
	if len(f.CompanyIDs) > 0 {
		w.add("id = ANY(?::uuid[])", f.CompanyIDs)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM companies`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	query := `SELECT ` + companyColumns + ` FROM companies` + w.sql() +
		` ORDER BY created_at DESC, id LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update reescribe todos los campos editables de la empresa.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, business_number = $3, address = $4, phone = $5, fax = $6,
			email = $7, notes = $8, parcel = $9, industry = $10, is_overseas = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.BusinessNumber, c.Address, c.Phone, c.Fax, c.Email, c.Notes, c.Parcel,
		c.Industry, c.IsOverseas, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Delete elimina la empresa (los dependientes deben borrarse antes).
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM company_files WHERE company_id = $1`, id); err != nil {
		return fmt.Errorf("delete company files: %w", err)
	}
	_, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}
