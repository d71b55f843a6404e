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

var _ repository.RndOrgRepository = (*RndOrgRepo)(nil)

const rndOrgColumns = `id, name, address, phone, fax, email, notes, created_at, updated_at`

// RndOrgRepo implementación de RndOrgRepository.
type RndOrgRepo struct {
	q Querier
}

// NewRndOrgRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRndOrgRepository(q Querier) *RndOrgRepo {
	return &RndOrgRepo{q: q}
}

func scanRndOrg(row pgx.Row) (*entity.RndOrg, error) {
	var o entity.RndOrg
	if err := row.Scan(&o.ID, &o.Name, &o.Address, &o.Phone, &o.Fax, &o.Email, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste un organismo.
func (r *RndOrgRepo) Create(ctx context.Context, o *entity.RndOrg) error {
	_, err := r.q.Exec(ctx, `INSERT INTO rnd_orgs (`+rndOrgColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.Name, o.Address, o.Phone, o.Fax, o.Email, o.Notes, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rnd org: %w", err)
	}
	return nil
}

// GetByID obtiene un organismo; nil si no existe.
func (r *RndOrgRepo) GetByID(ctx context.Context, id string) (*entity.RndOrg, error) {
	return r.getOne(ctx, `SELECT `+rndOrgColumns+` FROM rnd_orgs WHERE id = $1`, id)
}

// GetByName obtiene un organismo por nombre exacto; nil si no existe.
func (r *RndOrgRepo) GetByName(ctx context.Context, name string) (*entity.RndOrg, error) {
	return r.getOne(ctx, `SELECT `+rndOrgColumns+` FROM rnd_orgs WHERE name = $1`, name)
}

func (r *RndOrgRepo) getOne(ctx context.Context, query string, arg any) (*entity.RndOrg, error) {
	o, err := scanRndOrg(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rnd org: %w", err)
	}
	return o, nil
}

// ListAll todos los organismos ordenados por nombre.
func (r *RndOrgRepo) ListAll(ctx context.Context) ([]*entity.RndOrg, error) {
	return r.query(ctx, `SELECT `+rndOrgColumns+` FROM rnd_orgs ORDER BY name ASC`)
}

// ListPage página de organismos con sus contactos.
func (r *RndOrgRepo) ListPage(ctx context.Context, limit, offset int) ([]*entity.RndOrg, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM rnd_orgs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count rnd orgs: %w", err)
	}
	list, err := r.query(ctx, `SELECT `+rndOrgColumns+` FROM rnd_orgs ORDER BY name ASC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if len(list) == 0 {
		return list, total, nil
	}
	ids := make([]string, 0, len(list))
	byID := make(map[string]*entity.RndOrg, len(list))
	for _, o := range list {
		ids = append(ids, o.ID)
		byID[o.ID] = o
		o.Contacts = []*entity.RndContact{}
	}
	contacts, err := r.queryContacts(ctx, `
		SELECT `+rndContactColumns+` FROM rnds_contacts
		WHERE org_id = ANY($1::uuid[]) ORDER BY resign ASC, name ASC`, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, c := range contacts {
		if o, ok := byID[c.OrgID]; ok {
			o.Contacts = append(o.Contacts, c)
		}
	}
	return list, total, nil
}

func (r *RndOrgRepo) query(ctx context.Context, query string, args ...any) ([]*entity.RndOrg, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rnd orgs: %w", err)
	}
	defer rows.Close()
	var list []*entity.RndOrg
	for rows.Next() {
		o, err := scanRndOrg(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rnd org: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update actualiza los datos del organismo.
func (r *RndOrgRepo) Update(ctx context.Context, o *entity.RndOrg) error {
	_, err := r.q.Exec(ctx, `
		UPDATE rnd_orgs SET name = $2, address = $3, phone = $4, fax = $5, email = $6, notes = $7, updated_at = $8
		WHERE id = $1`, o.ID, o.Name, o.Address, o.Phone, o.Fax, o.Email, o.Notes, o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update rnd org: %w", err)
	}
	return nil
}

// Delete elimina un organismo; los programas quedan sin organismo (ON DELETE SET NULL).
func (r *RndOrgRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM rnd_orgs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete rnd org: %w", err)
	}
	return nil
}

const rndContactColumns = `id, org_id, name, department, level, phone, email, resign, created_at, updated_at`

func (r *RndOrgRepo) queryContacts(ctx context.Context, query string, args ...any) ([]*entity.RndContact, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rnd contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.RndContact
	for rows.Next() {
		var c entity.RndContact
		if err := rows.Scan(&c.ID, &c.OrgID, &c.Name, &c.Department, &c.Level, &c.Phone, &c.Email, &c.Resign,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rnd contact: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ListContacts contactos de un organismo: activos primero.
func (r *RndOrgRepo) ListContacts(ctx context.Context, orgID string) ([]*entity.RndContact, error) {
	return r.queryContacts(ctx, `SELECT `+rndContactColumns+` FROM rnds_contacts WHERE org_id = $1 ORDER BY resign ASC, name ASC`, orgID)
}

// CreateContact persiste un contacto de organismo.
func (r *RndOrgRepo) CreateContact(ctx context.Context, c *entity.RndContact) error {
	_, err := r.q.Exec(ctx, `INSERT INTO rnds_contacts (`+rndContactColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.OrgID, c.Name, c.Department, c.Level, c.Phone, c.Email, c.Resign, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert rnd contact: %w", err)
	}
	return nil
}

// UpdateContact actualiza un contacto de organismo.
func (r *RndOrgRepo) UpdateContact(ctx context.Context, c *entity.RndContact) error {
	_, err := r.q.Exec(ctx, `
		UPDATE rnds_contacts SET name = $2, department = $3, level = $4, phone = $5, email = $6, resign = $7, updated_at = $8
		WHERE id = $1`, c.ID, c.Name, c.Department, c.Level, c.Phone, c.Email, c.Resign, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update rnd contact: %w", err)
	}
	return nil
}

// DeleteContact elimina un contacto de organismo.
func (r *RndOrgRepo) DeleteContact(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM rnds_contacts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete rnd contact: %w", err)
	}
	return nil
}

// DeleteContactsByOrg elimina todos los contactos de un organismo.
func (r *RndOrgRepo) DeleteContactsByOrg(ctx context.Context, orgID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM rnds_contacts WHERE org_id = $1`, orgID); err != nil {
		return fmt.Errorf("delete rnd org contacts: %w", err)
	}
	return nil
}
