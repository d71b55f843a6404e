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

var _ repository.RndRepository = (*RndRepo)(nil)

const rndSelect = `
	SELECT r.id, r.name, r.type, r.project_number, r.project_type, r.status, r.program_name, r.org_id,
		r.start_date, r.end_date, r.gov_contribution, r.pri_contribution, r.total_cost, r.notes,
		r.created_at, r.updated_at,
		COALESCE(o.name, ''), COALESCE(o.phone, ''), COALESCE(o.email, '')
	FROM rnds r
	LEFT JOIN rnd_orgs o ON o.id = r.org_id`

// RndRepo implementación de RndRepository.
type RndRepo struct {
	q Querier
}

// NewRndRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRndRepository(q Querier) *RndRepo {
	return &RndRepo{q: q}
}

func scanRnd(row pgx.Row) (*entity.Rnd, error) {
	var r entity.Rnd
	var orgName, orgPhone, orgEmail string
	if err := row.Scan(&r.ID, &r.Name, &r.Type, &r.ProjectNumber, &r.ProjectType, &r.Status, &r.ProgramName, &r.OrgID,
		&r.StartDate, &r.EndDate, &r.GovContribution, &r.PriContribution, &r.TotalCost, &r.Notes,
		&r.CreatedAt, &r.UpdatedAt, &orgName, &orgPhone, &orgEmail); err != nil {
		return nil, err
	}
	if r.OrgID != nil {
		r.Org = &entity.RndOrg{ID: *r.OrgID, Name: orgName, Phone: orgPhone, Email: orgEmail}
	}
	return &r, nil
}

// Create persiste un programa.
func (r *RndRepo) Create(ctx context.Context, x *entity.Rnd) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO rnds (id, name, type, project_number, project_type, status, program_name, org_id,
			start_date, end_date, gov_contribution, pri_contribution, total_cost, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		x.ID, x.Name, x.Type, x.ProjectNumber, x.ProjectType, x.Status, x.ProgramName, x.OrgID,
		x.StartDate, x.EndDate, x.GovContribution, x.PriContribution, x.TotalCost, x.Notes, x.CreatedAt, x.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert rnd: %w", err)
	}
	return nil
}

// GetByID obtiene un programa con el resumen de su organismo; nil si no existe.
func (r *RndRepo) GetByID(ctx context.Context, id string) (*entity.Rnd, error) {
	x, err := scanRnd(r.q.QueryRow(ctx, rndSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rnd: %w", err)
	}
	return x, nil
}

// List programas filtrados.
func (r *RndRepo) List(ctx context.Context, f repository.RndFilter, limit, offset int) ([]*entity.Rnd, int, error) {
	var w where
	if f.Search != "" {
		s := likePattern(f.Search)
		w.add("("+likeAny("r.name")+" OR "+likeAny("r.project_number")+" OR "+likeAny("r.program_name")+")", s, s, s)
	}
	w.eq("r.status", f.Status)
	w.eq("r.project_type", f.ProjectType)
	w.eq("r.org_id", f.OrgID)
	w.eq("r.type", f.Type)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM rnds r`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count rnds: %w", err)
	}
	rows, err := r.q.Query(ctx, rndSelect+w.sql()+
		` ORDER BY r.created_at DESC, r.id LIMIT `+w.next(limit)+` OFFSET `+w.next(offset), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rnds: %w", err)
	}
	defer rows.Close()
	var list []*entity.Rnd
	for rows.Next() {
		x, err := scanRnd(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan rnd: %w", err)
		}
		list = append(list, x)
	}
	return list, total, rows.Err()
}

// Update reescribe los campos editables del programa.
func (r *RndRepo) Update(ctx context.Context, x *entity.Rnd) error {
	_, err := r.q.Exec(ctx, `
		UPDATE rnds SET name = $2, type = $3, project_number = $4, project_type = $5, status = $6,
			program_name = $7, org_id = $8, start_date = $9, end_date = $10, gov_contribution = $11,
			pri_contribution = $12, total_cost = $13, notes = $14, updated_at = $15
		WHERE id = $1`,
		x.ID, x.Name, x.Type, x.ProjectNumber, x.ProjectType, x.Status, x.ProgramName, x.OrgID,
		x.StartDate, x.EndDate, x.GovContribution, x.PriContribution, x.TotalCost, x.Notes, x.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update rnd: %w", err)
	}
	return nil
}

// Delete elimina un programa (los seguimientos deben borrarse antes).
func (r *RndRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM rnds WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete rnd: %w", err)
	}
	return nil
}

const rndConsultationSelect = `
	SELECT rc.id, rc.rnd_id, rc.user_id, rc.date, rc.content, rc.follow_up_date, rc.created_at, COALESCE(u.name, '')
	FROM rnds_consultations rc
	LEFT JOIN users u ON u.id = rc.user_id`

func scanRndConsultation(row pgx.Row) (*entity.RndConsultation, error) {
	var c entity.RndConsultation
	if err := row.Scan(&c.ID, &c.RndID, &c.UserID, &c.Date, &c.Content, &c.FollowUpDate, &c.CreatedAt, &c.UserName); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateConsultation persiste un seguimiento.
func (r *RndRepo) CreateConsultation(ctx context.Context, c *entity.RndConsultation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO rnds_consultations (id, rnd_id, user_id, date, content, follow_up_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.RndID, c.UserID, c.Date, c.Content, c.FollowUpDate, c.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert rnd consultation: %w", err)
	}
	return nil
}

// GetConsultation obtiene un seguimiento; nil si no existe.
func (r *RndRepo) GetConsultation(ctx context.Context, id string) (*entity.RndConsultation, error) {
	c, err := scanRndConsultation(r.q.QueryRow(ctx, rndConsultationSelect+` WHERE rc.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rnd consultation: %w", err)
	}
	return c, nil
}

// ListConsultations seguimientos de un programa, más recientes primero.
func (r *RndRepo) ListConsultations(ctx context.Context, rndID string, limit, offset int) ([]*entity.RndConsultation, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM rnds_consultations WHERE rnd_id = $1`, rndID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count rnd consultations: %w", err)
	}
	rows, err := r.q.Query(ctx, rndConsultationSelect+`
		WHERE rc.rnd_id = $1 ORDER BY rc.date DESC, rc.created_at DESC, rc.id DESC LIMIT $2 OFFSET $3`, rndID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list rnd consultations: %w", err)
	}
	defer rows.Close()
	var list []*entity.RndConsultation
	for rows.Next() {
		c, err := scanRndConsultation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan rnd consultation: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// UpdateConsultation actualiza fecha, contenido y seguimiento.
func (r *RndRepo) UpdateConsultation(ctx context.Context, c *entity.RndConsultation) error {
	_, err := r.q.Exec(ctx, `UPDATE rnds_consultations SET date = $2, content = $3, follow_up_date = $4 WHERE id = $1`,
		c.ID, c.Date, c.Content, c.FollowUpDate)
	if err != nil {
		return fmt.Errorf("update rnd consultation: %w", err)
	}
	return nil
}

// DeleteConsultation elimina un seguimiento.
func (r *RndRepo) DeleteConsultation(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM rnds_consultations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete rnd consultation: %w", err)
	}
	return nil
}

// DeleteConsultationsByRnd elimina todos los seguimientos de un programa.
func (r *RndRepo) DeleteConsultationsByRnd(ctx context.Context, rndID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM rnds_consultations WHERE rnd_id = $1`, rndID); err != nil {
		return fmt.Errorf("delete rnd consultations: %w", err)
	}
	return nil
}
