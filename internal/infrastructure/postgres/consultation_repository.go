package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ConsultationRepository = (*ConsultationRepo)(nil)

const consultationSelect = `
	SELECT c.id, c.company_id, c.user_id, c.date, c.title, c.content, c.contact_method, c.follow_up_date,
		c.created_at, c.updated_at, co.name, COALESCE(u.name, ''), COALESCE(ct.id::text, ''), COALESCE(ct.contact_name, '')
	FROM consultations c
	JOIN companies co ON co.id = c.company_id
	LEFT JOIN users u ON u.id = c.user_id
	LEFT JOIN LATERAL (
		SELECT k.id, k.contact_name FROM contacts_consultations cc
		JOIN contacts k ON k.id = cc.contact_id
		WHERE cc.consultation_id = c.id
		LIMIT 1
	) ct ON TRUE`

// ConsultationRepo implementación de ConsultationRepository.
type ConsultationRepo struct {
	q Querier
}

// NewConsultationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsultationRepository(q Querier) *ConsultationRepo {
	return &ConsultationRepo{q: q}
}

func scanConsultation(row pgx.Row) (*entity.Consultation, error) {
	var c entity.Consultation
	if err := row.Scan(&c.ID, &c.CompanyID, &c.UserID, &c.Date, &c.Title, &c.Content, &c.ContactMethod,
		&c.FollowUpDate, &c.CreatedAt, &c.UpdatedAt, &c.CompanyName, &c.UserName, &c.ContactID, &c.ContactName); err != nil {
		return nil, err
	}
	c.Documents = []entity.DocumentRef{}
	return &c, nil
}

// Create persiste una consulta.
func (r *ConsultationRepo) Create(ctx context.Context, c *entity.Consultation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO consultations (id, company_id, user_id, date, title, content, contact_method, follow_up_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.CompanyID, c.UserID, c.Date, c.Title, c.Content, c.ContactMethod, c.FollowUpDate,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert consultation: %w", err)
	}
	return nil
}

// GetByID obtiene una consulta no borrada con empresa, usuario, contacto y documentos.
func (r *ConsultationRepo) GetByID(ctx context.Context, id string) (*entity.Consultation, error) {
	c, err := scanConsultation(r.q.QueryRow(ctx, consultationSelect+` WHERE c.id = $1 AND c.deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consultation: %w", err)
	}
	if err := r.attachDocuments(ctx, []*entity.Consultation{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func consultationWhere(f repository.ConsultationFilter) *where {
	w := &where{}
	w.add("c.deleted_at IS NULL")
	w.eq("c.company_id", f.CompanyID)
	w.eq("c.user_id", f.UserID)
	w.ilike("co.name", f.CompanyName)
	w.ilike("c.content", f.Keyword)
	var terms []string
	var args []any
	for _, t := range f.Terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		terms = append(terms, likeAny("c.title")+" OR "+likeAny("c.content"))
		args = append(args, likePattern(t), likePattern(t))
	}
	if len(terms) > 0 {
		w.add("("+strings.Join(terms, " OR ")+")", args...)
	}
	if f.StartDate != nil {
		w.add("c.date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		w.add("c.date <= ?", *f.EndDate)
	}
	return w
}

func consultationOrder(f repository.ConsultationFilter) string {
	if f.Ascending {
		return " ORDER BY c.date ASC, c.created_at ASC, c.id ASC"
	}
	return " ORDER BY c.date DESC, c.created_at DESC, c.id DESC"
}

// List consultas filtradas con el total bajo los mismos filtros.
func (r *ConsultationRepo) List(ctx context.Context, f repository.ConsultationFilter, limit, offset int) ([]*entity.Consultation, int, error) {
	w := consultationWhere(f)
	var total int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM consultations c JOIN companies co ON co.id = c.company_id`+w.sql(), w.args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count consultations: %w", err)
	}
	query := consultationSelect + w.sql() + consultationOrder(f)
	if limit > 0 {
		query += ` LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	}
	list, err := r.query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachDocuments(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Position índice (base 0) de la consulta dentro del listado filtrado; -1 si no aparece.
func (r *ConsultationRepo) Position(ctx context.Context, f repository.ConsultationFilter, id string) (int, error) {
	w := consultationWhere(f)
	query := `
		SELECT rn FROM (
			SELECT c.id, ROW_NUMBER() OVER (` + strings.TrimPrefix(consultationOrder(f), " ") + `) - 1 AS rn
			FROM consultations c JOIN companies co ON co.id = c.company_id` + w.sql() + `
		) t WHERE t.id = ` + w.next(id)
	var pos int
	if err := r.q.QueryRow(ctx, query, w.args...).Scan(&pos); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return -1, nil
		}
		return 0, fmt.Errorf("consultation position: %w", err)
	}
	return pos, nil
}

// FollowUps consultas con seguimiento programado entre from y to (inclusive).
func (r *ConsultationRepo) FollowUps(ctx context.Context, userID string, from, to time.Time) ([]*entity.Consultation, error) {
	w := &where{}
	w.add("c.deleted_at IS NULL")
	w.add("c.follow_up_date >= ?", from)
	w.add("c.follow_up_date <= ?", to)
	w.eq("c.user_id", userID)
	return r.query(ctx, consultationSelect+w.sql()+` ORDER BY c.follow_up_date ASC, c.created_at ASC`, w.args...)
}

func (r *ConsultationRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Consultation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Consultation
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consultation: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// attachDocuments carga el resumen de documentos de cada consulta en una sola consulta.
func (r *ConsultationRepo) attachDocuments(ctx context.Context, list []*entity.Consultation) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, 0, len(list))
	byID := make(map[string]*entity.Consultation, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
		byID[c.ID] = c
	}
	rows, err := r.q.Query(ctx, `
		SELECT consultation_id, id, type, document_number, status
		FROM documents WHERE consultation_id = ANY($1::uuid[])
		ORDER BY created_at ASC`, ids)
	if err != nil {
		return fmt.Errorf("list consultation documents: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var consultationID string
		var d entity.DocumentRef
		if err := rows.Scan(&consultationID, &d.ID, &d.Type, &d.DocumentNumber, &d.Status); err != nil {
			return fmt.Errorf("scan consultation document: %w", err)
		}
		if c, ok := byID[consultationID]; ok {
			c.Documents = append(c.Documents, d)
		}
	}
	return rows.Err()
}

// Update reescribe los campos editables de la consulta.
func (r *ConsultationRepo) Update(ctx context.Context, c *entity.Consultation) error {
	_, err := r.q.Exec(ctx, `
		UPDATE consultations SET user_id = $2, date = $3, title = $4, content = $5, contact_method = $6,
			follow_up_date = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL`,
		c.ID, c.UserID, c.Date, c.Title, c.Content, c.ContactMethod, c.FollowUpDate, c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update consultation: %w", err)
	}
	return nil
}

// SoftDelete marca la consulta como borrada.
func (r *ConsultationRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE consultations SET deleted_at = $2, updated_at = $2 WHERE id = $1`, id, at); err != nil {
		return fmt.Errorf("soft delete consultation: %w", err)
	}
	return nil
}

// DeleteByCompany borra físicamente las consultas de una empresa (incluidas las ya marcadas).
func (r *ConsultationRepo) DeleteByCompany(ctx context.Context, companyID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM consultations WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("delete company consultations: %w", err)
	}
	return nil
}
