package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.CompanyFileRepository = (*CompanyFileRepo)(nil)

// CompanyFileRepo metadatos de adjuntos en company_files.
type CompanyFileRepo struct {
	q Querier
}

// NewCompanyFileRepository construye el adaptador.
func NewCompanyFileRepository(q Querier) *CompanyFileRepo {
	return &CompanyFileRepo{q: q}
}

// Create registra un adjunto ya subido al almacenamiento.
func (r *CompanyFileRepo) Create(ctx context.Context, f *entity.CompanyFile) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO company_files (id, company_id, user_id, file_name, storage_key, content_type, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.ID, f.CompanyID, nullString(f.UserID), f.FileName, f.StorageKey, f.ContentType, f.Size, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company file: %w", err)
	}
	return nil
}

// GetByID obtiene un adjunto; nil si no existe.
func (r *CompanyFileRepo) GetByID(ctx context.Context, id string) (*entity.CompanyFile, error) {
	var f entity.CompanyFile
	var userID *string
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, user_id, file_name, storage_key, content_type, size, created_at
		FROM company_files WHERE id = $1`, id,
	).Scan(&f.ID, &f.CompanyID, &userID, &f.FileName, &f.StorageKey, &f.ContentType, &f.Size, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company file: %w", err)
	}
	f.UserID = derefString(userID)
	return &f, nil
}

// ListByCompany adjuntos de una empresa, más recientes primero.
func (r *CompanyFileRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.CompanyFile, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, user_id, file_name, storage_key, content_type, size, created_at
		FROM company_files WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company files: %w", err)
	}
	defer rows.Close()
	var list []*entity.CompanyFile
	for rows.Next() {
		var f entity.CompanyFile
		var userID *string
		if err := rows.Scan(&f.ID, &f.CompanyID, &userID, &f.FileName, &f.StorageKey, &f.ContentType, &f.Size, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan company file: %w", err)
		}
		f.UserID = derefString(userID)
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Delete elimina el registro del adjunto.
func (r *CompanyFileRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM company_files WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete company file: %w", err)
	}
	return nil
}
