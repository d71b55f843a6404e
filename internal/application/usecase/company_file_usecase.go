package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/ports"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// CompanyFileUseCase adjuntos de empresas guardados en almacenamiento de objetos.
type CompanyFileUseCase struct {
	files     repository.CompanyFileRepository
	companies repository.CompanyRepository
	storage   ports.FileStorage
	presign   time.Duration
}

// NewCompanyFileUseCase construye el caso de uso. presign es la validez de las URLs de descarga.
func NewCompanyFileUseCase(files repository.CompanyFileRepository, companies repository.CompanyRepository, storage ports.FileStorage, presign time.Duration) *CompanyFileUseCase {
	if presign <= 0 {
		presign = 15 * time.Minute
	}
	return &CompanyFileUseCase{files: files, companies: companies, storage: storage, presign: presign}
}

// UploadInput archivo recibido por multipart.
type UploadInput struct {
	CompanyID   string
	UserID      string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Upload sube el archivo y registra sus metadatos. Si falla el registro se borra el objeto.
func (uc *CompanyFileUseCase) Upload(ctx context.Context, in UploadInput) (*dto.CompanyFileResponse, error) {
	if in.FileName == "" || in.Body == nil {
		return nil, dto.NewRequiredError("file")
	}
	company, err := uc.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.ContentType == "" {
		in.ContentType = "application/octet-stream"
	}
	id := uuid.New().String()
	key := path.Join("companies", in.CompanyID, id+"-"+path.Base(in.FileName))
	if err := uc.storage.Upload(ctx, key, in.Body, in.Size, in.ContentType); err != nil {
		return nil, fmt.Errorf("companyFile.Upload: %w", err)
	}
	f := &entity.CompanyFile{
		ID:          id,
		CompanyID:   in.CompanyID,
		UserID:      in.UserID,
		FileName:    in.FileName,
		StorageKey:  key,
		ContentType: in.ContentType,
		Size:        in.Size,
		CreatedAt:   now(),
	}
	if err := uc.files.Create(ctx, f); err != nil {
		_ = uc.storage.Delete(ctx, key)
		return nil, err
	}
	return toCompanyFileResponse(f), nil
}

// List adjuntos de la empresa.
func (uc *CompanyFileUseCase) List(ctx context.Context, companyID string) ([]dto.CompanyFileResponse, error) {
	list, err := uc.files.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyFileResponse, 0, len(list))
	for _, f := range list {
		out = append(out, *toCompanyFileResponse(f))
	}
	return out, nil
}

// DownloadURL genera una URL firmada temporal.
func (uc *CompanyFileUseCase) DownloadURL(ctx context.Context, id string) (*dto.FileURLResponse, error) {
	f, err := uc.files.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	url, err := uc.storage.PresignGet(ctx, f.StorageKey, uc.presign)
	if err != nil {
		return nil, fmt.Errorf("companyFile.DownloadURL: %w", err)
	}
	return &dto.FileURLResponse{URL: url, ExpiresAt: now().Add(uc.presign)}, nil
}

// Delete borra el objeto y luego sus metadatos.
func (uc *CompanyFileUseCase) Delete(ctx context.Context, id string) error {
	f, err := uc.files.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if f == nil {
		return domain.ErrNotFound
	}
	if err := uc.storage.Delete(ctx, f.StorageKey); err != nil {
		return fmt.Errorf("companyFile.Delete: %w", err)
	}
	return uc.files.Delete(ctx, id)
}

// StorageKeys claves de almacenamiento de todos los adjuntos de la empresa.
func (uc *CompanyFileUseCase) StorageKeys(ctx context.Context, companyID string) ([]string, error) {
	list, err := uc.files.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(list))
	for _, f := range list {
		keys = append(keys, f.StorageKey)
	}
	return keys, nil
}

// PurgeObjects borra los objetos dados. Un fallo no detiene el resto; se devuelven todos juntos.
func (uc *CompanyFileUseCase) PurgeObjects(ctx context.Context, keys []string) error {
	var errs []error
	for _, key := range keys {
		if err := uc.storage.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func toCompanyFileResponse(f *entity.CompanyFile) *dto.CompanyFileResponse {
	return &dto.CompanyFileResponse{
		ID:          f.ID,
		CompanyID:   f.CompanyID,
		UserID:      f.UserID,
		FileName:    f.FileName,
		ContentType: f.ContentType,
		Size:        f.Size,
		CreatedAt:   f.CreatedAt,
	}
}
