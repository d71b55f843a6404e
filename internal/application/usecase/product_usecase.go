package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// priceHistoryLimit máximo de precios devueltos por consulta de historial.
const priceHistoryLimit = 200

// ProductUseCase casos de uso CRUD para productos y su historial de precios.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	t := now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Spec:        in.Spec,
		Category:    in.Category,
		Unit:        in.Unit,
		UnitPrice:   in.UnitPrice,
		Description: in.Description,
		CreatedAt:   t,
		UpdatedAt:   t,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, f repository.ProductFilter, page dto.PageQuery) (*dto.ListResponse[dto.ProductResponse], error) {
	page.Normalize(dto.DefaultLimit)
	list, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	resp := dto.NewListResponse(items, total, page)
	return &resp, nil
}

// Update actualiza solo los campos enviados.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	setString(&product.Name, in.Name)
	setString(&product.Spec, in.Spec)
	setString(&product.Category, in.Category)
	setString(&product.Unit, in.Unit)
	setString(&product.Description, in.Description)
	if in.UnitPrice != nil {
		product.UnitPrice = *in.UnitPrice
	}
	product.UpdatedAt = now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// PriceHistory precios unitarios observados en documentos completados.
func (uc *ProductUseCase) PriceHistory(ctx context.Context, f repository.PriceHistoryFilter) ([]dto.PriceHistoryResponse, error) {
	if f.Name == "" {
		return nil, dto.NewRequiredError("name")
	}
	if f.Type != "" && !entity.ValidDocumentType(f.Type) {
		return nil, &dto.ValidationError{Invalid: []string{"type"}}
	}
	list, err := uc.repo.PriceHistory(ctx, f, priceHistoryLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceHistoryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.PriceHistoryResponse{
			DocumentID:     e.DocumentID,
			DocumentNumber: e.DocumentNumber,
			Type:           e.DocumentType,
			Date:           dto.FormatDate(e.Date),
			CompanyID:      e.CompanyID,
			CompanyName:    e.CompanyName,
			Name:           e.ItemName,
			Spec:           e.Spec,
			Quantity:       e.Quantity,
			UnitPrice:      e.UnitPrice,
		})
	}
	return out, nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Spec:        p.Spec,
		Category:    p.Category,
		Unit:        p.Unit,
		UnitPrice:   p.UnitPrice,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
