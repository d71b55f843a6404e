package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, f ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	// PriceHistory extrae precios unitarios de las líneas de documentos completados.
	PriceHistory(ctx context.Context, f PriceHistoryFilter, limit int) ([]*entity.PriceHistoryEntry, error)
}
