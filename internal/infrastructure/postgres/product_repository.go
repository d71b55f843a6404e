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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, spec, category, unit, unit_price, description, created_at, updated_at`

// ProductRepo implementación de ProductRepository.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Spec, &p.Category, &p.Unit, &p.UnitPrice, &p.Description,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Spec, p.Category, p.Unit, p.UnitPrice, p.Description, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List productos filtrados por nombre, especificación y categoría.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	var w where
	w.ilike("name", f.Name)
	w.ilike("spec", f.Spec)
	w.ilike("category", f.Category)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products`+w.sql()+
		` ORDER BY created_at DESC, id LIMIT `+w.next(limit)+` OFFSET `+w.next(offset), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Update actualiza un producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, spec = $3, category = $4, unit = $5, unit_price = $6,
			description = $7, updated_at = $8
		WHERE id = $1`,
		p.ID, p.Name, p.Spec, p.Category, p.Unit, p.UnitPrice, p.Description, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// PriceHistory recorre content.items de los documentos completados y devuelve los precios
// de las líneas que coinciden, más recientes primero.
func (r *ProductRepo) PriceHistory(ctx context.Context, f repository.PriceHistoryFilter, limit int) ([]*entity.PriceHistoryEntry, error) {
	var w where
	w.add("d.status = ?", entity.DocumentStatusCompleted)
	w.ilike("item->>'name'", f.Name)
	w.ilike("item->>'spec'", f.Spec)
	w.eq("d.type", f.Type)
	query := `
		SELECT d.id, d.document_number, d.type, d.date, d.company_id, COALESCE(co.name, ''),
			COALESCE(item->>'name', ''), COALESCE(item->>'spec', ''), COALESCE(item->>'quantity', ''),
			COALESCE(NULLIF(item->>'unit_price', '')::numeric, 0)
		FROM documents d
		CROSS JOIN LATERAL jsonb_array_elements(
			CASE WHEN jsonb_typeof(d.content->'items') = 'array' THEN d.content->'items' ELSE '[]'::jsonb END
		) AS item
		LEFT JOIN companies co ON co.id = d.company_id` + w.sql() +
		` ORDER BY d.date DESC, d.created_at DESC, d.id DESC LIMIT ` + w.next(limit)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("price history: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceHistoryEntry
	for rows.Next() {
		var e entity.PriceHistoryEntry
		if err := rows.Scan(&e.DocumentID, &e.DocumentNumber, &e.DocumentType, &e.Date, &e.CompanyID, &e.CompanyName,
			&e.ItemName, &e.Spec, &e.Quantity, &e.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
