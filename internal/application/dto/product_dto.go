package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Spec        string          `json:"spec"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Description string          `json:"description"`
}

// Validate reglas de CreateProductRequest.
func (r CreateProductRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.UnitPrice, validation.By(nonNegative)),
	))
}

// UpdateProductRequest actualización parcial.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Spec        *string          `json:"spec"`
	Category    *string          `json:"category"`
	Unit        *string          `json:"unit"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Description *string          `json:"description"`
}

// Validate reglas de UpdateProductRequest.
func (r UpdateProductRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.UnitPrice, validation.By(nonNegative)),
	))
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Spec        string          `json:"spec"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PriceHistoryResponse precio observado en un documento completado.
type PriceHistoryResponse struct {
	DocumentID     string          `json:"document_id"`
	DocumentNumber string          `json:"document_number"`
	Type           string          `json:"type"`
	Date           string          `json:"date"`
	CompanyID      string          `json:"company_id"`
	CompanyName    string          `json:"company_name"`
	Name           string          `json:"name"`
	Spec           string          `json:"spec"`
	Quantity       string          `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

func nonNegative(value interface{}) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	default:
		return nil
	}
	if d.IsNegative() {
		return validation.NewError("validation_min", "no puede ser negativo")
	}
	return nil
}
