package dto

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jhoicas/crm-api/internal/domain"
)

// ValidationError error de validación de una petición con los campos que fallaron.
type ValidationError struct {
	Required []string // campos obligatorios ausentes
	Invalid  []string // campos con formato o valor incorrecto
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Required) > 0 {
		parts = append(parts, "필수 값이 없습니다: "+strings.Join(e.Required, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "입력 값이 올바르지 않습니다: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

// Fields todos los campos con error.
func (e *ValidationError) Fields() []string {
	return append(append([]string{}, e.Required...), e.Invalid...)
}

// NewRequiredError atajo para un único conjunto de campos obligatorios.
func NewRequiredError(fields ...string) *ValidationError {
	return &ValidationError{Required: fields}
}

// asValidationError convierte los errores de ozzo en *ValidationError.
// Los errores internos (reglas mal configuradas) se devuelven tal cual.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return internal
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	ve := &ValidationError{}
	collect(ve, "", errs)
	sort.Strings(ve.Required)
	sort.Strings(ve.Invalid)
	return ve
}

func collect(ve *ValidationError, prefix string, errs validation.Errors) {
	for field, fe := range errs {
		name := field
		if prefix != "" {
			name = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(fe, &nested) {
			collect(ve, name, nested)
			continue
		}
		var inner *ValidationError
		if errors.As(fe, &inner) {
			for _, f := range inner.Required {
				ve.Required = append(ve.Required, name+"."+f)
			}
			for _, f := range inner.Invalid {
				ve.Invalid = append(ve.Invalid, name+"."+f)
			}
			continue
		}
		var ozzoErr validation.Error
		if errors.As(fe, &ozzoErr) && ozzoErr.Code() == validation.ErrRequired.Code() {
			ve.Required = append(ve.Required, name)
			continue
		}
		ve.Invalid = append(ve.Invalid, name)
	}
}

// isDate valida cadenas de fecha aceptadas por ParseDate.
var isDate = validation.By(func(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return nil
	}
	if _, err := ParseDate(s); err != nil {
		return errors.New("fecha inválida")
	}
	return nil
})
