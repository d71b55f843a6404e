package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
)

// pageQuery lee page y limit; la normalización la hace cada caso de uso.
func pageQuery(c *fiber.Ctx) dto.PageQuery {
	return dto.PageQuery{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 0)}
}

// queryDate fecha opcional; ok=false si el valor no es una fecha.
func queryDate(c *fiber.Ctx, key string) (*time.Time, bool) {
	t, err := dto.ParseDate(c.Query(key))
	if err != nil {
		return nil, false
	}
	return t, true
}

// queryBool booleano opcional; ausente o inválido no filtra.
func queryBool(c *fiber.Ctx, key string) *bool {
	s := c.Query(key)
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}

// queryIDs acepta el parámetro repetido (?companyIds=a&companyIds=b) o separado por comas.
func queryIDs(c *fiber.Ctx, key string) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, id := range strings.Split(string(raw), ",") {
			if id = strings.TrimSpace(id); id != "" {
				out = append(out, id)
			}
		}
	}
	return out
}

// invalidIDs nombre del primer parámetro de consulta (simple, repetido o separado por comas)
// que trae un id que no es UUID; "" si todos son válidos.
func invalidIDs(c *fiber.Ctx, keys ...string) string {
	for _, key := range keys {
		for _, id := range queryIDs(c, key) {
			if uuid.Validate(id) != nil {
				return key
			}
		}
	}
	return ""
}

// dateRange lee startDate y endDate; devuelve el nombre del parámetro inválido.
func dateRange(c *fiber.Ctx) (from, to *time.Time, bad string) {
	from, ok := queryDate(c, "startDate")
	if !ok {
		return nil, nil, "startDate"
	}
	to, ok = queryDate(c, "endDate")
	if !ok {
		return nil, nil, "endDate"
	}
	return from, to, ""
}
