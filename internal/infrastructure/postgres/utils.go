package postgres

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// where acumula condiciones AND con placeholders posicionales ($1, $2, ...).
type where struct {
	conds []string
	args  []any
}

// add agrega una condición; cada "?" de cond se reemplaza por el siguiente $n.
func (w *where) add(cond string, args ...any) {
	var b strings.Builder
	i := 0
	for _, r := range cond {
		if r == '?' && i < len(args) {
			w.args = append(w.args, args[i])
			b.WriteString("$" + strconv.Itoa(len(w.args)))
			i++
			continue
		}
		b.WriteRune(r)
	}
	w.conds = append(w.conds, b.String())
}

// likeEscaper escapa los comodines de LIKE; el texto del usuario se busca literal.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeAny cláusula "col ILIKE ?" con escape explícito.
func likeAny(col string) string {
	return col + ` ILIKE ? ESCAPE '\'`
}

// likePattern patrón que encuentra v en cualquier posición.
func likePattern(v string) string {
	return "%" + likeEscaper.Replace(v) + "%"
}

// ilike agrega "col ILIKE %v%" si v no está vacío.
func (w *where) ilike(col, v string) {
	if v != "" {
		w.add(likeAny(col), likePattern(v))
	}
}

// eq agrega "col = v" si v no está vacío.
func (w *where) eq(col, v string) {
	if v != "" {
		w.add(col+" = ?", v)
	}
}

// sql devuelve la cláusula WHERE (vacía si no hay condiciones).
func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// next devuelve el placeholder del siguiente argumento (para LIMIT/OFFSET).
func (w *where) next(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

// nullString convierte "" en NULL.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
