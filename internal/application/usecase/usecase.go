package usecase

import (
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
)

// now reloj del paquete; los tests lo fijan.
var now = time.Now

// parseDateOr interpreta s y devuelve def si está vacía.
func parseDateOr(s string, def time.Time) (time.Time, error) {
	t, err := dto.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return def, nil
	}
	return *t, nil
}

// parseOptionalDate interpreta una fecha opcional; nil o "" devuelven nil.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	return dto.ParseDate(*s)
}

// startOfDay trunca t a medianoche en su zona horaria.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
