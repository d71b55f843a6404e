package repository

import (
	"context"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// ConsultationRepository puerto de persistencia para Consultation.
// Las lecturas excluyen filas con deleted_at.
type ConsultationRepository interface {
	Create(ctx context.Context, c *entity.Consultation) error
	GetByID(ctx context.Context, id string) (*entity.Consultation, error)
	// List ordena por date DESC, created_at DESC e incluye documentos y contacto de cada fila.
	List(ctx context.Context, f ConsultationFilter, limit, offset int) ([]*entity.Consultation, int, error)
	// Position devuelve el índice (base 0) de id dentro del listado filtrado, o -1.
	Position(ctx context.Context, f ConsultationFilter, id string) (int, error)
	FollowUps(ctx context.Context, userID string, from, to time.Time) ([]*entity.Consultation, error)
	Update(ctx context.Context, c *entity.Consultation) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	DeleteByCompany(ctx context.Context, companyID string) error
}
