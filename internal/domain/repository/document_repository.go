package repository

import (
	"context"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// TypeStatusCount conteo agregado por tipo y estado de documento.
type TypeStatusCount struct {
	Type   string
	Status string
	Count  int
}

// StatusMatrix arma tipo -> estado -> conteo. Los tres tipos y los cuatro estados
// conocidos aparecen siempre, en cero si no hay documentos.
func StatusMatrix(counts []TypeStatusCount) map[string]map[string]int {
	m := map[string]map[string]int{}
	for _, t := range []string{entity.DocumentTypeEstimate, entity.DocumentTypeOrder, entity.DocumentTypeRequestQuote} {
		m[t] = map[string]int{
			entity.DocumentStatusPending:   0,
			entity.DocumentStatusCompleted: 0,
			entity.DocumentStatusCanceled:  0,
			entity.DocumentStatusExpired:   0,
		}
	}
	for _, c := range counts {
		if _, ok := m[c.Type]; !ok {
			m[c.Type] = map[string]int{}
		}
		m[c.Type][c.Status] += c.Count
	}
	return m
}

// DocumentRepository puerto de persistencia para Document.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	List(ctx context.Context, f DocumentFilter, limit, offset int) ([]*entity.Document, int, error)
	ListByConsultation(ctx context.Context, consultationID string) ([]*entity.Document, error)
	Update(ctx context.Context, d *entity.Document) error
	UpdateStatus(ctx context.Context, id, status string, reason *entity.StatusReason, at time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteByConsultation(ctx context.Context, consultationID string) error
	DeleteByCompany(ctx context.Context, companyID string) error
	// MaxNumberSequence mayor sufijo numérico en uso con el prefijo dado (0 si no hay ninguno).
	MaxNumberSequence(ctx context.Context, prefix string) (int, error)
	Summary(ctx context.Context, userID string) ([]TypeStatusCount, error)
}
