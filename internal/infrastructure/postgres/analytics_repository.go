package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboard, estadísticas de empresa y reportes.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountConsultations consultas no borradas con date en [from, to).
func (r *AnalyticsRepo) CountConsultations(ctx context.Context, userID string, from, to time.Time) (int, error) {
	var w where
	w.add("deleted_at IS NULL")
	w.add("date >= ?", from)
	w.add("date < ?", to)
	w.eq("user_id", userID)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM consultations`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountConsultations: %w", err)
	}
	return n, nil
}

// DocumentStatusCounts documentos por tipo y estado con date en [from, to).
func (r *AnalyticsRepo) DocumentStatusCounts(ctx context.Context, userID string, from, to time.Time) ([]repository.TypeStatusCount, error) {
	var w where
	w.add("date >= ?", from)
	w.add("date < ?", to)
	w.eq("user_id", userID)
	rows, err := r.q.Query(ctx, `SELECT type, status, COUNT(*) FROM documents`+w.sql()+` GROUP BY type, status`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.DocumentStatusCounts: %w", err)
	}
	defer rows.Close()
	var out []repository.TypeStatusCount
	for rows.Next() {
		var c repository.TypeStatusCount
		if err := rows.Scan(&c.Type, &c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("analytics.DocumentStatusCounts scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CompletedTotal suma de total_amount de documentos completados del tipo.
// Usa COALESCE para devolver cero si no hay documentos en el período.
func (r *AnalyticsRepo) CompletedTotal(ctx context.Context, userID, docType string, from, to time.Time) (decimal.Decimal, error) {
	var w where
	w.add("type = ?", docType)
	w.add("status = ?", entity.DocumentStatusCompleted)
	w.add("date >= ?", from)
	w.add("date < ?", to)
	w.eq("user_id", userID)
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM documents`+w.sql(), w.args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.CompletedTotal: %w", err)
	}
	return total, nil
}

// CompanyDocuments todos los documentos de la empresa en orden cronológico.
func (r *AnalyticsRepo) CompanyDocuments(ctx context.Context, companyID string) ([]*entity.Document, error) {
	docs, err := NewDocumentRepository(r.q).query(ctx,
		documentSelect+` WHERE d.company_id = $1 ORDER BY d.date ASC, d.created_at ASC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("analytics.CompanyDocuments: %w", err)
	}
	return docs, nil
}

// CompanyActivity consultas y documentos por usuario sobre la empresa.
func (r *AnalyticsRepo) CompanyActivity(ctx context.Context, companyID string) ([]repository.UserActivity, error) {
	const query = `
	SELECT u.id, u.name, COALESCE(c.cnt, 0), COALESCE(d.cnt, 0)
	FROM users u
	LEFT JOIN (
	    SELECT user_id, COUNT(*) AS cnt FROM consultations
	    WHERE company_id = $1 AND deleted_at IS NULL GROUP BY user_id
	) c ON c.user_id = u.id
	LEFT JOIN (
	    SELECT user_id, COUNT(*) AS cnt FROM documents
	    WHERE company_id = $1 GROUP BY user_id
	) d ON d.user_id = u.id
	WHERE c.cnt IS NOT NULL OR d.cnt IS NOT NULL
	ORDER BY COALESCE(c.cnt, 0) + COALESCE(d.cnt, 0) DESC, u.name ASC`

	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("analytics.CompanyActivity: %w", err)
	}
	defer rows.Close()
	var out []repository.UserActivity
	for rows.Next() {
		var a repository.UserActivity
		if err := rows.Scan(&a.UserID, &a.UserName, &a.ConsultationCount, &a.DocumentCount); err != nil {
			return nil, fmt.Errorf("analytics.CompanyActivity scan: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ReportDocuments documentos del usuario y tipo con date en el rango.
func (r *AnalyticsRepo) ReportDocuments(ctx context.Context, f repository.ReportFilter) ([]*entity.Document, error) {
	var w where
	w.eq("d.user_id", f.UserID)
	w.eq("d.type", f.Type)
	if f.StartDate != nil {
		w.add("d.date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		w.add("d.date <= ?", *f.EndDate)
	}
	docs, err := NewDocumentRepository(r.q).query(ctx, documentSelect+w.sql()+` ORDER BY d.date ASC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.ReportDocuments: %w", err)
	}
	return docs, nil
}

// CompanyPerformance agrega presupuestos y órdenes por empresa.
// Los documentos anteriores al corte heredado cuentan como completados.
func (r *AnalyticsRepo) CompanyPerformance(ctx context.Context, f repository.ReportFilter, limit, offset int) ([]repository.CompanyPerformance, int, error) {
	var w where
	cutoff := w.next(entity.LegacyCompletedCutoff)
	w.eq("d.user_id", f.UserID)
	if f.StartDate != nil {
		w.add("d.date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		w.add("d.date <= ?", *f.EndDate)
	}
	w.ilike("co.name", f.Search)
	done := `(d.status = 'completed' OR d.created_at < ` + cutoff + `)`

	having := ""
	switch f.Type {
	case entity.DocumentTypeEstimate:
		having = ` HAVING COUNT(*) FILTER (WHERE d.type = 'estimate') > 0`
	case entity.DocumentTypeOrder:
		having = ` HAVING COUNT(*) FILTER (WHERE d.type = 'order') > 0`
	}

	base := `
	SELECT
	    co.id, co.name,
	    COUNT(*) FILTER (WHERE d.type = 'estimate')                                   AS estimate_count,
	    COUNT(*) FILTER (WHERE d.type = 'estimate' AND d.status = 'canceled')         AS canceled_estimates,
	    COUNT(*) FILTER (WHERE d.type = 'estimate' AND ` + done + `)                  AS completed_estimates,
	    COALESCE(SUM(d.total_amount) FILTER (WHERE d.type = 'estimate' AND ` + done + `), 0) AS total_sales,
	    COUNT(*) FILTER (WHERE d.type = 'order')                                      AS order_count,
	    COALESCE(SUM(d.total_amount) FILTER (WHERE d.type = 'order' AND ` + done + `), 0)    AS total_purchases,
	    MAX(d.date) FILTER (WHERE d.type = 'estimate')                                AS last_estimate,
	    MAX(d.date) FILTER (WHERE d.type = 'order')                                   AS last_order
	FROM documents d
	JOIN companies co ON co.id = d.company_id` + w.sql() + `
	GROUP BY co.id, co.name` + having

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM (`+base+`) t`, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("analytics.CompanyPerformance count: %w", err)
	}
	query := base + ` ORDER BY total_sales DESC, co.name ASC LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("analytics.CompanyPerformance: %w", err)
	}
	defer rows.Close()
	var out []repository.CompanyPerformance
	for rows.Next() {
		var p repository.CompanyPerformance
		if err := rows.Scan(&p.CompanyID, &p.CompanyName, &p.EstimateCount, &p.CanceledEstimates, &p.CompletedEstimate,
			&p.TotalSales, &p.OrderCount, &p.TotalPurchases, &p.LastEstimateDate, &p.LastOrderDate); err != nil {
			return nil, 0, fmt.Errorf("analytics.CompanyPerformance scan: %w", err)
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// IndustrySales ventas completadas (presupuestos) de las empresas de la industria y cuántas empresas la integran.
func (r *AnalyticsRepo) IndustrySales(ctx context.Context, industry string, from, to *time.Time) (decimal.Decimal, int, error) {
	var w where
	cutoff := w.next(entity.LegacyCompletedCutoff)
	join := `d.company_id = co.id AND d.type = 'estimate' AND (d.status = 'completed' OR d.created_at < ` + cutoff + `)`
	if from != nil {
		join += ` AND d.date >= ` + w.next(*from)
	}
	if to != nil {
		join += ` AND d.date <= ` + w.next(*to)
	}
	w.add("co.industry @> ARRAY[?]::text[]", industry)
	query := `
	SELECT COALESCE(SUM(d.total_amount), 0), COUNT(DISTINCT co.id)
	FROM companies co
	LEFT JOIN documents d ON ` + join + w.sql()
	var total decimal.Decimal
	var companies int
	if err := r.q.QueryRow(ctx, query, w.args...).Scan(&total, &companies); err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.IndustrySales: %w", err)
	}
	return total, companies, nil
}
