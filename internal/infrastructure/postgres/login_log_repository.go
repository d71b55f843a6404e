package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.LoginLogRepository = (*LoginLogRepo)(nil)

// LoginLogRepo registro de accesos en login_logs.
type LoginLogRepo struct {
	q Querier
}

// NewLoginLogRepository construye el adaptador.
func NewLoginLogRepository(q Querier) *LoginLogRepo {
	return &LoginLogRepo{q: q}
}

// Create registra un intento de inicio de sesión.
func (r *LoginLogRepo) Create(ctx context.Context, l *entity.LoginLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO login_logs (id, email, ip_address, user_agent, login_time, success)
		VALUES ($1, $2, $3, $4, $5, $6)`, l.ID, l.Email, l.IPAddress, l.UserAgent, l.LoginTime, l.Success)
	if err != nil {
		return fmt.Errorf("insert login log: %w", err)
	}
	return nil
}

// List accesos filtrados, más recientes primero.
func (r *LoginLogRepo) List(ctx context.Context, f repository.LoginLogFilter, limit, offset int) ([]*entity.LoginLog, int, error) {
	var w where
	w.ilike("email", f.Email)
	if f.StartDate != nil {
		w.add("login_time >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		w.add("login_time < ?", *f.EndDate)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM login_logs`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count login logs: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, email, ip_address, user_agent, login_time, success FROM login_logs`+w.sql()+
		` ORDER BY login_time DESC, id DESC LIMIT `+w.next(limit)+` OFFSET `+w.next(offset), w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list login logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.LoginLog
	for rows.Next() {
		var l entity.LoginLog
		if err := rows.Scan(&l.ID, &l.Email, &l.IPAddress, &l.UserAgent, &l.LoginTime, &l.Success); err != nil {
			return nil, 0, fmt.Errorf("scan login log: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}
