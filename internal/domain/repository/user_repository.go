package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, f UserFilter, limit, offset int) ([]*entity.User, int, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
}

// LoginLogRepository registro de intentos de inicio de sesión.
type LoginLogRepository interface {
	Create(ctx context.Context, l *entity.LoginLog) error
	List(ctx context.Context, f LoginLogFilter, limit, offset int) ([]*entity.LoginLog, int, error)
}
