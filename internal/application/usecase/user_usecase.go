package usecase

import (
	"context"

	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List usuarios filtrados por nombre, rol y estado.
func (uc *UserUseCase) List(ctx context.Context, f repository.UserFilter, page dto.PageQuery) (*dto.ListResponse[dto.UserResponse], error) {
	page.Normalize(dto.DefaultLimit)
	list, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	resp := dto.NewListResponse(items, total, page)
	return &resp, nil
}

// Update actualización parcial. Un admin cambia cualquier campo; el propio usuario solo
// nombre, cargo y puesto.
func (uc *UserUseCase) Update(ctx context.Context, actorID, actorRole, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	isAdmin := actorRole == entity.RoleAdmin
	if !isAdmin && actorID != id {
		return nil, domain.ErrForbidden
	}
	if !isAdmin && (in.Role != nil || in.IsActive != nil) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	setString(&user.Name, in.Name)
	setString(&user.Level, in.Level)
	setString(&user.Position, in.Position)
	setString(&user.Role, in.Role)
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.UpdatedAt = now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// LoginLogUseCase consulta del registro de accesos.
type LoginLogUseCase struct {
	repo repository.LoginLogRepository
}

// NewLoginLogUseCase construye el caso de uso.
func NewLoginLogUseCase(repo repository.LoginLogRepository) *LoginLogUseCase {
	return &LoginLogUseCase{repo: repo}
}

// List accesos más recientes primero.
func (uc *LoginLogUseCase) List(ctx context.Context, f repository.LoginLogFilter, page dto.PageQuery) (*dto.ListResponse[dto.LoginLogResponse], error) {
	page.Normalize(dto.DefaultLimit)
	list, total, err := uc.repo.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.LoginLogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.LoginLogResponse{
			ID:        l.ID,
			Email:     l.Email,
			IPAddress: l.IPAddress,
			UserAgent: l.UserAgent,
			LoginTime: l.LoginTime,
			Success:   l.Success,
		})
	}
	resp := dto.NewListResponse(items, total, page)
	return &resp, nil
}
