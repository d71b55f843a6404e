package usecase

import (
	"context"
	"testing"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository mock de repository.UserRepository; solo lectura y actualización.
type MockUserRepository struct {
	repository.UserRepository
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func boolPtr(b bool) *bool { return &b }

func TestUserUpdate_NoAdminNoCambiaRolNiEstado(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUseCase(repo)

	_, err := uc.Update(context.Background(), ownerID, entity.RoleUser, ownerID, dto.UpdateUserRequest{Role: strPtr(entity.RoleAdmin)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Update(context.Background(), ownerID, entity.RoleManager, ownerID, dto.UpdateUserRequest{IsActive: boolPtr(false)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserUpdate_NoAdminNoEditaAOtro(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUseCase(repo)

	_, err := uc.Update(context.Background(), ownerID, entity.RoleUser, actorID, dto.UpdateUserRequest{Name: strPtr("홍길동")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserUpdate_PropioUsuarioCambiaPerfil(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUseCase(repo)
	repo.On("GetByID", mock.Anything, ownerID).
		Return(&entity.User{ID: ownerID, Name: "김영업", Role: entity.RoleUser, IsActive: true}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Name == "김부장" && u.Level == "부장" && u.Role == entity.RoleUser && u.IsActive
	})).Return(nil)

	out, err := uc.Update(context.Background(), ownerID, entity.RoleUser, ownerID, dto.UpdateUserRequest{
		Name:  strPtr("김부장"),
		Level: strPtr("부장"),
	})
	require.NoError(t, err)
	assert.Equal(t, "김부장", out.Name)
	repo.AssertExpectations(t)
}

func TestUserUpdate_AdminCambiaRolYEstadoDeOtro(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUseCase(repo)
	repo.On("GetByID", mock.Anything, ownerID).
		Return(&entity.User{ID: ownerID, Role: entity.RoleUser, IsActive: true}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleManager && !u.IsActive
	})).Return(nil)

	out, err := uc.Update(context.Background(), actorID, entity.RoleAdmin, ownerID, dto.UpdateUserRequest{
		Role:     strPtr(entity.RoleManager),
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, out.Role)
	repo.AssertExpectations(t)
}

func TestUserUpdate_RolDesconocido(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUseCase(repo)

	_, err := uc.Update(context.Background(), actorID, entity.RoleAdmin, ownerID, dto.UpdateUserRequest{Role: strPtr("root")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUpdate_NoExiste(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewUserUseCase(repo)
	repo.On("GetByID", mock.Anything, ownerID).Return(nil, nil)

	_, err := uc.Update(context.Background(), actorID, entity.RoleAdmin, ownerID, dto.UpdateUserRequest{Name: strPtr("홍길동")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
