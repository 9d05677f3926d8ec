package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/toshitha/habithub/internal/core/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func newAuthService(repo domain.UserRepository) *AuthService {
	tokens := NewTokenService("test-secret", "habithub-test", time.Hour, repo)
	return NewAuthService(repo, tokens)
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success: Should register a valid user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := service.Register(ctx, RegisterInput{
			Email:    "ada@example.com",
			Password: "correct horse",
		})

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.PasswordHash)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should return error for invalid email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)

		user, err := service.Register(ctx, RegisterInput{Email: "not-an-email", Password: "correct horse"})

		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return error for short password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)

		user, err := service.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "short"})

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should pass through the duplicate email error", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(domain.ErrEmailAlreadyExists)

		user, err := service.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "correct horse"})

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		assert.Nil(t, user)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	registered := func(t *testing.T) *domain.User {
		t.Helper()
		user, err := domain.NewUser("user-1", "ada@example.com", "")
		assert.NoError(t, err)
		assert.NoError(t, user.SetPassword("correct horse"))
		return user
	}

	t.Run("Success: Should return the user and a token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)
		stored := registered(t)

		mockRepo.On("GetByEmail", ctx, "ada@example.com").Return(stored, nil)

		user, token, err := service.Login(ctx, "ada@example.com", "correct horse")

		assert.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("Fail: Wrong password maps to invalid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)

		mockRepo.On("GetByEmail", ctx, "ada@example.com").Return(registered(t), nil)

		_, _, err := service.Login(ctx, "ada@example.com", "wrong password")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Fail: Unknown user maps to invalid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)

		mockRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrUserNotFound)

		_, _, err := service.Login(ctx, "ghost@example.com", "whatever123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
