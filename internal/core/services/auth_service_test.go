package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/domain"
	"github.com/comitanigiacomo/kiroku-share-engine/internal/core/services"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("Success: Should register a valid user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := services.NewAuthService(mockRepo)
		ctx := context.Background()

		input := services.RegisterInput{
			Email:       "test_success@kiroku.app",
			Password:    "StrongPassword123!",
			DisplayName: "Test Reader",
		}

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := service.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, input.Email, user.Email)
		assert.Equal(t, "Test Reader", user.DisplayName)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.PasswordHash)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Success: Should default display name to the mailbox part", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := services.NewAuthService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Create", ctx, mock.Anything).Return(nil)

		user, err := service.Register(ctx, services.RegisterInput{
			Email:    "giulia@kiroku.app",
			Password: "StrongPassword123!",
		})

		assert.NoError(t, err)
		assert.Equal(t, "giulia", user.DisplayName)
	})

	t.Run("Fail: Should return error for invalid email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := services.NewAuthService(mockRepo)
		ctx := context.Background()

		user, err := service.Register(ctx, services.RegisterInput{Email: "not-an-email", Password: "pass"})

		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Nil(t, user)

		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return error for short password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := services.NewAuthService(mockRepo)
		ctx := context.Background()

		user, err := service.Register(ctx, services.RegisterInput{Email: "valid@email.com", Password: "short"})

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, user)

		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should propagate repository error (Duplicate Email)", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := services.NewAuthService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		user, err := service.Register(ctx, services.RegisterInput{
			Email:    "duplicate@email.com",
			Password: "StrongPassword123!",
		})

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		assert.Nil(t, user)

		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	email := "login@kiroku.app"
	password := "StrongPassword123!"

	newStoredUser := func(t *testing.T) *domain.User {
		t.Helper()
		user, err := domain.NewUser("user-1", email, "Login User")
		assert.NoError(t, err)
		assert.NoError(t, user.SetPassword(password))
		return user
	}

	t.Run("Success: Should log in with the right password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := services.NewAuthService(mockRepo)

		mockRepo.On("GetByEmail", ctx, email).Return(newStoredUser(t), nil)

		user, err := service.Login(ctx, email, password)

		assert.NoError(t, err)
		assert.Equal(t, email, user.Email)
	})

	t.Run("Fail: Wrong password maps to invalid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := services.NewAuthService(mockRepo)

		mockRepo.On("GetByEmail", ctx, email).Return(newStoredUser(t), nil)

		user, err := service.Login(ctx, email, "WrongPassword!")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, user)
	})

	t.Run("Fail: Unknown email maps to invalid credentials, not a lookup error", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := services.NewAuthService(mockRepo)

		mockRepo.On("GetByEmail", ctx, "ghost@kiroku.app").Return(nil, domain.ErrUserNotFound)

		user, err := service.Login(ctx, "ghost@kiroku.app", password)

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, user)
	})
}
