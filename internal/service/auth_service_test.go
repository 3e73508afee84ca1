package service

import (
	"context"
	"testing"
	"time"

	"booktime/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegisterCreatesUser(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "reader").Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByEmail", mock.Anything, "reader@example.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	svc := NewAuthService(repo, "secret", time.Hour)
	user, err := svc.Register(context.Background(), "reader", "reader@example.com", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, "reader", user.Username)
	assert.NotEqual(t, "hunter22", user.Password, "password must be stored hashed")
	repo.AssertExpectations(t)
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "reader").Return(&models.User{Username: "reader"}, nil)

	svc := NewAuthService(repo, "secret", time.Hour)
	_, err := svc.Register(context.Background(), "reader", "x@example.com", "hunter22")

	assert.ErrorIs(t, err, ErrNameInUse)
}

func TestLoginIssuesValidatableToken(t *testing.T) {
	user := &models.User{ID: "uuid-1", Username: "reader", Password: hashFor(t, "hunter22")}
	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "reader").Return(user, nil)

	svc := NewAuthService(repo, "secret", time.Hour)
	token, got, err := svc.Login(context.Background(), "reader", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, "uuid-1", got.ID)

	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uuid-1", userID)
}

func TestLoginWrongPassword(t *testing.T) {
	user := &models.User{ID: "uuid-1", Username: "reader", Password: hashFor(t, "hunter22")}
	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "reader").Return(user, nil)

	svc := NewAuthService(repo, "secret", time.Hour)
	_, _, err := svc.Login(context.Background(), "reader", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	svc := NewAuthService(repo, "secret", time.Hour)
	_, _, err := svc.Login(context.Background(), "ghost", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbageAndForeignSignature(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	user := &models.User{ID: "uuid-1", Username: "reader", Password: hashFor(t, "pw")}
	repo.On("FindByUsername", mock.Anything, "reader").Return(user, nil)
	otherSvc := NewAuthService(repo, "other-secret", time.Hour)
	token, _, err := otherSvc.Login(context.Background(), "reader", "pw")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	user := &models.User{ID: "uuid-1", Username: "reader", Password: hashFor(t, "pw")}
	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "reader").Return(user, nil)

	svc := NewAuthService(repo, "secret", -time.Minute)
	token, _, err := svc.Login(context.Background(), "reader", "pw")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
