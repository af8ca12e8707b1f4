package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/railbooking/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 7
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestAuthService_Register_Success(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, "secret", time.Hour, bcrypt.MinCost)

	ctx := context.Background()
	input := RegisterInput{
		Username:        "alice",
		Name:            "Alice",
		Password:        "Sup3rSecret",
		ConfirmPassword: "Sup3rSecret",
	}

	mockUsers.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, token, err := service.Register(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "Sup3rSecret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Sup3rSecret")))

	mockUsers.AssertExpectations(t)
}

func TestAuthService_Register_ValidationErrors(t *testing.T) {
	service := NewAuthService(&MockUserRepository{}, "secret", time.Hour, bcrypt.MinCost)

	ctx := context.Background()

	testCases := []struct {
		name  string
		input RegisterInput
	}{
		{
			name:  "username too short",
			input: RegisterInput{Username: "al", Name: "Alice", Password: "Sup3rSecret", ConfirmPassword: "Sup3rSecret"},
		},
		{
			name:  "username with spaces",
			input: RegisterInput{Username: "a l i c e", Name: "Alice", Password: "Sup3rSecret", ConfirmPassword: "Sup3rSecret"},
		},
		{
			name:  "missing name",
			input: RegisterInput{Username: "alice", Password: "Sup3rSecret", ConfirmPassword: "Sup3rSecret"},
		},
		{
			name:  "short password",
			input: RegisterInput{Username: "alice", Name: "Alice", Password: "short", ConfirmPassword: "short"},
		},
		{
			name:  "password over bcrypt limit",
			input: RegisterInput{Username: "alice", Name: "Alice", Password: strings.Repeat("x", 73), ConfirmPassword: strings.Repeat("x", 73)},
		},
		{
			name:  "password mismatch",
			input: RegisterInput{Username: "alice", Name: "Alice", Password: "Sup3rSecret", ConfirmPassword: "Different1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, token, err := service.Register(ctx, tc.input)
			assert.Nil(t, user)
			assert.Empty(t, token)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, "secret", time.Hour, bcrypt.MinCost)

	ctx := context.Background()
	input := RegisterInput{Username: "alice", Name: "Alice", Password: "Sup3rSecret", ConfirmPassword: "Sup3rSecret"}

	mockUsers.On("Create", ctx, mock.Anything).Return(domain.ErrUsernameTaken).Once()

	user, token, err := service.Register(ctx, input)

	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestAuthService_Login_Success(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, "secret", time.Hour, bcrypt.MinCost)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcrypt.MinCost)
	stored := &domain.User{ID: 7, Username: "alice", Name: "Alice", PasswordHash: string(hash)}

	mockUsers.On("GetByUsername", ctx, "alice").Return(stored, nil).Once()

	user, token, err := service.Login(ctx, "alice", "Sup3rSecret")

	assert.NoError(t, err)
	assert.Equal(t, stored, user)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, "secret", time.Hour, bcrypt.MinCost)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcrypt.MinCost)
	stored := &domain.User{ID: 7, Username: "alice", PasswordHash: string(hash)}

	mockUsers.On("GetByUsername", ctx, "alice").Return(stored, nil).Once()

	user, token, err := service.Login(ctx, "alice", "wrong-password")

	assert.Nil(t, user)
	assert.Empty(t, token)
	assert.ErrorIs(t, err, domain.ErrInvalidLogin)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, "secret", time.Hour, bcrypt.MinCost)

	ctx := context.Background()
	mockUsers.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrUserNotFound).Once()

	user, token, err := service.Login(ctx, "ghost", "whatever")

	assert.Nil(t, user)
	assert.Empty(t, token)
	// Unknown user and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, domain.ErrInvalidLogin)
}

func TestAuthService_Authenticate_RoundTrip(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, "secret", time.Hour, bcrypt.MinCost)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcrypt.MinCost)
	stored := &domain.User{ID: 7, Username: "alice", PasswordHash: string(hash)}

	mockUsers.On("GetByUsername", ctx, "alice").Return(stored, nil).Once()
	mockUsers.On("GetByID", ctx, int64(7)).Return(stored, nil).Once()

	_, token, err := service.Login(ctx, "alice", "Sup3rSecret")
	assert.NoError(t, err)

	user, err := service.Authenticate(ctx, token)

	assert.NoError(t, err)
	assert.Equal(t, stored, user)
	mockUsers.AssertExpectations(t)
}

func TestAuthService_Authenticate_BadToken(t *testing.T) {
	service := NewAuthService(&MockUserRepository{}, "secret", time.Hour, bcrypt.MinCost)

	user, err := service.Authenticate(context.Background(), "not-a-jwt")

	assert.Nil(t, user)
	assert.Error(t, err)
}

func TestAuthService_Authenticate_WrongSecret(t *testing.T) {
	mockUsers := &MockUserRepository{}
	issuer := NewAuthService(mockUsers, "secret-a", time.Hour, bcrypt.MinCost)
	verifier := NewAuthService(mockUsers, "secret-b", time.Hour, bcrypt.MinCost)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcrypt.MinCost)
	stored := &domain.User{ID: 7, Username: "alice", PasswordHash: string(hash)}
	mockUsers.On("GetByUsername", ctx, "alice").Return(stored, nil).Once()

	_, token, err := issuer.Login(ctx, "alice", "Sup3rSecret")
	assert.NoError(t, err)

	user, err := verifier.Authenticate(ctx, token)

	assert.Nil(t, user)
	assert.Error(t, err)
}
