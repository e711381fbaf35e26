package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) FindByLogin(ctx context.Context, login string) (User, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

const testPassword = "P@ssw0rd123!"

func newTestService(repo Repository) *Service {
	return NewService(repo, NewPasswordValidator(), slog.Default())
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_Register(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.Login == "alice" &&
			u.ID != "" &&
			u.Password != testPassword &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(testPassword)) == nil
	})).Return(nil)

	id, err := svc.Register(context.Background(), "alice", testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	repo.AssertExpectations(t)
}

func TestService_Register_InvalidInput(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "ab", testPassword)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), "alice", "short")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_LoginTaken(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(ErrLoginTaken)

	_, err := svc.Register(context.Background(), "alice", testPassword)
	assert.ErrorIs(t, err, ErrLoginTaken)
}

func TestService_Register_RepositoryError(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := svc.Register(context.Background(), "alice", testPassword)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create user")
	assert.NotErrorIs(t, err, ErrLoginTaken)
}

func TestService_Authenticate(t *testing.T) {
	stored := User{ID: "u-1", Login: "alice", Password: hashed(t, testPassword)}

	tests := []struct {
		name     string
		login    string
		password string
		setup    func(r *MockRepository)
		wantErr  error
	}{
		{
			name:     "success",
			login:    "alice",
			password: testPassword,
			setup: func(r *MockRepository) {
				r.On("FindByLogin", mock.Anything, "alice").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			login:    "alice",
			password: "Wr0ng!pass",
			setup: func(r *MockRepository) {
				r.On("FindByLogin", mock.Anything, "alice").Return(stored, nil)
			},
			wantErr: ErrInvalidAuth,
		},
		{
			name:     "unknown login",
			login:    "bob",
			password: testPassword,
			setup: func(r *MockRepository) {
				r.On("FindByLogin", mock.Anything, "bob").Return(User{}, ErrNotFound)
			},
			wantErr: ErrInvalidAuth,
		},
		{
			name:     "malformed login",
			login:    "a b",
			password: testPassword,
			setup:    func(r *MockRepository) {},
			wantErr:  ErrInvalidAuth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setup(repo)
			svc := newTestService(repo)

			u, err := svc.Authenticate(context.Background(), tt.login, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u-1", u.ID)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Get(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("FindByID", mock.Anything, "u-1").Return(User{ID: "u-1", Login: "alice"}, nil)
	repo.On("FindByID", mock.Anything, "missing").Return(User{}, errors.New("no rows"))

	u, err := svc.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Login)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
