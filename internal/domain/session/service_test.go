package session

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockRepository) Validate(ctx context.Context, tokenHash string) (string, error) {
	args := m.Called(ctx, tokenHash)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, time.Hour, slog.Default())

	fixed := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	var savedHash string
	repo.On("Create", mock.Anything, "u-1", mock.AnythingOfType("string"), fixed.Add(time.Hour)).
		Run(func(args mock.Arguments) { savedHash = args.String(2) }).
		Return(nil)

	token, err := svc.Create(context.Background(), "u-1")
	require.NoError(t, err)

	raw, err := base64.URLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	assert.Equal(t, HashToken(token), savedHash)
	assert.NotEqual(t, token, savedHash)
	assert.Len(t, savedHash, 64)

	repo.AssertExpectations(t)
}

func TestService_Create_DefaultTTL(t *testing.T) {
	svc := NewService(new(MockRepository), 0, slog.Default())
	assert.Equal(t, DefaultTTL, svc.ttl)
}

func TestService_Create_RepositoryError(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, time.Hour, slog.Default())

	repo.On("Create", mock.Anything, "u-1", mock.Anything, mock.Anything).Return(errors.New("database error"))

	token, err := svc.Create(context.Background(), "u-1")
	require.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), "save session")
}

func TestService_Create_UniqueTokens(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, time.Hour, slog.Default())

	repo.On("Create", mock.Anything, "u-1", mock.Anything, mock.Anything).Return(nil)

	a, err := svc.Create(context.Background(), "u-1")
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), "u-1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestService_Validate(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		setup   func(r *MockRepository)
		want    string
		wantErr bool
	}{
		{
			name:  "valid token",
			token: "token-1",
			setup: func(r *MockRepository) {
				r.On("Validate", mock.Anything, HashToken("token-1")).Return("u-1", nil)
			},
			want: "u-1",
		},
		{
			name:  "expired or unknown token",
			token: "token-2",
			setup: func(r *MockRepository) {
				r.On("Validate", mock.Anything, HashToken("token-2")).Return("", errors.New("no rows"))
			},
			wantErr: true,
		},
		{
			name:    "empty token",
			token:   "",
			setup:   func(r *MockRepository) {},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setup(repo)
			svc := NewService(repo, time.Hour, slog.Default())

			got, err := svc.Validate(context.Background(), tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSession)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Revoke(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, time.Hour, slog.Default())

	repo.On("Delete", mock.Anything, HashToken("token-1")).Return(nil)
	repo.On("Delete", mock.Anything, HashToken("token-2")).Return(errors.New("database error"))

	require.NoError(t, svc.Revoke(context.Background(), "token-1"))
	require.NoError(t, svc.Revoke(context.Background(), ""))
	assert.Error(t, svc.Revoke(context.Background(), "token-2"))

	repo.AssertNumberOfCalls(t, "Delete", 2)
}
