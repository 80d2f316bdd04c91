package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campushub/internal/auth"
	apperrors "campushub/internal/errors"
	"campushub/internal/model"
)

func TestAuthService_Login(t *testing.T) {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
		storeFailure  bool
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice", PasswordHash: hash}, nil)
			},
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "password124",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice", PasswordHash: hash}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "store unavailable",
			username: "alice",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, errors.New("dial tcp: connection refused"))
			},
			storeFailure: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			codec := auth.NewTokenCodec("test-secret")
			svc := NewAuthService(mockRepo, hasher, codec, nil, 30*time.Minute)
			session, err := svc.Login(context.Background(), tt.username, tt.password)

			switch {
			case tt.storeFailure:
				require.Error(t, err)
				assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
				assert.Equal(t, 500, apperrors.MapErrorToHTTP(err).StatusCode)
				assert.Nil(t, session)
			case tt.expectedError != nil:
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, session)
			default:
				require.NoError(t, err)
				assert.NotEmpty(t, session.AccessToken)
				assert.Equal(t, tt.username, session.User.Username)
				assert.WithinDuration(t, time.Now().Add(30*time.Minute), session.ExpiresAt, 5*time.Second)

				claims, err := codec.Decode(session.AccessToken)
				require.NoError(t, err)
				assert.Equal(t, tt.username, claims.Subject)
				assert.True(t, claims.ExpiresAt.Time.Equal(session.ExpiresAt), "expires_at must match the exp claim")
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	revocations := new(MockRevocationList)
	revocations.On("Revoke", mock.Anything, "jti-1", mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 9*time.Minute && ttl <= 10*time.Minute
	})).Return(nil)

	svc := NewAuthService(new(MockUserRepository), auth.NewPasswordHasher(bcrypt.MinCost), auth.NewTokenCodec("s"), revocations, time.Minute)
	principal := &auth.Principal{
		User:      &model.User{ID: 1, Username: "alice"},
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	require.NoError(t, svc.Logout(context.Background(), principal))
	revocations.AssertExpectations(t)
}

func TestAuthService_LogoutWithoutToken(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), auth.NewPasswordHasher(bcrypt.MinCost), auth.NewTokenCodec("s"), nil, time.Minute)
	assert.Equal(t, apperrors.ErrUnauthenticated, svc.Logout(context.Background(), nil))
}
