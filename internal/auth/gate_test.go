package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "campushub/internal/errors"
	"campushub/internal/model"
)

// MockIdentityFinder is a mock implementation of IdentityFinder.
type MockIdentityFinder struct {
	mock.Mock
}

func (m *MockIdentityFinder) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockRevocationList is a mock implementation of RevocationList.
type MockRevocationList struct {
	mock.Mock
}

func (m *MockRevocationList) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockRevocationList) IsRevoked(ctx context.Context, tokenID string) bool {
	args := m.Called(ctx, tokenID)
	return args.Bool(0)
}

func TestGate_Authenticate(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	valid, err := codec.Issue("alice", time.Minute)
	require.NoError(t, err)
	ghost, err := codec.Issue("ghost", time.Minute)
	require.NoError(t, err)
	foreign, err := NewTokenCodec("other").Issue("alice", time.Minute)
	require.NoError(t, err)

	alice := &model.User{ID: 7, Username: "alice"}

	tests := []struct {
		name      string
		token     string
		setupMock func(*MockIdentityFinder, *MockRevocationList)
		wantUser  *model.User
		wantErr   string
	}{
		{
			name:  "valid token for existing user",
			token: valid,
			setupMock: func(f *MockIdentityFinder, r *MockRevocationList) {
				r.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(false)
				f.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
			},
			wantUser: alice,
		},
		{
			name:  "valid token for deleted user",
			token: ghost,
			setupMock: func(f *MockIdentityFinder, r *MockRevocationList) {
				r.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(false)
				f.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
		},
		{
			name:      "bad signature",
			token:     foreign,
			setupMock: func(f *MockIdentityFinder, r *MockRevocationList) {},
		},
		{
			name:  "revoked token",
			token: valid,
			setupMock: func(f *MockIdentityFinder, r *MockRevocationList) {
				r.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(true)
			},
		},
		{
			name:  "store failure",
			token: valid,
			setupMock: func(f *MockIdentityFinder, r *MockRevocationList) {
				r.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(false)
				f.On("FindByUsername", mock.Anything, "alice").Return(nil, errors.New("connection refused"))
			},
			wantErr: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := new(MockIdentityFinder)
			revocations := new(MockRevocationList)
			tt.setupMock(finder, revocations)

			gate := NewGate(codec, finder, revocations)
			principal, err := gate.Authenticate(context.Background(), tt.token)

			switch {
			case tt.wantErr != "":
				require.Error(t, err)
				assert.NotErrorIs(t, err, apperrors.ErrUnauthenticated)
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, principal)
			case tt.wantUser == nil:
				// callers cannot tell the failure modes apart
				assert.Equal(t, apperrors.ErrUnauthenticated, err)
				assert.Nil(t, principal)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantUser, principal.User)
				assert.NotEmpty(t, principal.TokenID)
				assert.False(t, principal.ExpiresAt.IsZero())
			}

			finder.AssertExpectations(t)
			revocations.AssertExpectations(t)
		})
	}
}

func TestGate_WithoutRevocationList(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	token, err := codec.Issue("alice", time.Minute)
	require.NoError(t, err)

	finder := new(MockIdentityFinder)
	finder.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)

	principal, err := NewGate(codec, finder, nil).Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), principal.ID)
}

func TestAuthorizeResource(t *testing.T) {
	post := &model.Post{ID: 1, AuthorID: 7}
	item := &model.ExchangeItem{ID: 2, OwnerUserID: 7}

	for _, resource := range []model.Owned{post, item} {
		assert.ErrorIs(t, AuthorizeResource(&model.User{ID: 5}, resource), apperrors.ErrForbidden)
		assert.NoError(t, AuthorizeResource(&model.User{ID: 7}, resource))
	}

	assert.ErrorIs(t, AuthorizeResource(nil, post), apperrors.ErrForbidden)
}

func TestAuthorizeOwner_AdminGetsNoOverride(t *testing.T) {
	admin := &model.User{ID: 1, IsAdmin: true}
	assert.ErrorIs(t, AuthorizeOwner(admin, 7), apperrors.ErrForbidden)
}

func TestAuthorizeAccountRemoval(t *testing.T) {
	tests := []struct {
		name     string
		identity *model.User
		target   uint
		wantErr  error
	}{
		{"self", &model.User{ID: 2}, 2, nil},
		{"admin removes other", &model.User{ID: 1, IsAdmin: true}, 2, nil},
		{"non admin removes other", &model.User{ID: 3}, 2, apperrors.ErrForbidden},
		{"anonymous", nil, 2, apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeAccountRemoval(tt.identity, tt.target)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
