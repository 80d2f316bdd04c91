package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "campushub/internal/errors"
	"campushub/internal/model"
)

// IdentityFinder loads the account a token was issued for.
type IdentityFinder interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// Principal is the authenticated identity behind a request together with
// the token that proved it.
type Principal struct {
	*model.User
	TokenID   string
	ExpiresAt time.Time
}

// Gate resolves bearer tokens to identities.
type Gate struct {
	codec       *TokenCodec
	users       IdentityFinder
	revocations RevocationList
}

// NewGate creates a gate. revocations may be nil.
func NewGate(codec *TokenCodec, users IdentityFinder, revocations RevocationList) *Gate {
	return &Gate{
		codec:       codec,
		users:       users,
		revocations: revocations,
	}
}

// Authenticate decodes tokenString and loads its identity. A bad, expired or
// revoked token and a token for an unknown user all fail with the same
// errors.ErrUnauthenticated. Store failures are returned wrapped.
func (g *Gate) Authenticate(ctx context.Context, tokenString string) (*Principal, error) {
	claims, err := g.codec.Decode(tokenString)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if g.revocations != nil && claims.ID != "" && g.revocations.IsRevoked(ctx, claims.ID) {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := g.users.FindByUsername(ctx, claims.Subject)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && user == nil) {
		return nil, apperrors.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}

	p := &Principal{User: user, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

// AuthorizeOwner allows a mutation only when identity is the owner.
func AuthorizeOwner(identity *model.User, ownerID uint) error {
	if identity == nil || identity.ID != ownerID {
		return apperrors.ErrForbidden
	}
	return nil
}

// AuthorizeResource is AuthorizeOwner against any owned record.
func AuthorizeResource(identity *model.User, resource model.Owned) error {
	return AuthorizeOwner(identity, resource.OwnerID())
}

// AuthorizeAccountRemoval allows deleting an account by its owner or an admin.
func AuthorizeAccountRemoval(identity *model.User, targetID uint) error {
	if identity != nil && identity.IsAdmin {
		return nil
	}
	return AuthorizeOwner(identity, targetID)
}
