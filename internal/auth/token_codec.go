package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "campushub/internal/errors"
)

// FallbackTokenTTL applies when Issue is called without a lifetime. Login
// passes the configured ACCESS_TOKEN_TTL (30m by default) instead, so the
// two values differ on purpose.
const FallbackTokenTTL = 15 * time.Minute

// Claims represents JWT claims. Subject carries the username.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenCodec issues and decodes HS256 session tokens.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

// NewTokenCodec creates a new codec with the given secret.
func NewTokenCodec(secret string, opts ...CodecOption) *TokenCodec {
	c := &TokenCodec{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue signs a token for subject valid for ttl, or FallbackTokenTTL when
// ttl is not positive.
func (c *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	token, _, err := c.IssueWithExpiry(subject, ttl)
	return token, err
}

// IssueWithExpiry is Issue that also returns the exp claim as written into
// the token, truncated to whole seconds.
func (c *TokenCodec) IssueWithExpiry(subject string, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = FallbackTokenTTL
	}
	now := c.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Decode verifies the signature and expiry of tokenString and returns its
// claims. Every failure wraps errors.ErrInvalidToken.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// time checks below use the codec clock
		jwt.WithoutClaimsValidation(),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	now := c.now()
	if !claims.VerifyExpiresAt(now, true) {
		return nil, fmt.Errorf("%w: token is expired", apperrors.ErrInvalidToken)
	}
	if !claims.VerifyNotBefore(now, false) {
		return nil, fmt.Errorf("%w: token is not valid yet", apperrors.ErrInvalidToken)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", apperrors.ErrInvalidToken)
	}
	return claims, nil
}
