// Package token implements the signed, self-contained identity claim that
// proves who a request belongs to. Verification needs only the signing key;
// there is no server-side session or revocation state, so a token stays
// valid until it expires.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/teamops/teamops-api/internal/core/domain"
)

var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenSignatureInvalid = errors.New("token signature invalid")
var ErrTokenExpired = errors.New("token expired")

// Claims is the verified payload of a token.
type Claims struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Identity converts verified claims into the request identity value.
func (c Claims) Identity() domain.Identity {
	return domain.Identity{
		Subject:   c.Subject,
		Role:      c.Role,
		IssuedAt:  c.IssuedAt,
		ExpiresAt: c.ExpiresAt,
	}
}

type jwtClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HMAC-SHA-256 signed tokens. The key is loaded
// once at startup and shared read-only across all verifications.
type Codec struct {
	key []byte
	ttl time.Duration
}

// NewCodec creates a Codec signing with key and stamping expiry now+ttl.
func NewCodec(key []byte, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Codec{key: key, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue produces a signed token embedding subject and role, issued at now
// and expiring at now+TTL.
func (c *Codec) Issue(subject, role string, now time.Time) (string, error) {
	claims := jwtClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// Verify checks the signature and expiry of raw at time now and returns the
// embedded claims. It consults no external store. Failures are reported as
// ErrTokenExpired, ErrTokenSignatureInvalid, or ErrTokenMalformed.
func (c *Codec) Verify(raw string, now time.Time) (Claims, error) {
	var parsed jwtClaims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.key, nil
	},
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrTokenSignatureInvalid
		default:
			return Claims{}, ErrTokenMalformed
		}
	}

	claims := Claims{
		Subject: parsed.Subject,
		Role:    parsed.Role,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time
	}
	return claims, nil
}
