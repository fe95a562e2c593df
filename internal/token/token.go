// Package token issues and verifies the signed bearer tokens that represent
// a login session. Tokens are stateless: any server instance holding the
// signing secret can verify any token, and no session storage exists.
// Revocation (e.g. account deactivation) is enforced by the authorization
// middleware, not here.
package token

import (
	"errors"
	"time"

	"github.com/campuscoders/clubsite-api/internal/port"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the fixed token lifetime.
const DefaultTTL = 7 * 24 * time.Hour

// Claims carries the user identity alongside the registered claims.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Service signs and verifies session tokens with a process-wide symmetric
// secret, loaded once at startup.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New creates a token service. A zero ttl falls back to DefaultTTL.
func New(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the service's notion of "now". Tests use this to probe
// the expiry boundary.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue produces a signed token embedding the user identity and an issued-at
// timestamp, expiring ttl from now.
func (s *Service) Issue(userID string) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Verify checks the token's signature and expiry and returns the embedded
// user identity and issued-at time. It is a pure computation: no store
// access, so a deactivated user's token still verifies here.
func (s *Service) Verify(tokenStr string) (userID string, issuedAt time.Time, err error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, port.ErrInvalidSignature
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", time.Time{}, port.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrSignatureInvalid),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return "", time.Time{}, port.ErrInvalidSignature
		default:
			return "", time.Time{}, port.ErrMalformedToken
		}
	}
	if !tok.Valid || claims.UserID == "" {
		return "", time.Time{}, port.ErrMalformedToken
	}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	return claims.UserID, issuedAt, nil
}
