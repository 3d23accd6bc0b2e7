package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrAlgMismatch  = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
	ErrNoSecret     = errors.New("jwtx: signing secret not configured")
)

// Issuer signs and verifies bearer tokens with a symmetric HS256 secret.
// Issue and Verify are pure computations over the configured secret and are
// safe to call concurrently.
type Issuer struct {
	secret   []byte
	issuer   string
	audience []string
	lifetime time.Duration

	// now is swapped out in tests to pin the clock.
	now func() time.Time
}

// Config carries the externally supplied signing configuration. The secret
// must never be hard-coded; it comes from process configuration.
type Config struct {
	Secret   string
	Issuer   string
	Audience []string
	Lifetime time.Duration
}

// NewIssuer validates the configuration and returns an Issuer.
func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, ErrNoSecret
	}
	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &Issuer{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

// Lifetime reports the configured token lifetime.
func (i *Issuer) Lifetime() time.Duration { return i.lifetime }

// Issue mints a signed bearer token whose subject is the given user ID,
// valid from now until now+lifetime.
func (i *Issuer) Issue(userID string) (string, error) {
	claims := NewAccessClaims(userID, i.issuer, i.audience, i.lifetime, i.now())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify checks signature, format, issuer, audience and expiry, returning
// the subject user ID on success. Errors are always recoverable by
// re-authenticating; ErrExpired is distinguished so callers can report it.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims, err := i.parse(tokenString)
	if err != nil {
		return "", err
	}

	if err := claims.ValidateIssuer(i.issuer); err != nil {
		return "", err
	}
	if err := claims.ValidateAudience(i.audience); err != nil {
		return "", err
	}
	if err := claims.ValidateExpiry(i.now()); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrInvalidClaim
	}

	return claims.Subject, nil
}

// parse verifies the signature only; claim validation is done explicitly in
// Verify so expiry can be reported as a distinct outcome.
func (i *Issuer) parse(tokenString string) (Claims, error) {
	var claims Claims
	_, err := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	).ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, ErrAlgMismatch
		default:
			return Claims{}, ErrMalformed
		}
	}
	return claims, nil
}
