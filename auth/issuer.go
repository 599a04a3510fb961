package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// reservedClaims are the registered claim names the issuer owns.
var reservedClaims = map[string]struct{}{
	"iss": {}, "aud": {}, "exp": {}, "iat": {}, "sub": {}, "nbf": {}, "jti": {},
}

// Clock returns the current time.
type Clock func() time.Time

// Option configures an Issuer or a Validator.
type Option func(*options)

type options struct {
	clock    Clock
	observer Observer
}

// WithClock overrides time.Now.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithObserver sets the observer notified by the validator.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		clock:    time.Now,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Token is a signed, compact JWT together with its expiry.
type Token struct {
	Value     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Issuer signs tokens for authenticated principals.
type Issuer struct {
	settings Settings
	clock    Clock
}

// NewIssuer creates an Issuer. Invalid settings fail with ErrConfiguration.
func NewIssuer(settings Settings, opts ...Option) (*Issuer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &Issuer{settings: settings, clock: o.clock}, nil
}

// Issue signs a token for the principal valid for ttl. The token's custom claims equal the
// principal's claims exactly; iss, aud, sub, iat and exp are set by the issuer.
func (i *Issuer) Issue(p *Principal, ttl time.Duration) (*Token, error) {
	if i == nil || i.settings.SigningKey.IsZero() {
		return nil, newError(ErrConfiguration, fmt.Errorf("signing key is not configured"))
	}
	if p == nil || len(p.Claims) == 0 {
		return nil, newError(ErrInvalidIssueRequest, fmt.Errorf("principal must carry at least one claim"))
	}
	if ttl <= 0 {
		return nil, newError(ErrInvalidIssueRequest, fmt.Errorf("validity duration must be positive, got %s", ttl))
	}

	// NumericDate has second precision: iat rounds down and exp rounds up, so the token
	// never expires before now+ttl.
	now := i.clock().UTC()
	issuedAt := jwt.NewNumericDate(now)
	expiresAt := jwt.NewNumericDate(ceilSecond(now.Add(ttl)))

	claims := jwt.MapClaims{
		"iss": i.settings.Issuer,
		"aud": i.settings.Audience,
		"sub": p.Subject,
		"iat": issuedAt,
		"exp": expiresAt,
	}
	for k, v := range p.Claims {
		if _, reserved := reservedClaims[k]; reserved {
			return nil, newError(ErrInvalidIssueRequest, fmt.Errorf("claim %q is reserved", k))
		}
		claims[k] = v
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.settings.SigningKey.bytes())
	if err != nil {
		return nil, newError(ErrConfiguration, fmt.Errorf("sign token: %w", err))
	}

	return &Token{
		Value:     signed,
		IssuedAt:  issuedAt.Time.UTC(),
		ExpiresAt: expiresAt.Time.UTC(),
	}, nil
}

func ceilSecond(t time.Time) time.Time {
	floor := t.Truncate(time.Second)
	if floor.Before(t) {
		return floor.Add(time.Second)
	}
	return floor
}

// IssueDefault signs a token with the configured token lifetime.
func (i *Issuer) IssueDefault(p *Principal) (*Token, error) {
	return i.Issue(p, i.settings.TokenLifetime)
}

// Lifetime returns the configured default token lifetime.
func (i *Issuer) Lifetime() time.Duration {
	return i.settings.TokenLifetime
}
