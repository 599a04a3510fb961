package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Validator verifies bearer tokens and reconstructs principals from them.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	settings Settings
	parser   *jwt.Parser
	options  options
}

// NewValidator creates a Validator. Invalid settings fail with ErrConfiguration.
func NewValidator(settings Settings, opts ...Option) (*Validator, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(settings.Issuer),
		jwt.WithAudience(settings.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(o.clock),
	)
	return &Validator{
		settings: settings,
		parser:   parser,
		options:  o,
	}, nil
}

// Validate checks structure, signature, issuer, audience and expiry, in that order, and
// returns the principal carried by the token. Every outcome is reported to the observer.
func (v *Validator) Validate(raw string) (*Principal, error) {
	p, err := v.validate(raw)
	if err != nil {
		v.options.observer.AuthenticationFailed(err)
		return nil, err
	}
	v.options.observer.TokenValidated(p)
	return p, nil
}

type tokenHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

func (v *Validator) validate(raw string) (*Principal, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return nil, newError(ErrMalformedToken, fmt.Errorf("token must have three segments"))
	}

	headerBytes, err := v.parser.DecodeSegment(parts[0])
	if err != nil {
		return nil, newError(ErrMalformedToken, fmt.Errorf("decode header: %w", err))
	}
	var header tokenHeader
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, newError(ErrMalformedToken, fmt.Errorf("parse header: %w", err))
	}

	// The signature is checked over the raw segments before the payload is decoded, so any
	// change to the payload text is reported as a signature failure.
	if header.Alg != jwt.SigningMethodHS256.Alg() {
		return nil, newError(ErrInvalidSignature, fmt.Errorf("unexpected signing method %q", header.Alg))
	}
	sig, err := v.parser.DecodeSegment(parts[2])
	if err != nil {
		return nil, newError(ErrInvalidSignature, fmt.Errorf("decode signature: %w", err))
	}
	signingString := parts[0] + "." + parts[1]
	if err := jwt.SigningMethodHS256.Verify(signingString, sig, v.settings.SigningKey.bytes()); err != nil {
		return nil, newError(ErrInvalidSignature, err)
	}

	claims := jwt.MapClaims{}
	_, err = v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.settings.SigningKey.bytes(), nil
	})
	if err != nil {
		return nil, classify(err)
	}

	return principalFromClaims(claims)
}

// classify maps jwt parser errors onto the taxonomy. jwt joins claim errors, so the
// checks run in the documented precedence.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return newError(ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return newError(ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return newError(ErrInvalidIssuer, err)
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return newError(ErrInvalidAudience, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return newError(ErrExpiredToken, err)
	default:
		return newError(ErrMalformedToken, err)
	}
}

func principalFromClaims(claims jwt.MapClaims) (*Principal, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return nil, newError(ErrMalformedToken, err)
	}

	custom := make(map[string]string, len(claims))
	for k, raw := range claims {
		if _, reserved := reservedClaims[k]; reserved {
			continue
		}
		switch val := raw.(type) {
		case string:
			custom[k] = val
		default:
			b, err := json.Marshal(val)
			if err != nil {
				return nil, newError(ErrMalformedToken, fmt.Errorf("claim %q: %w", k, err))
			}
			custom[k] = string(b)
		}
	}

	return NewPrincipal(sub, custom), nil
}
