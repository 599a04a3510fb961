package auth

import (
	"fmt"
	"time"
)

// MinSigningKeyLength is the minimum HS256 key size in bytes (256 bits).
const MinSigningKeyLength = 32

// SigningKey is the shared HMAC secret used to sign and verify tokens.
type SigningKey struct {
	secret []byte
}

// NewSigningKey validates and wraps a secret.
func NewSigningKey(secret string) (SigningKey, error) {
	if secret == "" {
		return SigningKey{}, newError(ErrConfiguration, fmt.Errorf("signing key is required"))
	}
	if len(secret) < MinSigningKeyLength {
		return SigningKey{}, newError(ErrConfiguration,
			fmt.Errorf("signing key must be at least %d bytes, got %d", MinSigningKeyLength, len(secret)))
	}
	b := make([]byte, len(secret))
	copy(b, secret)
	return SigningKey{secret: b}, nil
}

func (k SigningKey) bytes() []byte {
	return k.secret
}

// IsZero reports whether the key was never initialized.
func (k SigningKey) IsZero() bool {
	return len(k.secret) == 0
}

// Settings is the immutable auth configuration shared by the issuer and the validator.
type Settings struct {
	Issuer        string
	Audience      string
	SigningKey    SigningKey
	TokenLifetime time.Duration
}

// NewSettings validates raw configuration values and builds Settings.
func NewSettings(issuer, audience, signingKey string, lifetime time.Duration) (Settings, error) {
	key, err := NewSigningKey(signingKey)
	if err != nil {
		return Settings{}, err
	}
	s := Settings{
		Issuer:        issuer,
		Audience:      audience,
		SigningKey:    key,
		TokenLifetime: lifetime,
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that every field is usable.
func (s Settings) Validate() error {
	if s.SigningKey.IsZero() {
		return newError(ErrConfiguration, fmt.Errorf("signing key is required"))
	}
	if s.Issuer == "" {
		return newError(ErrConfiguration, fmt.Errorf("issuer is required"))
	}
	if s.Audience == "" {
		return newError(ErrConfiguration, fmt.Errorf("audience is required"))
	}
	if s.TokenLifetime <= 0 {
		return newError(ErrConfiguration, fmt.Errorf("token lifetime must be positive, got %s", s.TokenLifetime))
	}
	return nil
}
