package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when the signing key, issuer, audience or lifetime
	// cannot be used. It is fatal at startup.
	ErrConfiguration = errors.New("invalid auth configuration")

	// ErrMalformedToken is returned when the token cannot be parsed
	ErrMalformedToken = errors.New("malformed token")

	// ErrInvalidSignature is returned when the signature does not verify under the signing key
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrInvalidIssuer is returned when the token issuer is not the configured issuer
	ErrInvalidIssuer = errors.New("invalid issuer")

	// ErrInvalidAudience is returned when the token audience is not the configured audience
	ErrInvalidAudience = errors.New("invalid audience")

	// ErrExpiredToken is returned when the current time is at or past the token expiry
	ErrExpiredToken = errors.New("token expired")

	// ErrUnknownPolicy is returned when a policy name is not registered
	ErrUnknownPolicy = errors.New("unknown policy")

	// ErrPolicyDenied is returned when a principal does not satisfy a policy
	ErrPolicyDenied = errors.New("policy denied")

	// ErrInvalidIssueRequest is returned when a principal or lifetime cannot be issued
	ErrInvalidIssueRequest = errors.New("invalid issue request")
)

// Error carries the failing check together with the underlying cause.
// errors.Is matches it against the sentinel in Kind.
type Error struct {
	Kind  error
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newError(kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

// Reason returns a short, stable label for the failed check, suitable for logs.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedToken):
		return "malformed_token"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrInvalidIssuer):
		return "invalid_issuer"
	case errors.Is(err, ErrInvalidAudience):
		return "invalid_audience"
	case errors.Is(err, ErrExpiredToken):
		return "expired_token"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrUnknownPolicy):
		return "unknown_policy"
	case errors.Is(err, ErrPolicyDenied):
		return "policy_denied"
	default:
		return "unknown"
	}
}
