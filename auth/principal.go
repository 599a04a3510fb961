package auth

import "sort"

// Well-known claim keys and policy names.
const (
	ClaimAdmin = "Admin"
	ClaimUser  = "User"
	ClaimName  = "name"

	PolicyAdmin = "AdminPolicy"
	PolicyUser  = "UserPolicy"
)

// Principal is the identity of an authenticated actor and its claim set.
// A Principal must not be modified once it has been issued into a token.
type Principal struct {
	Subject string
	Claims  map[string]string

	authenticated bool
}

// NewPrincipal creates an authenticated principal. The claim map is copied.
func NewPrincipal(subject string, claims map[string]string) *Principal {
	copied := make(map[string]string, len(claims))
	for k, v := range claims {
		copied[k] = v
	}
	return &Principal{
		Subject:       subject,
		Claims:        copied,
		authenticated: true,
	}
}

// Anonymous returns a principal for a request that carried no valid token.
func Anonymous() *Principal {
	return &Principal{Claims: map[string]string{}}
}

// IsAuthenticated reports whether the principal came from a verified token or login.
func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.authenticated
}

// HasClaim reports whether the claim key is present. The value is not inspected.
func (p *Principal) HasClaim(key string) bool {
	if p == nil {
		return false
	}
	_, ok := p.Claims[key]
	return ok
}

// ClaimKeys returns the claim keys in sorted order.
func (p *Principal) ClaimKeys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, len(p.Claims))
	for k := range p.Claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
