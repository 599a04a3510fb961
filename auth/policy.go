package auth

import (
	"fmt"
	"sort"
)

// Requirement is a predicate over a principal.
type Requirement func(p *Principal) bool

// RequireAuthenticatedUser is satisfied by any principal that came from a verified token.
func RequireAuthenticatedUser() Requirement {
	return func(p *Principal) bool {
		return p.IsAuthenticated()
	}
}

// RequireClaim is satisfied when the claim key is present, whatever its value.
func RequireClaim(key string) Requirement {
	return func(p *Principal) bool {
		return p.HasClaim(key)
	}
}

// Policy is a named conjunction of requirements.
type Policy struct {
	Name         string
	Requirements []Requirement
}

// NewPolicy creates a policy from its requirements.
func NewPolicy(name string, reqs ...Requirement) Policy {
	return Policy{Name: name, Requirements: reqs}
}

// Allows reports whether every requirement holds for the principal.
func (p Policy) Allows(principal *Principal) bool {
	for _, req := range p.Requirements {
		if !req(principal) {
			return false
		}
	}
	return true
}

// DefaultPolicies returns AdminPolicy and UserPolicy.
func DefaultPolicies() []Policy {
	return []Policy{
		NewPolicy(PolicyAdmin, RequireAuthenticatedUser(), RequireClaim(ClaimAdmin)),
		NewPolicy(PolicyUser, RequireAuthenticatedUser(), RequireClaim(ClaimUser)),
	}
}

// Registry is an immutable lookup table of policies built once at startup.
type Registry struct {
	policies map[string]Policy
}

// NewRegistry builds a registry. Empty or duplicate names are rejected.
func NewRegistry(policies ...Policy) (*Registry, error) {
	m := make(map[string]Policy, len(policies))
	for _, p := range policies {
		if p.Name == "" {
			return nil, fmt.Errorf("policy name is required")
		}
		if _, exists := m[p.Name]; exists {
			return nil, fmt.Errorf("policy %q registered twice", p.Name)
		}
		m[p.Name] = p
	}
	return &Registry{policies: m}, nil
}

// Evaluate runs the named policy against the principal. A nil principal is treated as
// anonymous. Unregistered names fail with ErrUnknownPolicy.
func (r *Registry) Evaluate(name string, p *Principal) (bool, error) {
	policy, ok := r.policies[name]
	if !ok {
		return false, newError(ErrUnknownPolicy, fmt.Errorf("policy %q is not registered", name))
	}
	if p == nil {
		p = Anonymous()
	}
	return policy.Allows(p), nil
}

// Require checks that every name is registered.
func (r *Registry) Require(names ...string) error {
	for _, name := range names {
		if _, ok := r.policies[name]; !ok {
			return newError(ErrUnknownPolicy, fmt.Errorf("policy %q is not registered", name))
		}
	}
	return nil
}

// Names returns the registered policy names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
