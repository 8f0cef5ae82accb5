package authz

import "strings"

// Authority is a coarse permission derived from a user's type.
type Authority string

const (
	AuthorityAdmin  Authority = "ADMIN"
	AuthoritySeller Authority = "SELLER"
	AuthorityUser   Authority = "USER"
)

// roleAuthorities maps a user type to its full authority set. Built once;
// admins subsume sellers, sellers subsume plain users.
var roleAuthorities = map[string][]Authority{
	"ADMIN":  {AuthorityAdmin, AuthoritySeller, AuthorityUser},
	"SELLER": {AuthoritySeller, AuthorityUser},
	"BOTH":   {AuthoritySeller, AuthorityUser},
	"BUYER":  {AuthorityUser},
}

// AuthoritiesFor returns the authority set for a user type. Unknown types
// get the plain USER authority.
func AuthoritiesFor(userType string) []Authority {
	if set, ok := roleAuthorities[userType]; ok {
		return set
	}
	return []Authority{AuthorityUser}
}

// Decision is the outcome of evaluating a request against the policy.
type Decision int

const (
	// Allow grants the request.
	Allow Decision = iota
	// RequireAuth rejects because no authenticated identity is present.
	RequireAuth
	// Deny rejects because the identity lacks a required authority.
	Deny
)

// Rule maps a path pattern and optional method set to an access requirement.
// A pattern ending in "/**" matches the prefix before it and anything below;
// any other pattern matches exactly. Empty Methods matches every verb.
// Public rules always allow; a rule with no authorities requires any
// authenticated identity.
type Rule struct {
	Methods []string
	Pattern string
	Public  bool
	AnyOf   []Authority
}

func (r Rule) matches(method, path string) bool {
	if len(r.Methods) > 0 {
		ok := false
		for _, m := range r.Methods {
			if m == method {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	if prefix, wild := strings.CutSuffix(r.Pattern, "/**"); wild {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == r.Pattern
}

// Policy is an ordered access rule table, immutable after construction.
// The first matching rule wins; requests matching no rule require at least
// an authenticated identity.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from rules, evaluated in the given order.
func NewPolicy(rules []Rule) *Policy {
	return &Policy{rules: rules}
}

// Evaluate decides whether a request may proceed.
func (p *Policy) Evaluate(method, path string, authenticated bool, authorities []Authority) Decision {
	for _, r := range p.rules {
		if !r.matches(method, path) {
			continue
		}
		if r.Public {
			return Allow
		}
		if !authenticated {
			return RequireAuth
		}
		if len(r.AnyOf) == 0 {
			return Allow
		}
		for _, need := range r.AnyOf {
			for _, have := range authorities {
				if need == have {
					return Allow
				}
			}
		}
		return Deny
	}

	if authenticated {
		return Allow
	}
	return RequireAuth
}

// DefaultPolicy is the marketplace access table. Most specific rules are
// declared first.
func DefaultPolicy() *Policy {
	get := []string{"GET"}
	return NewPolicy([]Rule{
		// Health and docs
		{Methods: get, Pattern: "/", Public: true},
		{Methods: get, Pattern: "/health", Public: true},
		{Methods: get, Pattern: "/swagger/**", Public: true},
		{Methods: get, Pattern: "/api/v1", Public: true},

		// Auth endpoints needing an identity come before the public
		// catch-all. Verification routes stay public: pending accounts
		// are anonymous to the gateway and prove themselves by token.
		{Pattern: "/api/v1/auth/profile"},
		{Pattern: "/api/v1/auth/change-password"},
		{Methods: get, Pattern: "/api/v1/auth/check", Public: true},
		{Pattern: "/api/v1/auth/**", Public: true},

		// Catalog browsing is public; catalog mutation is admin work.
		{Methods: get, Pattern: "/api/v1/categories/**", Public: true},
		{Pattern: "/api/v1/categories/**", AnyOf: []Authority{AuthorityAdmin}},
		{Methods: []string{"POST"}, Pattern: "/api/v1/listings", AnyOf: []Authority{AuthorityUser, AuthoritySeller, AuthorityAdmin}},
		{Methods: get, Pattern: "/api/v1/listings/**", Public: true},
		{Methods: get, Pattern: "/api/v1/reviews/**", Public: true},

		// Role-gated path families
		{Pattern: "/api/v1/admin/**", AnyOf: []Authority{AuthorityAdmin}},
		{Pattern: "/api/v1/seller/**", AnyOf: []Authority{AuthoritySeller, AuthorityAdmin}},
		{Pattern: "/api/v1/user/**", AnyOf: []Authority{AuthorityUser, AuthoritySeller, AuthorityAdmin}},
	})
}
