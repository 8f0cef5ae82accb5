package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthoritiesFor(t *testing.T) {
	assert.ElementsMatch(t, []Authority{AuthorityAdmin, AuthoritySeller, AuthorityUser}, AuthoritiesFor("ADMIN"))
	assert.ElementsMatch(t, []Authority{AuthoritySeller, AuthorityUser}, AuthoritiesFor("SELLER"))
	assert.ElementsMatch(t, []Authority{AuthoritySeller, AuthorityUser}, AuthoritiesFor("BOTH"))
	assert.ElementsMatch(t, []Authority{AuthorityUser}, AuthoritiesFor("BUYER"))
	assert.ElementsMatch(t, []Authority{AuthorityUser}, AuthoritiesFor("something-else"))
}

func TestPolicy_PublicRoutes(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, Allow, p.Evaluate("GET", "/health", false, nil))
	assert.Equal(t, Allow, p.Evaluate("POST", "/api/v1/auth/login", false, nil))
	assert.Equal(t, Allow, p.Evaluate("POST", "/api/v1/auth/register", false, nil))
	assert.Equal(t, Allow, p.Evaluate("GET", "/api/v1/categories", false, nil))
	assert.Equal(t, Allow, p.Evaluate("GET", "/api/v1/categories/electronics", false, nil))
	assert.Equal(t, Allow, p.Evaluate("GET", "/api/v1/listings/42", false, nil))
	assert.Equal(t, Allow, p.Evaluate("GET", "/swagger/index.html", false, nil))
}

func TestPolicy_MostSpecificRuleWins(t *testing.T) {
	p := DefaultPolicy()

	// /auth/profile sits under the public /auth/** family but still
	// requires an identity.
	assert.Equal(t, RequireAuth, p.Evaluate("GET", "/api/v1/auth/profile", false, nil))
	assert.Equal(t, Allow, p.Evaluate("GET", "/api/v1/auth/profile", true, AuthoritiesFor("BUYER")))
	assert.Equal(t, RequireAuth, p.Evaluate("POST", "/api/v1/auth/change-password", false, nil))
}

func TestPolicy_RoleGatedFamilies(t *testing.T) {
	p := DefaultPolicy()

	admin := AuthoritiesFor("ADMIN")
	seller := AuthoritiesFor("SELLER")
	buyer := AuthoritiesFor("BUYER")

	assert.Equal(t, Allow, p.Evaluate("GET", "/api/v1/admin/users", true, admin))
	assert.Equal(t, Deny, p.Evaluate("GET", "/api/v1/admin/users", true, seller))
	assert.Equal(t, Deny, p.Evaluate("GET", "/api/v1/admin/users", true, buyer))
	assert.Equal(t, RequireAuth, p.Evaluate("GET", "/api/v1/admin/users", false, nil))

	assert.Equal(t, Allow, p.Evaluate("GET", "/api/v1/seller/listings", true, seller))
	assert.Equal(t, Allow, p.Evaluate("GET", "/api/v1/seller/listings", true, admin))
	assert.Equal(t, Deny, p.Evaluate("GET", "/api/v1/seller/listings", true, buyer))

	assert.Equal(t, Allow, p.Evaluate("GET", "/api/v1/user/purchases", true, buyer))
	assert.Equal(t, Allow, p.Evaluate("GET", "/api/v1/user/purchases", true, seller))
}

func TestPolicy_CatalogMutationRequiresAdmin(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, Deny, p.Evaluate("POST", "/api/v1/categories", true, AuthoritiesFor("SELLER")))
	assert.Equal(t, Allow, p.Evaluate("POST", "/api/v1/categories", true, AuthoritiesFor("ADMIN")))
	assert.Equal(t, Deny, p.Evaluate("DELETE", "/api/v1/categories/3", true, AuthoritiesFor("BUYER")))
}

func TestPolicy_ListingCreate(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, Allow, p.Evaluate("POST", "/api/v1/listings", true, AuthoritiesFor("BUYER")))
	assert.Equal(t, RequireAuth, p.Evaluate("POST", "/api/v1/listings", false, nil))
}

func TestPolicy_DefaultRequiresAuthentication(t *testing.T) {
	p := DefaultPolicy()

	// No explicit rule: transactions fall through to the default.
	assert.Equal(t, RequireAuth, p.Evaluate("POST", "/api/v1/transactions", false, nil))
	assert.Equal(t, Allow, p.Evaluate("POST", "/api/v1/transactions", true, AuthoritiesFor("BUYER")))
}

func TestRuleMatching(t *testing.T) {
	exact := Rule{Pattern: "/api/v1/auth/profile"}
	assert.True(t, exact.matches("GET", "/api/v1/auth/profile"))
	assert.False(t, exact.matches("GET", "/api/v1/auth/profile/x"))

	wild := Rule{Pattern: "/api/v1/admin/**"}
	assert.True(t, wild.matches("GET", "/api/v1/admin"))
	assert.True(t, wild.matches("GET", "/api/v1/admin/users/5/unlock"))
	assert.False(t, wild.matches("GET", "/api/v1/administrator"))

	verb := Rule{Methods: []string{"GET"}, Pattern: "/api/v1/categories/**"}
	assert.True(t, verb.matches("GET", "/api/v1/categories"))
	assert.False(t, verb.matches("POST", "/api/v1/categories"))
}
