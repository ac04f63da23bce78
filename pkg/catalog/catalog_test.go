package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"errcatalog/pkg/errx"
)

func buildTagged(t *testing.T) *Catalog {
	t.Helper()
	regs := []Registration{
		{Descriptor: errx.NewDescriptor("auth", "AUTH_MISSING", "AuthMissing", "Missing authentication",
			errx.WithStatus(401), errx.WithTags("security")), Site: "s:1"},
		{Descriptor: errx.NewDescriptor("auth", "AUTH_FAILED", "AuthFailed", "Authentication failed",
			errx.WithStatus(403), errx.WithTags("security", "client")), Site: "s:2"},
		{Descriptor: errx.NewDescriptor("billing", "CARD_DECLINED", "CardDeclined", "Card declined",
			errx.WithTags("client")), Site: "s:3"},
		{Descriptor: errx.NewDescriptor("generic", "NOT_FOUND", "NotFound", "Not found",
			errx.WithStatus(404)), Site: "s:4"},
	}
	c, err := Build(regs)
	require.NoError(t, err)
	return c
}

func TestCatalog_Lookup(t *testing.T) {
	c, err := Build(scenarioRegistrations())
	require.NoError(t, err)

	d, ok := c.Lookup("billing", "card_declined")
	require.True(t, ok)
	assert.Equal(t, "Card declined", d.Message())
	assert.Equal(t, "Vcard_declined", d.Variant())

	_, ok = c.Lookup("billing", "nope")
	assert.False(t, ok)

	_, ok = c.LookupKey(errx.Key{Domain: "auth", Code: "expired_token"})
	assert.True(t, ok)
}

func TestCatalog_Filters(t *testing.T) {
	c := buildTagged(t)

	tests := []struct {
		name string
		got  []errx.Descriptor
		want []string
	}{
		{"domain auth", c.FilterByDomain("auth"), []string{"auth/AUTH_FAILED", "auth/AUTH_MISSING"}},
		{"domain generic", c.FilterByDomain("generic"), []string{"generic/NOT_FOUND"}},
		{"domain unknown", c.FilterByDomain("zzz"), []string{}},
		{"domain prefix only", c.FilterByDomain("aut"), []string{}},
		{"tag client", c.FilterByTag("client"), []string{"auth/AUTH_FAILED", "billing/CARD_DECLINED"}},
		{"tag security", c.FilterByTag("security"), []string{"auth/AUTH_FAILED", "auth/AUTH_MISSING"}},
		{"tag unknown", c.FilterByTag("none"), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keysOf(tt.got))
		})
	}
}

func TestCatalog_DomainsAndTags(t *testing.T) {
	c := buildTagged(t)

	assert.Equal(t, []string{"auth", "billing", "generic"}, c.Domains())
	assert.Equal(t, []string{"client", "security"}, c.Tags())
	assert.Equal(t, 4, c.Len())
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	c := buildTagged(t)

	all := c.All()
	all[0] = errx.Descriptor{}

	first, ok := c.Lookup("auth", "AUTH_FAILED")
	require.True(t, ok)
	if diff := cmp.Diff(first, c.All()[0]); diff != "" {
		t.Fatalf("catalog mutated through All() (-want +got):\n%s", diff)
	}
}

func TestCatalog_Nil(t *testing.T) {
	var c *Catalog

	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.All())
	assert.Nil(t, c.FilterByDomain("auth"))
	assert.Nil(t, c.FilterByTag("x"))
	assert.Nil(t, c.Domains())
	assert.Nil(t, c.Tags())
	_, ok := c.Lookup("a", "b")
	assert.False(t, ok)
	assert.True(t, c.Equal(&Catalog{}))
}
