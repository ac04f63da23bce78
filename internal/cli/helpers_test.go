package cli

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"errcatalog/pkg/catalog"
	"errcatalog/pkg/errx"
)

// staticSource is a CatalogSource returning a fixed result.
type staticSource struct {
	catalog *catalog.Catalog
	err     error
}

func (s staticSource) Get() (*catalog.Catalog, error) { return s.catalog, s.err }

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	auth := errx.NewSet("auth")
	auth.Define("AUTH_MISSING", "AuthMissing", http.StatusUnauthorized, "Missing authentication",
		errx.WithTags("security"))
	auth.Define("AUTH_MALFORMED_AUTH_HEADER", "AuthMalformedAuthHeader", http.StatusBadRequest,
		`Malformed "{auth_header}" header`, errx.WithTags("security"))
	billing := errx.NewSet("billing")
	billing.Define("CARD_DECLINED", "CardDeclined", http.StatusPaymentRequired, "Card declined")

	c, err := catalog.Build(catalog.Collect(auth, billing))
	require.NoError(t, err)
	return c
}

func newTestManager(t *testing.T, source CatalogSource, cfg *Config, factory ClientFactory) (*CatalogManager, *bytes.Buffer) {
	t.Helper()
	pterm.DisableColor()
	if cfg == nil {
		cfg = &Config{}
		cfg.ApplyDefaults()
	}
	var out bytes.Buffer
	return NewCatalogManager(source, cfg, factory, &out, zap.NewNop()), &out
}
