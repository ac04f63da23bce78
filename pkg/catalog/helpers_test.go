package catalog

import (
	"fmt"

	"errcatalog/pkg/errx"
)

// staticProvider is a Provider over a fixed slot list.
type staticProvider struct {
	name  string
	slots []errx.Slot
}

func (p staticProvider) Name() string       { return p.name }
func (p staticProvider) Slots() []errx.Slot { return p.slots }

// registration builds a Registration with a synthetic site.
func registration(domain, code, message string, n int) Registration {
	return Registration{
		Descriptor: errx.NewDescriptor(domain, code, variantOf(code), message),
		Site:       fmt.Sprintf("test/site.go:%d", n),
		Provider:   domain,
	}
}

func variantOf(code string) string {
	if code == "" {
		return "Unnamed"
	}
	return "V" + code
}

func scenarioRegistrations() []Registration {
	return []Registration{
		registration("auth", "invalid_token", "Token invalid", 1),
		registration("auth", "expired_token", "Token expired", 2),
		registration("billing", "card_declined", "Card declined", 3),
	}
}
