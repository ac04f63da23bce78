package catalog

import "errcatalog/pkg/errx"

// Provider exposes the registration slots of one package.
// *errx.Set implements Provider.
type Provider interface {
	Name() string
	Slots() []errx.Slot
}

// Registration is one produced descriptor with its origin.
type Registration struct {
	Descriptor errx.Descriptor
	Site       string
	Provider   string
}

// Collect invokes every slot producer of the providers exactly once and
// returns the produced descriptors in traversal order.
//
// The order carries no meaning: Build sorts its input. Each call produces
// a fresh slice. Nil providers and slots without a producer are skipped.
func Collect(providers ...Provider) []Registration {
	var regs []Registration
	for _, p := range providers {
		if p == nil {
			continue
		}
		name := p.Name()
		for _, slot := range p.Slots() {
			if slot.Produce == nil {
				continue
			}
			regs = append(regs, Registration{
				Descriptor: slot.Produce(),
				Site:       slot.Site,
				Provider:   name,
			})
		}
	}
	return regs
}
