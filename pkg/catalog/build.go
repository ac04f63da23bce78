package catalog

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"errcatalog/pkg/errx"
)

type violation struct {
	key  errx.Key
	site string
	err  error
}

// Build validates the registrations and merges them into a Catalog.
//
// Every descriptor must carry a domain, code, variant and message, and each
// (domain, code) pair must be registered exactly once. All violations are
// reported together, ordered by key and declaration site, and no catalog is
// returned when any exists. For valid input the result does not depend on
// the order of regs.
func Build(regs []Registration) (*Catalog, error) {
	var violations []violation
	groups := make(map[errx.Key][]Registration, len(regs))

	for _, reg := range regs {
		d := reg.Descriptor
		switch {
		case d.Domain() == "" || d.Code() == "":
			violations = append(violations, violation{
				key:  d.Key(),
				site: reg.Site,
				err: errx.New(EmptyDomainOrCode).
					WithBase(ErrEmptyDomainOrCode).
					WithField("variant", d.Variant()).
					WithField("site", reg.Site).
					WithContextMap(registrationContext(reg)),
			})
			continue
		case d.Variant() == "":
			violations = append(violations, missingField(reg, "variant"))
			continue
		case d.Message() == "":
			violations = append(violations, missingField(reg, "message"))
			continue
		}
		groups[d.Key()] = append(groups[d.Key()], reg)
	}

	entries := make([]errx.Descriptor, 0, len(groups))
	for key, group := range groups {
		if len(group) > 1 {
			violations = append(violations, duplicate(key, group))
			continue
		}
		entries = append(entries, group[0].Descriptor)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if c := violations[i].key.Compare(violations[j].key); c != 0 {
				return c < 0
			}
			if violations[i].site != violations[j].site {
				return violations[i].site < violations[j].site
			}
			return violations[i].err.Error() < violations[j].err.Error()
		})
		joined := make([]error, 0, len(violations))
		for _, v := range violations {
			joined = append(joined, v.err)
		}
		return nil, errors.Join(joined...)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Less(entries[j])
	})
	return newCatalog(entries), nil
}

func duplicate(key errx.Key, group []Registration) violation {
	sites := make([]string, 0, len(group))
	variants := make([]string, 0, len(group))
	for _, reg := range group {
		sites = append(sites, reg.Site)
	}
	sort.Strings(sites)
	for _, reg := range group {
		variants = append(variants, reg.Descriptor.Variant())
	}
	sort.Strings(variants)

	return violation{
		key:  key,
		site: sites[0],
		err: errx.New(DuplicateRegistration).
			WithBase(ErrDuplicateRegistration).
			WithField("domain", key.Domain).
			WithField("code", key.Code).
			WithField("count", strconv.Itoa(len(group))).
			WithField("sites", strings.Join(sites, ", ")).
			WithContext("sites", sites).
			WithContext("variants", variants),
	}
}

func missingField(reg Registration, field string) violation {
	d := reg.Descriptor
	return violation{
		key:  d.Key(),
		site: reg.Site,
		err: errx.New(MissingField).
			WithBase(ErrMissingField).
			WithField("domain", d.Domain()).
			WithField("code", d.Code()).
			WithField("site", reg.Site).
			WithField("field", field).
			WithContextMap(registrationContext(reg)),
	}
}

func registrationContext(reg Registration) map[string]any {
	return map[string]any{
		"provider": reg.Provider,
		"site":     reg.Site,
	}
}
