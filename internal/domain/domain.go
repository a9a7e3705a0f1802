// Package domain holds the core types shared between layers: content
// domains, corpus records, the embedding contract, and sentinel errors.
package domain

import "fmt"

// Domain is one of the two independent content categories. Each domain
// owns its own corpus and indexes.
type Domain string

// Known content domains.
const (
	DomainAttraction Domain = "attraction"
	DomainRestaurant Domain = "restaurant"
)

// Domains lists every known domain in load order.
func Domains() []Domain {
	return []Domain{DomainAttraction, DomainRestaurant}
}

// IsValid reports whether d is a known domain.
func (d Domain) IsValid() bool {
	return d == DomainAttraction || d == DomainRestaurant
}

func (d Domain) String() string { return string(d) }

// ParseDomain validates a domain name from external input.
func ParseDomain(s string) (Domain, error) {
	d := Domain(s)
	if !d.IsValid() {
		return "", fmt.Errorf("unknown domain %q", s)
	}
	return d, nil
}
