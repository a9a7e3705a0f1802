package corpus

import (
	"fmt"

	"github.com/tourgether/tourgether/internal/domain"
)

// Store holds the loaded corpora, one per domain. It is populated once
// at startup and read-only afterwards, so concurrent reads need no
// locking.
type Store struct {
	corpora map[domain.Domain]*Corpus
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{corpora: make(map[domain.Domain]*Corpus)}
}

// Put registers a loaded corpus. Only called during startup wiring.
func (s *Store) Put(c *Corpus) {
	s.corpora[c.Domain()] = c
}

// Get returns the corpus for a domain, or ErrDomainUnavailable if that
// domain's artifacts failed to load at startup.
func (s *Store) Get(d domain.Domain) (*Corpus, error) {
	c, ok := s.corpora[d]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDomainUnavailable, d)
	}
	return c, nil
}

// Available lists the domains that loaded successfully, in load order.
func (s *Store) Available() []domain.Domain {
	var out []domain.Domain
	for _, d := range domain.Domains() {
		if _, ok := s.corpora[d]; ok {
			out = append(out, d)
		}
	}
	return out
}
