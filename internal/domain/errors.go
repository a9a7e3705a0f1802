package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals a client request that failed validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrCorpusLoad signals missing or inconsistent corpus artifacts.
	ErrCorpusLoad = errors.New("corpus load failed")
	// ErrDomainUnavailable signals that a domain's corpus did not load at startup.
	ErrDomainUnavailable = errors.New("domain unavailable")
	// ErrEmbeddingProvider signals an embedding service failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrEmbeddingTimeout signals an embedding call that exceeded its deadline.
	ErrEmbeddingTimeout = errors.New("embedding timeout")
	// ErrGenerationProvider signals a language-model call failure.
	ErrGenerationProvider = errors.New("generation provider error")
	// ErrRegionNotFound signals an unknown region name.
	ErrRegionNotFound = errors.New("region not found")
	// ErrClassifierUnavailable signals that the region classifier is not configured or unreachable.
	ErrClassifierUnavailable = errors.New("classifier unavailable")
)

// CorpusLoadError wraps ErrCorpusLoad with the affected domain and cause.
type CorpusLoadError struct {
	Domain Domain
	Err    error
}

func (e *CorpusLoadError) Error() string {
	return fmt.Sprintf("%s: domain %q: %v", ErrCorpusLoad.Error(), e.Domain, e.Err)
}

func (e *CorpusLoadError) Unwrap() error { return ErrCorpusLoad }

// NewCorpusLoadError creates a corpus load error for a domain.
func NewCorpusLoadError(d Domain, err error) error {
	return &CorpusLoadError{Domain: d, Err: err}
}
