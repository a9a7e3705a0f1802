package retrieval

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tourgether/tourgether/internal/corpus"
	"github.com/tourgether/tourgether/internal/domain"
	"github.com/tourgether/tourgether/internal/index"
	"github.com/tourgether/tourgether/internal/logger"
	"github.com/tourgether/tourgether/internal/metrics"
)

// CandidatePool is how many candidates each sub-search contributes
// before fusion. Larger than any final top-k so the two lists overlap
// enough for combined rankings to mean something; fusing two disjoint
// lists would degenerate to concatenation.
const CandidatePool = 10

// Document is a retrieved record joined with its combined score.
type Document struct {
	domain.Record
	Score float64
}

// Retriever runs one query against one domain end to end: embed,
// dense search, lexical search, fuse, join back to records.
type Retriever struct {
	store    *corpus.Store
	embedder domain.Embedder
}

// New creates a hybrid retriever over the given corpus store.
func New(store *corpus.Store, embedder domain.Embedder) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// Retrieve returns the top-k documents for the query, ordered by
// descending combined score. An embedding failure fails the whole
// retrieval; there is no lexical-only fallback. An unloaded domain
// fails fast with ErrDomainUnavailable.
func (r *Retriever) Retrieve(
	ctx context.Context, query string, d domain.Domain, topK int,
) ([]Document, error) {
	c, err := r.store.Get(d)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	embResult, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryVec := domain.NormalizeVector(embResult.Embedding)

	denseHits, err := c.Dense().Search(queryVec, CandidatePool)
	if err != nil {
		return nil, fmt.Errorf("dense search: %w", err)
	}
	lexicalHits := c.Lexical().Search(index.Tokenize(query), CandidatePool)

	candidates := Fuse(denseHits, lexicalHits, topK)

	docs := make([]Document, 0, len(candidates))
	for _, cand := range candidates {
		rec, ok := c.Record(cand.RecordID)
		if !ok {
			// The indexes and the table are built from one row sequence;
			// an out-of-range id means the load-time validation is broken.
			return nil, fmt.Errorf("candidate id %d outside record table (%d rows)",
				cand.RecordID, c.Len())
		}
		docs = append(docs, Document{Record: rec, Score: cand.Combined})
	}

	metrics.RetrievalDuration.WithLabelValues(d.String()).Observe(time.Since(start).Seconds())
	metrics.RetrievalCandidates.WithLabelValues(d.String()).Observe(float64(len(docs)))

	logger.FromContext(ctx).Debug("hybrid retrieval",
		zap.String("domain", d.String()),
		zap.Int("dense_hits", len(denseHits)),
		zap.Int("lexical_hits", len(lexicalHits)),
		zap.Int("returned", len(docs)),
		zap.Duration("took", time.Since(start)),
	)

	return docs, nil
}
