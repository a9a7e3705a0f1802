package index

import (
	"fmt"
	"sort"

	"github.com/tourgether/tourgether/internal/domain"
)

// Dense is a flat cosine-similarity index over record embeddings.
// Vectors are unit-normalized at construction, so similarity reduces to
// a dot product. Query vectors must be unit-normalized by the caller.
type Dense struct {
	vectors [][]float32
	dim     int
}

// NewDense builds a dense index from per-record embeddings. All vectors
// must share one dimensionality; they are normalized in place.
func NewDense(vectors [][]float32) (*Dense, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no vectors")
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dim)
		}
		domain.NormalizeVector(v)
	}
	return &Dense{vectors: vectors, dim: dim}, nil
}

// Len returns the number of indexed vectors.
func (d *Dense) Len() int { return len(d.vectors) }

// Dim returns the vector dimensionality.
func (d *Dense) Dim() int { return d.dim }

// Search returns the top-n records by cosine similarity to query,
// ordered by descending score. Ties keep row order. Returns fewer than
// n hits only when the index holds fewer than n vectors.
func (d *Dense) Search(query []float32, n int) ([]Hit, error) {
	if len(query) != d.dim {
		return nil, fmt.Errorf("query dimension %d, index dimension %d", len(query), d.dim)
	}

	hits := make([]Hit, len(d.vectors))
	for i, v := range d.vectors {
		var dot float64
		for j, q := range query {
			dot += float64(q) * float64(v[j])
		}
		hits[i] = Hit{ID: i, Score: dot}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if n < len(hits) {
		hits = hits[:n]
	}
	return hits, nil
}
