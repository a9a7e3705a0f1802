package index

import (
	"math"
	"sort"
)

// BM25 Okapi parameters.
const (
	bm25K1      = 1.5
	bm25B       = 0.75
	bm25Epsilon = 0.25 // floor for negative IDFs, as a fraction of the mean IDF
)

// Lexical is a BM25 Okapi index over tokenized record text. Corpus-wide
// term statistics (document frequencies, average document length) are
// computed once at construction.
type Lexical struct {
	termFreqs []map[string]int // per document: term -> occurrences
	docLens   []float64
	avgDocLen float64
	idf       map[string]float64
}

// NewLexical builds a lexical index from the per-record token sequences.
// The slice order must match the record table's row order.
func NewLexical(docs [][]string) *Lexical {
	l := &Lexical{
		termFreqs: make([]map[string]int, len(docs)),
		docLens:   make([]float64, len(docs)),
		idf:       make(map[string]float64),
	}

	df := make(map[string]int)
	var totalLen float64
	for i, tokens := range docs {
		tf := make(map[string]int, len(tokens))
		for _, t := range tokens {
			tf[t]++
		}
		for t := range tf {
			df[t]++
		}
		l.termFreqs[i] = tf
		l.docLens[i] = float64(len(tokens))
		totalLen += float64(len(tokens))
	}
	if len(docs) > 0 {
		l.avgDocLen = totalLen / float64(len(docs))
	}

	// IDF per Okapi: ln((N - df + 0.5) / (df + 0.5)). Terms appearing in
	// more than half the corpus get a negative IDF; those are floored to
	// epsilon times the mean IDF so common terms still contribute a
	// small positive amount.
	n := float64(len(docs))
	var idfSum float64
	var negative []string
	for t, f := range df {
		v := math.Log((n - float64(f) + 0.5) / (float64(f) + 0.5))
		l.idf[t] = v
		idfSum += v
		if v < 0 {
			negative = append(negative, t)
		}
	}
	if len(df) > 0 {
		floor := bm25Epsilon * (idfSum / float64(len(df)))
		for _, t := range negative {
			l.idf[t] = floor
		}
	}

	return l
}

// Len returns the number of indexed documents.
func (l *Lexical) Len() int { return len(l.termFreqs) }

// Search scores every document against the tokenized query and returns
// the top-n by descending relevance. Documents sharing no terms with
// the query score zero but are still eligible for the ranked list; the
// relative ordering is what callers may rely on, not the magnitudes.
func (l *Lexical) Search(query []string, n int) []Hit {
	hits := make([]Hit, len(l.termFreqs))
	for i := range l.termFreqs {
		hits[i] = Hit{ID: i, Score: l.score(query, i)}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if n < len(hits) {
		hits = hits[:n]
	}
	return hits
}

// score computes the BM25 Okapi relevance of document doc for the query.
func (l *Lexical) score(query []string, doc int) float64 {
	tf := l.termFreqs[doc]
	norm := bm25K1 * (1 - bm25B + bm25B*l.docLens[doc]/l.avgDocLen)

	var s float64
	for _, t := range query {
		f := float64(tf[t])
		if f == 0 {
			continue
		}
		s += l.idf[t] * f * (bm25K1 + 1) / (f + norm)
	}
	return s
}
