// Package index provides the in-memory dense and lexical indexes a
// domain corpus is searched through. Both indexes are built once from
// the same ordered record sequence and are safe for concurrent reads.
package index

// Hit is one ranked entry returned by a search: the record's row
// position and its raw score. Dense scores are cosine similarities in
// [-1, 1]; lexical scores are unbounded BM25 relevance values.
type Hit struct {
	ID    int
	Score float64
}
