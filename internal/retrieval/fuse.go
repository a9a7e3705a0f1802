// Package retrieval implements hybrid retrieval: a dense and a lexical
// ranked list per domain, fused into one ranking by weighted min-max
// normalized scores.
package retrieval

import (
	"sort"

	"github.com/tourgether/tourgether/internal/index"
)

// Fusion weights. Dense similarity carries semantic relevance and gets
// the larger share; lexical relevance boosts exact mentions of place
// names and cuisine terms.
const (
	weightDense   = 0.6
	weightLexical = 0.4
)

// Candidate is one fused entry: the raw sub-search scores (valid only
// when the matching In flag is set), their normalized forms, and the
// weighted combination.
type Candidate struct {
	RecordID          int
	DenseScore        float64
	LexicalScore      float64
	InDense           bool
	InLexical         bool
	NormalizedDense   float64
	NormalizedLexical float64
	Combined          float64
}

// Fuse normalizes the two ranked lists independently, unions them by
// record id and combines scores as 0.6*dense + 0.4*lexical, treating a
// missing contribution as 0. The union is ordered dense-first so the
// stable sort breaks ties reproducibly. Returns at most topK candidates
// by descending combined score.
func Fuse(dense, lexical []index.Hit, topK int) []Candidate {
	denseNorm := normalize(dense)
	lexicalNorm := normalize(lexical)

	byID := make(map[int]*Candidate, len(dense)+len(lexical))
	order := make([]int, 0, len(dense)+len(lexical))

	for _, h := range dense {
		byID[h.ID] = &Candidate{
			RecordID:        h.ID,
			DenseScore:      h.Score,
			InDense:         true,
			NormalizedDense: denseNorm[h.ID],
		}
		order = append(order, h.ID)
	}
	for _, h := range lexical {
		c, ok := byID[h.ID]
		if !ok {
			c = &Candidate{RecordID: h.ID}
			byID[h.ID] = c
			order = append(order, h.ID)
		}
		c.LexicalScore = h.Score
		c.InLexical = true
		c.NormalizedLexical = lexicalNorm[h.ID]
	}

	out := make([]Candidate, 0, len(order))
	for _, id := range order {
		c := byID[id]
		c.Combined = weightDense*c.NormalizedDense + weightLexical*c.NormalizedLexical
		out = append(out, *c)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Combined > out[j].Combined })

	if topK < len(out) {
		out = out[:topK]
	}
	return out
}

// normalize min-max scales one ranked list's scores to [0, 1] over the
// scores present in that list only. When every score is equal
// (including a singleton list) each normalizes to 1.0: a ranked
// candidate is never zeroed out just because its list was flat.
func normalize(hits []index.Hit) map[int]float64 {
	if len(hits) == 0 {
		return map[int]float64{}
	}

	minScore, maxScore := hits[0].Score, hits[0].Score
	for _, h := range hits[1:] {
		if h.Score < minScore {
			minScore = h.Score
		}
		if h.Score > maxScore {
			maxScore = h.Score
		}
	}

	out := make(map[int]float64, len(hits))
	if maxScore == minScore {
		for _, h := range hits {
			out[h.ID] = 1.0
		}
		return out
	}
	for _, h := range hits {
		out[h.ID] = (h.Score - minScore) / (maxScore - minScore)
	}
	return out
}
