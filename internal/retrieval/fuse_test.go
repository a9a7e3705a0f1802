package retrieval

import (
	"math"
	"testing"

	"github.com/tourgether/tourgether/internal/index"
)

func TestFuse(t *testing.T) {
	t.Run("combines overlapping lists with weighted scores", func(t *testing.T) {
		dense := []index.Hit{{ID: 0, Score: 0.9}, {ID: 1, Score: 0.5}, {ID: 2, Score: 0.1}}
		lexical := []index.Hit{{ID: 2, Score: 4.0}, {ID: 0, Score: 2.0}, {ID: 1, Score: 0.0}}

		got := Fuse(dense, lexical, 3)
		if len(got) != 3 {
			t.Fatalf("got %d candidates, want 3", len(got))
		}

		// Min-max over each list: dense 0->1.0, 1->0.5, 2->0.0;
		// lexical 2->1.0, 0->0.5, 1->0.0.
		want := map[int]float64{
			0: 0.6*1.0 + 0.4*0.5,
			1: 0.6*0.5 + 0.4*0.0,
			2: 0.6*0.0 + 0.4*1.0,
		}
		for _, c := range got {
			if math.Abs(c.Combined-want[c.RecordID]) > 1e-9 {
				t.Errorf("id %d combined = %v, want %v", c.RecordID, c.Combined, want[c.RecordID])
			}
		}
		if got[0].RecordID != 0 {
			t.Errorf("top candidate = %d, want 0", got[0].RecordID)
		}
	})

	t.Run("missing halves contribute zero", func(t *testing.T) {
		dense := []index.Hit{{ID: 0, Score: 0.8}, {ID: 1, Score: 0.2}}
		lexical := []index.Hit{{ID: 2, Score: 3.0}, {ID: 3, Score: 1.0}}

		got := Fuse(dense, lexical, 4)
		if len(got) != 4 {
			t.Fatalf("got %d candidates, want 4", len(got))
		}
		byID := make(map[int]Candidate, len(got))
		for _, c := range got {
			byID[c.RecordID] = c
		}

		if c := byID[0]; !c.InDense || c.InLexical {
			t.Errorf("id 0 flags: InDense=%v InLexical=%v", c.InDense, c.InLexical)
		}
		if c := byID[2]; c.InDense || !c.InLexical {
			t.Errorf("id 2 flags: InDense=%v InLexical=%v", c.InDense, c.InLexical)
		}
		// Dense-only top normalizes to 1.0 -> combined 0.6; lexical-only
		// top -> combined 0.4.
		if math.Abs(byID[0].Combined-0.6) > 1e-9 {
			t.Errorf("id 0 combined = %v, want 0.6", byID[0].Combined)
		}
		if math.Abs(byID[2].Combined-0.4) > 1e-9 {
			t.Errorf("id 2 combined = %v, want 0.4", byID[2].Combined)
		}
	})

	t.Run("flat list normalizes to all ones", func(t *testing.T) {
		dense := []index.Hit{{ID: 0, Score: 0.5}, {ID: 1, Score: 0.5}}
		got := Fuse(dense, nil, 2)
		for _, c := range got {
			if c.NormalizedDense != 1.0 {
				t.Errorf("id %d normalized = %v, want 1.0", c.RecordID, c.NormalizedDense)
			}
		}
	})

	t.Run("singleton lists normalize to one", func(t *testing.T) {
		got := Fuse(
			[]index.Hit{{ID: 7, Score: 0.123}},
			[]index.Hit{{ID: 7, Score: 9.9}},
			1,
		)
		if len(got) != 1 {
			t.Fatalf("got %d candidates, want 1", len(got))
		}
		if math.Abs(got[0].Combined-1.0) > 1e-9 {
			t.Errorf("combined = %v, want 1.0", got[0].Combined)
		}
	})

	t.Run("truncates to topK", func(t *testing.T) {
		dense := []index.Hit{{ID: 0, Score: 3}, {ID: 1, Score: 2}, {ID: 2, Score: 1}}
		got := Fuse(dense, nil, 2)
		if len(got) != 2 {
			t.Errorf("got %d candidates, want 2", len(got))
		}
	})

	t.Run("empty inputs yield empty output", func(t *testing.T) {
		if got := Fuse(nil, nil, 5); len(got) != 0 {
			t.Errorf("got %d candidates, want 0", len(got))
		}
	})

	t.Run("combined scores stay in unit range", func(t *testing.T) {
		dense := []index.Hit{{ID: 0, Score: -0.2}, {ID: 1, Score: 0.9}, {ID: 2, Score: 0.4}}
		lexical := []index.Hit{{ID: 1, Score: 12.5}, {ID: 3, Score: 0.0}}
		for _, c := range Fuse(dense, lexical, 10) {
			if c.Combined < 0 || c.Combined > 1 {
				t.Errorf("id %d combined = %v outside [0,1]", c.RecordID, c.Combined)
			}
		}
	})
}
