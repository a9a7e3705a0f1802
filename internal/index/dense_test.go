package index

import (
	"math"
	"testing"
)

func TestNewDense(t *testing.T) {
	t.Run("rejects empty input", func(t *testing.T) {
		if _, err := NewDense(nil); err == nil {
			t.Fatal("expected error for empty input")
		}
	})

	t.Run("rejects mismatched dimensions", func(t *testing.T) {
		_, err := NewDense([][]float32{{1, 0}, {1, 0, 0}})
		if err == nil {
			t.Fatal("expected error for mismatched dimensions")
		}
	})

	t.Run("normalizes vectors at construction", func(t *testing.T) {
		vectors := [][]float32{{3, 4}}
		d, err := NewDense(vectors)
		if err != nil {
			t.Fatalf("NewDense: %v", err)
		}

		hits, err := d.Search([]float32{0.6, 0.8}, 1)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		// (3,4) normalized is (0.6, 0.8); similarity with itself is 1.
		if math.Abs(hits[0].Score-1.0) > 1e-6 {
			t.Errorf("score = %v, want 1.0", hits[0].Score)
		}
	})
}

func TestDenseSearch(t *testing.T) {
	d, err := NewDense([][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.707, 0.707, 0},
	})
	if err != nil {
		t.Fatalf("NewDense: %v", err)
	}

	t.Run("ranks by cosine similarity", func(t *testing.T) {
		hits, err := d.Search([]float32{1, 0, 0}, 3)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(hits) != 3 {
			t.Fatalf("got %d hits, want 3", len(hits))
		}
		if hits[0].ID != 0 {
			t.Errorf("top hit = %d, want 0", hits[0].ID)
		}
		if hits[1].ID != 2 {
			t.Errorf("second hit = %d, want 2", hits[1].ID)
		}
		for i := 1; i < len(hits); i++ {
			if hits[i].Score > hits[i-1].Score {
				t.Errorf("hits not sorted descending at %d", i)
			}
		}
	})

	t.Run("truncates to n", func(t *testing.T) {
		hits, err := d.Search([]float32{1, 0, 0}, 2)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(hits) != 2 {
			t.Errorf("got %d hits, want 2", len(hits))
		}
	})

	t.Run("n larger than index returns all", func(t *testing.T) {
		hits, err := d.Search([]float32{1, 0, 0}, 100)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(hits) != 3 {
			t.Errorf("got %d hits, want 3", len(hits))
		}
	})

	t.Run("rejects dimension mismatch", func(t *testing.T) {
		if _, err := d.Search([]float32{1, 0}, 3); err == nil {
			t.Fatal("expected error for query dimension mismatch")
		}
	})

	t.Run("ties keep row order", func(t *testing.T) {
		tied, err := NewDense([][]float32{{0, 1}, {0, 1}, {0, 1}})
		if err != nil {
			t.Fatalf("NewDense: %v", err)
		}
		hits, err := tied.Search([]float32{0, 1}, 3)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		for i, h := range hits {
			if h.ID != i {
				t.Errorf("hit %d has id %d, want %d", i, h.ID, i)
			}
		}
	})
}
