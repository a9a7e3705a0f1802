package corpus

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"github.com/tourgether/tourgether/internal/domain"
)

func writeRecords(t *testing.T, dir string, d domain.Domain, rows []recordRow) {
	t.Helper()
	if err := parquet.WriteFile(filepath.Join(dir, RecordsFile(d)), rows); err != nil {
		t.Fatalf("write records fixture: %v", err)
	}
}

func writeEmbeddings(t *testing.T, dir string, d domain.Domain, rows []embeddingRow) {
	t.Helper()
	if err := parquet.WriteFile(filepath.Join(dir, EmbeddingsFile(d)), rows); err != nil {
		t.Fatalf("write embeddings fixture: %v", err)
	}
}

func TestLoadDomain(t *testing.T) {
	t.Run("loads aligned artifacts", func(t *testing.T) {
		dir := t.TempDir()
		writeRecords(t, dir, domain.DomainAttraction, []recordRow{
			{Text: "Historic castle tour", Name: "Castle", PictureURL: "https://img.example/castle.jpg"},
			{Text: "Sunny beach day", Name: "Beach"},
		})
		writeEmbeddings(t, dir, domain.DomainAttraction, []embeddingRow{
			{Vector: []float32{3, 4}},
			{Vector: []float32{0, 2}},
		})

		c, err := LoadDomain(dir, domain.DomainAttraction)
		if err != nil {
			t.Fatalf("LoadDomain: %v", err)
		}
		if c.Len() != 2 {
			t.Fatalf("Len = %d, want 2", c.Len())
		}
		if c.Domain() != domain.DomainAttraction {
			t.Errorf("Domain = %v, want attraction", c.Domain())
		}

		rec, ok := c.Record(0)
		if !ok {
			t.Fatal("Record(0) not found")
		}
		if rec.Name != "Castle" || rec.PictureURL == "" {
			t.Errorf("unexpected record: %+v", rec)
		}

		// Vectors were unit-normalized at load: self-similarity is 1.
		hits, err := c.Dense().Search([]float32{0.6, 0.8}, 1)
		if err != nil {
			t.Fatalf("dense search: %v", err)
		}
		if hits[0].ID != 0 {
			t.Errorf("top dense hit = %d, want 0", hits[0].ID)
		}
	})

	t.Run("missing records file", func(t *testing.T) {
		_, err := LoadDomain(t.TempDir(), domain.DomainAttraction)
		if !errors.Is(err, domain.ErrCorpusLoad) {
			t.Errorf("err = %v, want ErrCorpusLoad", err)
		}
	})

	t.Run("missing embeddings file", func(t *testing.T) {
		dir := t.TempDir()
		writeRecords(t, dir, domain.DomainAttraction, []recordRow{{Text: "x"}})

		_, err := LoadDomain(dir, domain.DomainAttraction)
		if !errors.Is(err, domain.ErrCorpusLoad) {
			t.Errorf("err = %v, want ErrCorpusLoad", err)
		}
	})

	t.Run("row count mismatch", func(t *testing.T) {
		dir := t.TempDir()
		writeRecords(t, dir, domain.DomainRestaurant, []recordRow{
			{Text: "Ramen bar"}, {Text: "Tapas place"},
		})
		writeEmbeddings(t, dir, domain.DomainRestaurant, []embeddingRow{
			{Vector: []float32{1, 0}},
		})

		_, err := LoadDomain(dir, domain.DomainRestaurant)
		if !errors.Is(err, domain.ErrCorpusLoad) {
			t.Fatalf("err = %v, want ErrCorpusLoad", err)
		}
		var loadErr *domain.CorpusLoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("err = %v, want CorpusLoadError", err)
		}
		if loadErr.Domain != domain.DomainRestaurant {
			t.Errorf("error domain = %v, want restaurant", loadErr.Domain)
		}
	})

	t.Run("mismatched vector dimensions", func(t *testing.T) {
		dir := t.TempDir()
		writeRecords(t, dir, domain.DomainAttraction, []recordRow{
			{Text: "a"}, {Text: "b"},
		})
		writeEmbeddings(t, dir, domain.DomainAttraction, []embeddingRow{
			{Vector: []float32{1, 0}},
			{Vector: []float32{1, 0, 0}},
		})

		_, err := LoadDomain(dir, domain.DomainAttraction)
		if !errors.Is(err, domain.ErrCorpusLoad) {
			t.Errorf("err = %v, want ErrCorpusLoad", err)
		}
	})
}

func TestLoadStore(t *testing.T) {
	dir := t.TempDir()
	writeRecords(t, dir, domain.DomainAttraction, []recordRow{{Text: "Castle tour"}})
	writeEmbeddings(t, dir, domain.DomainAttraction, []embeddingRow{{Vector: []float32{1, 0}}})
	// No restaurant artifacts: that domain must stay unavailable while
	// the attraction domain still loads.

	s := LoadStore(dir, zap.NewNop())

	if _, err := s.Get(domain.DomainAttraction); err != nil {
		t.Errorf("attraction unavailable: %v", err)
	}
	if _, err := s.Get(domain.DomainRestaurant); !errors.Is(err, domain.ErrDomainUnavailable) {
		t.Errorf("err = %v, want ErrDomainUnavailable", err)
	}

	available := s.Available()
	if len(available) != 1 || available[0] != domain.DomainAttraction {
		t.Errorf("Available = %v, want [attraction]", available)
	}
}
