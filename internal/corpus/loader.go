package corpus

import (
	"fmt"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"github.com/tourgether/tourgether/internal/domain"
	"github.com/tourgether/tourgether/internal/index"
)

// recordRow is the parquet schema of a domain's record table.
type recordRow struct {
	Text       string `parquet:"text"`
	PictureURL string `parquet:"picture_url,optional"`
	Name       string `parquet:"name,optional"`
}

// embeddingRow is the parquet schema of a domain's dense vector artifact.
// Row order must match the record table exactly.
type embeddingRow struct {
	Vector []float32 `parquet:"vector,list"`
}

// RecordsFile returns the record table artifact name for a domain.
func RecordsFile(d domain.Domain) string {
	return fmt.Sprintf("%s_records.parquet", d)
}

// EmbeddingsFile returns the dense vector artifact name for a domain.
func EmbeddingsFile(d domain.Domain) string {
	return fmt.Sprintf("%s_embeddings.parquet", d)
}

// LoadDomain reads one domain's artifacts from dir and builds its
// corpus. Any missing or inconsistent artifact is a CorpusLoadError:
// the row counts of the two files must match, the table must be
// non-empty, and every vector must share one dimensionality. Corpus
// vectors are unit-normalized here, satisfying the dense index's cosine
// precondition once for the process lifetime.
func LoadDomain(dir string, d domain.Domain) (*Corpus, error) {
	rows, err := parquet.ReadFile[recordRow](filepath.Join(dir, RecordsFile(d)))
	if err != nil {
		return nil, domain.NewCorpusLoadError(d, fmt.Errorf("read records: %w", err))
	}
	if len(rows) == 0 {
		return nil, domain.NewCorpusLoadError(d, fmt.Errorf("record table is empty"))
	}

	embRows, err := parquet.ReadFile[embeddingRow](filepath.Join(dir, EmbeddingsFile(d)))
	if err != nil {
		return nil, domain.NewCorpusLoadError(d, fmt.Errorf("read embeddings: %w", err))
	}
	if len(embRows) != len(rows) {
		return nil, domain.NewCorpusLoadError(d, fmt.Errorf(
			"record count %d does not match vector count %d", len(rows), len(embRows)))
	}

	records := make([]domain.Record, len(rows))
	tokens := make([][]string, len(rows))
	vectors := make([][]float32, len(rows))
	for i, r := range rows {
		records[i] = domain.Record{
			ID:         i,
			Text:       r.Text,
			PictureURL: r.PictureURL,
			Name:       r.Name,
		}
		tokens[i] = index.Tokenize(r.Text)
		vectors[i] = embRows[i].Vector
	}

	dense, err := index.NewDense(vectors)
	if err != nil {
		return nil, domain.NewCorpusLoadError(d, fmt.Errorf("build dense index: %w", err))
	}

	return New(d, records, dense, index.NewLexical(tokens)), nil
}

// LoadStore loads every known domain from dir. A domain whose artifacts
// fail to load is logged and left unavailable; retrieval against it
// fails fast instead of returning empty results.
func LoadStore(dir string, logger *zap.Logger) *Store {
	s := NewStore()
	for _, d := range domain.Domains() {
		c, err := LoadDomain(dir, d)
		if err != nil {
			logger.Error("Failed to load corpus",
				zap.String("domain", d.String()),
				zap.Error(err),
			)
			continue
		}
		s.Put(c)
		logger.Info("Corpus loaded",
			zap.String("domain", d.String()),
			zap.Int("records", c.Len()),
			zap.Int("dimensions", c.Dense().Dim()),
		)
	}
	return s
}
