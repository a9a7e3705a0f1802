// Package corpus loads and holds the per-domain record tables and their
// search indexes. Corpora are built once at startup and read-only for
// the process lifetime; a refresh requires a restart.
package corpus

import (
	"github.com/tourgether/tourgether/internal/domain"
	"github.com/tourgether/tourgether/internal/index"
)

// Corpus is the aligned triple for one domain: the ordered record
// table, the dense index and the lexical index. All three are built
// from the same row sequence, so a record's ID addresses each of them.
type Corpus struct {
	domain  domain.Domain
	records []domain.Record
	dense   *index.Dense
	lexical *index.Lexical
}

// New assembles a corpus from pre-built parts. Callers are responsible
// for the alignment invariant: records[i], the dense index row i and
// the lexical index document i must all describe the same item.
func New(d domain.Domain, records []domain.Record, dense *index.Dense, lexical *index.Lexical) *Corpus {
	return &Corpus{domain: d, records: records, dense: dense, lexical: lexical}
}

// Domain returns the corpus's content domain.
func (c *Corpus) Domain() domain.Domain { return c.domain }

// Len returns the number of records.
func (c *Corpus) Len() int { return len(c.records) }

// Record returns the record at row position id. ok is false for ids
// outside the table.
func (c *Corpus) Record(id int) (domain.Record, bool) {
	if id < 0 || id >= len(c.records) {
		return domain.Record{}, false
	}
	return c.records[id], true
}

// Dense returns the dense vector index.
func (c *Corpus) Dense() *index.Dense { return c.dense }

// Lexical returns the lexical index.
func (c *Corpus) Lexical() *index.Lexical { return c.lexical }
