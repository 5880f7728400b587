// Package vocab incrementally builds a term vocabulary from a stream of
// tokenized documents. Each document's token sequence is expanded into
// n-grams, every unique n-gram string becomes a term with a stable integer
// id, and two statistics are tracked per term: total occurrences across the
// corpus and the number of distinct documents containing it.
//
// The package consumes already-tokenized sequences; tokenization,
// normalization, and filtering are the caller's responsibility.
package vocab

import (
	"sort"
	"sync"

	"github.com/cognicore/vocab/pkg/vocab/ngram"
)

// TermStat is one row of the exported vocabulary table.
type TermStat struct {
	Term      string // the delimiter-joined n-gram
	ID        int    // dense 0-based id, assigned at first sighting
	TermCount int64  // total occurrences across the corpus, counting repeats
	DocCount  int64  // number of distinct documents containing the term
}

// termRecord is the mutable per-term state inside the table.
type termRecord struct {
	id        int
	termCount int64
	docCount  int64
}

// Options configures a Vocabulary at construction time.
type Options struct {
	NgramMin  int    // minimum n-gram order, >= 1
	NgramMax  int    // maximum n-gram order, >= NgramMin
	Delimiter string // joins multi-token n-grams; empty means ngram.DefaultDelimiter
}

// Vocabulary accumulates term statistics over its lifetime. State grows
// monotonically: there is no reset or deletion, and ids are never reused.
//
// Ingestion is strictly sequential; term-id assignment depends only on
// document order. A mutex serializes writers so the structure is safe for
// concurrent callers, but it does not parallelize ingestion.
type Vocabulary struct {
	mu    sync.RWMutex
	gen   *ngram.Generator
	terms map[string]*termRecord

	documents int64
	tokens    int64

	// distinct terms of the document being ingested, reused across calls
	scratch map[string]struct{}
}

// New creates an empty vocabulary. Invalid n-gram bounds fail here, before
// any ingestion.
func New(opts Options) (*Vocabulary, error) {
	gen, err := ngram.NewGenerator(opts.NgramMin, opts.NgramMax, opts.Delimiter)
	if err != nil {
		return nil, err
	}
	return &Vocabulary{
		gen:     gen,
		terms:   make(map[string]*termRecord),
		scratch: make(map[string]struct{}),
	}, nil
}

// InsertDocument ingests one document's token sequence. An empty sequence
// is not an error: it produces no n-grams but still counts as a document.
//
// Every n-gram occurrence increments the term's total count; each distinct
// term in the document has its document count incremented exactly once,
// regardless of how often it repeats within the document.
func (v *Vocabulary) InsertDocument(tokens []string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.documents++
	clear(v.scratch)

	for _, term := range v.gen.Generate(tokens) {
		v.scratch[term] = struct{}{}
		if rec, ok := v.terms[term]; ok {
			rec.termCount++
		} else {
			v.terms[term] = &termRecord{id: len(v.terms), termCount: 1}
		}
		v.tokens++
	}

	for term := range v.scratch {
		v.terms[term].docCount++
	}
}

// InsertDocumentBatch ingests documents one at a time, strictly in order,
// so the final state is identical to the same sequence of InsertDocument
// calls.
func (v *Vocabulary) InsertDocumentBatch(documents [][]string) {
	for _, doc := range documents {
		v.InsertDocument(doc)
	}
}

// Export returns one row per unique term, sorted by term id ascending.
// Map iteration order is not stable, so the export sorts explicitly to
// keep results reproducible across runs. Export does not mutate state;
// calling it twice without intervening ingestion yields identical results.
func (v *Vocabulary) Export() []TermStat {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]TermStat, 0, len(v.terms))
	for term, rec := range v.terms {
		out = append(out, TermStat{
			Term:      term,
			ID:        rec.id,
			TermCount: rec.termCount,
			DocCount:  rec.docCount,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Documents returns the number of documents ingested so far.
func (v *Vocabulary) Documents() int64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.documents
}

// Tokens returns the number of n-grams ingested so far, counting repeats.
func (v *Vocabulary) Tokens() int64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.tokens
}

// Size returns the number of unique terms in the table.
func (v *Vocabulary) Size() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.terms)
}

// NgramMin returns the configured minimum n-gram order.
func (v *Vocabulary) NgramMin() int { return v.gen.Min() }

// NgramMax returns the configured maximum n-gram order.
func (v *Vocabulary) NgramMax() int { return v.gen.Max() }

// Delimiter returns the configured n-gram delimiter.
func (v *Vocabulary) Delimiter() string { return v.gen.Delimiter() }
