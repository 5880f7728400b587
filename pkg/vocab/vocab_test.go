package vocab

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/vocab/pkg/vocab/internalerr"
)

func newVocab(t *testing.T, min, max int) *Vocabulary {
	t.Helper()
	v, err := New(Options{NgramMin: min, NgramMax: max})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func findTerm(t *testing.T, stats []TermStat, term string) TermStat {
	t.Helper()
	for _, s := range stats {
		if s.Term == term {
			return s
		}
	}
	t.Fatalf("Term %q not found in export", term)
	return TermStat{}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Options{NgramMin: 0, NgramMax: 2}); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for min=0, got %v", err)
	}
	if _, err := New(Options{NgramMin: 3, NgramMax: 2}); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for min>max, got %v", err)
	}
}

func TestRepeatedTermCountedOncePerDocument(t *testing.T) {
	v := newVocab(t, 1, 1)

	v.InsertDocument([]string{"a", "a", "b"})

	stats := v.Export()
	a := findTerm(t, stats, "a")
	if a.TermCount != 2 {
		t.Errorf("Term 'a' TermCount = %d, want 2", a.TermCount)
	}
	if a.DocCount != 1 {
		t.Errorf("Term 'a' DocCount = %d, want 1", a.DocCount)
	}

	b := findTerm(t, stats, "b")
	if b.TermCount != 1 || b.DocCount != 1 {
		t.Errorf("Term 'b' = %+v, want TermCount 1, DocCount 1", b)
	}
}

func TestDocumentCountAcrossDocuments(t *testing.T) {
	v := newVocab(t, 1, 1)

	v.InsertDocument([]string{"alpha", "beta"})
	v.InsertDocument([]string{"beta", "beta", "gamma"})

	stats := v.Export()
	beta := findTerm(t, stats, "beta")
	if beta.TermCount != 3 {
		t.Errorf("Term 'beta' TermCount = %d, want 3", beta.TermCount)
	}
	if beta.DocCount != 2 {
		t.Errorf("Term 'beta' DocCount = %d, want 2", beta.DocCount)
	}

	alpha := findTerm(t, stats, "alpha")
	if alpha.DocCount != 1 {
		t.Errorf("Term 'alpha' DocCount = %d, want 1", alpha.DocCount)
	}
}

func TestEmptyDocumentStillCounts(t *testing.T) {
	v := newVocab(t, 1, 2)

	v.InsertDocument(nil)
	v.InsertDocument([]string{})

	if v.Documents() != 2 {
		t.Errorf("Documents = %d, want 2", v.Documents())
	}
	if v.Tokens() != 0 {
		t.Errorf("Tokens = %d, want 0", v.Tokens())
	}
	if v.Size() != 0 {
		t.Errorf("Size = %d, want 0", v.Size())
	}
}

func TestTermIDsDenseInFirstSeenOrder(t *testing.T) {
	v := newVocab(t, 1, 2)

	// Generation order: a, a_b, b — then the second document adds c.
	v.InsertDocument([]string{"a", "b"})
	v.InsertDocument([]string{"c"})

	stats := v.Export()

	wantOrder := []string{"a", "a_b", "b", "c"}
	if len(stats) != len(wantOrder) {
		t.Fatalf("Export length = %d, want %d", len(stats), len(wantOrder))
	}
	for i, s := range stats {
		if s.ID != i {
			t.Errorf("Export[%d].ID = %d, want %d (ids must be dense)", i, s.ID, i)
		}
		if s.Term != wantOrder[i] {
			t.Errorf("Export[%d].Term = %q, want %q", i, s.Term, wantOrder[i])
		}
	}
}

func TestTokensCountsRepeats(t *testing.T) {
	v := newVocab(t, 1, 2)

	// [x, y, x] with min=1, max=2 yields x, x_y, y, y_x, x — five n-grams,
	// four unique terms.
	v.InsertDocument([]string{"x", "y", "x"})

	if v.Tokens() != 5 {
		t.Errorf("Tokens = %d, want 5", v.Tokens())
	}
	if v.Size() != 4 {
		t.Errorf("Size = %d, want 4", v.Size())
	}
}

func TestDocCountNeverExceedsTermCount(t *testing.T) {
	v := newVocab(t, 1, 2)

	docs := [][]string{
		{"a", "b", "a"},
		{"b", "b"},
		{},
		{"a", "b", "c", "a", "b"},
	}
	v.InsertDocumentBatch(docs)

	total := v.Documents()
	for _, s := range v.Export() {
		if s.DocCount > s.TermCount {
			t.Errorf("Term %q: DocCount %d > TermCount %d", s.Term, s.DocCount, s.TermCount)
		}
		if s.DocCount > total {
			t.Errorf("Term %q: DocCount %d > total documents %d", s.Term, s.DocCount, total)
		}
	}
}

func TestBatchMatchesSequential(t *testing.T) {
	docs := [][]string{
		{"the", "quick", "fox"},
		{"the", "lazy", "dog"},
		{},
		{"quick", "quick", "fox"},
	}

	batch := newVocab(t, 1, 2)
	batch.InsertDocumentBatch(docs)

	sequential := newVocab(t, 1, 2)
	for _, d := range docs {
		sequential.InsertDocument(d)
	}

	if !reflect.DeepEqual(batch.Export(), sequential.Export()) {
		t.Error("Batch ingestion diverged from sequential ingestion")
	}
	if batch.Documents() != sequential.Documents() {
		t.Errorf("Documents mismatch: %d vs %d", batch.Documents(), sequential.Documents())
	}
	if batch.Tokens() != sequential.Tokens() {
		t.Errorf("Tokens mismatch: %d vs %d", batch.Tokens(), sequential.Tokens())
	}
}

func TestExportIdempotent(t *testing.T) {
	v := newVocab(t, 1, 3)

	v.InsertDocument([]string{"a", "b", "c", "a"})

	first := v.Export()
	second := v.Export()

	if !reflect.DeepEqual(first, second) {
		t.Error("Two exports without ingestion differ")
	}
}

func TestExportSortedByID(t *testing.T) {
	v := newVocab(t, 1, 1)

	v.InsertDocument([]string{"zeta", "alpha", "mu", "beta"})

	stats := v.Export()
	for i := 1; i < len(stats); i++ {
		if stats[i].ID <= stats[i-1].ID {
			t.Fatalf("Export not sorted by id: %v", stats)
		}
	}
	if stats[0].Term != "zeta" || stats[0].ID != 0 {
		t.Errorf("First term = %+v, want zeta with id 0", stats[0])
	}
}

func TestConfigAccessors(t *testing.T) {
	v, err := New(Options{NgramMin: 2, NgramMax: 3, Delimiter: "-"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if v.NgramMin() != 2 || v.NgramMax() != 3 || v.Delimiter() != "-" {
		t.Errorf("Config accessors = (%d, %d, %q), want (2, 3, \"-\")",
			v.NgramMin(), v.NgramMax(), v.Delimiter())
	}
}
