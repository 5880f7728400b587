// Package store defines persistence for exported vocabulary statistics.
// The vocabulary itself only exports in memory; storing a snapshot is a
// caller-side concern served by the implementations in the subpackages.
package store

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/vocab/pkg/vocab"
)

// Store persists vocabulary snapshots.
type Store interface {
	Close() error

	SaveSnapshot(ctx context.Context, s Snapshot) error
	GetSnapshot(ctx context.Context, id string) (Snapshot, bool, error)
	ListSnapshots(ctx context.Context) ([]SnapshotInfo, error)

	// TopTerms returns up to k terms of a snapshot ordered by descending
	// total count, ties broken by ascending term id.
	TopTerms(ctx context.Context, id string, k int) ([]TermRow, error)
}

// Snapshot is one exported vocabulary together with the configuration
// that produced it.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	NgramMin  int
	NgramMax  int
	Delimiter string
	Documents int64
	Tokens    int64
	Terms     []TermRow
}

// SnapshotInfo is snapshot metadata without the term rows.
type SnapshotInfo struct {
	ID        string
	CreatedAt time.Time
	Documents int64
	Tokens    int64
	TermCount int
}

// TermRow is one term's statistics within a snapshot.
type TermRow struct {
	Term      string
	TermID    int
	TermCount int64
	DocCount  int64
}

// NewSnapshot captures the current state of a vocabulary under a fresh id.
func NewSnapshot(ids *IDGenerator, v *vocab.Vocabulary) Snapshot {
	stats := v.Export()
	terms := make([]TermRow, len(stats))
	for i, s := range stats {
		terms[i] = TermRow{
			Term:      s.Term,
			TermID:    s.ID,
			TermCount: s.TermCount,
			DocCount:  s.DocCount,
		}
	}
	return Snapshot{
		ID:        ids.NewID(),
		CreatedAt: time.Now().UTC(),
		NgramMin:  v.NgramMin(),
		NgramMax:  v.NgramMax(),
		Delimiter: v.Delimiter(),
		Documents: v.Documents(),
		Tokens:    v.Tokens(),
		Terms:     terms,
	}
}

// IDGenerator mints ULID snapshot ids with monotonic ordering.
type IDGenerator struct {
	entropy *ulid.MonotonicEntropy
}

// NewIDGenerator creates an id generator backed by crypto/rand.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// NewID returns a new ULID string.
func (g *IDGenerator) NewID() string {
	return ulid.MustNew(ulid.Now(), g.entropy).String()
}
