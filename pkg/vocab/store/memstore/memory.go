package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/vocab/pkg/vocab/internalerr"
	"github.com/cognicore/vocab/pkg/vocab/store"
)

// Store is an in-memory implementation of store.Store for tests and
// short-lived tooling.
type Store struct {
	mu    sync.RWMutex
	snaps map[string]store.Snapshot
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{snaps: make(map[string]store.Snapshot)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveSnapshot stores a snapshot keyed by its id.
func (s *Store) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	if snap.ID == "" {
		return fmt.Errorf("%w: snapshot id is required", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snaps[snap.ID] = copySnapshot(snap)
	return nil
}

// GetSnapshot returns a snapshot by id.
func (s *Store) GetSnapshot(ctx context.Context, id string) (store.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if snap, ok := s.snaps[id]; ok {
		return copySnapshot(snap), true, nil
	}
	return store.Snapshot{}, false, nil
}

// ListSnapshots returns metadata for all stored snapshots, oldest first.
func (s *Store) ListSnapshots(ctx context.Context) ([]store.SnapshotInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]store.SnapshotInfo, 0, len(s.snaps))
	for _, snap := range s.snaps {
		infos = append(infos, store.SnapshotInfo{
			ID:        snap.ID,
			CreatedAt: snap.CreatedAt,
			Documents: snap.Documents,
			Tokens:    snap.Tokens,
			TermCount: len(snap.Terms),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos, nil
}

// TopTerms returns up to k terms ordered by descending total count.
func (s *Store) TopTerms(ctx context.Context, id string, k int) ([]store.TermRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snaps[id]
	if !ok {
		return nil, fmt.Errorf("%w: snapshot %s", internalerr.ErrNotFound, id)
	}

	rows := make([]store.TermRow, len(snap.Terms))
	copy(rows, snap.Terms)

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TermCount == rows[j].TermCount {
			return rows[i].TermID < rows[j].TermID
		}
		return rows[i].TermCount > rows[j].TermCount
	})

	if k > 0 && k < len(rows) {
		rows = rows[:k]
	}
	return rows, nil
}

// copySnapshot deep-copies the term rows so callers cannot mutate stored
// state through a returned or retained slice.
func copySnapshot(snap store.Snapshot) store.Snapshot {
	terms := make([]store.TermRow, len(snap.Terms))
	copy(terms, snap.Terms)
	snap.Terms = terms
	return snap
}
