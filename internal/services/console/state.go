package console

import (
	"sync"
	"time"

	"github.com/indie-hain/console/internal/distribution"
)

// Snapshot is one committed view of the platform collections. A snapshot is
// immutable after commit; handlers read it without further locking.
type Snapshot struct {
	Users       []distribution.User
	Submissions []distribution.Submission
	Apps        []distribution.App
	Overview    *distribution.Overview
	Payments    []distribution.Payment

	// OverviewErr and PaymentsErr record soft-load degradations for
	// display. The snapshot is still valid when they are set.
	OverviewErr string
	PaymentsErr string

	// LoadedAt records when the load that produced this snapshot finished.
	LoadedAt time.Time
	// Generation increments on every commit and keys derived-view caches.
	Generation uint64
}

// snapshotStore holds the current snapshot behind an atomic swap. Reads see
// either the previous or the next snapshot, never a partial commit.
type snapshotStore struct {
	mu      sync.RWMutex
	current *Snapshot
}

func newSnapshotStore() *snapshotStore {
	return &snapshotStore{}
}

// Current returns the committed snapshot, nil before the first load.
func (s *snapshotStore) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Commit installs snapshot as the current view and stamps its generation.
// Overlapping loads are benign: the last commit wins wholesale.
func (s *snapshotStore) Commit(snapshot *Snapshot) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var generation uint64
	if s.current != nil {
		generation = s.current.Generation
	}
	snapshot.Generation = generation + 1
	s.current = snapshot
	return snapshot
}
