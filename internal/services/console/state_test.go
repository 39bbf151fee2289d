package console

import "testing"

func TestSnapshotStoreCurrentNilBeforeCommit(t *testing.T) {
	store := newSnapshotStore()
	if store.Current() != nil {
		t.Fatal("expected nil snapshot before first commit")
	}
}

func TestSnapshotStoreCommitBumpsGeneration(t *testing.T) {
	store := newSnapshotStore()

	first := store.Commit(&Snapshot{})
	if first.Generation != 1 {
		t.Fatalf("first generation = %d, want 1", first.Generation)
	}
	second := store.Commit(&Snapshot{})
	if second.Generation != 2 {
		t.Fatalf("second generation = %d, want 2", second.Generation)
	}
	if store.Current() != second {
		t.Fatal("expected last commit to win")
	}
}

func TestSubmissionViewCacheInvalidation(t *testing.T) {
	cache := &submissionViewCache{}

	if _, ok := cache.Get(1, submissionFilterFixture()); ok {
		t.Fatal("empty cache must miss")
	}
	cache.Put(1, submissionFilterFixture(), nil)
	if _, ok := cache.Get(1, submissionFilterFixture()); !ok {
		t.Fatal("expected hit for matching generation and filter")
	}
	if _, ok := cache.Get(2, submissionFilterFixture()); ok {
		t.Fatal("generation bump must invalidate")
	}
	other := submissionFilterFixture()
	other.Status = "approved"
	if _, ok := cache.Get(1, other); ok {
		t.Fatal("filter change must miss")
	}
}
