package console

import (
	"sync"
	"time"

	"github.com/indie-hain/console/internal/services/console/query"
)

const (
	// viewStateTTL controls how long idle per-session view state survives.
	viewStateTTL = 24 * time.Hour
	// viewStateCleanupInterval controls how often stale view state is purged.
	viewStateCleanupInterval = 30 * time.Minute
)

// viewState is the transient per-session slice of the UI: the active
// submission filter, the bulk-selection set, open detail panels and the
// one-time temp passwords issued during this session. None of it is
// persisted.
type viewState struct {
	filter        query.SubmissionFilter
	selection     map[int64]struct{}
	tempPasswords map[int64]string
	// openManifest and openFiles name the submission whose detail panel is
	// expanded; 0 means closed.
	openManifest int64
	openFiles    int64
	lastTouched  time.Time
}

func newViewState() *viewState {
	return &viewState{
		selection:     make(map[int64]struct{}),
		tempPasswords: make(map[int64]string),
	}
}

// viewStateStore tracks view state per console session.
type viewStateStore struct {
	mu          sync.Mutex
	states      map[string]*viewState
	lastCleanup time.Time
}

func newViewStateStore() *viewStateStore {
	return &viewStateStore{states: make(map[string]*viewState)}
}

func (s *viewStateStore) state(sessionID string) *viewState {
	now := time.Now()
	s.cleanupLocked(now)
	state, ok := s.states[sessionID]
	if !ok {
		state = newViewState()
		s.states[sessionID] = state
	}
	state.lastTouched = now
	return state
}

// Filter returns the session's current submission filter.
func (s *viewStateStore) Filter(sessionID string) query.SubmissionFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(sessionID).filter
}

// SetFilter stores the session's submission filter. Any criterion change
// clears the selection set so a selection never refers to rows outside the
// visible set.
func (s *viewStateStore) SetFilter(sessionID string, filter query.SubmissionFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state(sessionID)
	if state.filter == filter {
		return
	}
	state.filter = filter
	state.selection = make(map[int64]struct{})
}

// Toggle adds the submission to the selection, or removes it when already
// selected.
func (s *viewStateStore) Toggle(sessionID string, submissionID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state(sessionID)
	if _, ok := state.selection[submissionID]; ok {
		delete(state.selection, submissionID)
		return
	}
	state.selection[submissionID] = struct{}{}
}

// SelectAll unions ids into the selection. Used for section-scoped select
// buttons.
func (s *viewStateStore) SelectAll(sessionID string, ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state(sessionID)
	for _, id := range ids {
		state.selection[id] = struct{}{}
	}
}

// ClearSection removes ids from the selection, leaving other sections
// untouched.
func (s *viewStateStore) ClearSection(sessionID string, ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state(sessionID)
	for _, id := range ids {
		delete(state.selection, id)
	}
}

// ClearSelection empties the selection set.
func (s *viewStateStore) ClearSelection(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(sessionID).selection = make(map[int64]struct{})
}

// Selected reports whether the submission is in the selection.
func (s *viewStateStore) Selected(sessionID string, submissionID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.state(sessionID).selection[submissionID]
	return ok
}

// SelectedIDs returns the selection as a set copy.
func (s *viewStateStore) SelectedIDs(sessionID string) map[int64]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state(sessionID)
	ids := make(map[int64]struct{}, len(state.selection))
	for id := range state.selection {
		ids[id] = struct{}{}
	}
	return ids
}

// SetTempPassword records a reset-password response for display. Temp
// passwords live only in memory and are wiped on every reload.
func (s *viewStateStore) SetTempPassword(sessionID string, userID int64, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(sessionID).tempPasswords[userID] = password
}

// TempPasswords returns a copy of the session's temp-password map.
func (s *viewStateStore) TempPasswords(sessionID string) map[int64]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state(sessionID)
	passwords := make(map[int64]string, len(state.tempPasswords))
	for id, password := range state.tempPasswords {
		passwords[id] = password
	}
	return passwords
}

// SetOpenManifest records which submission's manifest panel is expanded.
func (s *viewStateStore) SetOpenManifest(sessionID string, submissionID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(sessionID).openManifest = submissionID
}

// SetOpenFiles records which submission's file panel is expanded.
func (s *viewStateStore) SetOpenFiles(sessionID string, submissionID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(sessionID).openFiles = submissionID
}

// OpenPanels returns the expanded manifest and file panels.
func (s *viewStateStore) OpenPanels(sessionID string) (manifest, files int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state(sessionID)
	return state.openManifest, state.openFiles
}

// ResetAll wipes selections, open panels and temp passwords for every
// session. Called after each snapshot commit: stale per-submission state
// must not survive a collection change. Filters survive a reload.
func (s *viewStateStore) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, state := range s.states {
		state.selection = make(map[int64]struct{})
		state.tempPasswords = make(map[int64]string)
		state.openManifest = 0
		state.openFiles = 0
	}
}

// Drop removes a session's view state entirely, used on logout.
func (s *viewStateStore) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
}

func (s *viewStateStore) cleanupLocked(now time.Time) {
	if now.Sub(s.lastCleanup) < viewStateCleanupInterval {
		return
	}
	for sessionID, state := range s.states {
		if now.Sub(state.lastTouched) > viewStateTTL {
			delete(s.states, sessionID)
		}
	}
	s.lastCleanup = now
}
