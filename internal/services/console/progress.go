package console

import "sync"

// progressFrame is one verification progress update for a submission.
type progressFrame struct {
	SubmissionID int64 `json:"submission_id"`
	Done         int   `json:"done"`
	Total        int   `json:"total"`
}

// progressHub broadcasts verification progress to websocket subscribers and
// keeps the latest frame per submission for pollers.
type progressHub struct {
	mu          sync.Mutex
	subscribers map[int64]map[chan progressFrame]struct{}
	latest      map[int64]progressFrame
}

func newProgressHub() *progressHub {
	return &progressHub{
		subscribers: make(map[int64]map[chan progressFrame]struct{}),
		latest:      make(map[int64]progressFrame),
	}
}

// Subscribe registers a listener for one submission's progress. The
// returned cancel func must be called when the listener goes away.
func (h *progressHub) Subscribe(submissionID int64) (<-chan progressFrame, func()) {
	ch := make(chan progressFrame, 16)
	h.mu.Lock()
	subs, ok := h.subscribers[submissionID]
	if !ok {
		subs = make(map[chan progressFrame]struct{})
		h.subscribers[submissionID] = subs
	}
	subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if subs, ok := h.subscribers[submissionID]; ok {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(h.subscribers, submissionID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish fans a frame out to subscribers and records it as the latest. A
// slow subscriber drops frames instead of blocking verification.
func (h *progressHub) Publish(frame progressFrame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest[frame.SubmissionID] = frame
	for ch := range h.subscribers[frame.SubmissionID] {
		select {
		case ch <- frame:
		default:
		}
	}
}

// Latest returns the most recent frame for a submission, if any.
func (h *progressHub) Latest(submissionID int64) (progressFrame, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	frame, ok := h.latest[submissionID]
	return frame, ok
}
