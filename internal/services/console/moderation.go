package console

import (
	"context"
	"errors"

	"github.com/indie-hain/console/internal/distribution"
)

// ErrNoMatchingSelection is returned when a bulk action's selection holds no
// submission whose status differs from the target status. No API call is
// made in that case.
var ErrNoMatchingSelection = errors.New("no submission in the selection matches the requested transition")

// defaultRejectNote is the moderation note sent when the operator supplies
// none.
const defaultRejectNote = "Nicht konform"

// moderationClient is the slice of the distribution client used by
// moderation actions.
type moderationClient interface {
	ApproveSubmission(ctx context.Context, submissionID int64) error
	RejectSubmission(ctx context.Context, submissionID int64, note string) error
}

// bulkOutcome records one approve/reject attempt within a bulk action.
type bulkOutcome struct {
	SubmissionID int64
	Err          error
}

// bulkReport aggregates the outcomes of a bulk action.
type bulkReport struct {
	Outcomes []bulkOutcome
}

// Failed counts the outcomes that errored.
func (r bulkReport) Failed() int {
	failed := 0
	for _, outcome := range r.Outcomes {
		if outcome.Err != nil {
			failed++
		}
	}
	return failed
}

// Attempted counts all outcomes.
func (r bulkReport) Attempted() int {
	return len(r.Outcomes)
}

// firstAuthErr surfaces an authentication or authorization failure from the
// batch so the caller can tear the session down.
func (r bulkReport) firstAuthErr() error {
	for _, outcome := range r.Outcomes {
		if errors.Is(outcome.Err, distribution.ErrUnauthenticated) || errors.Is(outcome.Err, distribution.ErrForbidden) {
			return outcome.Err
		}
	}
	return nil
}

// effectiveTargets filters selected IDs down to submissions whose current
// status differs from the target status. Already-transitioned rows are
// idempotent no-ops and are skipped without an API call. Order follows the
// snapshot so bulk calls run deterministically.
func effectiveTargets(subs []distribution.Submission, selected map[int64]struct{}, targetStatus string) []int64 {
	targets := make([]int64, 0, len(selected))
	for _, sub := range subs {
		if _, ok := selected[sub.ID]; !ok {
			continue
		}
		if sub.Status == targetStatus {
			continue
		}
		targets = append(targets, sub.ID)
	}
	return targets
}

// runBulk folds one approve/reject call per target, strictly sequentially.
// A failed call never aborts the remainder; it is recorded and the fold
// continues. Successful transitions stay committed regardless of later
// failures.
func runBulk(ctx context.Context, client moderationClient, targets []int64, approve bool, note string) bulkReport {
	report := bulkReport{Outcomes: make([]bulkOutcome, 0, len(targets))}
	for _, id := range targets {
		var err error
		if approve {
			err = client.ApproveSubmission(ctx, id)
		} else {
			err = client.RejectSubmission(ctx, id, note)
		}
		report.Outcomes = append(report.Outcomes, bulkOutcome{SubmissionID: id, Err: err})
	}
	return report
}

// bulkUpdate executes a bulk moderation action for a session's selection:
// it computes effective targets from the snapshot, folds sequential API
// calls over them and always clears the selection afterwards. The returned
// report is valid even when err is ErrNoMatchingSelection.
func bulkUpdate(ctx context.Context, client moderationClient, views *viewStateStore, sessionID string, snapshot *Snapshot, approve bool, note string) (bulkReport, error) {
	targetStatus := distribution.StatusRejected
	if approve {
		targetStatus = distribution.StatusApproved
	}
	if note == "" {
		note = defaultRejectNote
	}

	var subs []distribution.Submission
	if snapshot != nil {
		subs = snapshot.Submissions
	}
	targets := effectiveTargets(subs, views.SelectedIDs(sessionID), targetStatus)
	if len(targets) == 0 {
		return bulkReport{}, ErrNoMatchingSelection
	}

	report := runBulk(ctx, client, targets, approve, note)
	views.ClearSelection(sessionID)
	return report, nil
}
