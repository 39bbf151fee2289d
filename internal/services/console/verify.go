package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/indie-hain/console/internal/distribution"
)

// FileVerifyRecord is the latest verification result for one file of one
// submission. Error carries a per-file verification problem reported by the
// backend, not a transport failure.
type FileVerifyRecord struct {
	SubmissionID int64
	Path         string
	ChunkOK      bool
	FileOK       bool
	Expected     string
	Error        string
	CheckedAt    time.Time
}

// OK reports whether both the chunk and whole-file hashes checked out.
func (r FileVerifyRecord) OK() bool {
	return r.ChunkOK && r.FileOK && r.Error == ""
}

// verifyClient is the slice of the distribution client used by file
// verification.
type verifyClient interface {
	VerifySubmissionFile(ctx context.Context, submissionID int64, path string) (distribution.VerifyResult, error)
	VerifySubmissionFiles(ctx context.Context, submissionID int64, paths []string) ([]distribution.VerifyResult, error)
}

// verifyStore accumulates verification records keyed by submission and
// path. A record is only replaced by a fresher result for the same key.
type verifyStore struct {
	mu      sync.RWMutex
	records map[string]FileVerifyRecord
}

func newVerifyStore() *verifyStore {
	return &verifyStore{records: make(map[string]FileVerifyRecord)}
}

func verifyKey(submissionID int64, path string) string {
	return fmt.Sprintf("%d:%s", submissionID, path)
}

// Merge stores record under its key, replacing any earlier result.
func (s *verifyStore) Merge(record FileVerifyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[verifyKey(record.SubmissionID, record.Path)] = record
}

// Get returns the record for one file, if any verification has run.
func (s *verifyStore) Get(submissionID int64, path string) (FileVerifyRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[verifyKey(submissionID, path)]
	return record, ok
}

// ForSubmission returns all records for one submission keyed by path.
func (s *verifyStore) ForSubmission(submissionID int64) map[string]FileVerifyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make(map[string]FileVerifyRecord)
	for _, record := range s.records {
		if record.SubmissionID == submissionID {
			records[record.Path] = record
		}
	}
	return records
}

// verifier coordinates checksum verification calls and publishes progress.
type verifier struct {
	store    *verifyStore
	progress *progressHub
	now      func() time.Time
}

func newVerifier(store *verifyStore, progress *progressHub) *verifier {
	return &verifier{store: store, progress: progress, now: time.Now}
}

func (v *verifier) record(submissionID int64, result distribution.VerifyResult) FileVerifyRecord {
	record := FileVerifyRecord{
		SubmissionID: submissionID,
		Path:         result.Path,
		ChunkOK:      result.ChunkOK,
		FileOK:       result.FileOK,
		Expected:     result.Expected,
		Error:        result.Error,
		CheckedAt:    v.now(),
	}
	v.store.Merge(record)
	return record
}

// VerifyFile re-checks a single file and merges the result.
func (v *verifier) VerifyFile(ctx context.Context, client verifyClient, submissionID int64, path string) (FileVerifyRecord, error) {
	result, err := client.VerifySubmissionFile(ctx, submissionID, path)
	if err != nil {
		return FileVerifyRecord{}, err
	}
	if result.Path == "" {
		result.Path = path
	}
	return v.record(submissionID, result), nil
}

// VerifyBatch verifies a set of files. The server-side batch endpoint is
// tried first; a per-result Error field does not stop the batch path. When
// the batch call itself fails, verification falls back to sequential
// per-file calls, publishing {done, total} progress after each file. The
// fallback stops at the first failing call and surfaces that error; results
// merged before the failure are kept.
func (v *verifier) VerifyBatch(ctx context.Context, client verifyClient, submissionID int64, paths []string) error {
	total := len(paths)
	if total == 0 {
		return nil
	}

	results, err := client.VerifySubmissionFiles(ctx, submissionID, paths)
	if err == nil {
		for _, result := range results {
			v.record(submissionID, result)
		}
		v.progress.Publish(progressFrame{SubmissionID: submissionID, Done: total, Total: total})
		return nil
	}

	for i, path := range paths {
		if _, err := v.VerifyFile(ctx, client, submissionID, path); err != nil {
			return fmt.Errorf("verify %s: %w", path, err)
		}
		v.progress.Publish(progressFrame{SubmissionID: submissionID, Done: i + 1, Total: total})
	}
	return nil
}
