package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/indie-hain/console/internal/distribution"
	"github.com/indie-hain/console/internal/platform/timeouts"
)

// devUpgradePaymentsLimit caps the payment window requested per load.
const devUpgradePaymentsLimit = 50

// loaderClient is the slice of the distribution client the loader consumes.
type loaderClient interface {
	ListUsers(ctx context.Context) ([]distribution.User, error)
	ListSubmissions(ctx context.Context, status string) ([]distribution.Submission, error)
	PublicApps(ctx context.Context) ([]distribution.App, error)
	GetOverview(ctx context.Context) (distribution.Overview, error)
	ListDevUpgradePayments(ctx context.Context, limit int) ([]distribution.Payment, error)
}

// loader fetches the platform collections and commits them as one snapshot.
type loader struct {
	snapshots *snapshotStore
	views     *viewStateStore
	now       func() time.Time
}

func newLoader(snapshots *snapshotStore, views *viewStateStore) *loader {
	return &loader{snapshots: snapshots, views: views, now: time.Now}
}

// Load fetches users, submissions, apps, overview and payments in parallel.
// Users, submissions and apps are hard requirements: any failure aborts the
// load and nothing is committed. Overview and payments are soft: a failure
// degrades to an absent value with a recorded note. On commit every
// session's selection, open panels and temp passwords are cleared.
func (l *loader) Load(ctx context.Context, client loaderClient) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.APIRequest)
	defer cancel()

	snapshot := &Snapshot{}
	var usersErr, subsErr, appsErr, overviewErr, paymentsErr error

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		snapshot.Users, usersErr = client.ListUsers(ctx)
	}()
	go func() {
		defer wg.Done()
		snapshot.Submissions, subsErr = client.ListSubmissions(ctx, "")
	}()
	go func() {
		defer wg.Done()
		snapshot.Apps, appsErr = client.PublicApps(ctx)
	}()
	go func() {
		defer wg.Done()
		var overview distribution.Overview
		overview, overviewErr = client.GetOverview(ctx)
		if overviewErr == nil {
			snapshot.Overview = &overview
		}
	}()
	go func() {
		defer wg.Done()
		snapshot.Payments, paymentsErr = client.ListDevUpgradePayments(ctx, devUpgradePaymentsLimit)
	}()
	wg.Wait()

	switch {
	case usersErr != nil:
		return nil, fmt.Errorf("load users: %w", usersErr)
	case subsErr != nil:
		return nil, fmt.Errorf("load submissions: %w", subsErr)
	case appsErr != nil:
		return nil, fmt.Errorf("load apps: %w", appsErr)
	}

	if overviewErr != nil {
		snapshot.OverviewErr = overviewErr.Error()
	}
	if paymentsErr != nil {
		snapshot.Payments = nil
		snapshot.PaymentsErr = paymentsErr.Error()
	}

	snapshot.LoadedAt = l.now()
	committed := l.snapshots.Commit(snapshot)
	l.views.ResetAll()
	return committed, nil
}
