package query

import (
	"reflect"
	"testing"
	"time"

	"github.com/indie-hain/console/internal/distribution"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func stampAge(age time.Duration) string {
	return testNow.Add(-age).Format(time.RFC3339)
}

func TestSLABucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		createdAt string
		want      Bucket
	}{
		{name: "fresh", createdAt: stampAge(1 * time.Hour), want: BucketOK},
		{name: "just under warn", createdAt: stampAge(24*time.Hour - time.Second), want: BucketOK},
		{name: "exactly warn threshold", createdAt: stampAge(24 * time.Hour), want: BucketWarn},
		{name: "between thresholds", createdAt: stampAge(30 * time.Hour), want: BucketWarn},
		{name: "just under crit", createdAt: stampAge(72*time.Hour - time.Second), want: BucketWarn},
		{name: "exactly crit threshold", createdAt: stampAge(72 * time.Hour), want: BucketCrit},
		{name: "ancient", createdAt: stampAge(200 * time.Hour), want: BucketCrit},
		{name: "missing timestamp", createdAt: "", want: BucketOK},
		{name: "unparseable timestamp", createdAt: "not-a-date", want: BucketOK},
		{name: "sqlite layout", createdAt: testNow.Add(-30 * time.Hour).Format("2006-01-02 15:04:05"), want: BucketWarn},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := SLABucket(testNow, tc.createdAt); got != tc.want {
				t.Fatalf("SLABucket(%q) = %q, want %q", tc.createdAt, got, tc.want)
			}
		})
	}
}

func TestFilterSubmissionsSLAWarnScenario(t *testing.T) {
	t.Parallel()

	subs := []distribution.Submission{
		{ID: 1, Status: distribution.StatusPending, CreatedAt: stampAge(30 * time.Hour)},
		{ID: 2, Status: distribution.StatusPending, CreatedAt: stampAge(1 * time.Hour)},
	}

	got := FilterSubmissions(subs, SubmissionFilter{SLA: BucketWarn}, testNow)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("FilterSubmissions(warn) = %+v, want only ID 1", got)
	}
}

func TestFilterSubmissionsOrdering(t *testing.T) {
	t.Parallel()

	subs := []distribution.Submission{
		{ID: 3, CreatedAt: ""},
		{ID: 1, CreatedAt: stampAge(2 * time.Hour)},
		{ID: 5, CreatedAt: stampAge(1 * time.Hour)},
		{ID: 4, CreatedAt: stampAge(2 * time.Hour)},
		{ID: 2, CreatedAt: "garbage"},
	}

	got := FilterSubmissions(subs, SubmissionFilter{}, testNow)
	wantOrder := []int64{5, 4, 1, 3, 2}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Fatalf("position %d = ID %d, want %d (full order %+v)", i, got[i].ID, want, got)
		}
	}
}

func TestFilterSubmissionsIdempotentAndNonMutating(t *testing.T) {
	t.Parallel()

	subs := []distribution.Submission{
		{ID: 2, AppSlug: "asteroid-run", Status: distribution.StatusPending, Platform: "windows", Channel: "stable", CreatedAt: stampAge(3 * time.Hour)},
		{ID: 1, AppSlug: "moth-garden", Status: distribution.StatusApproved, Platform: "linux", Channel: "beta", CreatedAt: stampAge(40 * time.Hour)},
	}
	original := make([]distribution.Submission, len(subs))
	copy(original, subs)

	filter := SubmissionFilter{Status: distribution.StatusPending, Text: "asteroid"}
	first := FilterSubmissions(subs, filter, testNow)
	second := FilterSubmissions(subs, filter, testNow)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated filter diverged: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(subs, original) {
		t.Fatalf("input mutated: %+v, want %+v", subs, original)
	}
	if len(first) != 1 || first[0].ID != 2 {
		t.Fatalf("filtered = %+v, want only ID 2", first)
	}
}

func TestFilterSubmissionsEqualityAndText(t *testing.T) {
	t.Parallel()

	subs := []distribution.Submission{
		{ID: 1, AppSlug: "moth-garden", Version: "1.2.0", Platform: "windows", Channel: "stable", Status: distribution.StatusPending},
		{ID: 2, AppSlug: "asteroid-run", Version: "0.9.1", Platform: "linux", Channel: "beta", Status: distribution.StatusPending},
		{ID: 3, AppSlug: "moth-garden", Version: "1.3.0", Platform: "windows", Channel: "beta", Status: distribution.StatusRejected},
	}

	tests := []struct {
		name   string
		filter SubmissionFilter
		want   []int64
	}{
		{name: "all", filter: SubmissionFilter{}, want: []int64{3, 2, 1}},
		{name: "platform", filter: SubmissionFilter{Platform: "windows"}, want: []int64{3, 1}},
		{name: "channel", filter: SubmissionFilter{Channel: "beta"}, want: []int64{3, 2}},
		{name: "status", filter: SubmissionFilter{Status: distribution.StatusRejected}, want: []int64{3}},
		{name: "text matches version", filter: SubmissionFilter{Text: "1.3"}, want: []int64{3}},
		{name: "text case-insensitive slug", filter: SubmissionFilter{Text: "MOTH"}, want: []int64{3, 1}},
		{name: "combined", filter: SubmissionFilter{Platform: "windows", Status: distribution.StatusPending}, want: []int64{1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FilterSubmissions(subs, tc.filter, testNow)
			ids := make([]int64, 0, len(got))
			for _, sub := range got {
				ids = append(ids, sub.ID)
			}
			if !reflect.DeepEqual(ids, tc.want) {
				t.Fatalf("ids = %v, want %v", ids, tc.want)
			}
		})
	}
}

func TestFilterUsers(t *testing.T) {
	t.Parallel()

	users := []distribution.User{
		{ID: 10, Email: "ana@example.com", Username: "ana", Role: distribution.RoleAdmin},
		{ID: 22, Email: "bo@example.com", Username: "bo-dev", Role: distribution.RoleDev},
		{ID: 31, Email: "cy@example.com", Username: "cy", Role: distribution.RoleUser},
	}

	tests := []struct {
		name   string
		filter UserFilter
		want   []int64
	}{
		{name: "all", filter: UserFilter{}, want: []int64{10, 22, 31}},
		{name: "role", filter: UserFilter{Role: distribution.RoleDev}, want: []int64{22}},
		{name: "text email", filter: UserFilter{Text: "BO@"}, want: []int64{22}},
		{name: "text numeric id", filter: UserFilter{Text: "31"}, want: []int64{31}},
		{name: "role and text miss", filter: UserFilter{Role: distribution.RoleAdmin, Text: "bo"}, want: []int64{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FilterUsers(users, tc.filter)
			ids := make([]int64, 0, len(got))
			for _, user := range got {
				ids = append(ids, user.ID)
			}
			if !reflect.DeepEqual(ids, tc.want) {
				t.Fatalf("ids = %v, want %v", ids, tc.want)
			}
		})
	}
}

func TestFilterApps(t *testing.T) {
	t.Parallel()

	apps := []distribution.App{
		{ID: 1, Slug: "moth-garden", Title: "Moth Garden", Price: 0},
		{ID: 2, Slug: "asteroid-run", Title: "Asteroid Run", Price: 9.99},
		{ID: 3, Slug: "deep-sky", Title: "Deep Sky", Description: "roguelike", Price: 14.99, SalePercent: 30},
	}

	tests := []struct {
		name   string
		filter AppFilter
		want   []int64
	}{
		{name: "all", filter: AppFilter{}, want: []int64{1, 2, 3}},
		{name: "free", filter: AppFilter{Price: PriceFree}, want: []int64{1}},
		{name: "paid", filter: AppFilter{Price: PricePaid}, want: []int64{2, 3}},
		{name: "sale", filter: AppFilter{Price: PriceSale}, want: []int64{3}},
		{name: "text description", filter: AppFilter{Text: "rogue"}, want: []int64{3}},
		{name: "paid and text", filter: AppFilter{Price: PricePaid, Text: "asteroid"}, want: []int64{2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FilterApps(apps, tc.filter)
			ids := make([]int64, 0, len(got))
			for _, app := range got {
				ids = append(ids, app.ID)
			}
			if !reflect.DeepEqual(ids, tc.want) {
				t.Fatalf("ids = %v, want %v", ids, tc.want)
			}
		})
	}
}

func TestCountsFromOverview(t *testing.T) {
	t.Parallel()

	subs := []distribution.Submission{
		{ID: 1, Status: distribution.StatusPending, CreatedAt: stampAge(30 * time.Hour)},
		{ID: 2, Status: distribution.StatusPending, CreatedAt: stampAge(1 * time.Hour)},
		{ID: 3, Status: distribution.StatusApproved, CreatedAt: stampAge(100 * time.Hour)},
	}

	t.Run("local derivation without overview", func(t *testing.T) {
		t.Parallel()
		counts := CountsFromOverview(nil, subs, testNow)
		if counts.Total != 3 {
			t.Fatalf("Total = %d, want 3", counts.Total)
		}
		if counts.ByStatus[distribution.StatusPending] != 2 {
			t.Fatalf("pending = %d, want 2", counts.ByStatus[distribution.StatusPending])
		}
		if counts.ByBucket[BucketWarn] != 1 || counts.ByBucket[BucketOK] != 1 || counts.ByBucket[BucketCrit] != 1 {
			t.Fatalf("buckets = %+v, want one of each", counts.ByBucket)
		}
	})

	t.Run("server counts win", func(t *testing.T) {
		t.Parallel()
		overview := &distribution.Overview{
			Submissions: &distribution.OverviewSection{
				Total:    120,
				ByStatus: map[string]int64{distribution.StatusPending: 80},
			},
		}
		counts := CountsFromOverview(overview, subs, testNow)
		if counts.Total != 120 {
			t.Fatalf("Total = %d, want server-reported 120", counts.Total)
		}
		if counts.ByStatus[distribution.StatusPending] != 80 {
			t.Fatalf("pending = %d, want server-reported 80", counts.ByStatus[distribution.StatusPending])
		}
		// No server bucket breakdown: local derivation fills the gap.
		if counts.ByBucket[BucketCrit] != 1 {
			t.Fatalf("crit = %d, want locally derived 1", counts.ByBucket[BucketCrit])
		}
	})
}

func TestParseCreatedAt(t *testing.T) {
	t.Parallel()

	if _, ok := ParseCreatedAt(""); ok {
		t.Fatal("empty timestamp parsed")
	}
	if _, ok := ParseCreatedAt("yesterday"); ok {
		t.Fatal("garbage timestamp parsed")
	}
	parsed, ok := ParseCreatedAt("2025-03-01 08:30:00")
	if !ok {
		t.Fatal("sqlite layout did not parse")
	}
	want := time.Date(2025, time.March, 1, 8, 30, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Fatalf("parsed = %v, want %v", parsed, want)
	}
}
