package query

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/indie-hain/console/internal/distribution"
)

// Bucket classifies a submission's age against the moderation SLA.
type Bucket string

const (
	// BucketOK marks submissions younger than the warn threshold.
	BucketOK Bucket = "ok"
	// BucketWarn marks submissions between the warn and crit thresholds.
	BucketWarn Bucket = "warn"
	// BucketCrit marks submissions at or past the crit threshold.
	BucketCrit Bucket = "crit"
)

// warnAge is the submission age at which the SLA bucket becomes warn.
const warnAge = 24 * time.Hour

// critAge is the submission age at which the SLA bucket becomes crit.
const critAge = 72 * time.Hour

// createdAtFallbackLayout parses the SQLite-style timestamps the backend
// emits in places where it does not produce RFC 3339.
const createdAtFallbackLayout = "2006-01-02 15:04:05"

// ParseCreatedAt parses a backend timestamp. RFC 3339 is tried first, then
// the space-separated SQLite layout interpreted as UTC. The bool reports
// whether the value was parseable.
func ParseCreatedAt(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.ParseInLocation(createdAtFallbackLayout, value, time.UTC); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}

// SLABucket classifies a submission's created_at against now. Missing or
// unparseable timestamps classify as ok so they never block visibility.
func SLABucket(now time.Time, createdAt string) Bucket {
	created, ok := ParseCreatedAt(createdAt)
	if !ok {
		return BucketOK
	}
	age := now.Sub(created)
	switch {
	case age >= critAge:
		return BucketCrit
	case age >= warnAge:
		return BucketWarn
	default:
		return BucketOK
	}
}

// UserFilter narrows the user collection. Zero values match everything.
type UserFilter struct {
	// Role narrows to one account role; empty keeps all roles.
	Role string
	// Text is a case-insensitive substring match over email, username and
	// the decimal account ID.
	Text string
}

// FilterUsers returns users matching the filter, preserving input order.
func FilterUsers(users []distribution.User, filter UserFilter) []distribution.User {
	needle := strings.ToLower(strings.TrimSpace(filter.Text))
	matched := make([]distribution.User, 0, len(users))
	for _, user := range users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if needle != "" && !matchesAny(needle, user.Email, user.Username, strconv.FormatInt(user.ID, 10)) {
			continue
		}
		matched = append(matched, user)
	}
	return matched
}

// SubmissionFilter narrows the moderation queue. Zero values match
// everything.
type SubmissionFilter struct {
	Status   string
	Platform string
	Channel  string
	// SLA narrows to one age bucket; empty keeps all buckets.
	SLA Bucket
	// Text is a case-insensitive substring match over slug, version,
	// platform and channel.
	Text string
}

// FilterSubmissions returns submissions matching the filter, sorted
// newest-first: descending created_at with missing timestamps treated as
// epoch 0, ties broken by descending ID. The order is deterministic even
// with partial timestamp data.
func FilterSubmissions(subs []distribution.Submission, filter SubmissionFilter, now time.Time) []distribution.Submission {
	needle := strings.ToLower(strings.TrimSpace(filter.Text))
	matched := make([]distribution.Submission, 0, len(subs))
	for _, sub := range subs {
		if filter.Status != "" && sub.Status != filter.Status {
			continue
		}
		if filter.Platform != "" && sub.Platform != filter.Platform {
			continue
		}
		if filter.Channel != "" && sub.Channel != filter.Channel {
			continue
		}
		if filter.SLA != "" && SLABucket(now, sub.CreatedAt) != filter.SLA {
			continue
		}
		if needle != "" && !matchesAny(needle, sub.AppSlug, sub.Version, sub.Platform, sub.Channel) {
			continue
		}
		matched = append(matched, sub)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		left := createdAtOrEpoch(matched[i].CreatedAt)
		right := createdAtOrEpoch(matched[j].CreatedAt)
		if !left.Equal(right) {
			return left.After(right)
		}
		return matched[i].ID > matched[j].ID
	})
	return matched
}

// Price buckets for the app filter.
const (
	PriceFree = "free"
	PricePaid = "paid"
	PriceSale = "sale"
)

// AppFilter narrows the public catalog. Zero values match everything.
type AppFilter struct {
	// Price selects a price bucket: free (price <= 0), paid (price > 0)
	// or sale (sale_percent > 0); empty keeps all apps.
	Price string
	// Text is a case-insensitive substring match over title, slug and
	// description.
	Text string
}

// FilterApps returns apps matching the filter, preserving input order.
func FilterApps(apps []distribution.App, filter AppFilter) []distribution.App {
	needle := strings.ToLower(strings.TrimSpace(filter.Text))
	matched := make([]distribution.App, 0, len(apps))
	for _, app := range apps {
		switch filter.Price {
		case PriceFree:
			if app.Price > 0 {
				continue
			}
		case PricePaid:
			if app.Price <= 0 {
				continue
			}
		case PriceSale:
			if app.SalePercent <= 0 {
				continue
			}
		}
		if needle != "" && !matchesAny(needle, app.Title, app.Slug, app.Description) {
			continue
		}
		matched = append(matched, app)
	}
	return matched
}

// SubmissionCounts aggregates the moderation queue by status and SLA
// bucket.
type SubmissionCounts struct {
	Total    int64
	ByStatus map[string]int64
	ByBucket map[Bucket]int64
}

// StatusCounts tallies submissions per moderation status. Counts are always
// computed from the unfiltered collection.
func StatusCounts(subs []distribution.Submission) map[string]int64 {
	counts := make(map[string]int64)
	for _, sub := range subs {
		counts[sub.Status]++
	}
	return counts
}

// SLACounts tallies submissions per SLA bucket at the given instant.
func SLACounts(subs []distribution.Submission, now time.Time) map[Bucket]int64 {
	counts := make(map[Bucket]int64)
	for _, sub := range subs {
		counts[SLABucket(now, sub.CreatedAt)]++
	}
	return counts
}

// CountsFromOverview builds submission counts, preferring server-reported
// KPI values when the overview carries them. The server may see submissions
// outside the loaded window, so its counts win; local derivation fills the
// gaps when the overview is absent or incomplete.
func CountsFromOverview(overview *distribution.Overview, subs []distribution.Submission, now time.Time) SubmissionCounts {
	counts := SubmissionCounts{
		Total:    int64(len(subs)),
		ByStatus: StatusCounts(subs),
		ByBucket: SLACounts(subs, now),
	}
	if overview == nil || overview.Submissions == nil {
		return counts
	}
	section := overview.Submissions
	if section.Total > 0 {
		counts.Total = section.Total
	}
	if len(section.ByStatus) > 0 {
		byStatus := make(map[string]int64, len(section.ByStatus))
		for status, count := range section.ByStatus {
			byStatus[status] = count
		}
		counts.ByStatus = byStatus
	}
	if len(section.ByBucket) > 0 {
		byBucket := make(map[Bucket]int64, len(section.ByBucket))
		for bucket, count := range section.ByBucket {
			byBucket[Bucket(bucket)] = count
		}
		counts.ByBucket = byBucket
	}
	return counts
}

func createdAtOrEpoch(value string) time.Time {
	created, ok := ParseCreatedAt(value)
	if !ok {
		return time.Unix(0, 0).UTC()
	}
	return created
}

func matchesAny(needle string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
