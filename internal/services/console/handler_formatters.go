package console

import (
	"fmt"
	"sort"
	"time"

	"github.com/indie-hain/console/internal/distribution"
	"github.com/indie-hain/console/internal/services/console/query"
	"github.com/indie-hain/console/internal/services/console/templates"
	"golang.org/x/text/message"
)

func formatRole(role string, loc *message.Printer) string {
	switch role {
	case distribution.RoleUser:
		return loc.Sprintf("label.role_user")
	case distribution.RoleDev:
		return loc.Sprintf("label.role_dev")
	case distribution.RoleAdmin:
		return loc.Sprintf("label.role_admin")
	default:
		return loc.Sprintf("label.unknown")
	}
}

func formatStatus(status string, loc *message.Printer) string {
	switch status {
	case distribution.StatusPending:
		return loc.Sprintf("label.status_pending")
	case distribution.StatusApproved:
		return loc.Sprintf("label.status_approved")
	case distribution.StatusRejected:
		return loc.Sprintf("label.status_rejected")
	default:
		return loc.Sprintf("label.unknown")
	}
}

func formatSLA(bucket query.Bucket, loc *message.Printer) string {
	switch bucket {
	case query.BucketOK:
		return loc.Sprintf("label.sla_ok")
	case query.BucketWarn:
		return loc.Sprintf("label.sla_warn")
	case query.BucketCrit:
		return loc.Sprintf("label.sla_crit")
	default:
		return loc.Sprintf("label.unknown")
	}
}

func formatPriceBucket(bucket string, loc *message.Printer) string {
	switch bucket {
	case query.PriceFree:
		return loc.Sprintf("label.price_free")
	case query.PricePaid:
		return loc.Sprintf("label.price_paid")
	case query.PriceSale:
		return loc.Sprintf("label.price_sale")
	default:
		return loc.Sprintf("label.unknown")
	}
}

// formatAge renders a submission's age in coarse units; empty when the
// timestamp is missing or unparseable.
func formatAge(now time.Time, createdAt string) string {
	created, ok := query.ParseCreatedAt(createdAt)
	if !ok {
		return ""
	}
	age := now.Sub(created)
	switch {
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 48*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd", int(age.Hours()/24))
	}
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

func formatPrice(price float64) string {
	if price <= 0 {
		return "—"
	}
	return fmt.Sprintf("%.2f €", price)
}

func formatSale(salePercent float64) string {
	if salePercent <= 0 {
		return ""
	}
	return fmt.Sprintf("-%.0f%%", salePercent)
}

func formatAmount(amount float64, currency string) string {
	if currency == "" {
		currency = "EUR"
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// selectOptions renders a filter select with a leading "all" entry.
func selectOptions(values []string, selected string, label func(string) string, loc *message.Printer) []templates.Option {
	options := make([]templates.Option, 0, len(values)+1)
	options = append(options, templates.Option{Value: "", Label: loc.Sprintf("label.all"), Selected: selected == ""})
	for _, value := range values {
		options = append(options, templates.Option{Value: value, Label: label(value), Selected: value == selected})
	}
	return options
}

func roleOptions(selected string, loc *message.Printer) []templates.Option {
	roles := []string{distribution.RoleUser, distribution.RoleDev, distribution.RoleAdmin}
	return selectOptions(roles, selected, func(role string) string { return formatRole(role, loc) }, loc)
}

// roleChoices renders the per-row role select without an "all" entry.
func roleChoices(selected string, loc *message.Printer) []templates.Option {
	roles := []string{distribution.RoleUser, distribution.RoleDev, distribution.RoleAdmin}
	options := make([]templates.Option, 0, len(roles))
	for _, role := range roles {
		options = append(options, templates.Option{Value: role, Label: formatRole(role, loc), Selected: role == selected})
	}
	return options
}

func statusOptions(selected string, loc *message.Printer) []templates.Option {
	statuses := []string{distribution.StatusPending, distribution.StatusApproved, distribution.StatusRejected}
	return selectOptions(statuses, selected, func(status string) string { return formatStatus(status, loc) }, loc)
}

func slaOptions(selected query.Bucket, loc *message.Printer) []templates.Option {
	buckets := []string{string(query.BucketOK), string(query.BucketWarn), string(query.BucketCrit)}
	return selectOptions(buckets, string(selected), func(bucket string) string { return formatSLA(query.Bucket(bucket), loc) }, loc)
}

func priceOptions(selected string, loc *message.Printer) []templates.Option {
	buckets := []string{query.PriceFree, query.PricePaid, query.PriceSale}
	return selectOptions(buckets, selected, func(bucket string) string { return formatPriceBucket(bucket, loc) }, loc)
}

// distinctValues collects the sorted distinct values of one submission
// field for filter selects.
func distinctValues(subs []distribution.Submission, field func(distribution.Submission) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0, 4)
	for _, sub := range subs {
		value := field(sub)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}
