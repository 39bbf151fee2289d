package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Page titles and navigation
	message.SetString(lang, "title.console", "Indie-Hain Console")
	message.SetString(lang, "title.login", "Sign In | Indie-Hain Console")
	message.SetString(lang, "title.dashboard", "Dashboard | Indie-Hain Console")
	message.SetString(lang, "title.users", "Users | Indie-Hain Console")
	message.SetString(lang, "title.submissions", "Submissions | Indie-Hain Console")
	message.SetString(lang, "title.apps", "Catalog | Indie-Hain Console")
	message.SetString(lang, "title.payments", "Dev Upgrades | Indie-Hain Console")
	message.SetString(lang, "nav.dashboard", "Dashboard")
	message.SetString(lang, "nav.users", "Users")
	message.SetString(lang, "nav.submissions", "Submissions")
	message.SetString(lang, "nav.apps", "Catalog")
	message.SetString(lang, "nav.payments", "Dev Upgrades")
	message.SetString(lang, "nav.sign_out", "Sign out")
	message.SetString(lang, "nav.lang_en", "EN")
	message.SetString(lang, "nav.lang_de", "DE")

	// Login page
	message.SetString(lang, "login.heading", "Sign in to the console")
	message.SetString(lang, "login.identity", "Email or username")
	message.SetString(lang, "login.password", "Password")
	message.SetString(lang, "login.submit", "Sign in")

	// Dashboard
	message.SetString(lang, "dashboard.heading", "Platform overview")
	message.SetString(lang, "dashboard.last_loaded", "Last loaded")
	message.SetString(lang, "dashboard.never_loaded", "No data loaded yet.")
	message.SetString(lang, "dashboard.users_total", "Accounts")
	message.SetString(lang, "dashboard.apps_total", "Published apps")
	message.SetString(lang, "dashboard.submissions_total", "Submissions")
	message.SetString(lang, "dashboard.overview_unavailable", "Server KPIs unavailable; showing locally derived counts.")
	message.SetString(lang, "dashboard.payments_unavailable", "Dev-upgrade payments unavailable.")

	// Actions
	message.SetString(lang, "action.refresh", "Refresh")
	message.SetString(lang, "action.apply", "Apply")
	message.SetString(lang, "action.approve", "Approve")
	message.SetString(lang, "action.reject", "Reject")
	message.SetString(lang, "action.delete", "Delete")
	message.SetString(lang, "action.reset_password", "Reset password")
	message.SetString(lang, "action.download", "Download")
	message.SetString(lang, "action.download_zip", "Download zip")
	message.SetString(lang, "action.verify", "Verify")
	message.SetString(lang, "action.verify_all", "Verify all")
	message.SetString(lang, "action.select_section", "Select all")
	message.SetString(lang, "action.clear_section", "Clear")
	message.SetString(lang, "action.manifest", "Manifest")
	message.SetString(lang, "action.files", "Files")

	// Enum labels
	message.SetString(lang, "label.all", "All")
	message.SetString(lang, "label.role_user", "User")
	message.SetString(lang, "label.role_dev", "Developer")
	message.SetString(lang, "label.role_admin", "Admin")
	message.SetString(lang, "label.status_pending", "Pending")
	message.SetString(lang, "label.status_approved", "Approved")
	message.SetString(lang, "label.status_rejected", "Rejected")
	message.SetString(lang, "label.sla_ok", "On time")
	message.SetString(lang, "label.sla_warn", "Overdue")
	message.SetString(lang, "label.sla_crit", "Critical")
	message.SetString(lang, "label.price_free", "Free")
	message.SetString(lang, "label.price_paid", "Paid")
	message.SetString(lang, "label.price_sale", "On sale")
	message.SetString(lang, "label.temp_password", "Temp password")
	message.SetString(lang, "label.unknown", "Unknown")

	// Filters
	message.SetString(lang, "filter.text_placeholder", "Search…")
	message.SetString(lang, "filter.role", "Role")
	message.SetString(lang, "filter.status", "Status")
	message.SetString(lang, "filter.platform", "Platform")
	message.SetString(lang, "filter.channel", "Channel")
	message.SetString(lang, "filter.sla", "SLA")
	message.SetString(lang, "filter.price", "Price")

	// Submissions
	message.SetString(lang, "submissions.heading", "Moderation queue")
	message.SetString(lang, "submissions.none", "No open requests.")
	message.SetString(lang, "submissions.selected", "%d selected")
	message.SetString(lang, "submissions.note", "Moderation note")
	message.SetString(lang, "confirm.approve", "Approve this submission?")
	message.SetString(lang, "confirm.reject", "Reject this submission?")
	message.SetString(lang, "confirm.bulk_approve", "Approve all selected submissions?")
	message.SetString(lang, "confirm.bulk_reject", "Reject all selected submissions?")

	// Users
	message.SetString(lang, "users.heading", "Accounts")
	message.SetString(lang, "users.none", "No matching accounts.")
	message.SetString(lang, "users.reset_hint", "Shown once; not stored.")
	message.SetString(lang, "confirm.user_delete", "Delete this account permanently?")

	// Catalog and payments
	message.SetString(lang, "apps.heading", "Published catalog")
	message.SetString(lang, "apps.none", "No matching apps.")
	message.SetString(lang, "payments.heading", "Dev-upgrade payments")
	message.SetString(lang, "payments.none", "No payments recorded.")

	// Files and manifest
	message.SetString(lang, "files.heading", "Build files")
	message.SetString(lang, "files.none", "No files uploaded.")
	message.SetString(lang, "files.progress", "%d of %d verified")
	message.SetString(lang, "files.ok", "OK")
	message.SetString(lang, "files.mismatch", "Mismatch")
	message.SetString(lang, "files.unchecked", "Not checked")
	message.SetString(lang, "manifest.heading", "Manifest")
	message.SetString(lang, "manifest.total_size", "Total size")

	// Table columns
	message.SetString(lang, "col.id", "ID")
	message.SetString(lang, "col.email", "Email")
	message.SetString(lang, "col.username", "Username")
	message.SetString(lang, "col.role", "Role")
	message.SetString(lang, "col.app", "App")
	message.SetString(lang, "col.version", "Version")
	message.SetString(lang, "col.platform", "Platform")
	message.SetString(lang, "col.channel", "Channel")
	message.SetString(lang, "col.status", "Status")
	message.SetString(lang, "col.age", "Age")
	message.SetString(lang, "col.created", "Created")
	message.SetString(lang, "col.title", "Title")
	message.SetString(lang, "col.slug", "Slug")
	message.SetString(lang, "col.price", "Price")
	message.SetString(lang, "col.sale", "Sale")
	message.SetString(lang, "col.amount", "Amount")
	message.SetString(lang, "col.user", "User")
	message.SetString(lang, "col.currency", "Currency")
	message.SetString(lang, "col.path", "Path")
	message.SetString(lang, "col.size", "Size")
	message.SetString(lang, "col.result", "Result")
	message.SetString(lang, "col.actions", "Actions")

	// Errors
	message.SetString(lang, "error.invalid_credentials", "Invalid credentials.")
	message.SetString(lang, "error.admin_required", "This console requires an admin account.")
	message.SetString(lang, "error.session_expired", "Your session expired. Please sign in again.")
	message.SetString(lang, "error.csrf_invalid", "Request origin could not be verified.")
	message.SetString(lang, "error.invalid_request", "Invalid request.")
	message.SetString(lang, "error.load_failed", "Loading platform data failed.")
	message.SetString(lang, "error.no_matching_selection", "No matching selection.")
	message.SetString(lang, "error.bulk_failures", "%d actions failed")
	message.SetString(lang, "error.action_failed", "The action failed.")
	message.SetString(lang, "error.user_role_failed", "Changing the role failed.")
	message.SetString(lang, "error.user_delete_failed", "Deleting the account failed.")
	message.SetString(lang, "error.user_reset_failed", "Resetting the password failed.")
	message.SetString(lang, "error.manifest_unavailable", "Manifest unavailable.")
	message.SetString(lang, "error.files_unavailable", "File listing unavailable.")
	message.SetString(lang, "error.verify_failed", "Verification failed.")
}
