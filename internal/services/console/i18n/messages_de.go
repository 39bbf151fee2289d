package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.German

	// Page titles and navigation
	message.SetString(lang, "title.console", "Indie-Hain Konsole")
	message.SetString(lang, "title.login", "Anmelden | Indie-Hain Konsole")
	message.SetString(lang, "title.dashboard", "Übersicht | Indie-Hain Konsole")
	message.SetString(lang, "title.users", "Benutzer | Indie-Hain Konsole")
	message.SetString(lang, "title.submissions", "Einreichungen | Indie-Hain Konsole")
	message.SetString(lang, "title.apps", "Katalog | Indie-Hain Konsole")
	message.SetString(lang, "title.payments", "Dev-Upgrades | Indie-Hain Konsole")
	message.SetString(lang, "nav.dashboard", "Übersicht")
	message.SetString(lang, "nav.users", "Benutzer")
	message.SetString(lang, "nav.submissions", "Einreichungen")
	message.SetString(lang, "nav.apps", "Katalog")
	message.SetString(lang, "nav.payments", "Dev-Upgrades")
	message.SetString(lang, "nav.sign_out", "Abmelden")
	message.SetString(lang, "nav.lang_en", "EN")
	message.SetString(lang, "nav.lang_de", "DE")

	// Login page
	message.SetString(lang, "login.heading", "An der Konsole anmelden")
	message.SetString(lang, "login.identity", "E-Mail oder Benutzername")
	message.SetString(lang, "login.password", "Passwort")
	message.SetString(lang, "login.submit", "Anmelden")

	// Dashboard
	message.SetString(lang, "dashboard.heading", "Plattform-Übersicht")
	message.SetString(lang, "dashboard.last_loaded", "Zuletzt geladen")
	message.SetString(lang, "dashboard.never_loaded", "Noch keine Daten geladen.")
	message.SetString(lang, "dashboard.users_total", "Konten")
	message.SetString(lang, "dashboard.apps_total", "Veröffentlichte Apps")
	message.SetString(lang, "dashboard.submissions_total", "Einreichungen")
	message.SetString(lang, "dashboard.overview_unavailable", "Server-KPIs nicht verfügbar; lokal abgeleitete Zähler werden angezeigt.")
	message.SetString(lang, "dashboard.payments_unavailable", "Dev-Upgrade-Zahlungen nicht verfügbar.")

	// Actions
	message.SetString(lang, "action.refresh", "Aktualisieren")
	message.SetString(lang, "action.apply", "Übernehmen")
	message.SetString(lang, "action.approve", "Freigeben")
	message.SetString(lang, "action.reject", "Ablehnen")
	message.SetString(lang, "action.delete", "Löschen")
	message.SetString(lang, "action.reset_password", "Passwort zurücksetzen")
	message.SetString(lang, "action.download", "Herunterladen")
	message.SetString(lang, "action.download_zip", "Zip herunterladen")
	message.SetString(lang, "action.verify", "Prüfen")
	message.SetString(lang, "action.verify_all", "Alle prüfen")
	message.SetString(lang, "action.select_section", "Alle auswählen")
	message.SetString(lang, "action.clear_section", "Auswahl aufheben")
	message.SetString(lang, "action.manifest", "Manifest")
	message.SetString(lang, "action.files", "Dateien")

	// Enum labels
	message.SetString(lang, "label.all", "Alle")
	message.SetString(lang, "label.role_user", "Benutzer")
	message.SetString(lang, "label.role_dev", "Entwickler")
	message.SetString(lang, "label.role_admin", "Admin")
	message.SetString(lang, "label.status_pending", "Offen")
	message.SetString(lang, "label.status_approved", "Freigegeben")
	message.SetString(lang, "label.status_rejected", "Abgelehnt")
	message.SetString(lang, "label.sla_ok", "Im Plan")
	message.SetString(lang, "label.sla_warn", "Überfällig")
	message.SetString(lang, "label.sla_crit", "Kritisch")
	message.SetString(lang, "label.price_free", "Kostenlos")
	message.SetString(lang, "label.price_paid", "Kostenpflichtig")
	message.SetString(lang, "label.price_sale", "Im Angebot")
	message.SetString(lang, "label.temp_password", "Temporäres Passwort")
	message.SetString(lang, "label.unknown", "Unbekannt")

	// Filters
	message.SetString(lang, "filter.text_placeholder", "Suchen…")
	message.SetString(lang, "filter.role", "Rolle")
	message.SetString(lang, "filter.status", "Status")
	message.SetString(lang, "filter.platform", "Plattform")
	message.SetString(lang, "filter.channel", "Kanal")
	message.SetString(lang, "filter.sla", "SLA")
	message.SetString(lang, "filter.price", "Preis")

	// Submissions
	message.SetString(lang, "submissions.heading", "Moderationswarteschlange")
	message.SetString(lang, "submissions.none", "Keine offenen Anfragen.")
	message.SetString(lang, "submissions.selected", "%d ausgewählt")
	message.SetString(lang, "submissions.note", "Moderationsnotiz")
	message.SetString(lang, "confirm.approve", "Diese Einreichung freigeben?")
	message.SetString(lang, "confirm.reject", "Diese Einreichung ablehnen?")
	message.SetString(lang, "confirm.bulk_approve", "Alle ausgewählten Einreichungen freigeben?")
	message.SetString(lang, "confirm.bulk_reject", "Alle ausgewählten Einreichungen ablehnen?")

	// Users
	message.SetString(lang, "users.heading", "Konten")
	message.SetString(lang, "users.none", "Keine passenden Konten.")
	message.SetString(lang, "users.reset_hint", "Wird einmal angezeigt; nicht gespeichert.")
	message.SetString(lang, "confirm.user_delete", "Dieses Konto endgültig löschen?")

	// Catalog and payments
	message.SetString(lang, "apps.heading", "Veröffentlichter Katalog")
	message.SetString(lang, "apps.none", "Keine passenden Apps.")
	message.SetString(lang, "payments.heading", "Dev-Upgrade-Zahlungen")
	message.SetString(lang, "payments.none", "Keine Zahlungen vorhanden.")

	// Files and manifest
	message.SetString(lang, "files.heading", "Build-Dateien")
	message.SetString(lang, "files.none", "Keine Dateien hochgeladen.")
	message.SetString(lang, "files.progress", "%d von %d geprüft")
	message.SetString(lang, "files.ok", "OK")
	message.SetString(lang, "files.mismatch", "Abweichung")
	message.SetString(lang, "files.unchecked", "Nicht geprüft")
	message.SetString(lang, "manifest.heading", "Manifest")
	message.SetString(lang, "manifest.total_size", "Gesamtgröße")

	// Table columns
	message.SetString(lang, "col.id", "ID")
	message.SetString(lang, "col.email", "E-Mail")
	message.SetString(lang, "col.username", "Benutzername")
	message.SetString(lang, "col.role", "Rolle")
	message.SetString(lang, "col.app", "App")
	message.SetString(lang, "col.version", "Version")
	message.SetString(lang, "col.platform", "Plattform")
	message.SetString(lang, "col.channel", "Kanal")
	message.SetString(lang, "col.status", "Status")
	message.SetString(lang, "col.age", "Alter")
	message.SetString(lang, "col.created", "Erstellt")
	message.SetString(lang, "col.title", "Titel")
	message.SetString(lang, "col.slug", "Slug")
	message.SetString(lang, "col.price", "Preis")
	message.SetString(lang, "col.sale", "Rabatt")
	message.SetString(lang, "col.amount", "Betrag")
	message.SetString(lang, "col.user", "Benutzer")
	message.SetString(lang, "col.currency", "Währung")
	message.SetString(lang, "col.path", "Pfad")
	message.SetString(lang, "col.size", "Größe")
	message.SetString(lang, "col.result", "Ergebnis")
	message.SetString(lang, "col.actions", "Aktionen")

	// Errors
	message.SetString(lang, "error.invalid_credentials", "Ungültige Zugangsdaten.")
	message.SetString(lang, "error.admin_required", "Diese Konsole erfordert ein Admin-Konto.")
	message.SetString(lang, "error.session_expired", "Deine Sitzung ist abgelaufen. Bitte erneut anmelden.")
	message.SetString(lang, "error.csrf_invalid", "Die Herkunft der Anfrage konnte nicht geprüft werden.")
	message.SetString(lang, "error.invalid_request", "Ungültige Anfrage.")
	message.SetString(lang, "error.load_failed", "Das Laden der Plattformdaten ist fehlgeschlagen.")
	message.SetString(lang, "error.no_matching_selection", "Keine passende Auswahl.")
	message.SetString(lang, "error.bulk_failures", "%d Aktionen fehlgeschlagen")
	message.SetString(lang, "error.action_failed", "Die Aktion ist fehlgeschlagen.")
	message.SetString(lang, "error.user_role_failed", "Rollenänderung fehlgeschlagen.")
	message.SetString(lang, "error.user_delete_failed", "Löschen des Kontos fehlgeschlagen.")
	message.SetString(lang, "error.user_reset_failed", "Zurücksetzen des Passworts fehlgeschlagen.")
	message.SetString(lang, "error.manifest_unavailable", "Manifest nicht verfügbar.")
	message.SetString(lang, "error.files_unavailable", "Dateiliste nicht verfügbar.")
	message.SetString(lang, "error.verify_failed", "Prüfung fehlgeschlagen.")
}
