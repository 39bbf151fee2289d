// Package i18n resolves the operator's language and registers the console
// message catalogs. English is the default; German covers the platform's
// operator UI language.
package i18n
