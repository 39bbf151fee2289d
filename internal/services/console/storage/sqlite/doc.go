// Package sqlite provides SQLite-backed console persistence.
//
// It stores console sessions only. Platform data (users, submissions, apps)
// always comes fresh from the distribution API and is never written here.
package sqlite
