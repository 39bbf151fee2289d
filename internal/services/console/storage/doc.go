// Package storage defines persistence contracts for console state.
//
// Handlers depend on these interfaces rather than a concrete SQLite schema,
// which keeps session handling testable with in-memory fakes.
package storage
