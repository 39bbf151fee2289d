// Package query computes filtered views and aggregate counts over loaded
// collections. All functions are pure: inputs are never mutated and the same
// inputs always produce the same outputs. The package performs no I/O; an
// integration guardrail enforces that property.
package query
