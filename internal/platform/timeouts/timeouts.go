// Package timeouts defines shared timeout constants used across the console.
// Centralizing these values prevents drift between call sites and makes the
// durations discoverable.
package timeouts

import "time"

// APIRequest caps the time allowed for a single REST call from the console
// to the distribution API.
const APIRequest = 10 * time.Second

// APIStream caps the time allowed for streaming downloads proxied through
// the console (build zips, single files).
const APIStream = 5 * time.Minute

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
