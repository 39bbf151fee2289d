// Package distribution is a typed client for the Indie-Hain distribution
// API. It covers the admin surface (users, submissions, build files,
// payments, KPI overview) plus the unauthenticated public catalog, and
// handles bearer-token rotation transparently: a 401 triggers at most one
// refresh followed by one retry of the original request.
package distribution
