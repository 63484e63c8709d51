// Package views provides ready-made graph.View implementations: a recorder
// for inspection, a puller that resolves fresh data on every notification,
// a slog-backed logger, and a debouncer that coalesces notification bursts
// before pulling.
package views
