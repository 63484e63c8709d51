// Package graph implements a lazy, cached, pull-based dataflow graph.
//
// A Node wraps a computation together with the upstream nodes that supply
// its arguments. Data flows on demand: calling RequestData on a node
// recursively resolves its parents, invokes the node's function once, and
// caches the result. Only invalidation is pushed: NotifyChildren clears
// caches down the graph and informs subscribed views, which may then decide
// whether to pull fresh data.
//
// The graph is single-threaded by contract. Every operation runs to
// completion on the caller's goroutine and none of the bookkeeping is
// protected by locks; callers that drive the graph from multiple goroutines
// (for example widget callbacks) must serialize externally.
package graph
