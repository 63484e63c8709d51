package graph

import (
	"strings"

	"github.com/google/uuid"
)

// View is a graph-connected observer. A node pushes only metadata: the view
// receives a Notification identifying the originating node, and may pull
// data from any node registered in its GraphNodes map, not just the one
// that notified it. An error returned from NotifyView propagates
// synchronously out of the NotifyChildren call that triggered it.
type View interface {
	ViewID() string

	// GraphNodes is the view's registry of reachable nodes, keyed by node
	// identifier. Nodes insert themselves on AddView and delete themselves
	// on Remove.
	GraphNodes() map[string]*Node

	NotifyView(n Notification) error
}

// Base carries the identifier and node registry shared by all view
// implementations; embed it and implement NotifyView.
type Base struct {
	id    string
	nodes map[string]*Node
}

// NewBase returns an initialized Base.
func NewBase() Base {
	return Base{
		id:    strings.ReplaceAll(uuid.NewString(), "-", ""),
		nodes: make(map[string]*Node),
	}
}

// ViewID returns the view's process-unique identifier.
func (b *Base) ViewID() string { return b.id }

// GraphNodes returns the view's node registry.
func (b *Base) GraphNodes() map[string]*Node {
	if b.nodes == nil {
		b.nodes = make(map[string]*Node)
	}
	return b.nodes
}

// Attach subscribes view to each of the given nodes.
func Attach(view View, nodes ...*Node) {
	for _, n := range nodes {
		n.AddView(view)
	}
}
