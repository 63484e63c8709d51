package views

import (
	"log/slog"

	"github.com/vk/flowgridgo/internal/graph"
)

// Logger logs every notification it receives. It never pulls data and never
// fails, so it is safe to attach anywhere in a graph.
type Logger struct {
	graph.Base
	logger *slog.Logger
}

// NewLogger creates a Logger writing through the given slog logger,
// attached to the given nodes.
func NewLogger(logger *slog.Logger, nodes ...*graph.Node) *Logger {
	v := &Logger{Base: graph.NewBase(), logger: logger}
	graph.Attach(v, nodes...)
	return v
}

// NotifyView implements graph.View.
func (v *Logger) NotifyView(n graph.Notification) error {
	name := n.NodeID
	if node, ok := v.GraphNodes()[n.NodeID]; ok {
		name = node.Name()
	}
	v.logger.Info("node invalidated", "node", name, "node_id", n.NodeID, "message", n.Message)
	return nil
}
