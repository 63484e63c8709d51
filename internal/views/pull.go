package views

import (
	"fmt"

	"github.com/vk/flowgridgo/internal/graph"
)

// Puller re-requests data from the originating node on every notification
// and keeps the latest value per node.
type Puller struct {
	graph.Base
	data map[string]any
}

// NewPuller creates a Puller attached to the given nodes.
func NewPuller(nodes ...*graph.Node) *Puller {
	v := &Puller{Base: graph.NewBase(), data: make(map[string]any)}
	graph.Attach(v, nodes...)
	return v
}

// NotifyView implements graph.View. A failing recomputation propagates out
// of the NotifyChildren call that triggered it.
func (v *Puller) NotifyView(n graph.Notification) error {
	node, ok := v.GraphNodes()[n.NodeID]
	if !ok {
		return fmt.Errorf("views: notified by unregistered node %s", n.NodeID)
	}
	value, err := node.RequestData()
	if err != nil {
		return err
	}
	v.data[n.NodeID] = value
	return nil
}

// Data returns the latest value pulled for the node with the given id.
func (v *Puller) Data(nodeID string) (any, bool) {
	value, ok := v.data[nodeID]
	return value, ok
}
