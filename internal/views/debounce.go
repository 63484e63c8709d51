package views

import (
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/vk/flowgridgo/internal/graph"
)

// Debouncer coalesces bursts of notifications (for example the multiple
// per-path notifications of a diamond-shaped graph, or a widget being
// dragged) and invokes a single flush handler once the graph has been quiet
// for the configured interval. The handler receives the set of nodes that
// were invalidated since the last flush and typically pulls their data.
//
// Unlike the rest of the graph machinery the flush fires on a timer
// goroutine, so the handler must perform its own serialization against
// other graph operations.
type Debouncer struct {
	graph.Base
	debounced func(func())

	mu      sync.Mutex
	pending map[string]*graph.Node
	flush   func(nodes map[string]*graph.Node)
}

// NewDebouncer creates a Debouncer with the given quiet interval and flush
// handler, attached to the given nodes.
func NewDebouncer(quiet time.Duration, flush func(nodes map[string]*graph.Node), nodes ...*graph.Node) *Debouncer {
	v := &Debouncer{
		Base:      graph.NewBase(),
		debounced: debounce.New(quiet),
		pending:   make(map[string]*graph.Node),
		flush:     flush,
	}
	graph.Attach(v, nodes...)
	return v
}

// NotifyView implements graph.View. It records the originating node and
// schedules a flush; repeated notifications within the quiet interval
// collapse into one.
func (v *Debouncer) NotifyView(n graph.Notification) error {
	v.mu.Lock()
	if node, ok := v.GraphNodes()[n.NodeID]; ok {
		v.pending[n.NodeID] = node
	}
	v.mu.Unlock()

	v.debounced(v.doFlush)
	return nil
}

func (v *Debouncer) doFlush() {
	v.mu.Lock()
	nodes := v.pending
	v.pending = make(map[string]*graph.Node)
	v.mu.Unlock()

	if len(nodes) == 0 {
		return
	}
	v.flush(nodes)
}
