package graph

import "fmt"

// Widget is an externally observable control that exposes a current value.
type Widget interface {
	Value() any
}

// Watchable is the subscription shape of controls that register change
// callbacks through Watch.
type Watchable interface {
	Watch(fn func(message any))
}

// Observable is the subscription shape of controls that register change
// callbacks through Observe.
type Observable interface {
	Observe(fn func(message any))
}

// FromWidget creates a node whose value is the widget's current value and
// subscribes the node's invalidation to the widget's change events, so a
// change in the control cascades through the graph exactly as a manual
// NotifyChildren call would. The widget must implement either Watchable or
// Observable; Watch is preferred when both are present.
//
// Change callbacks fire on whatever goroutine the widget uses; the caller
// is responsible for serializing them with other graph operations.
func FromWidget(w Widget) (*Node, error) {
	n := New(func() (any, error) { return w.Value(), nil })
	n.SetName(fmt.Sprintf("Widget <%T>", w))
	notify := func(message any) {
		// The callback signature has no error channel; a failing view
		// surfaces on the next explicit graph operation instead.
		_ = n.NotifyChildren(message)
	}
	switch c := w.(type) {
	case Watchable:
		c.Watch(notify)
	case Observable:
		c.Observe(notify)
	default:
		return nil, fmt.Errorf("graph: widget %T exposes neither Watch nor Observe", w)
	}
	return n, nil
}
