package views

import "github.com/vk/flowgridgo/internal/graph"

// Recorder stores the notifications it receives without pulling any data.
type Recorder struct {
	graph.Base
	notifications []graph.Notification
}

// NewRecorder creates a Recorder attached to the given nodes.
func NewRecorder(nodes ...*graph.Node) *Recorder {
	v := &Recorder{Base: graph.NewBase()}
	graph.Attach(v, nodes...)
	return v
}

// NotifyView implements graph.View.
func (v *Recorder) NotifyView(n graph.Notification) error {
	v.notifications = append(v.notifications, n)
	return nil
}

// Notifications returns every notification received so far, oldest first.
func (v *Recorder) Notifications() []graph.Notification {
	return v.notifications
}

// Last returns the most recent notification, if any.
func (v *Recorder) Last() (graph.Notification, bool) {
	if len(v.notifications) == 0 {
		return graph.Notification{}, false
	}
	return v.notifications[len(v.notifications)-1], true
}
