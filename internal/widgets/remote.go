package widgets

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/vk/flowgridgo/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// RemoteControl is a control whose value is fed by a socket.io event
// stream: every payload of the subscribed event becomes the control's new
// value and is dispatched to observers. It exposes the Observe subscription
// shape.
//
// Dispatch happens on the socket client's goroutine; callers wiring a
// RemoteControl into a graph must serialize the callbacks against other
// graph operations.
type RemoteControl struct {
	url       string
	namespace string
	event     string

	mu        sync.Mutex
	value     any
	observers []func(message any)

	io *socket.Socket
}

// NewRemoteControl creates a control subscribed to the named event on the
// given socket.io URL and namespace. The control holds no connection until
// Connect is called.
func NewRemoteControl(rawURL, namespace, event string) *RemoteControl {
	return &RemoteControl{url: rawURL, namespace: namespace, event: event}
}

// Value returns the most recent payload received, or nil before the first
// event.
func (c *RemoteControl) Value() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Observe registers a change callback.
func (c *RemoteControl) Observe(fn func(message any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Event returns the subscribed event name.
func (c *RemoteControl) Event() string { return c.event }

// Dispatch stores a new value and fans it out to the observers, exactly as
// if it had arrived from the event stream. It is the injection point for
// tests and for hosts that simulate a feed.
func (c *RemoteControl) Dispatch(v any) {
	c.mu.Lock()
	c.value = v
	observers := append(([]func(any))(nil), c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(v)
	}
}

// Connect establishes the socket.io connection and blocks until the initial
// handshake succeeds or ctx expires. Once connected, event payloads are
// dispatched until Close is called.
func (c *RemoteControl) Connect(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("widget", "remote", "url", c.url, "event", c.event)

	parsed, err := url.Parse(c.url)
	if err != nil {
		return fmt.Errorf("widgets: invalid remote control URL: %w", err)
	}
	baseURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)

	opts := socket.DefaultOptions()
	opts.SetTransports(types.NewSet(transports.WebSocket))
	if parsed.Path != "" {
		opts.SetPath(parsed.Path)
	}

	connected := make(chan error, 1)

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(c.namespace, opts)

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("remote control connected", "sid", io.Id())
		select {
		case connected <- nil:
		default:
		}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				select {
				case connected <- err:
				default:
				}
			}
		}
	})
	io.On(types.EventName(c.event), func(data ...any) {
		var payload any
		if len(data) > 0 {
			payload = data[0]
		}
		logger.Debug("remote control event", "payload", payload)
		c.Dispatch(payload)
	})

	io.Connect()
	c.io = io

	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return fmt.Errorf("widgets: remote control connection failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		io.Disconnect()
		return fmt.Errorf("widgets: timed out connecting remote control: %w", ctx.Err())
	}
}

// Close tears down the socket connection, if any.
func (c *RemoteControl) Close() {
	if c.io != nil {
		c.io.Disconnect()
		c.io = nil
	}
}

// connectTimeout is the default handshake budget used by callers that have
// no deadline of their own.
const connectTimeout = 10 * time.Second

// ConnectWithTimeout is a convenience wrapper around Connect with the
// default handshake budget.
func (c *RemoteControl) ConnectWithTimeout(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	return c.Connect(ctx)
}
