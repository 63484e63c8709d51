package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteControl_DispatchUpdatesValueAndObservers(t *testing.T) {
	c := NewRemoteControl("ws://example.test/socket.io", "/", "tick")
	assert.Nil(t, c.Value())
	assert.Equal(t, "tick", c.Event())

	var got []any
	c.Observe(func(msg any) { got = append(got, msg) })

	c.Dispatch(map[string]any{"value": 1.5})
	c.Dispatch(map[string]any{"value": 2.5})

	require.Len(t, got, 2)
	assert.Equal(t, map[string]any{"value": 2.5}, c.Value())
}

func TestRemoteControl_ObserversAddedLaterMissEarlierEvents(t *testing.T) {
	c := NewRemoteControl("ws://example.test", "/", "tick")
	c.Dispatch(1)

	var got []any
	c.Observe(func(msg any) { got = append(got, msg) })
	assert.Empty(t, got)

	c.Dispatch(2)
	assert.Equal(t, []any{2}, got)
}
