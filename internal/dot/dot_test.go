package dot_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgridgo/internal/dot"
	"github.com/vk/flowgridgo/internal/graph"
	"github.com/vk/flowgridgo/internal/views"
)

func TestMarshal_WalksBothDirections(t *testing.T) {
	a := graph.NewInput(5)
	a.SetName("a")
	b := graph.New(func(x int) int { return x - 2 }, a)
	b.SetName("b")
	c := graph.New(func(x int) int { return x + 2 }, a)
	c.SetName("c")

	// Starting from a middle node must still discover the whole graph.
	out := dot.Marshal(b, dot.Options{HideViews: true})

	assert.True(t, strings.HasPrefix(out, "strict digraph {"))
	for _, n := range []*graph.Node{a, b, c} {
		assert.Contains(t, out, fmt.Sprintf("%q [label=%q]", n.ID(), n.Name()))
	}
	assert.Contains(t, out, fmt.Sprintf("%q -> %q", a.ID(), b.ID()))
	assert.Contains(t, out, fmt.Sprintf("%q -> %q", a.ID(), c.ID()))
}

func TestMarshalAll_CoversDisconnectedComponents(t *testing.T) {
	a := graph.NewInput(1)
	a.SetName("a")
	b := graph.New(func(x int) int { return x }, a)
	b.SetName("b")
	lone := graph.NewInput(2)
	lone.SetName("lone")

	out := dot.MarshalAll([]*graph.Node{a, lone}, dot.Options{HideViews: true})
	assert.Contains(t, out, `label="b"`)
	assert.Contains(t, out, `label="lone"`)

	// Listing a node whose component was already walked must not change
	// the output.
	again := dot.MarshalAll([]*graph.Node{a, lone, b}, dot.Options{HideViews: true})
	if diff := cmp.Diff(out, again); diff != "" {
		t.Errorf("output changed with redundant start nodes (-first +second):\n%s", diff)
	}
}

func TestMarshal_Views(t *testing.T) {
	a := graph.NewInput(1)
	a.SetName("a")
	v := views.NewRecorder(a)

	withViews := dot.Marshal(a, dot.Options{})
	require.Contains(t, withViews, v.ViewID())
	assert.Contains(t, withViews, `label="Recorder"`)
	assert.Contains(t, withViews, "shape=ellipse")

	hidden := dot.Marshal(a, dot.Options{HideViews: true})
	assert.NotContains(t, hidden, v.ViewID())
}

func TestMarshal_QuotesLabels(t *testing.T) {
	a := graph.NewInput(1)
	a.SetName(`weird "name"`)

	out := dot.Marshal(a, dot.Options{HideViews: true})
	assert.Contains(t, out, `label="weird \"name\""`)
}
