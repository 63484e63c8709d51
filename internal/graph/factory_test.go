package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgridgo/internal/graph"
)

func TestBind_TwoStageConstruction(t *testing.T) {
	sub := graph.Bind(func(x, y int) int { return x - y })

	a := graph.NewInput(5)
	b := sub(a, graph.Kw("y", 2))

	v, err := b.RequestData()
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	// The same recipe can be reused against different parents.
	c := sub(graph.NewInput(10), graph.Kw("y", 4))
	v, err = c.RequestData()
	require.NoError(t, err)
	assert.Equal(t, 6, v)
}

func TestBind_PresetPositionalArgumentsComeFirst(t *testing.T) {
	div := graph.Bind(func(num, den float64) float64 { return num / den }, 10.0)

	n := div(graph.NewInput(4.0))
	v, err := n.RequestData()
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	// Presets are lifted into input-node parents of the new node.
	require.Len(t, n.Parents(), 2)
	val, isInput := n.Parents()[0].InputValue()
	assert.True(t, isInput)
	assert.Equal(t, 10.0, val)
}

func TestBind_PresetKeywordArguments(t *testing.T) {
	scale := graph.Bind(func(x, factor float64) float64 { return x * factor },
		graph.KwValue("factor", 3.0))

	n := scale(graph.NewInput(7.0))
	v, err := n.RequestData()
	require.NoError(t, err)
	assert.Equal(t, 21.0, v)
	assert.Contains(t, n.KwParents(), "factor")
}

func TestNewInput_TopOfGraph(t *testing.T) {
	n := graph.NewInput([]float64{1, 2, 3})

	assert.Empty(t, n.Parents())
	assert.Empty(t, n.KwParents())

	v, err := n.RequestData()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, v)
}

func TestLift(t *testing.T) {
	n := graph.NewInput(1)
	assert.Same(t, n, graph.Lift(n))

	lifted := graph.Lift("hello")
	v, err := lifted.RequestData()
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}
