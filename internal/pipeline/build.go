package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/flowgridgo/internal/ctxlog"
	"github.com/vk/flowgridgo/internal/graph"
	"github.com/vk/flowgridgo/internal/widgets"
	"github.com/zclconf/go-cty/cty"
)

// Graph is a built pipeline: named dataflow nodes plus the remote controls
// feeding the live leaves.
type Graph struct {
	nodes    map[string]*graph.Node
	order    []string
	controls map[string]*widgets.RemoteControl
}

// Node returns the node declared under the given name.
func (g *Graph) Node(name string) (*graph.Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Names returns the declared node names in declaration order.
func (g *Graph) Names() []string {
	return append([]string(nil), g.order...)
}

// Controls returns the remote controls keyed by node name. They are not
// connected; callers that want live updates call Connect on each.
func (g *Graph) Controls() map[string]*widgets.RemoteControl {
	return g.controls
}

// Sinks returns the nodes nothing else depends on, in declaration order.
// These are the pipeline's outputs.
func (g *Graph) Sinks() []*graph.Node {
	var sinks []*graph.Node
	for _, name := range g.order {
		if n := g.nodes[name]; len(n.Children()) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Option adjusts graph construction.
type Option func(*builder)

// WithMutex serializes remote-control callbacks with the given mutex. The
// graph itself is single-threaded; when controls dispatch from their own
// goroutines the caller supplies the lock that also guards its own graph
// access.
func WithMutex(mu *sync.Mutex) Option {
	return func(b *builder) { b.mu = mu }
}

// Build constructs the dataflow graph described by spec. References are
// resolved in any declaration order; unknown references and dependency
// cycles are errors.
func Build(ctx context.Context, spec *Spec, opts ...Option) (*Graph, error) {
	b := &builder{
		blocks:   make(map[string]any),
		built:    make(map[string]*graph.Node),
		visiting: make(map[string]bool),
		controls: make(map[string]*widgets.RemoteControl),
	}
	for _, opt := range opts {
		opt(b)
	}
	for _, blk := range spec.Inputs {
		b.blocks[blk.Name] = blk
	}
	for _, blk := range spec.Remotes {
		b.blocks[blk.Name] = blk
	}
	for _, blk := range spec.Derives {
		b.blocks[blk.Name] = blk
	}

	logger := ctxlog.FromContext(ctx)
	for _, name := range spec.Names() {
		if _, err := b.build(name); err != nil {
			return nil, err
		}
	}
	logger.Debug("pipeline graph built", "nodes", len(b.built), "controls", len(b.controls))

	return &Graph{nodes: b.built, order: spec.Names(), controls: b.controls}, nil
}

type builder struct {
	blocks   map[string]any
	built    map[string]*graph.Node
	visiting map[string]bool
	controls map[string]*widgets.RemoteControl
	mu       *sync.Mutex
}

func (b *builder) build(name string) (*graph.Node, error) {
	if n, ok := b.built[name]; ok {
		return n, nil
	}
	if b.visiting[name] {
		return nil, fmt.Errorf("pipeline: cycle detected involving node %q", name)
	}
	b.visiting[name] = true
	defer delete(b.visiting, name)

	var (
		n   *graph.Node
		err error
	)
	switch blk := b.blocks[name].(type) {
	case *InputBlock:
		n, err = b.buildInput(blk)
	case *RemoteBlock:
		n, err = b.buildRemote(blk)
	case *DeriveBlock:
		n, err = b.buildDerive(blk)
	default:
		return nil, fmt.Errorf("pipeline: reference to undefined node %q", name)
	}
	if err != nil {
		return nil, err
	}
	n.SetName(name)
	b.built[name] = n
	return n, nil
}

func (b *builder) buildInput(blk *InputBlock) (*graph.Node, error) {
	val, diags := blk.Value.Value(&hcl.EvalContext{Functions: evalFunctions})
	if diags.HasErrors() {
		return nil, fmt.Errorf("pipeline: evaluating input %q: %w", blk.Name, diags)
	}
	return graph.NewInput(val), nil
}

func (b *builder) buildRemote(blk *RemoteBlock) (*graph.Node, error) {
	ctrl := widgets.NewRemoteControl(blk.URL, blk.Namespace, blk.Event)
	b.controls[blk.Name] = ctrl
	return graph.FromWidget(&remoteWidget{ctrl: ctrl, mu: b.mu})
}

func (b *builder) buildDerive(blk *DeriveBlock) (*graph.Node, error) {
	deps, err := b.dependencies(blk)
	if err != nil {
		return nil, err
	}

	parents := make([]graph.Parent, 0, len(deps))
	for _, dep := range deps {
		parent, err := b.build(dep)
		if err != nil {
			return nil, err
		}
		parents = append(parents, graph.Kw(dep, parent))
	}

	name, expr := blk.Name, blk.Expr
	fn := graph.Func(func(_ []any, kwargs map[string]any) (any, error) {
		vars := make(map[string]cty.Value, len(kwargs))
		for key, raw := range kwargs {
			val, ok := raw.(cty.Value)
			if !ok {
				return nil, fmt.Errorf("pipeline: node %q received a %T for %q, want cty.Value", name, raw, key)
			}
			vars[key] = val
		}
		val, diags := expr.Value(&hcl.EvalContext{Variables: vars, Functions: evalFunctions})
		if diags.HasErrors() {
			return nil, fmt.Errorf("pipeline: evaluating %q: %w", name, diags)
		}
		return val, nil
	})
	return graph.New(fn, parents...), nil
}

// dependencies extracts the unique root variables referenced by the derive
// expression, in first-use order, and checks that each is defined.
func (b *builder) dependencies(blk *DeriveBlock) ([]string, error) {
	var deps []string
	seen := make(map[string]bool)
	for _, traversal := range blk.Expr.Variables() {
		root := traversal.RootName()
		if seen[root] {
			continue
		}
		if _, ok := b.blocks[root]; !ok {
			return nil, fmt.Errorf("pipeline: %s: derive %q references undefined node %q",
				traversal.SourceRange(), blk.Name, root)
		}
		seen[root] = true
		deps = append(deps, root)
	}
	return deps, nil
}

// remoteWidget adapts a RemoteControl for graph.FromWidget: values are
// converted to cty so derive expressions can consume them, and change
// callbacks are serialized with the builder's mutex.
type remoteWidget struct {
	ctrl *widgets.RemoteControl
	mu   *sync.Mutex
}

func (w *remoteWidget) Value() any {
	return toCtyValue(w.ctrl.Value())
}

func (w *remoteWidget) Observe(fn func(message any)) {
	w.ctrl.Observe(func(message any) {
		if w.mu != nil {
			w.mu.Lock()
			defer w.mu.Unlock()
		}
		fn(message)
	})
}
