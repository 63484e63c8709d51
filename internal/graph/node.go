package graph

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Notification is the envelope a node delivers to its views. It carries the
// identifier of the originating node and an opaque message payload, never
// the recomputed value itself; views pull data explicitly if they want it.
type Notification struct {
	NodeID  string
	Message any
}

// Parent designates an upstream dependency of a node under construction.
// A *Node used directly is a positional parent; Kw wraps a node as a
// keyword parent.
type Parent interface {
	parentEdge() (key string, node *Node)
}

type kwParent struct {
	key  string
	node *Node
}

func (p kwParent) parentEdge() (string, *Node) { return p.key, p.node }

// parentEdge makes a bare *Node usable as a positional parent.
func (n *Node) parentEdge() (string, *Node) { return "", n }

// Kw binds an upstream value as a keyword parent. Non-node values are
// lifted into input nodes.
func Kw(name string, v any) Parent {
	return kwParent{key: name, node: Lift(v)}
}

// Lift returns v itself when it already is a *Node, and otherwise wraps it
// in an input node, so raw values can be used wherever a node is expected.
func Lift(v any) *Node {
	if n, ok := v.(*Node); ok {
		return n
	}
	return NewInput(v)
}

// Node is a unit of lazy, cached computation in a directed acyclic
// dependency graph. It owns its parents and keeps non-owning back-links to
// the nodes and views that depend on it.
type Node struct {
	fn   Func
	id   string
	name string

	parents   []*Node
	kworder   []string
	kwparents map[string]*Node

	children []*Node
	views    []View

	// Cache state is an explicit tag, not a nil sentinel, so a function
	// that legitimately produces nil is still memoized.
	cached bool
	data   any

	inputValue any
	isInput    bool
}

// New creates a node from fn and the given parents. fn may be any Go
// function (invoked via reflection: positional parents map to the leading
// parameters, keyword parents to the following ones in declaration order),
// a Func, or a non-function value, in which case the node becomes an input
// node that always yields that value.
//
// The new node registers itself as a child of every parent.
func New(fn any, parents ...Parent) *Node {
	n := &Node{
		id:        strings.ReplaceAll(uuid.NewString(), "-", ""),
		kwparents: make(map[string]*Node),
	}
	for _, p := range parents {
		key, pn := p.parentEdge()
		if key == "" {
			n.parents = append(n.parents, pn)
			continue
		}
		if _, ok := n.kwparents[key]; !ok {
			n.kworder = append(n.kworder, key)
		}
		n.kwparents[key] = pn
	}
	n.SetFunc(fn)
	n.name = n.deriveName(fn)
	for _, p := range n.allParents() {
		p.AddChild(n)
	}
	return n
}

// NewInput creates a zero-parent node that always yields v. Such nodes
// typically sit at the top of a graph and inject externally supplied data.
func NewInput(v any) *Node {
	return New(v)
}

// SetFunc rebinds the node's computation. The cache is left untouched;
// callers that want downstream consumers to observe the new function must
// follow up with NotifyChildren.
func (n *Node) SetFunc(fn any) {
	f, isInput := normalize(fn, n.kworder)
	n.fn = f
	n.isInput = isInput
	if isInput {
		n.inputValue = fn
	} else {
		n.inputValue = nil
	}
}

// ID returns the process-unique identifier assigned at construction. It
// differs from the name, which is free-form and purely diagnostic.
func (n *Node) ID() string { return n.id }

// Name returns the node's human-readable name.
func (n *Node) Name() string { return n.name }

// SetName overrides the automatically derived name.
func (n *Node) SetName(name string) { n.name = name }

// InputValue returns the wrapped raw value and true when the node was
// constructed from a non-function value.
func (n *Node) InputValue() (any, bool) { return n.inputValue, n.isInput }

// Parents returns the positional parents in declaration order.
func (n *Node) Parents() []*Node { return n.parents }

// KwParents returns the keyword parents keyed by parameter name.
func (n *Node) KwParents() map[string]*Node { return n.kwparents }

// Children returns the downstream nodes in registration order.
func (n *Node) Children() []*Node { return n.children }

// Views returns the subscribed views in attachment order.
func (n *Node) Views() []View { return n.views }

// RequestData resolves and returns the node's value. Parents are resolved
// recursively (positional first, then keyword parents in declaration
// order), the node's function is invoked with the results, and the value
// is cached: between two invalidations the function runs at most once, no
// matter how many consumers or diamond-shaped paths reach this node. An
// error from the function propagates unchanged and leaves the cache empty,
// so the next request retries.
func (n *Node) RequestData() (any, error) {
	if n.cached {
		return n.data, nil
	}
	var args []any
	if len(n.parents) > 0 {
		args = make([]any, 0, len(n.parents))
		for _, p := range n.parents {
			v, err := p.RequestData()
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
	}
	var kwargs map[string]any
	if len(n.kworder) > 0 {
		kwargs = make(map[string]any, len(n.kworder))
		for _, key := range n.kworder {
			v, err := n.kwparents[key].RequestData()
			if err != nil {
				return nil, err
			}
			kwargs[key] = v
		}
	}
	v, err := n.fn(args, kwargs)
	if err != nil {
		return nil, err
	}
	n.data = v
	n.cached = true
	return v, nil
}

// AddChild appends child to the node's children. Purely additive; the
// reverse edge is the child's own parent list.
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)
}

// AddView subscribes view to the node and registers the node in the view's
// graph-node registry, keyed by the node's identifier.
func (n *Node) AddView(view View) {
	n.views = append(n.views, view)
	view.GraphNodes()[n.id] = n
}

// NotifyChildren clears the node's cache, notifies the subscribed views,
// and then recurses into the children in registration order (synchronous,
// depth-first, pre-order). A descendant reachable through several paths is
// notified once per path. An error returned by a view aborts the remaining
// traversal and propagates to the caller.
func (n *Node) NotifyChildren(message any) error {
	n.cached = false
	n.data = nil
	if err := n.NotifyViews(message); err != nil {
		return err
	}
	for _, child := range n.children {
		if err := child.NotifyChildren(message); err != nil {
			return err
		}
	}
	return nil
}

// NotifyViews delivers a Notification carrying the node's identifier and
// message to every subscribed view, in attachment order.
func (n *Node) NotifyViews(message any) error {
	for _, view := range n.views {
		if err := view.NotifyView(Notification{NodeID: n.id, Message: message}); err != nil {
			return err
		}
	}
	return nil
}

// RemoveError reports a refused Remove call on a node that still has
// children.
type RemoveError struct {
	Node     *Node
	Children []*Node
}

func (e *RemoveError) Error() string {
	names := make([]string, len(e.Children))
	for i, c := range e.Children {
		names[i] = c.Name()
	}
	return fmt.Sprintf("cannot remove node %q because it has children [%s]",
		e.Node.Name(), strings.Join(names, ", "))
}

// Remove detaches the node from the graph: it is deleted from every
// attached view's registry and from every parent's child list, and its own
// parent, keyword-parent and view collections are cleared. The call fails
// with a *RemoveError when the node still has children, since removing it
// would orphan their data dependency; in that case the graph is left
// completely unchanged. Remove is a graph detach, not an object teardown:
// external references to the node stay valid.
func (n *Node) Remove() error {
	if len(n.children) > 0 {
		return &RemoveError{Node: n, Children: append([]*Node(nil), n.children...)}
	}
	for _, view := range n.views {
		delete(view.GraphNodes(), n.id)
	}
	for _, p := range n.allParents() {
		p.removeChild(n)
	}
	n.views = nil
	n.parents = nil
	n.kwparents = make(map[string]*Node)
	n.kworder = nil
	return nil
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// allParents returns positional parents followed by keyword parents in
// declaration order.
func (n *Node) allParents() []*Node {
	all := make([]*Node, 0, len(n.parents)+len(n.kworder))
	all = append(all, n.parents...)
	for _, key := range n.kworder {
		all = append(all, n.kwparents[key])
	}
	return all
}

// deriveName builds the diagnostic name: the function name with a synthetic
// argument list for computations, or a description of the wrapped value for
// input nodes.
func (n *Node) deriveName(fn any) string {
	if n.isInput {
		switch fn.(type) {
		case nil:
			return "Input <nil>"
		case int, int32, int64, float32, float64, string, bool:
			return fmt.Sprintf("Input <%T=%v>", fn, fn)
		default:
			return fmt.Sprintf("Input <%T>", fn)
		}
	}
	params := make([]string, 0, len(n.parents)+len(n.kworder))
	for i := range n.parents {
		params = append(params, fmt.Sprintf("arg_%d", i))
	}
	params = append(params, n.kworder...)
	return fmt.Sprintf("%s(%s)", funcName(fn), strings.Join(params, ", "))
}
