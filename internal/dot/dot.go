// Package dot renders a dataflow graph as Graphviz DOT source. It only
// emits text; rendering it is the host environment's concern.
package dot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/flowgridgo/internal/graph"
)

// Options controls the generated output.
type Options struct {
	// HideViews omits the views attached to the graph's nodes.
	HideViews bool
}

// Marshal walks the graph end to end from any member node, in both
// directions, and returns DOT source describing every reachable node, edge
// and (unless hidden) view.
func Marshal(start *graph.Node, opts Options) string {
	return MarshalAll([]*graph.Node{start}, opts)
}

// MarshalAll renders one document covering every component reachable from
// the given nodes. Nodes in the same component are emitted once.
func MarshalAll(starts []*graph.Node, opts Options) string {
	var b strings.Builder
	b.WriteString("strict digraph {\n")
	b.WriteString("\tnode [shape=box, height=0.1]\n")

	seen := make(map[string]bool)
	for _, start := range starts {
		if !seen[start.ID()] {
			addEdges(&b, start, seen, opts)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func addEdges(b *strings.Builder, n *graph.Node, seen map[string]bool, opts Options) {
	seen[n.ID()] = true
	fmt.Fprintf(b, "\t%s [label=%s]\n", quote(n.ID()), quote(n.Name()))

	for _, child := range n.Children() {
		if !seen[child.ID()] {
			fmt.Fprintf(b, "\t%s -> %s\n", quote(n.ID()), quote(child.ID()))
			addEdges(b, child, seen, opts)
		}
	}
	parents := append([]*graph.Node(nil), n.Parents()...)
	for _, key := range sortedKwKeys(n) {
		parents = append(parents, n.KwParents()[key])
	}
	for _, parent := range parents {
		if !seen[parent.ID()] {
			fmt.Fprintf(b, "\t%s -> %s\n", quote(parent.ID()), quote(n.ID()))
			addEdges(b, parent, seen, opts)
		}
	}
	if opts.HideViews {
		return
	}
	for _, view := range n.Views() {
		fmt.Fprintf(b, "\t%s [label=%s, shape=ellipse, style=filled, color=lightgrey]\n",
			quote(view.ViewID()), quote(viewLabel(view)))
		fmt.Fprintf(b, "\t%s -> %s\n", quote(n.ID()), quote(view.ViewID()))
	}
}

func sortedKwKeys(n *graph.Node) []string {
	keys := make([]string, 0, len(n.KwParents()))
	for key := range n.KwParents() {
		keys = append(keys, key)
	}
	// Map order is random; a stable order keeps the output diffable.
	sort.Strings(keys)
	return keys
}

func viewLabel(v graph.View) string {
	label := fmt.Sprintf("%T", v)
	label = strings.TrimPrefix(label, "*")
	if i := strings.LastIndex(label, "."); i >= 0 {
		label = label[i+1:]
	}
	return label
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s) + `"`
}
