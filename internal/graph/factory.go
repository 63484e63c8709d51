package graph

// KwArg is a keyword preset for Bind, created with KwValue.
type KwArg struct {
	Name  string
	Value any
}

// KwValue presets a keyword argument for Bind.
func KwValue(name string, v any) KwArg {
	return KwArg{Name: name, Value: v}
}

// Bind is the two-stage node constructor: it binds preset arguments to fn
// at recipe time and returns a constructor that binds the remaining parent
// nodes at use time.
//
//	sub := graph.Bind(func(x, y int) int { return x - y })
//	b := sub(a, graph.Kw("y", 2))
//
// Preset values (positional, or keyword via KwValue) are lifted into input
// nodes placed ahead of the use-time parents, so they participate in the
// graph like any other upstream value.
func Bind(fn any, preset ...any) func(parents ...Parent) *Node {
	var presetParents []Parent
	for _, p := range preset {
		if kw, ok := p.(KwArg); ok {
			presetParents = append(presetParents, Kw(kw.Name, kw.Value))
			continue
		}
		presetParents = append(presetParents, Lift(p))
	}
	return func(parents ...Parent) *Node {
		all := make([]Parent, 0, len(presetParents)+len(parents))
		all = append(all, presetParents...)
		all = append(all, parents...)
		return New(fn, all...)
	}
}
