package pipeline

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// InputBlock injects a literal value at the top of the graph.
type InputBlock struct {
	Name  string         `hcl:"name,label"`
	Value hcl.Expression `hcl:"value"`
}

// RemoteBlock injects a live leaf fed by a socket.io event stream.
type RemoteBlock struct {
	Name      string `hcl:"name,label"`
	URL       string `hcl:"url"`
	Namespace string `hcl:"namespace,optional"`
	Event     string `hcl:"event"`
}

// DeriveBlock computes a value from other nodes. Its dependencies are the
// root variables referenced by the expression.
type DeriveBlock struct {
	Name string         `hcl:"name,label"`
	Expr hcl.Expression `hcl:"expr"`
}

// hclFile is the top-level decoding target for a single pipeline file.
type hclFile struct {
	Inputs  []*InputBlock  `hcl:"input,block"`
	Remotes []*RemoteBlock `hcl:"remote,block"`
	Derives []*DeriveBlock `hcl:"derive,block"`
}

// Spec is the merged, order-preserving pipeline definition across all
// loaded files.
type Spec struct {
	Inputs  []*InputBlock
	Remotes []*RemoteBlock
	Derives []*DeriveBlock

	// order records every block name in declaration order.
	order []string
}

// Names returns every declared node name in declaration order.
func (s *Spec) Names() []string {
	return append([]string(nil), s.order...)
}

// merge appends the blocks of one parsed file, rejecting duplicate names.
func (s *Spec) merge(f *hclFile) error {
	seen := make(map[string]bool, len(s.order))
	for _, name := range s.order {
		seen[name] = true
	}
	add := func(name string) error {
		if seen[name] {
			return fmt.Errorf("pipeline: duplicate node definition %q", name)
		}
		seen[name] = true
		s.order = append(s.order, name)
		return nil
	}
	for _, blk := range f.Inputs {
		if err := add(blk.Name); err != nil {
			return err
		}
		s.Inputs = append(s.Inputs, blk)
	}
	for _, blk := range f.Remotes {
		if err := add(blk.Name); err != nil {
			return err
		}
		s.Remotes = append(s.Remotes, blk)
	}
	for _, blk := range f.Derives {
		if err := add(blk.Name); err != nil {
			return err
		}
		s.Derives = append(s.Derives, blk)
	}
	return nil
}
