package seed

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSeed wraps every validation failure.
var ErrInvalidSeed = errors.New("invalid org seed")

// ValidationError lists every problem found in a seed.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d errors):", ErrInvalidSeed, len(e.Errs))
	for _, err := range e.Errs {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSeed
}

// Validate checks ids, references and the parent graph. Parents may appear
// anywhere in the node list, but parent chains must not loop.
func Validate(f *File) []error {
	var errs []error

	memberIDs := make(map[string]bool)
	for i, m := range f.Members {
		prefix := fmt.Sprintf("members[%d]", i)
		switch {
		case m.ID == "":
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		case memberIDs[m.ID]:
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, m.ID))
		default:
			memberIDs[m.ID] = true
		}
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}

	nodeIDs := make(map[string]bool)
	for i, n := range f.Nodes {
		prefix := fmt.Sprintf("nodes[%d]", i)
		switch {
		case n.ID == "":
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		case nodeIDs[n.ID]:
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, n.ID))
		default:
			nodeIDs[n.ID] = true
		}
		if n.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
	}
	for i, n := range f.Nodes {
		if n.Parent != "" && !nodeIDs[n.Parent] {
			errs = append(errs, fmt.Errorf("nodes[%d].parent: node %q not found", i, n.Parent))
		}
	}
	errs = append(errs, detectCycles(f.Nodes)...)

	pairs := make(map[AssignmentSeed]bool)
	for i, a := range f.Assignments {
		prefix := fmt.Sprintf("assignments[%d]", i)
		if !nodeIDs[a.Node] {
			errs = append(errs, fmt.Errorf("%s.node: node %q not found", prefix, a.Node))
		}
		if !memberIDs[a.Member] {
			errs = append(errs, fmt.Errorf("%s.member: member %q not found", prefix, a.Member))
		}
		if pairs[a] {
			errs = append(errs, fmt.Errorf("%s: %q is already assigned to %q", prefix, a.Member, a.Node))
		}
		pairs[a] = true
	}

	return errs
}

func detectCycles(nodes []NodeSeed) []error {
	parent := make(map[string]string, len(nodes))
	for _, n := range nodes {
		if n.ID != "" && n.Parent != "" {
			parent[n.ID] = n.Parent
		}
	}

	const (
		white = 0 // unvisited
		gray  = 1 // on the current chain
		black = 2 // chain ends at a root or a missing parent
	)
	color := make(map[string]int)
	var errs []error

	for _, n := range nodes {
		if n.ID == "" || color[n.ID] != white {
			continue
		}
		var chain []string
		cur := n.ID
		for cur != "" && color[cur] == white {
			color[cur] = gray
			chain = append(chain, cur)
			cur = parent[cur]
		}
		if cur != "" && color[cur] == gray {
			errs = append(errs, fmt.Errorf("parent cycle detected involving %q", cur))
		}
		for _, id := range chain {
			color[id] = black
		}
	}
	return errs
}
