package validate

import "fmt"

// RefGraph is the in-memory reference graph for one validation run: node
// sets keyed by namespace (one namespace per entity array), checked by a
// single dangling-edge rule. Namespaces that were never registered are
// treated as unavailable and their edges go unchecked; the caller decides
// whether that absence was already worth a warning.
type RefGraph struct {
	sets map[string]map[string]bool
}

// NewRefGraph returns an empty reference graph.
func NewRefGraph() *RefGraph {
	return &RefGraph{sets: map[string]map[string]bool{}}
}

// AddNodes registers ids under a namespace, creating it if needed. Blank
// ids are ignored; they were already reported as field errors.
func (g *RefGraph) AddNodes(namespace string, ids ...string) {
	set, ok := g.sets[namespace]
	if !ok {
		set = map[string]bool{}
		g.sets[namespace] = set
	}
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
}

// Known reports whether a namespace was registered.
func (g *RefGraph) Known(namespace string) bool {
	_, ok := g.sets[namespace]
	return ok
}

// Check records a dangling-edge error when id does not resolve within
// namespace. Edges into unregistered namespaces are skipped.
func (g *RefGraph) Check(rep *Report, path, namespace, id string) {
	set, ok := g.sets[namespace]
	if !ok {
		return
	}
	if !set[id] {
		rep.Errorf(path, "%s", danglingMessage(namespace, id))
	}
}

func danglingMessage(namespace, id string) string {
	return fmt.Sprintf("references unknown %s id %q", singular(namespace), id)
}

func singular(namespace string) string {
	if len(namespace) > 1 && namespace[len(namespace)-1] == 's' {
		return namespace[:len(namespace)-1]
	}
	return namespace
}
