package gatesim

// A Graph is a named directed multigraph of gates and links (§3). It may
// be top-level (subcircuit nil) or instantiated as the inner graph of a
// Subcircuit gate, in which case subcircuit points back at that gate.
type Graph struct {
	ID    string
	gates map[string]*Gate
	links map[string]*Link

	observed   bool
	subcircuit *Gate
}

func newGraph(id string) *Graph {
	return &Graph{
		ID:    id,
		gates: make(map[string]*Gate),
		links: make(map[string]*Link),
	}
}

// Gate looks up a gate by id within this graph.
func (g *Graph) Gate(id string) (*Gate, bool) {
	gt, ok := g.gates[id]
	return gt, ok
}

// Link looks up a link by id within this graph.
func (g *Graph) Link(id string) (*Link, bool) {
	l, ok := g.links[id]
	return l, ok
}

// Observed reports whether the update batcher is currently emitting
// transitions for this graph (§4.4).
func (g *Graph) Observed() bool { return g.observed }

// Subcircuit returns the gate that instantiates this graph as its inner
// subgraph, or nil if this graph is top-level.
func (g *Graph) Subcircuit() *Gate { return g.subcircuit }

// GateCount and LinkCount report the graph's current size; mainly useful
// for diagnostics and tests.
func (g *Graph) GateCount() int { return len(g.gates) }
func (g *Graph) LinkCount() int { return len(g.links) }

// GateIDs and LinkIDs enumerate the graph's current members, for callers
// (property tests, diagnostics) that need to walk every gate or link
// rather than look one up by id.
func (g *Graph) GateIDs() []string {
	ids := make([]string, 0, len(g.gates))
	for id := range g.gates {
		ids = append(ids, id)
	}
	return ids
}

func (g *Graph) LinkIDs() []string {
	ids := make([]string, 0, len(g.links))
	for id := range g.links {
		ids = append(ids, id)
	}
	return ids
}
