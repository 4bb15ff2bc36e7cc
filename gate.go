package gatesim

// A Gate is a node in a Graph bound to a Cell. It holds the gate's
// current input/output signals, its port table, the per-output
// adjacency used by the propagator, and any cell-supplied evaluation
// state (§3).
type Gate struct {
	ID    string
	graph *Graph // cleared (nil) on removal — read by the scheduler drain as a tombstone (§9)

	Type           string
	Special        bool // true for Subcircuit, Input, Output, Button, Lamp, NumEntry, NumDisplay
	terminalOutput bool // copied from cell.TerminalOutput at construction
	terminalInput  bool // copied from cell.TerminalInput at construction

	cell  *Cell
	state interface{} // returned by cell.Prepare, passed back into cell.Operation

	ports map[string]Port

	inputSignals  map[string]Signal
	outputSignals map[string]Signal

	// linksByOutput[p] is the set of targets fed by this gate's output
	// port p. Keyed by Endpoint so duplicates collapse naturally.
	linksByOutput map[string]map[Endpoint]struct{}
	// links is the set of all link ids incident on this gate (as either
	// endpoint), kept so that removal is O(degree) instead of a scan of
	// the whole graph.
	links map[string]struct{}

	// Propagation is this gate's delay in ticks between an input change
	// and the scheduler re-evaluating it. Defaults to cell.Propagation
	// but may be overridden per gate (the source keeps this in
	// params.propagation; here it is a typed field since the shape is
	// known ahead of time).
	Propagation int

	// Subcircuit-only: the inner graph this gate instantiates, and the
	// map from this gate's external port ids to inner Input/Output gate
	// ids (§3's "subcircuit invariant").
	Subgraph *Graph
	IOMap    map[string]string

	// Output-type-gate-only: the external port name on the enclosing
	// subcircuit gate that this inner Output gate's input drives (§4.2).
	Net string

	// Params holds any remaining cell-specific free-form state a custom
	// cell wants to stash per gate, beyond the typed fields above.
	Params map[string]interface{}
}

// IsSubcircuit reports whether g is a subcircuit gate.
func (g *Gate) IsSubcircuit() bool { return g.Type == "Subcircuit" }

// IsOutput reports whether g plays the Output role at a subcircuit
// boundary (a subgraph leaf that drives its enclosing subcircuit's
// external output, or a top-level terminal probe — §4.2, §9 Open
// Question).
func (g *Gate) IsOutput() bool { return g.terminalOutput }

// IsInput reports whether g plays the Input role at a subcircuit
// boundary: an enclosing Subcircuit gate's external input drives this
// gate's output directly (§4.2).
func (g *Gate) IsInput() bool { return g.terminalInput }

// Graph returns the graph g currently belongs to, or nil if g has been
// removed.
func (g *Gate) Graph() *Graph { return g.graph }

// Port looks up one of g's ports by id.
func (g *Gate) Port(id string) (Port, bool) {
	p, ok := g.ports[id]
	return p, ok
}

// Input returns the current signal on input port id.
func (g *Gate) Input(id string) Signal { return g.inputSignals[id] }

// Output returns the current signal on output port id.
func (g *Gate) Output(id string) Signal { return g.outputSignals[id] }

// Signal returns the current value of port id regardless of direction,
// for callers (like the update batcher) that address a gate's pins
// generically rather than knowing in advance whether id is an input or
// an output.
func (g *Gate) Signal(id string) Signal {
	if p, ok := g.ports[id]; ok && p.Direction == Out {
		return g.outputSignals[id]
	}
	return g.inputSignals[id]
}

// LinkIDs returns the ids of every link currently incident on g, as
// either endpoint. Exposed so callers (notably the adjacency-consistency
// property test, §8 invariant 2) can cross-check it against a Graph's
// own Link table without reaching into unexported fields.
func (g *Gate) LinkIDs() []string {
	ids := make([]string, 0, len(g.links))
	for id := range g.links {
		ids = append(ids, id)
	}
	return ids
}

// Targets returns the set of downstream endpoints currently fed by g's
// output port, i.e. the targets of every link whose source is (g, port).
// Exposed for the same reason as LinkIDs.
func (g *Gate) Targets(port string) []Endpoint {
	set := g.linksByOutput[port]
	out := make([]Endpoint, 0, len(set))
	for ep := range set {
		out = append(out, ep)
	}
	return out
}

// InputsSnapshot returns a copy of g's input-signal map, suitable for
// handing to a Cell's Operation without risking it observing later
// mutation. The scheduler does not use it: it hands Operation the live
// input map (see Scheduler.enqueue). This copy is for tests and custom
// drivers.
func (g *Gate) InputsSnapshot() Inputs {
	m := make(Inputs, len(g.inputSignals))
	for k, v := range g.inputSignals {
		m[k] = v
	}
	return m
}

func newGate(id, typ string, cell *Cell, ports map[string]Port, initIn, initOut map[string]Signal) *Gate {
	g := &Gate{
		ID:             id,
		Type:           typ,
		Special:        cell.Special,
		terminalOutput: cell.TerminalOutput,
		terminalInput:  cell.TerminalInput,
		cell:           cell,
		ports:          ports,
		inputSignals:   make(map[string]Signal, len(initIn)),
		outputSignals:  make(map[string]Signal, len(initOut)),
		linksByOutput:  make(map[string]map[Endpoint]struct{}),
		links:          make(map[string]struct{}),
		Propagation:    cell.Propagation,
		Params:         make(map[string]interface{}),
	}
	for k, v := range initIn {
		g.inputSignals[k] = v
	}
	for k, v := range initOut {
		g.outputSignals[k] = v
	}
	return g
}
