package gatesim

import (
	"time"

	"github.com/pkg/errors"
)

// subcircuitCell is the built-in, non-registrable cell backing every
// Subcircuit gate. It is Special (never scheduled) and carries no
// Operation: the propagator dispatches subcircuit boundary crossings
// directly (see crossIntoSubcircuit/crossOutOfSubcircuit in
// propagator.go), bypassing the cell contract entirely (§4.2).
var subcircuitCell = &Cell{Type: "Subcircuit", Special: true}

// GateSpec describes a gate to add to a graph via AddGate (§4.3).
// InitialInputs/InitialOutputs override the cell's Undefined default for
// specific ports; Propagation overrides the cell's default delay; Params
// seeds the gate's free-form Params map for custom cells that want it.
type GateSpec struct {
	ID             string
	Type           string
	Propagation    int
	Params         map[string]interface{}
	InitialInputs  map[string]Signal
	InitialOutputs map[string]Signal
}

// LinkSpec describes a directed wire to add to a graph via AddLink
// (§4.3): an output port on Source feeding an input port on Target.
type LinkSpec struct {
	ID     string
	Source Endpoint
	Target Endpoint
}

// AddGraph registers a new, empty, unobserved graph (§4.3).
func (e *Engine) AddGraph(id string) error {
	return e.execute(func(e *Engine) error {
		if _, exists := e.graphs[id]; exists {
			return errors.Errorf("gatesim: duplicate graph id %q", id)
		}
		e.graphs[id] = newGraph(id)
		return nil
	})
}

// AddGate instantiates spec.Type (which must already be registered via
// RegisterCell or WithCells) as a new gate in graphID (§4.3). Ports not
// given an explicit initial value start Undefined at the port's declared
// width.
func (e *Engine) AddGate(graphID string, spec GateSpec) error {
	return e.execute(func(e *Engine) error {
		g, err := e.mustGraph(graphID)
		if err != nil {
			return err
		}
		if _, exists := g.gates[spec.ID]; exists {
			return errors.Errorf("gatesim: duplicate gate id %q in graph %q", spec.ID, graphID)
		}
		cell, err := e.mustCell(spec.Type)
		if err != nil {
			return err
		}

		ports := make(map[string]Port, len(cell.Inputs)+len(cell.Outputs))
		for _, p := range cell.Inputs {
			ports[p.ID] = p
		}
		for _, p := range cell.Outputs {
			ports[p.ID] = p
		}

		initIn := make(map[string]Signal, len(cell.Inputs))
		for _, p := range cell.Inputs {
			if sig, ok := spec.InitialInputs[p.ID]; ok {
				if sig.Width() != p.Bits {
					return errors.Errorf("gatesim: initial input %q for gate %q has width %d, want %d", p.ID, spec.ID, sig.Width(), p.Bits)
				}
				initIn[p.ID] = sig
			} else {
				initIn[p.ID] = Undefined(p.Bits)
			}
		}
		initOut := make(map[string]Signal, len(cell.Outputs))
		for _, p := range cell.Outputs {
			if sig, ok := spec.InitialOutputs[p.ID]; ok {
				if sig.Width() != p.Bits {
					return errors.Errorf("gatesim: initial output %q for gate %q has width %d, want %d", p.ID, spec.ID, sig.Width(), p.Bits)
				}
				initOut[p.ID] = sig
			} else {
				initOut[p.ID] = Undefined(p.Bits)
			}
		}

		gt := newGate(spec.ID, spec.Type, cell, ports, initIn, initOut)
		gt.graph = g
		if spec.Propagation > 0 {
			gt.Propagation = spec.Propagation
		}
		for k, v := range spec.Params {
			gt.Params[k] = v
		}
		if cell.Prepare != nil {
			gt.state = cell.Prepare(gt)
		}
		g.gates[spec.ID] = gt
		if cell.SelfStarting {
			e.scheduler.enqueue(gt)
		}
		return nil
	})
}

// ChangeInput drives a host-facing input gate's sole output signal, as a
// host does when a user presses a Button, edits a NumEntry, or supplies
// a new value for an Input wire (§4.3, §6's changeInput command). Such
// gates have no upstream driver of their own, only an "out" port (see
// cells.Input/Button/NumEntry), so this targets that port directly and
// fans out through the propagator exactly as a cell's own computed
// output would.
func (e *Engine) ChangeInput(graphID, gateID string, sig Signal) error {
	return e.execute(func(e *Engine) error {
		gt, err := e.mustGate(graphID, gateID)
		if err != nil {
			return err
		}
		p, err := e.mustPort(gt, pOut, Out)
		if err != nil {
			return err
		}
		if sig.Width() != p.Bits {
			return errors.Errorf("gatesim: ChangeInput %s.out: signal width %d, want %d", gateID, sig.Width(), p.Bits)
		}
		return e.setGateOutputSignal(gt, pOut, sig)
	})
}

// AddSubcircuit wires an existing graph (subgraphID, which must not
// already be used as a subcircuit) in as the inner graph of a new
// Subcircuit gate in graphID. ioMap maps each external port name to the
// id of the inner Input or Output gate it binds to; the external port's
// direction and width are derived from that inner gate (§3, §4.3).
func (e *Engine) AddSubcircuit(graphID, gateID, subgraphID string, ioMap map[string]string) error {
	return e.execute(func(e *Engine) error {
		g, err := e.mustGraph(graphID)
		if err != nil {
			return err
		}
		if _, exists := g.gates[gateID]; exists {
			return errors.Errorf("gatesim: duplicate gate id %q in graph %q", gateID, graphID)
		}
		subgraph, err := e.mustGraph(subgraphID)
		if err != nil {
			return err
		}
		if subgraph.subcircuit != nil {
			return errors.Errorf("gatesim: graph %q is already instantiated as a subcircuit", subgraphID)
		}

		ports := make(map[string]Port, len(ioMap))
		outputGates := make(map[string]*Gate, len(ioMap))
		for extPort, innerID := range ioMap {
			inner, ok := subgraph.Gate(innerID)
			if !ok {
				return errors.Errorf("gatesim: ioMap entry %q references unknown gate %q in graph %q", extPort, innerID, subgraphID)
			}
			switch {
			case inner.IsInput():
				p, ok := inner.Port("out")
				if !ok {
					return errors.Errorf("gatesim: Input gate %q has no out port", innerID)
				}
				ports[extPort] = Port{ID: extPort, Direction: In, Bits: p.Bits}
			case inner.IsOutput():
				p, ok := inner.Port("in")
				if !ok {
					return errors.Errorf("gatesim: Output gate %q has no in port", innerID)
				}
				ports[extPort] = Port{ID: extPort, Direction: Out, Bits: p.Bits}
				outputGates[extPort] = inner
			default:
				return errors.Errorf("gatesim: ioMap entry %q must name an Input or Output gate, got %q", extPort, inner.Type)
			}
		}

		gt := newGate(gateID, "Subcircuit", subcircuitCell, ports, nil, nil)
		gt.graph = g
		gt.Subgraph = subgraph
		gt.IOMap = copyStringMap(ioMap)
		for extPort, p := range ports {
			if p.Direction == In {
				gt.inputSignals[extPort] = Undefined(p.Bits)
			} else {
				gt.outputSignals[extPort] = Undefined(p.Bits)
			}
		}
		for extPort, inner := range outputGates {
			inner.Net = extPort
		}
		g.gates[gateID] = gt
		subgraph.subcircuit = gt

		// Boundary initialization (§4.3): for an `in` port, drive the
		// bound inner Input's `out` from the gate's current input; for an
		// `out` port, drive the gate's output from the bound inner
		// Output's `in`. This establishes a consistent boundary before
		// anything evaluates across it, even though both sides start
		// Undefined for a brand new gate.
		for extPort, p := range ports {
			if p.Direction == In {
				if err := e.crossIntoSubcircuit(gt, extPort, gt.Input(extPort)); err != nil {
					return err
				}
				continue
			}
			inner := outputGates[extPort]
			if err := e.setGateOutputSignal(gt, extPort, inner.Input(pIn)); err != nil {
				return err
			}
		}
		return nil
	})
}

const (
	pIn  = "in"
	pOut = "out"
)

func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// AddLink wires an output port to an input port within a single graph
// (§4.3). The target immediately picks up the source's current output
// value, matching the source library's wiring semantics.
func (e *Engine) AddLink(graphID string, spec LinkSpec) error {
	return e.execute(func(e *Engine) error {
		g, err := e.mustGraph(graphID)
		if err != nil {
			return err
		}
		if _, exists := g.links[spec.ID]; exists {
			return errors.Errorf("gatesim: duplicate link id %q in graph %q", spec.ID, graphID)
		}
		src, err := e.mustGate(graphID, spec.Source.Gate)
		if err != nil {
			return err
		}
		tgt, err := e.mustGate(graphID, spec.Target.Gate)
		if err != nil {
			return err
		}
		sp, err := e.mustPort(src, spec.Source.Port, Out)
		if err != nil {
			return err
		}
		tp, err := e.mustPort(tgt, spec.Target.Port, In)
		if err != nil {
			return err
		}
		if sp.Bits != tp.Bits {
			return errors.Errorf("gatesim: link %q width mismatch: %s is %d bits, %s is %d bits", spec.ID, endpointString(spec.Source), sp.Bits, endpointString(spec.Target), tp.Bits)
		}

		g.links[spec.ID] = &Link{ID: spec.ID, Source: spec.Source, Target: spec.Target}
		src.links[spec.ID] = struct{}{}
		tgt.links[spec.ID] = struct{}{}
		set, ok := src.linksByOutput[spec.Source.Port]
		if !ok {
			set = make(map[Endpoint]struct{})
			src.linksByOutput[spec.Source.Port] = set
		}
		set[spec.Target] = struct{}{}

		return e.setGateInputSignal(tgt, spec.Target.Port, src.Output(spec.Source.Port))
	})
}

// RemoveLink disconnects a link and drives the target input back to
// Undefined (§8 S3: a disconnected input is unknown, not whatever value
// it last held — there is no longer anything claiming to drive it).
// RemoveGate already deletes every link incident on the removed gate, so
// removing such a link again returns a no-such-link error.
func (e *Engine) RemoveLink(graphID, linkID string) error {
	return e.execute(func(e *Engine) error {
		g, err := e.mustGraph(graphID)
		if err != nil {
			return err
		}
		link, ok := g.Link(linkID)
		if !ok {
			return errors.Errorf("gatesim: no such link %q in graph %q", linkID, graphID)
		}
		e.unlink(g, link)
		if tgt, ok := g.Gate(link.Target.Gate); ok {
			if p, ok := tgt.Port(link.Target.Port); ok {
				return e.setGateInputSignal(tgt, link.Target.Port, Undefined(p.Bits))
			}
		}
		return nil
	})
}

func (e *Engine) unlink(g *Graph, link *Link) {
	delete(g.links, link.ID)
	if src, ok := g.Gate(link.Source.Gate); ok {
		delete(src.links, link.ID)
		// Another surviving link may share this exact source and target;
		// the target stays in the set until the last such link goes.
		shared := false
		for otherID := range src.links {
			if other, ok := g.links[otherID]; ok && other.Source == link.Source && other.Target == link.Target {
				shared = true
				break
			}
		}
		if set, ok := src.linksByOutput[link.Source.Port]; ok && !shared {
			delete(set, link.Target)
			if len(set) == 0 {
				delete(src.linksByOutput, link.Source.Port)
			}
		}
	}
	if tgt, ok := g.Gate(link.Target.Gate); ok {
		delete(tgt.links, link.ID)
	}
}

// RemoveGate removes a gate and every link incident on it (§4.3). Any
// event already queued for this gate becomes a stale reference that the
// scheduler silently skips when drained (g.graph is cleared here).
func (e *Engine) RemoveGate(graphID, gateID string) error {
	return e.execute(func(e *Engine) error {
		g, err := e.mustGraph(graphID)
		if err != nil {
			return err
		}
		gt, ok := g.Gate(gateID)
		if !ok {
			return errors.Errorf("gatesim: no such gate %q in graph %q", gateID, graphID)
		}
		for linkID := range gt.links {
			if link, ok := g.Link(linkID); ok {
				e.unlink(g, link)
			}
		}
		delete(g.gates, gateID)
		gt.graph = nil
		return nil
	})
}

// SetInputSignal drives an arbitrary In-direction port directly via the
// propagator's input-side rule, bypassing whatever link (if any) feeds
// it. This is not one of the named wire commands in §6 — a real host
// reaches an ordinary gate's input, or a subcircuit gate's external
// input port (itself Direction In, per AddSubcircuit), by wiring an
// Input gate to it with AddLink instead. It exists as a direct way for
// tests to set up or probe a specific input without that boilerplate.
func (e *Engine) SetInputSignal(graphID, gateID, port string, sig Signal) error {
	return e.execute(func(e *Engine) error {
		gt, err := e.mustGate(graphID, gateID)
		if err != nil {
			return err
		}
		p, err := e.mustPort(gt, port, In)
		if err != nil {
			return err
		}
		if sig.Width() != p.Bits {
			return errors.Errorf("gatesim: SetInputSignal %s.%s: signal width %d, want %d", gateID, port, sig.Width(), p.Bits)
		}
		return e.setGateInputSignal(gt, port, sig)
	})
}

// ObserveGraph enables update-batch emission for graphID (§4.4).
func (e *Engine) ObserveGraph(graphID string) error {
	return e.execute(func(e *Engine) error { return e.observeGraph(graphID) })
}

// UnobserveGraph disables update-batch emission for graphID (§4.4).
func (e *Engine) UnobserveGraph(graphID string) error {
	return e.execute(func(e *Engine) error { return e.unobserveGraph(graphID) })
}

// InputSignal returns the current value of one of a gate's input ports,
// for hosts and tests that need to inspect state directly rather than
// waiting for an update batch.
func (e *Engine) InputSignal(graphID, gateID, port string) (Signal, error) {
	var sig Signal
	err := e.execute(func(e *Engine) error {
		gt, err := e.mustGate(graphID, gateID)
		if err != nil {
			return err
		}
		if _, err := e.mustPort(gt, port, In); err != nil {
			return err
		}
		sig = gt.Input(port)
		return nil
	})
	return sig, err
}

// OutputSignal returns the current value of one of a gate's output
// ports.
func (e *Engine) OutputSignal(graphID, gateID, port string) (Signal, error) {
	var sig Signal
	err := e.execute(func(e *Engine) error {
		gt, err := e.mustGate(graphID, gateID)
		if err != nil {
			return err
		}
		if _, err := e.mustPort(gt, port, Out); err != nil {
			return err
		}
		sig = gt.Output(port)
		return nil
	})
	return sig, err
}

// Inspect runs fn with read access to graphID's current Graph, routed
// through the actor like every other accessor so the read can't tear
// against an in-flight command. Intended for diagnostics and property
// tests (§8) that need to walk a graph's gates and links directly (see
// Graph.GateIDs/LinkIDs and Gate.LinkIDs/Targets) rather than query one
// signal at a time. fn must not retain g or any gate/link reached from
// it past its return, since they may be mutated by the next command.
func (e *Engine) Inspect(graphID string, fn func(g *Graph)) error {
	return e.execute(func(e *Engine) error {
		g, err := e.mustGraph(graphID)
		if err != nil {
			return err
		}
		fn(g)
		return nil
	})
}

// Tick returns the scheduler's current simulated tick (§4.1). It routes
// through the actor goroutine like every other accessor so the read is
// never torn against an in-flight command.
func (e *Engine) Tick() int64 {
	var tick int64
	_ = e.execute(func(e *Engine) error {
		tick = e.scheduler.Tick()
		return nil
	})
	return tick
}

// HasPendingEvents reports whether the scheduler still has any gate
// queued for a future tick.
func (e *Engine) HasPendingEvents() (bool, error) {
	var pending bool
	err := e.execute(func(e *Engine) error {
		pending = e.scheduler.HasPendingEvents()
		return nil
	})
	return pending, err
}

// Flush forces an immediate update-batch flush, independent of the
// periodic flush ticker (§4.4). Primarily useful for tests and manual
// single-stepping, where waiting on wall-clock time would make
// assertions non-deterministic.
func (e *Engine) Flush() error {
	return e.execute(func(e *Engine) error {
		e.batcher.flush()
		return nil
	})
}

// UpdateGates performs one manual "slow step" of the scheduler (§4.1).
// Typically used for single-stepping while the driver is stopped.
func (e *Engine) UpdateGates() error {
	return e.execute(func(e *Engine) error { return e.scheduler.UpdateGates() })
}

// UpdateGatesNext performs one manual "event step" of the scheduler
// (§4.1), skipping straight to the next tick with pending events.
func (e *Engine) UpdateGatesNext() error {
	return e.execute(func(e *Engine) error { return e.scheduler.UpdateGatesNext() })
}

// Start begins Normal-mode driving at the given wall-clock interval
// (§4.5). A zero interval installs the driver with whatever interval was
// last configured via SetInterval (or DefaultTickInterval if none was),
// matching §6's argumentless `start` command. Returns an error if a
// driver is already running.
func (e *Engine) Start(interval time.Duration) error {
	return e.execute(func(e *Engine) error { return e.start(interval) })
}

// StartFast begins Fast-mode driving (§4.5), draining the event queue as
// quickly as possible until it runs dry. Returns an error if a driver is
// already running.
func (e *Engine) StartFast() error {
	return e.execute(func(e *Engine) error { return e.startFast() })
}

// Stop halts whichever driver mode is running. A no-op if neither is
// running.
//
// The close-and-wait for the driver goroutine's exit happens outside
// execute: runNormal/runFast each call back into the actor via execute
// on every tick, so waiting for one of them to exit from inside an
// actor-run closure would deadlock the pair against each other (§5).
func (e *Engine) Stop() error {
	d := e.driver
	stop, done, err := e.beginHalt()
	if err != nil || stop == nil {
		return err
	}
	close(stop)
	<-done
	return e.execute(func(e *Engine) error {
		d.mode = driverStopped
		return nil
	})
}

func (e *Engine) beginHalt() (stop, done chan struct{}, err error) {
	err = e.execute(func(e *Engine) error {
		stop, done = e.haltChannels()
		return nil
	})
	return stop, done, err
}

// SetInterval sets the Normal-mode tick interval (§6's `interval`
// command), independent of whether a driver is currently running. If
// Normal mode is running, the change takes effect immediately by
// swapping the running ticker goroutine for one using the new interval,
// without otherwise disturbing the driver; if Fast mode is running or no
// driver is running, the new value is only recorded for the next Start.
//
// As in Stop, the old driver goroutine's close-and-wait (when one must
// be swapped) happens outside execute to avoid deadlocking it against
// the actor.
func (e *Engine) SetInterval(interval time.Duration) error {
	if interval <= 0 {
		return errors.New("gatesim: interval must be positive")
	}
	d := e.driver
	var stop, done chan struct{}
	if err := e.execute(func(e *Engine) error {
		d.normalInterval = interval
		if d.mode == driverNormal {
			stop, done = d.tickStop, d.tickDone
		}
		return nil
	}); err != nil {
		return err
	}
	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	return e.execute(func(e *Engine) error {
		d.interval = interval
		d.tickStop = make(chan struct{})
		d.tickDone = make(chan struct{})
		go d.runNormal(interval, d.tickStop, d.tickDone)
		return nil
	})
}
