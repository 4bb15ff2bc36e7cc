package gatesim

import "github.com/pkg/errors"

// setGateOutputSignals applies a cell's computed outputs to gate g,
// validating each against g's declared port table (the CellContract
// check, §7) before fanning each changed output out via
// setGateOutputSignal.
//
// Open Question decision (§9, recorded in DESIGN.md): CellContract
// violations fail fast unconditionally rather than the source's
// debug/release split, since this module has no build-tag story.
func (e *Engine) setGateOutputSignals(g *Gate, outputs Outputs) error {
	for port, sig := range outputs {
		p, ok := g.ports[port]
		if !ok || p.Direction != Out {
			return errors.Errorf("gatesim: cell %q for gate %q returned unknown output port %q", g.Type, g.ID, port)
		}
		if sig.Width() != p.Bits {
			return errors.Errorf("gatesim: cell %q for gate %q returned signal of width %d for port %q (want %d)", g.Type, g.ID, sig.Width(), port, p.Bits)
		}
		if err := e.setGateOutputSignal(g, port, sig); err != nil {
			return err
		}
	}
	return nil
}

// setGateOutputSignal is the propagator's core rule (§4.2): if the new
// signal equals the current one, nothing happens; otherwise the output
// is updated, marked dirty for the update batcher, and fanned out to
// every linked target input.
func (e *Engine) setGateOutputSignal(g *Gate, port string, sig Signal) error {
	if sig.Equal(g.outputSignals[port]) {
		return nil
	}
	g.outputSignals[port] = sig
	e.batcher.markUpdate(g, port)

	// Snapshot the target set before iterating (§9 Open Question
	// decision): a re-entrant removeLink during this fan-out must not
	// perturb the iteration. The target set is a map, so its endpoints
	// are copied into a fresh slice; Endpoint is a plain value, so later
	// edits to the set cannot change the copy.
	targets := g.linksByOutput[port]
	if len(targets) == 0 {
		return nil
	}
	snapshot := make([]Endpoint, 0, len(targets))
	for ep := range targets {
		snapshot = append(snapshot, ep)
	}
	for _, ep := range snapshot {
		if g.graph == nil {
			break
		}
		tgt, ok := g.graph.Gate(ep.Gate)
		if !ok {
			continue
		}
		if err := e.setGateInputSignal(tgt, ep.Port, sig); err != nil {
			return err
		}
	}
	return nil
}

// setGateInputSignal is the propagator's other core rule (§4.2): if the
// new signal equals the current one, nothing happens; otherwise the
// input is updated and dispatched according to the target's kind.
func (e *Engine) setGateInputSignal(g *Gate, port string, sig Signal) error {
	if sig.Equal(g.inputSignals[port]) {
		return nil
	}
	g.inputSignals[port] = sig

	switch {
	case g.IsSubcircuit():
		return e.crossIntoSubcircuit(g, port, sig)
	case g.IsOutput():
		return e.crossOutOfSubcircuit(g, sig)
	case g.Special:
		// A Special gate with input ports (Lamp, NumDisplay) is a
		// display-only sink: it is never scheduled, but the host still
		// needs to see its transitions in the next update batch.
		e.batcher.markUpdate(g, port)
		return nil
	default:
		e.scheduler.enqueue(g)
		return nil
	}
}

// crossIntoSubcircuit drives a subcircuit gate's external input onto the
// out port of the corresponding inner Input gate (§4.2). Subcircuit
// boundary crossings bypass the event queue entirely, making a
// subcircuit combinationally transparent at the tick granularity; only
// the interior gates it contains consume their own declared propagation.
func (e *Engine) crossIntoSubcircuit(g *Gate, port string, sig Signal) error {
	if g.Subgraph == nil || g.IOMap == nil {
		return nil // not yet bound by addSubcircuit — silently absorbed (§7)
	}
	innerID, ok := g.IOMap[port]
	if !ok {
		return nil
	}
	inner, ok := g.Subgraph.Gate(innerID)
	if !ok {
		return nil
	}
	return e.setGateOutputSignals(inner, Outputs{"out": sig})
}

// crossOutOfSubcircuit drives an inner Output gate's input onto the
// corresponding external output port of the enclosing subcircuit gate
// (§4.2). If the graph this Output gate lives in has no enclosing
// subcircuit, the value is terminal (§9 Open Question, preserved
// verbatim: a top-level Output gate is simply a sink).
func (e *Engine) crossOutOfSubcircuit(g *Gate, sig Signal) error {
	if g.graph == nil {
		return nil
	}
	subcir := g.graph.subcircuit
	if subcir == nil {
		return nil
	}
	return e.setGateOutputSignal(subcir, g.Net, sig)
}
