package gatesim

// Inputs is the signal snapshot passed to a Cell's Operation: one entry
// per declared input port.
type Inputs map[string]Signal

// Outputs is the signal map a Cell's Operation returns: one entry per
// output port it wants to change.
type Outputs map[string]Signal

// Result is what a Cell's Operation returns for a single evaluation: the
// new output values, plus a request to be re-enqueued for another
// evaluation at tick+propagation. Reenqueue is the structured replacement
// for the source's "_clock_hack" sentinel output key (§9 design notes):
// a self-oscillating cell (see cells.Clock) sets it instead of smuggling
// a magic key into Outputs.
type Result struct {
	Outputs   Outputs
	Reenqueue bool
}

// A Cell is a gate type's implementation: a pure combinational (or
// edge-sensitive, via helper state) function plus a one-time per-gate
// initializer. The cell library that supplies Cells is an external
// collaborator (§1) — this engine only depends on the Cell contract; see
// package cells for a concrete registry.
//
// The source copies cell "prototype" helper methods onto each gate
// instance before calling its initializer so that Operation can close
// over per-gate mutable state (e.g. a register's currently-latched
// value). This Go port collapses that mixin step: Prepare receives the
// live *Gate and returns whatever per-gate state Operation will need;
// Operation receives that same value back on every call. There is no
// separate "_operationHelpers" list to copy, because nothing needs
// copying — the state value already belongs to this gate alone.
type Cell struct {
	// Type names the cell, e.g. "AND", "DFF", "Subcircuit".
	Type string
	// Inputs and Outputs declare the gate's port table. Special cells
	// (Subcircuit, Input, Output, Button, Lamp, NumEntry, NumDisplay)
	// are never evaluated by the scheduler (§3) — set Special true for
	// those; Operation and Propagation are ignored for them.
	Inputs  []Port
	Outputs []Port
	Special bool
	// TerminalOutput marks a cell as playing the Output role at a
	// subcircuit boundary (§4.2): its sole input port drives the
	// enclosing subcircuit gate's corresponding external output (via
	// Gate.Net) instead of being evaluated. Kept separate from Type so
	// that width-parameterized Output cells (Output, Output16, ...) all
	// still get this treatment without a Type-string naming convention
	// leaking into the propagator.
	TerminalOutput bool
	// TerminalInput marks a cell as playing the Input role at a
	// subcircuit boundary (§4.2): its sole output port is driven
	// directly by the enclosing subcircuit gate's corresponding
	// external input, bypassing the event queue. See TerminalOutput for
	// why this is a separate flag rather than a Type-string convention.
	TerminalInput bool
	// SelfStarting marks a cell that produces output without ever
	// receiving an input change — an oscillator (see cells.Clock) rather
	// than a combinational or edge-triggered part. AddGate enqueues such
	// a gate for evaluation once, immediately after construction; every
	// evaluation after that is driven by its own Result.Reenqueue.
	SelfStarting bool
	// Propagation is the default per-gate delay in ticks between an
	// input changing and the scheduler re-evaluating this gate's
	// outputs. A specific gate may override it via params — see
	// Gate.Propagation.
	Propagation int
	// Prepare is called once, at gate construction, to build any
	// cell-private per-gate state (e.g. a register's latched value).
	// May be nil for stateless cells.
	Prepare func(g *Gate) interface{}
	// Operation is the pure dispatch function: given the gate's current
	// input signals and its per-gate state (as returned by Prepare), it
	// computes new output signals. It must not reach into graph state
	// or enqueue directly (§5) — Reenqueue is the only scheduling
	// channel available to a cell. May be nil for Special cells.
	Operation func(inputs Inputs, state interface{}) Result
}
