package cells

import gs "github.com/digital-logic-and-computer-design/digitaljs"

// Input returns a bus whose value a host (or an enclosing subcircuit's
// crossIntoSubcircuit) drives directly via Engine.ChangeInput. It has no
// inputs of its own and is never scheduled.
//
//	Outputs: out[bits]
func Input(bits int) *gs.Cell {
	return &gs.Cell{Type: typeName("Input", bits), Special: true, TerminalInput: true, Outputs: []gs.Port{{ID: pOut, Direction: gs.Out, Bits: bits}}}
}

// Output returns a terminal probe gate: its "in" port either drives the
// enclosing subcircuit's corresponding external output (when this gate's
// graph was instantiated as a subgraph — see Gate.Net) or is simply a
// sink for a top-level observer.
//
//	Inputs: in[bits]
func Output(bits int) *gs.Cell {
	return &gs.Cell{Type: typeName("Output", bits), Special: true, TerminalOutput: true, Inputs: []gs.Port{{ID: pIn, Direction: gs.In, Bits: bits}}}
}

// Button is a 1-bit momentary input a host drives via ChangeInput, e.g.
// in response to a UI click.
//
//	Outputs: out
func Button() *gs.Cell {
	return &gs.Cell{Type: "Button", Special: true, Outputs: []gs.Port{{ID: pOut, Direction: gs.Out, Bits: 1}}}
}

// Lamp is a 1-bit display-only sink: its value is reported to the host
// through the update batcher whenever it changes, but it drives nothing
// downstream.
//
//	Inputs: in
func Lamp() *gs.Cell {
	return &gs.Cell{Type: "Lamp", Special: true, Inputs: []gs.Port{{ID: pIn, Direction: gs.In, Bits: 1}}}
}

// NumEntry is an N-bit numeric input a host drives via ChangeInput, e.g.
// in response to a UI text field.
//
//	Outputs: out[bits]
func NumEntry(bits int) *gs.Cell {
	return &gs.Cell{Type: "NumEntry", Special: true, Outputs: []gs.Port{{ID: pOut, Direction: gs.Out, Bits: bits}}}
}

// NumDisplay is an N-bit display-only sink, the bus-width counterpart to
// Lamp.
//
//	Inputs: in[bits]
func NumDisplay(bits int) *gs.Cell {
	return &gs.Cell{Type: "NumDisplay", Special: true, Inputs: []gs.Port{{ID: pIn, Direction: gs.In, Bits: bits}}}
}
