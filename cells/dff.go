package cells

import gs "github.com/digital-logic-and-computer-design/digitaljs"

type dffState struct {
	value   gs.Signal
	lastClk gs.Bit
}

// DFF returns an N-bit edge-triggered data flip-flop: out latches in's
// value on every rising edge of clk (lastClk 0 or X followed by clk 1),
// and holds otherwise. This replaces the source library's AtTick()
// half-cycle check (a property of its circuit-wide two-phase clock) with
// an explicit clk input, since this engine has no notion of global clock
// phase outside whatever Clock cell a host wires in.
//
//	Inputs: in[bits], clk
//	Outputs: out[bits]
//	Function: out(t) = in(t-1) sampled at the last rising edge of clk
func DFF(bits int) *gs.Cell {
	return &gs.Cell{
		Type: typeName("DFF", bits),
		Inputs: []gs.Port{
			{ID: pIn, Direction: gs.In, Bits: bits},
			{ID: "clk", Direction: gs.In, Bits: 1},
		},
		Outputs:     []gs.Port{{ID: pOut, Direction: gs.Out, Bits: bits}},
		Propagation: 1,
		Prepare: func(g *gs.Gate) interface{} {
			return &dffState{value: gs.Undefined(bits), lastClk: gs.X}
		},
		Operation: func(in gs.Inputs, state interface{}) gs.Result {
			st := state.(*dffState)
			clk := in["clk"].Bit(0)
			if st.lastClk != gs.One && clk == gs.One {
				st.value = in[pIn]
			}
			st.lastClk = clk
			return gs.Result{Outputs: gs.Outputs{pOut: st.value}}
		},
	}
}
