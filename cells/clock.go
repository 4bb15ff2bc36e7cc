package cells

import gs "github.com/digital-logic-and-computer-design/digitaljs"

type clockState struct {
	value gs.Bit
}

// Clock returns a free-running square-wave oscillator: it has no
// inputs, toggles its single output every halfPeriod ticks, and
// re-enqueues itself forever (gatesim.Result.Reenqueue). It is the one
// built-in cell marked SelfStarting, since nothing will ever change an
// input to wake it up (§9 design notes: the structured replacement for
// the source's "_clock_hack").
//
//	Inputs: (none)
//	Outputs: out
func Clock(halfPeriod int) *gs.Cell {
	if halfPeriod < 1 {
		halfPeriod = 1
	}
	return &gs.Cell{
		Type:         "CLOCK",
		Outputs:      []gs.Port{{ID: pOut, Direction: gs.Out, Bits: 1}},
		Propagation:  halfPeriod,
		SelfStarting: true,
		Prepare: func(g *gs.Gate) interface{} {
			return &clockState{value: gs.Zero}
		},
		Operation: func(_ gs.Inputs, state interface{}) gs.Result {
			st := state.(*clockState)
			if st.value == gs.One {
				st.value = gs.Zero
			} else {
				st.value = gs.One
			}
			return gs.Result{
				Outputs:   gs.Outputs{pOut: gs.FromBits([]gs.Bit{st.value})},
				Reenqueue: true,
			}
		},
	}
}
