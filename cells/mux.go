package cells

import gs "github.com/digital-logic-and-computer-design/digitaljs"

// Mux returns an N-bit 2-to-1 multiplexer: out = sel ? b : a. An unknown
// sel makes the whole output unknown, since which input would have been
// selected cannot be known.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
func Mux(bits int) *gs.Cell {
	return &gs.Cell{
		Type: typeName("MUX", bits),
		Inputs: []gs.Port{
			{ID: pA, Direction: gs.In, Bits: bits},
			{ID: pB, Direction: gs.In, Bits: bits},
			{ID: pSel, Direction: gs.In, Bits: 1},
		},
		Outputs:     []gs.Port{{ID: pOut, Direction: gs.Out, Bits: bits}},
		Propagation: 1,
		Operation: func(in gs.Inputs, _ interface{}) gs.Result {
			switch in[pSel].Bit(0) {
			case gs.Zero:
				return gs.Result{Outputs: gs.Outputs{pOut: in[pA]}}
			case gs.One:
				return gs.Result{Outputs: gs.Outputs{pOut: in[pB]}}
			default:
				return gs.Result{Outputs: gs.Outputs{pOut: gs.Undefined(bits)}}
			}
		},
	}
}

// DMux returns an N-bit 1-to-2 demultiplexer: the inactive branch is
// driven to all zeros rather than left unknown, matching the source
// library's DMux (only the selected output carries in; the other is
// quiescent low).
//
//	Inputs: in[bits], sel
//	Outputs: a[bits], b[bits]
func DMux(bits int) *gs.Cell {
	return &gs.Cell{
		Type: typeName("DMUX", bits),
		Inputs: []gs.Port{
			{ID: pIn, Direction: gs.In, Bits: bits},
			{ID: pSel, Direction: gs.In, Bits: 1},
		},
		Outputs: []gs.Port{
			{ID: pA, Direction: gs.Out, Bits: bits},
			{ID: pB, Direction: gs.Out, Bits: bits},
		},
		Propagation: 1,
		Operation: func(in gs.Inputs, _ interface{}) gs.Result {
			switch in[pSel].Bit(0) {
			case gs.Zero:
				return gs.Result{Outputs: gs.Outputs{pA: in[pIn], pB: gs.Zeros(bits)}}
			case gs.One:
				return gs.Result{Outputs: gs.Outputs{pA: gs.Zeros(bits), pB: in[pIn]}}
			default:
				return gs.Result{Outputs: gs.Outputs{pA: gs.Undefined(bits), pB: gs.Undefined(bits)}}
			}
		},
	}
}
