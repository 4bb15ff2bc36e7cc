package cells

import gs "github.com/digital-logic-and-computer-design/digitaljs"

// fullAdd is a single-bit full adder over three-valued logic: any
// unknown operand makes both outputs unknown, since a ripple-carry chain
// has no way to recover a known result once one bit is indeterminate.
func fullAdd(a, b, cin gs.Bit) (sum, cout gs.Bit) {
	if a == gs.X || b == gs.X || cin == gs.X {
		return gs.X, gs.X
	}
	n := 0
	if a == gs.One {
		n++
	}
	if b == gs.One {
		n++
	}
	if cin == gs.One {
		n++
	}
	if n%2 == 1 {
		sum = gs.One
	} else {
		sum = gs.Zero
	}
	if n >= 2 {
		cout = gs.One
	} else {
		cout = gs.Zero
	}
	return sum, cout
}

// Adder returns an N-bit ripple-carry adder.
//
//	Inputs: a[bits], b[bits], cin
//	Outputs: sum[bits], cout
func Adder(bits int) *gs.Cell {
	return &gs.Cell{
		Type: typeName("ADD", bits),
		Inputs: []gs.Port{
			{ID: pA, Direction: gs.In, Bits: bits},
			{ID: pB, Direction: gs.In, Bits: bits},
			{ID: "cin", Direction: gs.In, Bits: 1},
		},
		Outputs: []gs.Port{
			{ID: "sum", Direction: gs.Out, Bits: bits},
			{ID: "cout", Direction: gs.Out, Bits: 1},
		},
		Propagation: 1,
		Operation: func(in gs.Inputs, _ interface{}) gs.Result {
			a, b, carry := in[pA], in[pB], in["cin"].Bit(0)
			sum := make([]gs.Bit, bits)
			for i := range sum {
				sum[i], carry = fullAdd(a.Bit(i), b.Bit(i), carry)
			}
			return gs.Result{Outputs: gs.Outputs{"sum": gs.FromBits(sum), "cout": gs.FromBits([]gs.Bit{carry})}}
		},
	}
}

// Subtractor returns an N-bit subtractor computing a - b via two's
// complement addition (a + ^b + 1), i.e. the same ripple-carry adder fed
// with b inverted and an initial borrow-in of 1.
//
//	Inputs: a[bits], b[bits]
//	Outputs: diff[bits], borrow (1 when a < b, i.e. no carry-out from the top bit)
func Subtractor(bits int) *gs.Cell {
	return &gs.Cell{
		Type: typeName("SUB", bits),
		Inputs: []gs.Port{
			{ID: pA, Direction: gs.In, Bits: bits},
			{ID: pB, Direction: gs.In, Bits: bits},
		},
		Outputs: []gs.Port{
			{ID: "diff", Direction: gs.Out, Bits: bits},
			{ID: "borrow", Direction: gs.Out, Bits: 1},
		},
		Propagation: 1,
		Operation: func(in gs.Inputs, _ interface{}) gs.Result {
			a, b := in[pA], in[pB]
			diff := make([]gs.Bit, bits)
			carry := gs.One
			for i := range diff {
				diff[i], carry = fullAdd(a.Bit(i), bitNot(b.Bit(i)), carry)
			}
			return gs.Result{Outputs: gs.Outputs{"diff": gs.FromBits(diff), "borrow": gs.FromBits([]gs.Bit{bitNot(carry)})}}
		},
	}
}
