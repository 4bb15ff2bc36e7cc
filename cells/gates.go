package cells

import (
	"strconv"

	gs "github.com/digital-logic-and-computer-design/digitaljs"
)

// common pin names, mirroring the source library's bus naming
// convention (gatesim.BusPinName handles per-bit pin names for hosts
// that want to address individual wires of a bus).
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
)

// Three-valued truth tables: an unknown operand makes the result
// unknown unless the other operand already determines it (0 absorbs AND,
// 1 absorbs OR), matching how digital simulators usually extend 2-valued
// logic to X rather than making X universally contagious.
func bitAnd(a, b gs.Bit) gs.Bit {
	if a == gs.Zero || b == gs.Zero {
		return gs.Zero
	}
	if a == gs.X || b == gs.X {
		return gs.X
	}
	return gs.One
}

func bitOr(a, b gs.Bit) gs.Bit {
	if a == gs.One || b == gs.One {
		return gs.One
	}
	if a == gs.X || b == gs.X {
		return gs.X
	}
	return gs.Zero
}

func bitXor(a, b gs.Bit) gs.Bit {
	if a == gs.X || b == gs.X {
		return gs.X
	}
	if a == b {
		return gs.Zero
	}
	return gs.One
}

func bitNot(a gs.Bit) gs.Bit {
	switch a {
	case gs.Zero:
		return gs.One
	case gs.One:
		return gs.Zero
	default:
		return gs.X
	}
}

func bitNand(a, b gs.Bit) gs.Bit { return bitNot(bitAnd(a, b)) }
func bitNor(a, b gs.Bit) gs.Bit  { return bitNot(bitOr(a, b)) }
func bitXnor(a, b gs.Bit) gs.Bit { return bitNot(bitXor(a, b)) }

func typeName(base string, bits int) string {
	if bits == 1 {
		return base
	}
	return base + strconv.Itoa(bits)
}

func newBinary(base string, bits int, fn func(a, b gs.Bit) gs.Bit) *gs.Cell {
	return &gs.Cell{
		Type:        typeName(base, bits),
		Inputs:      []gs.Port{{ID: pA, Direction: gs.In, Bits: bits}, {ID: pB, Direction: gs.In, Bits: bits}},
		Outputs:     []gs.Port{{ID: pOut, Direction: gs.Out, Bits: bits}},
		Propagation: 1,
		Operation: func(in gs.Inputs, _ interface{}) gs.Result {
			a, b := in[pA], in[pB]
			out := make([]gs.Bit, bits)
			for i := range out {
				out[i] = fn(a.Bit(i), b.Bit(i))
			}
			return gs.Result{Outputs: gs.Outputs{pOut: gs.FromBits(out)}}
		},
	}
}

func newUnary(base string, bits int, fn func(a gs.Bit) gs.Bit) *gs.Cell {
	return &gs.Cell{
		Type:        typeName(base, bits),
		Inputs:      []gs.Port{{ID: pIn, Direction: gs.In, Bits: bits}},
		Outputs:     []gs.Port{{ID: pOut, Direction: gs.Out, Bits: bits}},
		Propagation: 1,
		Operation: func(in gs.Inputs, _ interface{}) gs.Result {
			a := in[pIn]
			out := make([]gs.Bit, bits)
			for i := range out {
				out[i] = fn(a.Bit(i))
			}
			return gs.Result{Outputs: gs.Outputs{pOut: gs.FromBits(out)}}
		},
	}
}

// And returns an N-bit AND gate (bits == 1 for a plain 1-bit gate).
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
func And(bits int) *gs.Cell { return newBinary("AND", bits, bitAnd) }

// Or returns an N-bit OR gate.
func Or(bits int) *gs.Cell { return newBinary("OR", bits, bitOr) }

// Nand returns an N-bit NAND gate.
func Nand(bits int) *gs.Cell { return newBinary("NAND", bits, bitNand) }

// Nor returns an N-bit NOR gate.
func Nor(bits int) *gs.Cell { return newBinary("NOR", bits, bitNor) }

// Xor returns an N-bit XOR gate.
func Xor(bits int) *gs.Cell { return newBinary("XOR", bits, bitXor) }

// Xnor returns an N-bit XNOR gate.
func Xnor(bits int) *gs.Cell { return newBinary("XNOR", bits, bitXnor) }

// Not returns an N-bit NOT gate.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
func Not(bits int) *gs.Cell { return newUnary("NOT", bits, bitNot) }

// Standard returns the usual 1-bit and 16-bit variants of every gate in
// this file, ready to hand to gatesim.WithCells or RegisterCell in a
// loop — the same default widths the source library ships (hwlib
// exposes both bare and "16" suffixed parts).
func Standard() []*gs.Cell {
	var out []*gs.Cell
	for _, bits := range []int{1, 16} {
		out = append(out,
			And(bits), Or(bits), Nand(bits), Nor(bits), Xor(bits), Xnor(bits), Not(bits),
		)
	}
	return out
}
