package cells_test

import (
	"testing"

	gs "github.com/digital-logic-and-computer-design/digitaljs"
	"github.com/digital-logic-and-computer-design/digitaljs/cells"
)

func TestDFFLatchesOnRisingEdge(t *testing.T) {
	dff := cells.DFF(4)
	state := dff.Prepare(nil)

	step := func(in gs.Signal, clk gs.Bit) gs.Signal {
		res := dff.Operation(gs.Inputs{"in": in, "clk": gs.FromBits([]gs.Bit{clk})}, state)
		return res.Outputs["out"]
	}

	// Reset state: clk low, no edge yet, output still undefined.
	out := step(gs.FromUint64(4, 0b1010), gs.Zero)
	if !out.HasUnknown() {
		t.Fatalf("out = %s before any rising edge, want all-X", out)
	}

	// Rising edge latches the current input.
	out = step(gs.FromUint64(4, 0b1010), gs.One)
	if out.Uint64() != 0b1010 {
		t.Fatalf("out = %v after rising edge, want 1010", out)
	}

	// Changing in without a new edge must not change out.
	out = step(gs.FromUint64(4, 0b0101), gs.One)
	if out.Uint64() != 0b1010 {
		t.Fatalf("out = %v while clk held high, want unchanged 1010", out)
	}

	// clk falls, then rises again: new value latches.
	out = step(gs.FromUint64(4, 0b0101), gs.Zero)
	if out.Uint64() != 0b1010 {
		t.Fatalf("out = %v on falling edge, want unchanged 1010", out)
	}
	out = step(gs.FromUint64(4, 0b0101), gs.One)
	if out.Uint64() != 0b0101 {
		t.Fatalf("out = %v after second rising edge, want 0101", out)
	}
}

func TestDFFTypeNaming(t *testing.T) {
	if cells.DFF(1).Type != "DFF" {
		t.Fatalf("DFF(1).Type = %q, want DFF", cells.DFF(1).Type)
	}
	if cells.DFF(8).Type != "DFF8" {
		t.Fatalf("DFF(8).Type = %q, want DFF8", cells.DFF(8).Type)
	}
}
