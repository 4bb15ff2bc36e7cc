package cells_test

import (
	"testing"

	gs "github.com/digital-logic-and-computer-design/digitaljs"
	"github.com/digital-logic-and-computer-design/digitaljs/cells"
)

func TestMuxSelectsInput(t *testing.T) {
	mux := cells.Mux(4)
	a := gs.FromUint64(4, 0b0011)
	b := gs.FromUint64(4, 0b1100)

	res := mux.Operation(gs.Inputs{"a": a, "b": b, "sel": sig(gs.Zero)}, nil)
	if out := res.Outputs["out"]; out.Uint64() != 0b0011 {
		t.Fatalf("sel=0: out = %v, want a", out)
	}

	res = mux.Operation(gs.Inputs{"a": a, "b": b, "sel": sig(gs.One)}, nil)
	if out := res.Outputs["out"]; out.Uint64() != 0b1100 {
		t.Fatalf("sel=1: out = %v, want b", out)
	}

	res = mux.Operation(gs.Inputs{"a": a, "b": b, "sel": sig(gs.X)}, nil)
	if out := res.Outputs["out"]; !out.HasUnknown() {
		t.Fatalf("sel=X: out = %v, want all-X", out)
	}
}

func TestDMuxRoutesInputAndZeroesOther(t *testing.T) {
	dmux := cells.DMux(4)
	in := gs.FromUint64(4, 0b1111)

	res := dmux.Operation(gs.Inputs{"in": in, "sel": sig(gs.Zero)}, nil)
	if res.Outputs["a"].Uint64() != 0b1111 || res.Outputs["b"].Uint64() != 0 {
		t.Fatalf("sel=0: a=%v b=%v, want a=in, b=0", res.Outputs["a"], res.Outputs["b"])
	}

	res = dmux.Operation(gs.Inputs{"in": in, "sel": sig(gs.One)}, nil)
	if res.Outputs["b"].Uint64() != 0b1111 || res.Outputs["a"].Uint64() != 0 {
		t.Fatalf("sel=1: a=%v b=%v, want a=0, b=in", res.Outputs["a"], res.Outputs["b"])
	}

	res = dmux.Operation(gs.Inputs{"in": in, "sel": sig(gs.X)}, nil)
	if !res.Outputs["a"].HasUnknown() || !res.Outputs["b"].HasUnknown() {
		t.Fatalf("sel=X: a=%v b=%v, want both all-X", res.Outputs["a"], res.Outputs["b"])
	}
}
