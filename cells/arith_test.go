package cells_test

import (
	"testing"
	"testing/quick"

	gs "github.com/digital-logic-and-computer-design/digitaljs"
	"github.com/digital-logic-and-computer-design/digitaljs/cells"
)

func TestAdderArithmetic(t *testing.T) {
	add := cells.Adder(8)
	cases := []struct {
		a, b, cin    uint64
		sum, cout uint64
	}{
		{3, 4, 0, 7, 0},
		{255, 1, 0, 0, 1},
		{200, 100, 1, 45, 1},
	}
	for _, c := range cases {
		res := add.Operation(gs.Inputs{
			"a":   gs.FromUint64(8, c.a),
			"b":   gs.FromUint64(8, c.b),
			"cin": sig(gs.Bit(c.cin)),
		}, nil)
		if sum := res.Outputs["sum"].Uint64(); sum != c.sum {
			t.Fatalf("%d+%d+%d: sum = %d, want %d", c.a, c.b, c.cin, sum, c.sum)
		}
		if cout := res.Outputs["cout"].Uint64(); cout != c.cout {
			t.Fatalf("%d+%d+%d: cout = %d, want %d", c.a, c.b, c.cin, cout, c.cout)
		}
	}
}

func TestAdderUnknownOperandIsContagious(t *testing.T) {
	add := cells.Adder(4)
	res := add.Operation(gs.Inputs{
		"a":   gs.Undefined(4),
		"b":   gs.FromUint64(4, 3),
		"cin": sig(gs.Zero),
	}, nil)
	if !res.Outputs["sum"].HasUnknown() || !res.Outputs["cout"].HasUnknown() {
		t.Fatalf("sum=%s cout=%s, want both all-X on an unknown operand", res.Outputs["sum"], res.Outputs["cout"])
	}
}

func TestSubtractorArithmetic(t *testing.T) {
	sub := cells.Subtractor(8)
	cases := []struct {
		a, b, diff, borrow uint64
	}{
		{10, 3, 7, 0},
		{3, 10, 249, 1}, // wraps: 3 - 10 mod 256, borrow out
		{5, 5, 0, 0},
	}
	for _, c := range cases {
		res := sub.Operation(gs.Inputs{"a": gs.FromUint64(8, c.a), "b": gs.FromUint64(8, c.b)}, nil)
		if diff := res.Outputs["diff"].Uint64(); diff != c.diff {
			t.Fatalf("%d-%d: diff = %d, want %d", c.a, c.b, diff, c.diff)
		}
		if borrow := res.Outputs["borrow"].Uint64(); borrow != c.borrow {
			t.Fatalf("%d-%d: borrow = %d, want %d", c.a, c.b, borrow, c.borrow)
		}
	}
}

// TestAdder16MatchesUint16Arithmetic checks the 16-bit ripple-carry
// adder against plain uint32 arithmetic over random operands, the same
// way the teacher's Test_gateN_builtin checks And16/Or16/... against a
// bitwise reference with quick.Check rather than a hand-enumerated table.
func TestAdder16MatchesUint16Arithmetic(t *testing.T) {
	add := cells.Adder(16)
	f := func(a, b uint16, cin bool) bool {
		carryIn := gs.Zero
		if cin {
			carryIn = gs.One
		}
		res := add.Operation(gs.Inputs{
			"a":   gs.FromUint64(16, uint64(a)),
			"b":   gs.FromUint64(16, uint64(b)),
			"cin": sig(carryIn),
		}, nil)
		want := uint32(a) + uint32(b)
		if cin {
			want++
		}
		return res.Outputs["sum"].Uint64() == uint64(uint16(want)) &&
			res.Outputs["cout"].Uint64() == uint64(want>>16)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

// TestSubtractor16MatchesUint16Arithmetic is the Subtractor analogue of
// TestAdder16MatchesUint16Arithmetic.
func TestSubtractor16MatchesUint16Arithmetic(t *testing.T) {
	sub := cells.Subtractor(16)
	f := func(a, b uint16) bool {
		res := sub.Operation(gs.Inputs{"a": gs.FromUint64(16, uint64(a)), "b": gs.FromUint64(16, uint64(b))}, nil)
		want := uint16(a - b)
		wantBorrow := uint64(0)
		if a < b {
			wantBorrow = 1
		}
		return res.Outputs["diff"].Uint64() == uint64(want) && res.Outputs["borrow"].Uint64() == wantBorrow
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}
