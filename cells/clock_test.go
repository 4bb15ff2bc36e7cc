package cells_test

import (
	"testing"

	gs "github.com/digital-logic-and-computer-design/digitaljs"
	"github.com/digital-logic-and-computer-design/digitaljs/cells"
)

func TestClockTogglesAndReenqueues(t *testing.T) {
	clk := cells.Clock(5)
	if !clk.SelfStarting {
		t.Fatal("Clock must be SelfStarting so it runs with no driving input")
	}
	if clk.Propagation != 5 {
		t.Fatalf("Propagation = %d, want halfPeriod 5", clk.Propagation)
	}
	state := clk.Prepare(nil)

	prev := gs.Bit(gs.Zero)
	for i := 0; i < 6; i++ {
		res := clk.Operation(nil, state)
		if !res.Reenqueue {
			t.Fatalf("toggle %d: Reenqueue = false, want true (must run forever)", i)
		}
		got := res.Outputs["out"].Bit(0)
		if got == prev {
			t.Fatalf("toggle %d: output %s repeated previous value, want a flip", i, got)
		}
		prev = got
	}
}

func TestClockRejectsNonPositiveHalfPeriod(t *testing.T) {
	if cells.Clock(0).Propagation != 1 {
		t.Fatalf("Clock(0) should clamp to a 1-tick half-period")
	}
	if cells.Clock(-3).Propagation != 1 {
		t.Fatalf("Clock(-3) should clamp to a 1-tick half-period")
	}
}
