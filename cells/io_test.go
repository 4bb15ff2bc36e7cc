package cells_test

import (
	"testing"

	gs "github.com/digital-logic-and-computer-design/digitaljs"
	"github.com/digital-logic-and-computer-design/digitaljs/cells"
)

// Input/Output/Button/Lamp/NumEntry/NumDisplay carry no Operation of
// their own — they're driven or observed directly by the engine (see
// simtest/scenarios_test.go) — so all that's worth checking here is
// that each declares the right shape for the engine's cell-contract
// validation (terminal flags, port direction, Special).
func TestIOCellShapes(t *testing.T) {
	in := cells.Input(4)
	if !in.Special || !in.TerminalInput || len(in.Outputs) != 1 || len(in.Inputs) != 0 {
		t.Fatalf("Input(4) shape wrong: %+v", in)
	}

	out := cells.Output(4)
	if !out.Special || !out.TerminalOutput || len(out.Inputs) != 1 || len(out.Outputs) != 0 {
		t.Fatalf("Output(4) shape wrong: %+v", out)
	}

	btn := cells.Button()
	if !btn.Special || len(btn.Outputs) != 1 || btn.Outputs[0].Bits != 1 {
		t.Fatalf("Button() shape wrong: %+v", btn)
	}

	lamp := cells.Lamp()
	if !lamp.Special || len(lamp.Inputs) != 1 || lamp.Inputs[0].Bits != 1 {
		t.Fatalf("Lamp() shape wrong: %+v", lamp)
	}

	entry := cells.NumEntry(8)
	if !entry.Special || entry.Outputs[0].Bits != 8 {
		t.Fatalf("NumEntry(8) shape wrong: %+v", entry)
	}

	display := cells.NumDisplay(8)
	if !display.Special || display.Inputs[0].Bits != 8 {
		t.Fatalf("NumDisplay(8) shape wrong: %+v", display)
	}

	if in.Outputs[0].Direction != gs.Out || out.Inputs[0].Direction != gs.In {
		t.Fatal("port directions reversed")
	}
}
