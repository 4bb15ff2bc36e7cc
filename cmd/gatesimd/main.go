// Command gatesimd is a small reference host for package gatesim: it
// wires up a toy circuit, drives it for a few seconds, and logs every
// output transition it observes. It plays the same role as the
// teacher's cmd/main.go demo, adapted from a one-shot static circuit
// compiled by hdl.NewCircuit to a live, observed gatesim.Engine driven
// by its normal-mode ticker.
package main

import (
	"log"
	"time"

	gs "github.com/digital-logic-and-computer-design/digitaljs"
	"github.com/digital-logic-and-computer-design/digitaljs/cells"
)

// logSink prints every update batch it receives; a real host would
// forward these over the wire via package transport instead.
type logSink struct{}

func (logSink) Update(msg gs.UpdateMessage) {
	for _, u := range msg.Updates {
		for port, sig := range u.Ports {
			log.Printf("tick %d: %s.%s.%s = %s", msg.Tick, u.GraphID, u.GateID, port, sig)
		}
	}
}

func main() {
	e := gs.NewEngine(
		gs.WithSink(logSink{}),
		gs.WithCells(cells.Standard()...),
		gs.WithCells(cells.Clock(5), cells.Button(), cells.Lamp()),
	)
	defer e.Close()

	must(e.AddGraph("top"))

	// A cross-coupled NOR SR latch (the textbook two-NOR construction),
	// driven toward a steady toggle by gating its set/reset lines with
	// the latch's own complementary outputs and a free-running Clock
	// cell: S = clk & qn, R = clk & q. A Button can force a Set
	// independent of the clock by OR-ing into the gated S line; a Lamp
	// reports the latch's q output.
	must(e.AddGate("top", gs.GateSpec{ID: "clk", Type: "CLOCK"}))
	must(e.AddGate("top", gs.GateSpec{ID: "set", Type: "Button"}))
	must(e.AddGate("top", gs.GateSpec{ID: "andS", Type: "AND"}))
	must(e.AddGate("top", gs.GateSpec{ID: "andR", Type: "AND"}))
	must(e.AddGate("top", gs.GateSpec{ID: "orS", Type: "OR"}))
	must(e.AddGate("top", gs.GateSpec{ID: "norQ", Type: "NOR"}))
	must(e.AddGate("top", gs.GateSpec{ID: "norQn", Type: "NOR"}))
	must(e.AddGate("top", gs.GateSpec{ID: "lamp", Type: "Lamp"}))

	link := func(id string, src, srcPort, dst, dstPort string) {
		must(e.AddLink("top", gs.LinkSpec{
			ID:     id,
			Source: gs.Endpoint{Gate: src, Port: srcPort},
			Target: gs.Endpoint{Gate: dst, Port: dstPort},
		}))
	}
	link("l1", "clk", "out", "andS", "a")
	link("l2", "norQn", "out", "andS", "b") // qn feedback
	link("l3", "andS", "out", "orS", "a")
	link("l4", "set", "out", "orS", "b")
	link("l5", "orS", "out", "norQn", "a") // s
	link("l6", "clk", "out", "andR", "a")
	link("l7", "norQ", "out", "andR", "b") // q feedback
	link("l8", "andR", "out", "norQ", "a") // r
	link("l9", "norQn", "out", "norQ", "b")
	link("l10", "norQ", "out", "norQn", "b")
	link("l11", "norQ", "out", "lamp", "in")

	must(e.ObserveGraph("top"))
	must(e.ChangeInput("top", "set", gs.FromBool(false)))

	must(e.Start(10 * time.Millisecond))
	time.Sleep(50 * time.Millisecond)

	must(e.ChangeInput("top", "set", gs.FromBool(true)))
	time.Sleep(50 * time.Millisecond)

	must(e.ChangeInput("top", "set", gs.FromBool(false)))
	time.Sleep(50 * time.Millisecond)

	must(e.Stop())
	must(e.Flush())
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
