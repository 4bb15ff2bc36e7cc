package gatesim

import (
	"github.com/digital-logic-and-computer-design/digitaljs/internal/tickqueue"
	"github.com/pkg/errors"
)

// Scheduler is the tick-ordered event queue (§4.1): an ordered set of
// tick keys backed by a min-heap, a map from tick key to a per-tick
// insertion-ordered set of pending gates with their (live-referenced)
// input snapshots, and the current simulated tick.
//
// Open Question decision (§9, recorded in DESIGN.md): this uses a 64-bit
// monotonic tick rather than the source's 32-bit wrapping arithmetic.
type Scheduler struct {
	engine *Engine

	tick  int64
	queue map[int64]*tickqueue.OrderedSet[*Gate, Inputs]
	pq    *tickqueue.TickHeap
}

func newScheduler(e *Engine) *Scheduler {
	return &Scheduler{
		engine: e,
		queue:  make(map[int64]*tickqueue.OrderedSet[*Gate, Inputs]),
		pq:     tickqueue.NewTickHeap(),
	}
}

// Tick returns the scheduler's current simulated tick.
func (s *Scheduler) Tick() int64 { return s.tick }

// HasPendingEvents reports whether any tick key still has entries queued.
func (s *Scheduler) HasPendingEvents() bool { return len(s.queue) > 0 }

// enqueue schedules gate for evaluation at tick+gate.Propagation. The
// snapshot stored is the gate's live inputSignals map itself (not a
// copy) — by the time the gate is drained, any further input changes
// are already reflected, exactly mirroring the source's by-reference
// snapshot (§4.1).
func (s *Scheduler) enqueue(g *Gate) {
	k := s.tick + int64(g.Propagation)
	set, ok := s.queue[k]
	if !ok {
		set = tickqueue.NewOrderedSet[*Gate, Inputs]()
		s.queue[k] = set
		s.pq.Push(k)
	}
	set.Set(g, g.inputSignals)
}

// UpdateGates performs one "slow step" (§4.1): if the next ready tick
// equals the current tick, delegates to UpdateGatesNext; otherwise just
// advances the tick by one. This drives the simulation one tick per
// real-time interval even when nothing is pending, so time-based cells
// can observe the passage of ticks.
func (s *Scheduler) UpdateGates() error {
	if k, ok := s.pq.Peek(); ok && k == s.tick {
		return s.UpdateGatesNext()
	}
	s.tick++
	return nil
}

// UpdateGatesNext performs one "event step" (§4.1): pops the next ready
// tick key, evaluates every gate pending at that tick (draining
// re-entrant enqueues at the same tick before returning), and advances
// tick to one past it.
func (s *Scheduler) UpdateGatesNext() error {
	k, ok := s.pq.Pop()
	if !ok {
		return nil
	}
	if k < s.tick {
		return errors.Errorf("gatesim: scheduler invariant violated: popped tick %d behind current tick %d", k, s.tick)
	}
	s.tick = k
	set, ok := s.queue[k]
	if !ok {
		// A duplicate heap key (see TickHeap docs) whose queue entry
		// was already drained by an earlier pop of the same key.
		s.tick = k + 1
		return nil
	}
	for {
		g, args, ok := set.Take()
		if !ok {
			break
		}
		if err := s.evaluate(g, args); err != nil {
			return err
		}
	}
	delete(s.queue, k)
	s.tick = k + 1
	return nil
}

func (s *Scheduler) evaluate(g *Gate, args Inputs) error {
	if g.Special {
		return nil
	}
	if g.graph == nil {
		// StaleReference (§7): the gate was removed after being
		// enqueued. Expected race with removal — silently skipped.
		return nil
	}
	res := g.cell.Operation(args, g.state)
	if res.Reenqueue {
		s.enqueue(g)
	}
	return s.engine.setGateOutputSignals(g, res.Outputs)
}
