// Package simtest provides test-only helpers for exercising a gatesim
// Engine: an in-memory Sink that records every update batch, and a
// comparison helper for checking two Cells agree on every input, in the
// spirit of hwtest.ComparePart from the source library's test tooling.
package simtest

import (
	"sync"

	gs "github.com/digital-logic-and-computer-design/digitaljs"
)

// MemorySink is a gatesim.Sink that buffers every UpdateMessage it
// receives, safe for concurrent use since the engine's flush ticker
// calls Update from its own actor goroutine while a test reads back
// from the main goroutine.
type MemorySink struct {
	mu       sync.Mutex
	messages []gs.UpdateMessage
}

// Update implements gatesim.Sink.
func (s *MemorySink) Update(msg gs.UpdateMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Messages returns a snapshot of every update batch received so far.
func (s *MemorySink) Messages() []gs.UpdateMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gs.UpdateMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Reset clears the recorded messages.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// PortsFor finds the most recent recorded update for gateID and returns
// its port map, or nil if gateID never appeared.
func (s *MemorySink) PortsFor(gateID string) map[string]gs.Signal {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		for _, u := range s.messages[i].Updates {
			if u.GateID == gateID {
				return u.Ports
			}
		}
	}
	return nil
}
