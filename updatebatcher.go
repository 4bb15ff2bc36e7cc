package gatesim

import "time"

// DefaultFlushInterval is the default wall-clock period between update
// flushes to the host (§4.4).
const DefaultFlushInterval = 25 * time.Millisecond

// GateUpdate is one gate's worth of changed output ports, as delivered
// to the host in an UpdateMessage.
type GateUpdate struct {
	GraphID string
	GateID  string
	Ports   map[string]Signal
}

// UpdateMessage is what the update batcher flushes to the host (§4.4,
// §6): the engine's current tick, whether events are still pending, and
// the coalesced set of output transitions since the last flush.
type UpdateMessage struct {
	Tick             int64
	HasPendingEvents bool
	Updates          []GateUpdate
}

// Sink receives batched update messages from the engine. A host
// transport (see package transport) typically wraps a Sink around
// whatever wire connects it to observers.
type Sink interface {
	Update(UpdateMessage)
}

// updateBatcher tracks dirty (gate, port) pairs for observed graphs and
// periodically flushes them to the host, coalescing multiple transitions
// of the same port within one interval into the last-seen value (§4.4).
type updateBatcher struct {
	engine   *Engine
	toUpdate map[*Gate]map[string]struct{}
}

func newUpdateBatcher(e *Engine) *updateBatcher {
	return &updateBatcher{engine: e, toUpdate: make(map[*Gate]map[string]struct{})}
}

// markUpdate records port as dirty for gate, unless gate's graph is not
// currently observed.
func (b *updateBatcher) markUpdate(g *Gate, port string) {
	if g.graph == nil || !g.graph.observed {
		return
	}
	ports, ok := b.toUpdate[g]
	if !ok {
		ports = make(map[string]struct{})
		b.toUpdate[g] = ports
	}
	ports[port] = struct{}{}
}

// observeGraph enables update emission for graphId and, to resynchronize
// late observers, marks every out-port of every gate in the graph dirty.
func (e *Engine) observeGraph(graphID string) error {
	g, err := e.mustGraph(graphID)
	if err != nil {
		return err
	}
	g.observed = true
	for _, gt := range g.gates {
		for _, p := range gt.ports {
			if p.Direction == Out {
				e.batcher.markUpdate(gt, p.ID)
			}
		}
	}
	return nil
}

// unobserveGraph disables update emission for graphId. Entries already
// queued (from before unobservation) are still flushed on the next
// interval; no new ones will be added.
func (e *Engine) unobserveGraph(graphID string) error {
	g, err := e.mustGraph(graphID)
	if err != nil {
		return err
	}
	g.observed = false
	return nil
}

// flush snapshots and clears the dirty set, collects each dirty gate's
// current output values, and emits one UpdateMessage to the host sink
// (if any is configured).
func (b *updateBatcher) flush() {
	if len(b.toUpdate) == 0 || b.engine.sink == nil {
		b.toUpdate = make(map[*Gate]map[string]struct{})
		return
	}
	dirty := b.toUpdate
	b.toUpdate = make(map[*Gate]map[string]struct{})

	updates := make([]GateUpdate, 0, len(dirty))
	for g, ports := range dirty {
		if g.graph == nil {
			continue // removed since being marked dirty — drop silently
		}
		values := make(map[string]Signal, len(ports))
		for p := range ports {
			values[p] = g.Signal(p)
		}
		updates = append(updates, GateUpdate{GraphID: g.graph.ID, GateID: g.ID, Ports: values})
	}
	b.engine.sink.Update(UpdateMessage{
		Tick:             b.engine.scheduler.Tick(),
		HasPendingEvents: b.engine.scheduler.HasPendingEvents(),
		Updates:          updates,
	})
}
