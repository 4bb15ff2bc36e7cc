package gatesim

import (
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"
)

// Engine is the simulation engine: a registry of graphs, the scheduler
// and propagator that drive them, the update batcher that reports
// transitions to a host, and the cell registry gates are built from.
//
// Concurrency realization (recorded in SPEC_FULL.md's AMBIENT STACK):
// mutual exclusion is structural rather than lock-based. A single actor
// goroutine drains one command channel; every public method (see
// commands.go) builds a closure over its arguments and submits it
// through execute, which blocks until the actor has run it and reports
// back any error. Driver ticks and batcher flushes are just more
// closures posted onto the same channel, so at most one piece of engine
// state is ever being touched at a time without any mutex.
type Engine struct {
	graphs    map[string]*Graph
	scheduler *Scheduler
	batcher   *updateBatcher
	cells     map[string]*Cell

	sink   Sink
	logger *log.Logger

	flushInterval time.Duration

	cmds chan engineCmd
	quit chan struct{}

	driver *driverState
}

type engineCmd struct {
	fn    func(*Engine) error
	reply chan error
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithSink attaches the host sink that receives batched update messages.
func WithSink(sink Sink) EngineOption {
	return func(e *Engine) { e.sink = sink }
}

// WithLogger overrides the engine's logger. The default logs to
// log.Default().
func WithLogger(l *log.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// WithFlushInterval overrides the default 25ms update-batch flush
// period (§4.4).
func WithFlushInterval(d time.Duration) EngineOption {
	return func(e *Engine) { e.flushInterval = d }
}

// WithCells registers additional cell types at construction time, on
// top of anything registered later via RegisterCell.
func WithCells(cells ...*Cell) EngineOption {
	return func(e *Engine) {
		for _, c := range cells {
			e.cells[c.Type] = c
		}
	}
}

// NewEngine constructs an Engine and starts its actor goroutine. Callers
// must call Close when finished to stop the goroutine and any running
// driver.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		graphs:        make(map[string]*Graph),
		cells:         make(map[string]*Cell),
		logger:        log.Default(),
		flushInterval: DefaultFlushInterval,
		cmds:          make(chan engineCmd),
		quit:          make(chan struct{}),
	}
	e.scheduler = newScheduler(e)
	e.batcher = newUpdateBatcher(e)
	for _, opt := range opts {
		opt(e)
	}
	e.driver = newDriverState(e)
	go e.run()
	return e
}

// RegisterCell adds or replaces a cell type in the engine's registry.
// Gates of a given Type can only be added (AddGate, §4.3) once that type
// has been registered here.
func (e *Engine) RegisterCell(c *Cell) error {
	return e.execute(func(e *Engine) error {
		e.cells[c.Type] = c
		return nil
	})
}

// run is the actor loop: it drains e.cmds until Close is called,
// recovering from any panic raised by a command (an unexpected
// CellContract or invariant violation) and reporting it as an error
// rather than crashing the engine.
func (e *Engine) run() {
	for {
		select {
		case cmd := <-e.cmds:
			cmd.reply <- e.safeRun(cmd.fn)
		case <-e.quit:
			return
		}
	}
}

func (e *Engine) safeRun(fn func(*Engine) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("gatesim: recovered panic: %v", r)
			err = errors.Errorf("gatesim: internal error: %v", r)
		}
	}()
	return fn(e)
}

// execute submits fn to the actor goroutine and blocks until it has run,
// returning whatever error it produced. Every public Engine method is a
// thin wrapper around execute.
func (e *Engine) execute(fn func(*Engine) error) error {
	reply := make(chan error, 1)
	select {
	case e.cmds <- engineCmd{fn: fn, reply: reply}:
	case <-e.quit:
		return errors.New("gatesim: engine is closed")
	}
	select {
	case err := <-reply:
		return err
	case <-e.quit:
		return errors.New("gatesim: engine is closed")
	}
}

// Close stops the driver (if running) and the actor goroutine. The
// engine must not be used afterward.
func (e *Engine) Close() error {
	e.driver.stop()
	close(e.quit)
	return nil
}

func (e *Engine) mustGraph(id string) (*Graph, error) {
	g, ok := e.graphs[id]
	if !ok {
		return nil, errors.Errorf("gatesim: no such graph %q", id)
	}
	return g, nil
}

func (e *Engine) mustCell(typ string) (*Cell, error) {
	c, ok := e.cells[typ]
	if !ok {
		return nil, errors.Errorf("gatesim: no such cell type %q", typ)
	}
	return c, nil
}

func (e *Engine) mustGate(graphID, gateID string) (*Gate, error) {
	g, err := e.mustGraph(graphID)
	if err != nil {
		return nil, err
	}
	gt, ok := g.Gate(gateID)
	if !ok {
		return nil, errors.Errorf("gatesim: no such gate %q in graph %q", gateID, graphID)
	}
	return gt, nil
}

func (e *Engine) mustPort(g *Gate, port string, dir Direction) (Port, error) {
	p, ok := g.Port(port)
	if !ok {
		return Port{}, errors.Errorf("gatesim: gate %q has no port %q", g.ID, port)
	}
	if p.Direction != dir {
		return Port{}, errors.Errorf("gatesim: gate %q port %q is %s, want %s", g.ID, port, p.Direction, dir)
	}
	return p, nil
}

func endpointString(ep Endpoint) string {
	return fmt.Sprintf("%s.%s", ep.Gate, ep.Port)
}
