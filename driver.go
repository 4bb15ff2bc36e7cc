package gatesim

import (
	"time"

	"github.com/pkg/errors"
)

// driverMode distinguishes the two mutually exclusive tick-driving modes
// a running Engine can be in (§4.5).
type driverMode int

const (
	driverStopped driverMode = iota
	driverNormal
	driverFast
)

// DefaultTickInterval is the Normal-mode tick interval a driver installs
// when neither an explicit Start argument nor a prior interval command
// (§6's `interval`) has set one (§4.5).
const DefaultTickInterval = 10 * time.Millisecond

// driverState owns the goroutines that drive the engine's clock: the
// flush ticker (always running once the engine exists) and the tick
// driver (started/stopped by the host via Start/StartFast/Stop).
type driverState struct {
	engine *Engine
	mode   driverMode

	tickStop chan struct{}
	tickDone chan struct{}
	interval time.Duration

	// normalInterval is the configured Normal-mode interval, settable
	// independent of whether a driver is running via Engine.SetInterval
	// (§6's `interval` command). Start consults it when called with a
	// zero duration; SetInterval also applies it live if Normal mode is
	// currently running.
	normalInterval time.Duration

	flushStop chan struct{}
}

func newDriverState(e *Engine) *driverState {
	d := &driverState{engine: e, mode: driverStopped, normalInterval: DefaultTickInterval}
	d.flushStop = make(chan struct{})
	go d.runFlushTicker()
	return d
}

// runFlushTicker periodically posts a flush onto the engine's command
// channel for as long as the engine is alive (§4.4). This runs
// regardless of whether a tick driver is active: a host can observe
// updates even while manually single-stepping via UpdateGates/
// UpdateGatesNext.
func (d *driverState) runFlushTicker() {
	t := time.NewTicker(d.engine.flushInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			_ = d.engine.execute(func(e *Engine) error {
				e.batcher.flush()
				return nil
			})
		case <-d.flushStop:
			return
		case <-d.engine.quit:
			return
		}
	}
}

// start begins Normal-mode driving: one UpdateGates call per interval,
// advancing the simulated tick in lock-step with wall-clock time even
// when no events are pending (§4.5). A zero interval installs the
// driver's configured normalInterval (DefaultTickInterval, or whatever
// an earlier `interval` command set), per §6's argumentless `start`.
func (e *Engine) start(interval time.Duration) error {
	d := e.driver
	if d.mode != driverStopped {
		return errors.New("gatesim: driver already running; call Stop first")
	}
	if interval == 0 {
		interval = d.normalInterval
	}
	if interval <= 0 {
		return errors.New("gatesim: interval must be positive")
	}
	d.mode = driverNormal
	d.interval = interval
	d.normalInterval = interval
	d.tickStop = make(chan struct{})
	d.tickDone = make(chan struct{})
	go d.runNormal(interval, d.tickStop, d.tickDone)
	return nil
}

func (d *driverState) runNormal(interval time.Duration, stop, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			_ = d.engine.execute(func(e *Engine) error {
				return e.scheduler.UpdateGates()
			})
		case <-stop:
			return
		case <-d.engine.quit:
			return
		}
	}
}

// startFast begins Fast-mode driving: the driver goroutine repeatedly
// calls UpdateGatesNext with no wall-clock pacing, draining the event
// queue as quickly as the host can keep up, for catch-up or batch-replay
// scenarios (§4.5). It stops by itself once the queue runs dry, or
// earlier if Stop is called.
func (e *Engine) startFast() error {
	d := e.driver
	if d.mode != driverStopped {
		return errors.New("gatesim: driver already running; call Stop first")
	}
	d.mode = driverFast
	d.tickStop = make(chan struct{})
	d.tickDone = make(chan struct{})
	go d.runFast(d.tickStop, d.tickDone)
	return nil
}

func (d *driverState) runFast(stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		case <-d.engine.quit:
			return
		default:
		}
		var empty bool
		err := d.engine.execute(func(e *Engine) error {
			if !e.scheduler.HasPendingEvents() {
				empty = true
				return nil
			}
			return e.scheduler.UpdateGatesNext()
		})
		if err != nil {
			d.engine.logger.Printf("gatesim: fast driver stopping on error: %v", err)
			return
		}
		if empty {
			_ = d.engine.execute(func(e *Engine) error {
				e.driver.mode = driverStopped
				return nil
			})
			return
		}
	}
}

// haltChannels returns the running driver's stop/done channel pair, or
// nil if no driver is running. Callers must close the stop channel and
// wait on done from outside the actor goroutine (see Stop, SetInterval):
// runNormal/runFast themselves call back into the actor via execute, so
// waiting on done while holding the actor would deadlock them against
// each other (§5 — the actor must never block on something that itself
// needs the actor to make progress).
func (e *Engine) haltChannels() (stop, done chan struct{}) {
	d := e.driver
	if d.mode == driverStopped {
		return nil, nil
	}
	return d.tickStop, d.tickDone
}

// stop tears down the driver's goroutines entirely, for use from Close.
// Unlike Engine.Stop it also stops the flush ticker and is safe to call
// even if the driver was never started. It runs on the caller's (Close's)
// own goroutine rather than through execute, so — unlike Engine.Stop —
// it may block waiting on tickDone without risking the actor deadlock
// described on haltChannels: the actor keeps servicing runNormal/runFast's
// execute calls independently while this wait is outstanding.
func (d *driverState) stop() {
	if d.mode != driverStopped {
		close(d.tickStop)
		<-d.tickDone
		d.mode = driverStopped
	}
	close(d.flushStop)
}
