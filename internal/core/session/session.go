package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Engine errors. Precondition violations leave the engine in its prior
// state.
var (
	ErrInvalidDuration  = errors.New("session duration must be at least one second")
	ErrAlreadyStarted   = errors.New("session already started")
	ErrSessionOver      = errors.New("session reached a terminal state")
	ErrInvalidExtension = errors.New("session extension must be positive")
	ErrStopTimeout      = errors.New("progression loop did not stop in time")
)

// Options contains runtime knobs for Engine. Zero values select the
// production defaults.
type Options struct {
	// Quantum is the countdown step. Default one second.
	Quantum time.Duration
	// PausePoll is the wake interval while paused. Default 100ms.
	PausePoll time.Duration
	// StopWait bounds how long Cancel waits for the progression loop to
	// acknowledge. Default two seconds.
	StopWait time.Duration
	// StartBuffer grants extra countdown time on top of the rented
	// duration, added to both remaining and total.
	StartBuffer time.Duration
	// Clock overrides the time source.
	Clock Clock
}

// Engine drives a single countdown session from start to a terminal
// state. It owns one progression goroutine; control operations are safe
// to call from any goroutine. An engine is single-use: after Finished or
// Cancelled the caller constructs a new one for the next session.
type Engine struct {
	mu         sync.Mutex
	state      State
	total      int
	remaining  int
	thresholds map[int]struct{}
	fired      map[int]struct{}
	started    bool

	id       uuid.UUID
	options  Options
	observer Observer
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// New creates an idle engine counting down durationMinutes, warning at
// each of warningThresholds (seconds remaining). Minutes are truncated
// to whole seconds and must yield at least one second.
func New(durationMinutes float64, warningThresholds []int, observer Observer, options Options) (*Engine, error) {
	seconds := int(durationMinutes * 60)
	if seconds < 1 {
		return nil, fmt.Errorf("%w: got %.2f minutes", ErrInvalidDuration, durationMinutes)
	}
	if options.Quantum <= 0 {
		options.Quantum = time.Second
	}
	if options.PausePoll <= 0 {
		options.PausePoll = 100 * time.Millisecond
	}
	if options.StopWait <= 0 {
		options.StopWait = 2 * time.Second
	}
	if options.Clock == nil {
		options.Clock = WallClock()
	}
	if observer == nil {
		observer = ObserverFuncs{}
	}
	seconds += int(options.StartBuffer / time.Second)

	engine := &Engine{
		state:      StateIdle,
		total:      seconds,
		remaining:  seconds,
		thresholds: make(map[int]struct{}, len(warningThresholds)),
		fired:      make(map[int]struct{}),
		id:         uuid.New(),
		options:    options,
		observer:   observer,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
	for _, threshold := range warningThresholds {
		if threshold > 0 {
			engine.thresholds[threshold] = struct{}{}
		}
	}
	return engine, nil
}

// ID returns the session identifier used for log correlation.
func (engine *Engine) ID() string {
	return engine.id.String()
}

// State returns the current lifecycle state.
func (engine *Engine) State() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state
}

// Snapshot returns the countdown numbers and state at one instant.
func (engine *Engine) Snapshot() (remainingSeconds, totalSeconds int, state State) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.remaining, engine.total, engine.state
}

// Start launches the progression loop. Valid only from Idle; restarting
// requires cancelling and constructing a fresh engine.
func (engine *Engine) Start() error {
	engine.mu.Lock()
	if engine.state != StateIdle {
		state := engine.state
		engine.mu.Unlock()
		if state.Terminal() {
			return fmt.Errorf("%w: start in state %s", ErrSessionOver, state)
		}
		return fmt.Errorf("%w: state %s", ErrAlreadyStarted, state)
	}
	engine.state = StateRunning
	engine.started = true
	engine.mu.Unlock()

	go engine.run()
	return nil
}

// Pause freezes the countdown. No-op unless Running.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state == StateRunning {
		engine.state = StatePaused
	}
}

// Resume restarts a paused countdown. No-op unless Paused.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state == StatePaused {
		engine.state = StateRunning
	}
}

// TogglePause flips between Running and Paused and returns the resulting
// state. Any other state is left alone so UI handlers can call it
// unconditionally.
func (engine *Engine) TogglePause() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	switch engine.state {
	case StateRunning:
		engine.state = StatePaused
	case StatePaused:
		engine.state = StateRunning
	}
	return engine.state
}

// Extend adds minutes to the remaining time. Total only grows: it is the
// high-water mark the progress display measures against. Warning
// thresholds now strictly below the remaining time become eligible to
// fire again. Valid in any non-terminal state, including Paused.
func (engine *Engine) Extend(minutes float64) error {
	seconds := int(minutes * 60)
	if seconds < 1 {
		return fmt.Errorf("%w: got %.2f minutes", ErrInvalidExtension, minutes)
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state.Terminal() {
		return fmt.Errorf("%w: extend in state %s", ErrSessionOver, engine.state)
	}
	engine.remaining += seconds
	if engine.remaining > engine.total {
		engine.total = engine.remaining
	}
	for threshold := range engine.fired {
		if threshold < engine.remaining {
			delete(engine.fired, threshold)
		}
	}
	return nil
}

// Cancel signals the progression loop to stop and waits, bounded by
// Options.StopWait, until it has fully stopped so the caller can discard
// the engine. Idempotent; a no-op after natural completion. A timeout is
// a logic defect, not a transient fault.
//
// Cancel blocks on the progression goroutine and therefore must not be
// called from observer callbacks; pause and Extend are safe there.
func (engine *Engine) Cancel() error {
	engine.mu.Lock()
	if engine.state == StateFinished {
		engine.mu.Unlock()
		return nil
	}
	engine.state = StateCancelled
	started := engine.started
	engine.mu.Unlock()

	engine.stopOnce.Do(func() { close(engine.stopCh) })
	if !started {
		return nil
	}

	select {
	case <-engine.doneCh:
		return nil
	case <-time.After(engine.options.StopWait):
		return fmt.Errorf("%w (waited %s)", ErrStopTimeout, engine.options.StopWait)
	}
}

func (engine *Engine) run() {
	defer close(engine.doneCh)

	// ticked tracks whether the current remaining value has been reported,
	// so a pause landing mid-quantum neither loses nor duplicates a tick.
	ticked := false
	for {
		engine.mu.Lock()
		state := engine.state
		if state == StateCancelled {
			engine.mu.Unlock()
			return
		}
		if state == StatePaused {
			engine.mu.Unlock()
			if !engine.sleep(engine.options.PausePoll) {
				return
			}
			continue
		}

		remaining, total := engine.remaining, engine.total
		warning := -1
		if !ticked {
			if _, due := engine.thresholds[remaining]; due {
				if _, done := engine.fired[remaining]; !done {
					engine.fired[remaining] = struct{}{}
					warning = remaining
				}
			}
		}
		engine.mu.Unlock()

		// Callbacks run without the lock; the observer may call back in.
		if !ticked {
			if warning >= 0 {
				engine.observer.OnWarning(warning)
			}
			engine.observer.OnTick(remaining, total)
			ticked = true
		}

		if remaining == 0 {
			engine.mu.Lock()
			if engine.state == StateCancelled {
				engine.mu.Unlock()
				return
			}
			// An Extend delivered during the final tick callback raises
			// remaining again; honour it instead of finishing.
			if engine.remaining > 0 {
				ticked = false
				engine.mu.Unlock()
				continue
			}
			engine.state = StateFinished
			engine.mu.Unlock()
			engine.observer.OnFinish()
			return
		}

		if !engine.sleep(engine.options.Quantum) {
			return
		}

		engine.mu.Lock()
		if engine.state == StateRunning {
			engine.remaining--
			ticked = false
		}
		engine.mu.Unlock()
	}
}

// sleep waits d on the engine clock, returning false once cancellation
// has been signalled.
func (engine *Engine) sleep(d time.Duration) bool {
	select {
	case <-engine.stopCh:
		return false
	case <-engine.options.Clock.After(d):
		return true
	}
}
