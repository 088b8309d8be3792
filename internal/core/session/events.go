package session

// State represents the engine lifecycle phase.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateFinished  State = "finished"
	StateCancelled State = "cancelled"
)

// Terminal reports whether the state admits no further transitions.
func (state State) Terminal() bool {
	return state == StateFinished || state == StateCancelled
}

// Observer receives countdown events. Callbacks run on the progression
// goroutine and never while the engine lock is held, so an observer may
// call back into the engine.
type Observer interface {
	// OnTick reports the countdown at least once per second while the
	// session runs, and exactly once more with remainingSeconds == 0 when
	// it finishes naturally.
	OnTick(remainingSeconds, totalSeconds int)
	// OnWarning fires when the countdown reaches a configured threshold,
	// once per eligibility window, before the tick for the same second.
	OnWarning(thresholdSeconds int)
	// OnFinish fires exactly once, only on natural completion.
	OnFinish()
}

// ObserverFuncs adapts plain functions to the Observer interface. Nil
// fields are skipped.
type ObserverFuncs struct {
	Tick    func(remainingSeconds, totalSeconds int)
	Warning func(thresholdSeconds int)
	Finish  func()
}

func (funcs ObserverFuncs) OnTick(remainingSeconds, totalSeconds int) {
	if funcs.Tick != nil {
		funcs.Tick(remainingSeconds, totalSeconds)
	}
}

func (funcs ObserverFuncs) OnWarning(thresholdSeconds int) {
	if funcs.Warning != nil {
		funcs.Warning(thresholdSeconds)
	}
}

func (funcs ObserverFuncs) OnFinish() {
	if funcs.Finish != nil {
		funcs.Finish()
	}
}
