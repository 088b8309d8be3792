package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastClock fires every wait immediately so full countdowns run in
// microseconds.
type fastClock struct{}

func (fastClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

// recorder captures the observer stream. The hook runs synchronously on
// the progression goroutine, which makes reentrant control calls (pause,
// extend) deterministic in tests.
type recorder struct {
	mu       sync.Mutex
	ticks    [][2]int
	warnings []int
	finishes int
	sequence []string
	hook     func(remaining int)
}

func (rec *recorder) OnTick(remaining, total int) {
	rec.mu.Lock()
	rec.ticks = append(rec.ticks, [2]int{remaining, total})
	rec.sequence = append(rec.sequence, fmt.Sprintf("tick:%d", remaining))
	hook := rec.hook
	rec.mu.Unlock()
	if hook != nil {
		hook(remaining)
	}
}

func (rec *recorder) OnWarning(threshold int) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.warnings = append(rec.warnings, threshold)
	rec.sequence = append(rec.sequence, fmt.Sprintf("warn:%d", threshold))
}

func (rec *recorder) OnFinish() {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.finishes++
	rec.sequence = append(rec.sequence, "finish")
}

func (rec *recorder) snapshot() (ticks [][2]int, warnings []int, finishes int, sequence []string) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([][2]int(nil), rec.ticks...),
		append([]int(nil), rec.warnings...),
		rec.finishes,
		append([]string(nil), rec.sequence...)
}

func fastOptions() Options {
	return Options{Clock: fastClock{}, StopWait: time.Second}
}

func waitTerminal(t *testing.T, engine *Engine) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if engine.State().Terminal() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("engine never reached a terminal state, still %s", engine.State())
}

func TestNewConvertsMinutesToWholeSeconds(t *testing.T) {
	cases := []struct {
		minutes float64
		want    int
	}{
		{1, 60},
		{1.5, 90},
		{0.5, 30},
		{10, 600},
		{2.99, 179},
	}
	for _, tc := range cases {
		engine, err := New(tc.minutes, nil, nil, Options{})
		require.NoError(t, err, "minutes=%v", tc.minutes)
		remaining, total, state := engine.Snapshot()
		assert.Equal(t, tc.want, remaining, "minutes=%v", tc.minutes)
		assert.Equal(t, tc.want, total, "minutes=%v", tc.minutes)
		assert.Equal(t, StateIdle, state)
	}
}

func TestNewRejectsNonPositiveDuration(t *testing.T) {
	for _, minutes := range []float64{0, -1, -0.5, 0.004} {
		_, err := New(minutes, nil, nil, Options{})
		assert.ErrorIs(t, err, ErrInvalidDuration, "minutes=%v", minutes)
	}
}

func TestNewAddsStartBuffer(t *testing.T) {
	engine, err := New(1, nil, nil, Options{StartBuffer: 30 * time.Second})
	require.NoError(t, err)
	remaining, total, _ := engine.Snapshot()
	assert.Equal(t, 90, remaining)
	assert.Equal(t, 90, total)
}

func TestExtendRaisesRemainingAndHighWaterTotal(t *testing.T) {
	engine, err := New(10, nil, nil, Options{})
	require.NoError(t, err)

	require.NoError(t, engine.Extend(5))
	remaining, total, _ := engine.Snapshot()
	assert.Equal(t, 900, remaining)
	assert.Equal(t, 900, total)

	require.NoError(t, engine.Extend(2))
	remaining, total, _ = engine.Snapshot()
	assert.Equal(t, 1020, remaining)
	assert.Equal(t, 1020, total)
}

func TestExtendRejectsNonPositiveMinutes(t *testing.T) {
	engine, err := New(10, nil, nil, Options{})
	require.NoError(t, err)
	assert.ErrorIs(t, engine.Extend(0), ErrInvalidExtension)
	assert.ErrorIs(t, engine.Extend(-5), ErrInvalidExtension)

	remaining, total, _ := engine.Snapshot()
	assert.Equal(t, 600, remaining)
	assert.Equal(t, 600, total)
}

func TestExtendAfterTerminalStateFails(t *testing.T) {
	engine, err := New(10, nil, nil, Options{})
	require.NoError(t, err)
	require.NoError(t, engine.Cancel())
	assert.ErrorIs(t, engine.Extend(5), ErrSessionOver)
}

func TestStartTwiceIsRejected(t *testing.T) {
	engine, err := New(1, nil, nil, fastOptions())
	require.NoError(t, err)
	require.NoError(t, engine.Start())
	assert.ErrorIs(t, engine.Start(), ErrAlreadyStarted)
	require.NoError(t, engine.Cancel())
	assert.ErrorIs(t, engine.Start(), ErrSessionOver)
}

func TestCountdownRunsToCompletion(t *testing.T) {
	rec := &recorder{}
	engine, err := New(1, nil, rec, fastOptions())
	require.NoError(t, err)
	require.NoError(t, engine.Start())
	waitTerminal(t, engine)

	ticks, warnings, finishes, _ := rec.snapshot()
	assert.Equal(t, StateFinished, engine.State())
	assert.Empty(t, warnings)
	assert.Equal(t, 1, finishes)

	// One tick per countdown second from the full duration down, plus the
	// final zero tick.
	require.Len(t, ticks, 61)
	assert.Equal(t, [2]int{60, 60}, ticks[0])
	assert.Equal(t, [2]int{0, 60}, ticks[len(ticks)-1])
	for i := 1; i < len(ticks); i++ {
		assert.Equal(t, ticks[i-1][0]-1, ticks[i][0], "ticks must decrease by exactly one")
		assert.Equal(t, 60, ticks[i][1])
	}
}

func TestWarningFiresOnceBeforeItsTick(t *testing.T) {
	rec := &recorder{}
	engine, err := New(6, []int{300}, rec, fastOptions())
	require.NoError(t, err)
	require.NoError(t, engine.Start())
	waitTerminal(t, engine)

	_, warnings, finishes, sequence := rec.snapshot()
	assert.Equal(t, []int{300}, warnings)
	assert.Equal(t, 1, finishes)

	warnAt := -1
	for i, event := range sequence {
		if event == "warn:300" {
			warnAt = i
			break
		}
	}
	require.GreaterOrEqual(t, warnAt, 0, "warning missing from sequence")
	require.Less(t, warnAt+1, len(sequence))
	assert.Equal(t, "tick:300", sequence[warnAt+1], "warning must immediately precede its tick")
}

func TestWarningRearmsAfterExtensionAboveThreshold(t *testing.T) {
	rec := &recorder{}
	var engine *Engine
	extended := false
	rec.hook = func(remaining int) {
		if remaining != 25 || extended {
			return
		}
		extended = true
		// Raise remaining back above the 30s threshold exactly once.
		_ = engine.Extend(1)
	}

	engine, err := New(1, []int{30}, rec, fastOptions())
	require.NoError(t, err)
	require.NoError(t, engine.Start())
	waitTerminal(t, engine)

	_, warnings, finishes, _ := rec.snapshot()
	assert.Equal(t, []int{30, 30}, warnings, "threshold must fire again after extension above it")
	assert.Equal(t, 1, finishes)
}

func TestExtensionWhileRunningKeepsCountdownContinuous(t *testing.T) {
	rec := &recorder{}
	var engine *Engine
	var remainingAfter, totalAfter int
	extended := false
	rec.hook = func(remaining int) {
		if remaining != 595 || extended {
			return
		}
		extended = true
		if err := engine.Extend(5); err != nil {
			return
		}
		remainingAfter, totalAfter, _ = engine.Snapshot()
		// Stop the run from outside the progression goroutine.
		go func() { _ = engine.Cancel() }()
	}

	engine, err := New(10, nil, rec, fastOptions())
	require.NoError(t, err)
	require.NoError(t, engine.Start())
	waitTerminal(t, engine)

	assert.Equal(t, 895, remainingAfter)
	assert.Equal(t, 900, totalAfter)
}

func TestExtensionDuringFinalTickResumesCountdown(t *testing.T) {
	rec := &recorder{}
	var engine *Engine
	var extendErr error
	extended := false
	rec.hook = func(remaining int) {
		if remaining != 0 || extended {
			return
		}
		extended = true
		// Hit the narrowest window: remaining already reported as 0.
		extendErr = engine.Extend(1)
	}

	engine, err := New(0.1, nil, rec, fastOptions())
	require.NoError(t, err)
	require.NoError(t, engine.Start())
	waitTerminal(t, engine)

	require.NoError(t, extendErr)
	ticks, _, finishes, sequence := rec.snapshot()
	assert.Equal(t, StateFinished, engine.State())
	assert.Equal(t, 1, finishes)
	assert.Equal(t, [2]int{60, 60}, ticks[len(ticks)-1-60],
		"countdown must pick the extension up and report the raised value")
	assert.Equal(t, [2]int{0, 60}, ticks[len(ticks)-1],
		"the run must still end at zero after the extension drains")
	assert.Equal(t, "finish", sequence[len(sequence)-1])
}

func TestExtendingPastMultipleThresholdsRearmsEach(t *testing.T) {
	engine, err := New(10, []int{60, 300}, nil, Options{})
	require.NoError(t, err)

	// Simulate both thresholds having fired.
	engine.mu.Lock()
	engine.remaining = 30
	engine.fired[60] = struct{}{}
	engine.fired[300] = struct{}{}
	engine.mu.Unlock()

	require.NoError(t, engine.Extend(10))

	engine.mu.Lock()
	_, sixty := engine.fired[60]
	_, threeHundred := engine.fired[300]
	engine.mu.Unlock()
	assert.False(t, sixty, "60s threshold must be eligible again")
	assert.False(t, threeHundred, "300s threshold must be eligible again")
}

func TestCancelStopsEventStream(t *testing.T) {
	rec := &recorder{}
	engine, err := New(60, nil, rec, Options{Quantum: 50 * time.Millisecond, PausePoll: time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, engine.Start())
	require.NoError(t, engine.Cancel())

	assert.Equal(t, StateCancelled, engine.State())

	ticks, warnings, finishes, _ := rec.snapshot()
	// The first tick may already have been in flight when cancellation
	// landed; nothing else may be delivered.
	assert.LessOrEqual(t, len(ticks), 1)
	assert.Empty(t, warnings)
	assert.Zero(t, finishes)

	// The loop has stopped: the stream stays frozen.
	time.Sleep(120 * time.Millisecond)
	laterTicks, _, laterFinishes, _ := rec.snapshot()
	assert.Equal(t, len(ticks), len(laterTicks))
	assert.Zero(t, laterFinishes)
}

func TestCancelIsIdempotent(t *testing.T) {
	engine, err := New(1, nil, nil, fastOptions())
	require.NoError(t, err)
	require.NoError(t, engine.Start())
	require.NoError(t, engine.Cancel())
	require.NoError(t, engine.Cancel())
	assert.Equal(t, StateCancelled, engine.State())
}

func TestCancelBeforeStart(t *testing.T) {
	engine, err := New(1, nil, nil, Options{})
	require.NoError(t, err)
	require.NoError(t, engine.Cancel())
	assert.Equal(t, StateCancelled, engine.State())
}

func TestCancelAfterNaturalFinishIsNoOp(t *testing.T) {
	rec := &recorder{}
	engine, err := New(1, nil, rec, fastOptions())
	require.NoError(t, err)
	require.NoError(t, engine.Start())
	waitTerminal(t, engine)
	require.Equal(t, StateFinished, engine.State())

	require.NoError(t, engine.Cancel())
	assert.Equal(t, StateFinished, engine.State())
	_, _, finishes, _ := rec.snapshot()
	assert.Equal(t, 1, finishes)
}

func TestPauseFreezesCountdown(t *testing.T) {
	rec := &recorder{}
	firstTick := make(chan struct{})
	var once sync.Once
	rec.hook = func(int) {
		once.Do(func() { close(firstTick) })
	}

	engine, err := New(60, nil, rec, Options{Quantum: 5 * time.Millisecond, PausePoll: time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, engine.Start())
	defer func() { _ = engine.Cancel() }()

	select {
	case <-firstTick:
	case <-time.After(2 * time.Second):
		t.Fatal("no tick observed")
	}

	engine.Pause()
	require.Equal(t, StatePaused, engine.State())
	before, _, _ := engine.Snapshot()
	time.Sleep(50 * time.Millisecond)
	after, _, _ := engine.Snapshot()
	assert.Equal(t, before, after, "remaining must not decrease while paused")

	engine.Resume()
	require.Equal(t, StateRunning, engine.State())
	deadline := time.Now().Add(2 * time.Second)
	for {
		current, _, _ := engine.Snapshot()
		if current < after {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("countdown did not resume")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestPauseResumeOutsideRunIsNoOp(t *testing.T) {
	engine, err := New(1, nil, nil, Options{})
	require.NoError(t, err)

	engine.Pause()
	assert.Equal(t, StateIdle, engine.State())
	engine.Resume()
	assert.Equal(t, StateIdle, engine.State())
	assert.Equal(t, StateIdle, engine.TogglePause())

	require.NoError(t, engine.Cancel())
	engine.Pause()
	assert.Equal(t, StateCancelled, engine.State())
}

func TestTogglePauseFlipsRunningAndPaused(t *testing.T) {
	engine, err := New(60, nil, nil, Options{Quantum: 5 * time.Millisecond, PausePoll: time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, engine.Start())
	defer func() { _ = engine.Cancel() }()

	assert.Equal(t, StatePaused, engine.TogglePause())
	assert.Equal(t, StateRunning, engine.TogglePause())
}

func TestExtendWhilePausedTakesEffect(t *testing.T) {
	engine, err := New(60, nil, nil, Options{Quantum: 5 * time.Millisecond, PausePoll: time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, engine.Start())
	defer func() { _ = engine.Cancel() }()

	engine.Pause()
	before, _, _ := engine.Snapshot()
	require.NoError(t, engine.Extend(5))
	after, total, _ := engine.Snapshot()
	assert.Equal(t, before+300, after)
	assert.Equal(t, after, total)
}

func TestEngineIDsAreUnique(t *testing.T) {
	first, err := New(1, nil, nil, Options{})
	require.NoError(t, err)
	second, err := New(1, nil, nil, Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID())
	assert.NotEqual(t, first.ID(), second.ID())
}
