package breathing

import (
	"testing"
	"time"
)

var boxTwo = Pattern{
	Slug:          "box-breathing",
	Name:          "Box Breathing",
	InhaleSeconds: 4,
	HoldSeconds:   4,
	ExhaleSeconds: 4,
	PauseSeconds:  4,
	Cycles:        2,
}

func TestRunToCompletion(t *testing.T) {
	start := time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC)
	m := NewMachine(boxTwo)
	m.Start(start)

	// Record every phase the machine passes through, ticking once per
	// second like a (slow) animation loop.
	phases := []Phase{m.Phase()}
	var summary *Summary
	for i := 1; i <= 40 && summary == nil; i++ {
		now := start.Add(time.Duration(i) * time.Second)
		summary = m.Advance(now)
		if summary == nil && m.Phase() != phases[len(phases)-1] {
			phases = append(phases, m.Phase())
		}
	}

	if summary == nil {
		t.Fatal("machine never completed")
	}
	if summary.CyclesCompleted != 2 || !summary.Completed {
		t.Errorf("expected 2 completed cycles, got %+v", summary)
	}
	if summary.DurationSeconds != 32 {
		t.Errorf("expected 32s duration, got %d", summary.DurationSeconds)
	}
	if !summary.StartedAt.Equal(start) {
		t.Errorf("wrong session start: %v", summary.StartedAt)
	}

	want := []Phase{
		PhaseInhale, PhaseHold, PhaseExhale, PhasePause,
		PhaseInhale, PhaseHold, PhaseExhale, PhasePause,
	}
	// The final wrap back to inhale ends the session, so the recorded
	// transitions cover both cycles.
	if len(phases) != len(want) {
		t.Fatalf("expected %d phases, got %d: %v", len(want), len(phases), phases)
	}
	for i, p := range want {
		if phases[i] != p {
			t.Errorf("phase %d: expected %s, got %s", i, p, phases[i])
		}
	}
}

func TestStopAfterCompletionEmitsNothing(t *testing.T) {
	start := time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC)
	m := NewMachine(boxTwo)
	m.Start(start)

	if s := m.Advance(start.Add(32 * time.Second)); s == nil {
		t.Fatal("expected completion summary")
	}
	if s := m.Stop(start.Add(33 * time.Second)); s != nil {
		t.Errorf("stop after natural completion must emit nothing, got %+v", s)
	}
	if s := m.Stop(start.Add(34 * time.Second)); s != nil {
		t.Errorf("repeated stop must stay silent, got %+v", s)
	}
}

func TestStopBeforeFirstCycle(t *testing.T) {
	start := time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC)
	m := NewMachine(boxTwo)
	m.Start(start)
	m.Advance(start.Add(10 * time.Second))

	if s := m.Stop(start.Add(10 * time.Second)); s != nil {
		t.Errorf("stop before one full cycle must emit nothing, got %+v", s)
	}
	if m.Running() {
		t.Error("machine must be reset after stop")
	}
}

func TestStopMidSessionEmitsPartial(t *testing.T) {
	start := time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC)
	m := NewMachine(boxTwo)
	m.Start(start)
	m.Advance(start.Add(20 * time.Second)) // one cycle done, second underway

	s := m.Stop(start.Add(20 * time.Second))
	if s == nil {
		t.Fatal("expected a partial summary")
	}
	if s.Completed {
		t.Error("early stop must not be marked completed")
	}
	if s.CyclesCompleted != 1 {
		t.Errorf("expected 1 cycle, got %d", s.CyclesCompleted)
	}
	if s.DurationSeconds != 20 {
		t.Errorf("expected 20s duration, got %d", s.DurationSeconds)
	}
}

func TestIrregularTicks(t *testing.T) {
	// A single late tick (backgrounded tab) must cross every boundary in
	// between and still finish with the right cycle count.
	start := time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC)
	m := NewMachine(boxTwo)
	m.Start(start)

	s := m.Advance(start.Add(5 * time.Minute))
	if s == nil {
		t.Fatal("expected completion from one large tick")
	}
	if s.CyclesCompleted != 2 {
		t.Errorf("expected 2 cycles, got %d", s.CyclesCompleted)
	}
	if s.DurationSeconds != 32 {
		t.Errorf("completion time is the phase boundary, not the tick: got %ds", s.DurationSeconds)
	}
}

func TestResetDiscardsSession(t *testing.T) {
	start := time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC)
	m := NewMachine(boxTwo)
	m.Start(start)
	m.Advance(start.Add(20 * time.Second))
	m.Reset()

	if m.Running() || m.CyclesCompleted() != 0 {
		t.Error("reset must return the machine to its initial state")
	}
	if s := m.Stop(start.Add(21 * time.Second)); s != nil {
		t.Errorf("stop after reset must emit nothing, got %+v", s)
	}
}

func TestPhaseProgressClamped(t *testing.T) {
	start := time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC)
	m := NewMachine(boxTwo)
	m.Start(start)

	if got := m.PhaseProgress(start); got != 0 {
		t.Errorf("expected progress 0 at phase start, got %f", got)
	}
	if got := m.PhaseProgress(start.Add(2 * time.Second)); got != 0.5 {
		t.Errorf("expected progress 0.5, got %f", got)
	}
	// Without an Advance call the clock can run past the phase end; the
	// fraction stays clamped.
	if got := m.PhaseProgress(start.Add(10 * time.Second)); got != 1 {
		t.Errorf("expected clamped progress 1, got %f", got)
	}
}

func TestOptionalPhasesOmitted(t *testing.T) {
	p := Pattern{Slug: "energizing-breath", InhaleSeconds: 6, ExhaleSeconds: 2, Cycles: 1}
	steps := p.Timeline(1)
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0].Phase != PhaseInhale || steps[1].Phase != PhaseExhale {
		t.Errorf("unexpected phase order: %v", steps)
	}
}

func TestTimelineExpansion(t *testing.T) {
	steps := boxTwo.Timeline(2)
	if len(steps) != 8 {
		t.Fatalf("expected 8 steps, got %d", len(steps))
	}

	wantPhases := []Phase{
		PhaseInhale, PhaseHold, PhaseExhale, PhasePause,
		PhaseInhale, PhaseHold, PhaseExhale, PhasePause,
	}
	offset := 0
	for i, s := range steps {
		if s.Phase != wantPhases[i] {
			t.Errorf("step %d: expected %s, got %s", i, wantPhases[i], s.Phase)
		}
		if s.StartOffsetSeconds != offset {
			t.Errorf("step %d: expected offset %d, got %d", i, offset, s.StartOffsetSeconds)
		}
		offset += s.DurationSeconds
	}
	if steps[4].Cycle != 2 {
		t.Errorf("expected step 4 in cycle 2, got %d", steps[4].Cycle)
	}
}

func TestDefaultPatternsLookup(t *testing.T) {
	for _, p := range DefaultPatterns {
		got, ok := PatternBySlug(p.Slug)
		if !ok || got.Name != p.Name {
			t.Errorf("lookup failed for %s", p.Slug)
		}
		if p.InhaleSeconds <= 0 || p.ExhaleSeconds <= 0 || p.Cycles <= 0 {
			t.Errorf("pattern %s has a non-positive required field", p.Slug)
		}
	}
	if _, ok := PatternBySlug("no-such-pattern"); ok {
		t.Error("unknown slug must not resolve")
	}
}
