// Package breathing drives a guided-breathing session through its phase
// cycle. The machine is an explicit tagged-state automaton advanced by
// wall-clock time, so irregular ticks (a backgrounded tab, a slow frame)
// never skew phase timing, and a finalized session can never emit a second
// summary.
package breathing

import (
	"time"
)

type Phase string

const (
	PhaseInhale Phase = "inhale"
	PhaseHold   Phase = "hold"
	PhaseExhale Phase = "exhale"
	PhasePause  Phase = "pause"
)

// Summary is emitted once per session, either at natural completion or on
// an early stop after at least one full cycle.
type Summary struct {
	PatternSlug     string    `json:"pattern_slug"`
	CyclesCompleted int       `json:"cycles_completed"`
	Completed       bool      `json:"completed"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
	DurationSeconds int       `json:"duration_seconds"`
}

type phaseStep struct {
	phase   Phase
	seconds int
}

// steps returns the pattern's phase order with optional zero-duration
// phases omitted.
func (p Pattern) steps() []phaseStep {
	all := []phaseStep{
		{PhaseInhale, p.InhaleSeconds},
		{PhaseHold, p.HoldSeconds},
		{PhaseExhale, p.ExhaleSeconds},
		{PhasePause, p.PauseSeconds},
	}
	steps := make([]phaseStep, 0, len(all))
	for _, s := range all {
		if s.seconds > 0 {
			steps = append(steps, s)
		}
	}
	return steps
}

// CycleSeconds is the wall-clock length of one full cycle.
func (p Pattern) CycleSeconds() int {
	total := 0
	for _, s := range p.steps() {
		total += s.seconds
	}
	return total
}

// TimelineStep is one phase occurrence in a fully expanded session plan.
type TimelineStep struct {
	Cycle              int   `json:"cycle"`
	Phase              Phase `json:"phase"`
	StartOffsetSeconds int   `json:"start_offset_seconds"`
	DurationSeconds    int   `json:"duration_seconds"`
}

// Timeline expands the pattern into the exact phase sequence for the given
// cycle count, with start offsets from session start. Clients use it to
// schedule animations up front.
func (p Pattern) Timeline(cycles int) []TimelineStep {
	if cycles < 1 {
		cycles = p.Cycles
	}
	steps := p.steps()
	timeline := make([]TimelineStep, 0, cycles*len(steps))
	offset := 0
	for c := 1; c <= cycles; c++ {
		for _, s := range steps {
			timeline = append(timeline, TimelineStep{
				Cycle:              c,
				Phase:              s.phase,
				StartOffsetSeconds: offset,
				DurationSeconds:    s.seconds,
			})
			offset += s.seconds
		}
	}
	return timeline
}

// Machine is the session automaton. Not safe for concurrent use; the
// caller owns it (no package-level state).
type Machine struct {
	pattern    Pattern
	steps      []phaseStep
	running    bool
	finalized  bool
	phaseIdx   int
	cycles     int
	startedAt  time.Time
	phaseStart time.Time
}

func NewMachine(p Pattern) *Machine {
	return &Machine{pattern: p, steps: p.steps()}
}

// Start begins a fresh session at the first phase. Starting an already
// running machine restarts it.
func (m *Machine) Start(now time.Time) {
	m.running = true
	m.finalized = false
	m.phaseIdx = 0
	m.cycles = 0
	m.startedAt = now
	m.phaseStart = now
}

// Advance re-samples the wall clock and crosses as many phase boundaries
// as the elapsed time covers. It returns a completion summary exactly once,
// on the tick where the final cycle finishes; nil otherwise.
func (m *Machine) Advance(now time.Time) *Summary {
	if !m.running || len(m.steps) == 0 {
		return nil
	}
	for {
		dur := time.Duration(m.steps[m.phaseIdx].seconds) * time.Second
		if now.Sub(m.phaseStart) < dur {
			return nil
		}
		m.phaseStart = m.phaseStart.Add(dur)
		m.phaseIdx++
		if m.phaseIdx < len(m.steps) {
			continue
		}
		m.phaseIdx = 0
		m.cycles++
		if m.cycles >= m.pattern.Cycles {
			return m.finalize(m.phaseStart, true)
		}
	}
}

// Stop ends the session early. A partial summary is returned only when at
// least one cycle completed; stopping an idle or already finalized machine
// returns nil. The machine always ends up back at its initial state.
func (m *Machine) Stop(now time.Time) *Summary {
	if !m.running || m.finalized {
		m.Reset()
		return nil
	}
	if m.cycles < 1 {
		m.Reset()
		return nil
	}
	return m.finalize(now, false)
}

// Reset discards any in-progress session without emitting a summary.
func (m *Machine) Reset() {
	m.running = false
	m.phaseIdx = 0
	m.cycles = 0
	m.startedAt = time.Time{}
	m.phaseStart = time.Time{}
}

func (m *Machine) finalize(endedAt time.Time, completed bool) *Summary {
	summary := &Summary{
		PatternSlug:     m.pattern.Slug,
		CyclesCompleted: m.cycles,
		Completed:       completed,
		StartedAt:       m.startedAt,
		EndedAt:         endedAt,
		DurationSeconds: int(endedAt.Sub(m.startedAt) / time.Second),
	}
	m.Reset()
	m.finalized = true
	return summary
}

// Phase reports the active phase, or inhale when idle.
func (m *Machine) Phase() Phase {
	if len(m.steps) == 0 {
		return PhaseInhale
	}
	return m.steps[m.phaseIdx].phase
}

// PhaseProgress is the elapsed fraction of the active phase, clamped to
// [0, 1].
func (m *Machine) PhaseProgress(now time.Time) float64 {
	if !m.running || len(m.steps) == 0 {
		return 0
	}
	dur := time.Duration(m.steps[m.phaseIdx].seconds) * time.Second
	if dur <= 0 {
		return 1
	}
	progress := float64(now.Sub(m.phaseStart)) / float64(dur)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (m *Machine) Running() bool { return m.running }

func (m *Machine) CyclesCompleted() int { return m.cycles }
