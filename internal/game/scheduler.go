package game

import (
	"fmt"
	"log/slog"

	"github.com/spacehole-rogue/shipsim/internal/world"
)

// Scheduler fires random incidents at random intervals, one at a time.
type Scheduler struct {
	rng  Random
	cfg  world.SchedulerConfig
	gate *Gate
	log  *slog.Logger

	// Running is switched on by the chapter sequencer.
	Running bool
	enabled []IncidentKind

	// active is set when an incident starts and cleared only once its
	// decision has been resolved.
	active bool
	wait   float64
	armed  bool

	// dispatch starts the handler for kind.
	dispatch func(kind IncidentKind) error
}

// NewScheduler creates a stopped scheduler. dispatch is called to start an
// incident; the gate's resolution clears the active flag.
func NewScheduler(rng Random, cfg world.SchedulerConfig, gate *Gate, dispatch func(IncidentKind) error, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	s := &Scheduler{rng: rng, cfg: cfg, gate: gate, dispatch: dispatch, log: log}
	gate.OnClose(func(*Incident) { s.active = false })
	return s
}

// Active reports whether an incident is in flight.
func (s *Scheduler) Active() bool { return s.active }

// Enabled returns the kinds the scheduler draws from.
func (s *Scheduler) Enabled() []IncidentKind { return s.enabled }

// SetEnabled replaces the set of kinds to draw from.
func (s *Scheduler) SetEnabled(kinds []IncidentKind) { s.enabled = kinds }

// Retune swaps the interval bounds. The current wait is kept.
func (s *Scheduler) Retune(cfg world.SchedulerConfig) { s.cfg = cfg }

// Remaining returns the seconds left on the current wait.
func (s *Scheduler) Remaining() float64 {
	if !s.armed {
		return 0
	}
	return s.wait
}

// Step advances the wait by dt seconds and fires an incident when it runs out
// and nothing else is in flight.
func (s *Scheduler) Step(dt float64) {
	if !s.Running {
		return
	}
	if !s.armed {
		s.wait = uniform(s.rng, s.cfg.MinInterval, s.cfg.MaxInterval)
		s.armed = true
	}
	s.wait -= dt
	if s.wait > 0 {
		return
	}
	s.armed = false
	if s.active || s.gate.Pending() || len(s.enabled) == 0 {
		return
	}
	kind := s.enabled[s.rng.IntN(len(s.enabled))]
	if err := s.Begin(kind); err != nil {
		s.log.Warn("scheduled incident failed to start", "kind", kind.Key(), "err", err)
	}
}

// Begin starts an incident of kind now, outside the random draw.
func (s *Scheduler) Begin(kind IncidentKind) error {
	if s.active || s.gate.Pending() {
		return fmt.Errorf("begin %s: %w", kind, ErrIncidentActive)
	}
	s.active = true
	if err := s.dispatch(kind); err != nil {
		s.active = false
		return err
	}
	return nil
}
