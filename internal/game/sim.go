package game

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/spacehole-rogue/shipsim/internal/world"
)

// Options carries the collaborators a Sim is built with.
type Options struct {
	Seed uint64
	// Random overrides Seed when set.
	Random Random
	// Presenter receives notifications in addition to the comms log.
	Presenter Presenter
	// Navigator moves crew between stations. Nil means crew arrive at once.
	Navigator Navigator
	Logger    *slog.Logger
	// Scripts is the source of chapter scripts.
	Scripts fs.FS
	// Debug accepts debug commands.
	Debug   bool
	LogSize int
}

// Sim is the ship simulation. It owns all gameplay state and is stepped from a
// single goroutine; nothing in it is safe for concurrent use.
type Sim struct {
	Config    *world.ShipConfig
	Ship      *Ship
	Fire      *FireModel
	Ledger    *Ledger
	Crew      *Roster
	Repairs   *RepairCoordinator
	Gate      *Gate
	Scheduler *Scheduler
	Chapters  *Chapters
	Log       *MessageLog

	Ticks   uint64
	Elapsed float64

	// LastResult is the text of the most recent decision outcome.
	LastResult string

	rng     Random
	present Presenter
	log     *slog.Logger
	debug   bool
	outcome Outcome
}

// NewSim builds a simulation from a ship config and enters chapter 1.
func NewSim(cfg *world.ShipConfig, opts Options) *Sim {
	if cfg == nil {
		cfg = world.DefaultShipConfig()
	}
	rng := opts.Random
	if rng == nil {
		rng = NewRandom(opts.Seed)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	size := opts.LogSize
	if size <= 0 {
		size = 50
	}

	msgs := NewMessageLog(size, 55)
	present := Presenters{LogPresenter{Log: msgs}}
	if opts.Presenter != nil {
		present = append(present, opts.Presenter)
	}

	s := &Sim{
		Config:  cfg,
		Log:     msgs,
		rng:     rng,
		present: present,
		log:     logger,
		debug:   opts.Debug,
	}
	s.Ship = NewShip(cfg, present)
	s.Fire = NewFireModel(s.Ship, rng, cfg.Fire)
	s.Ledger = NewLedger(cfg.Resources)
	s.Crew = NewRoster()
	for _, c := range cfg.Crew {
		s.Crew.Spawn(c.Name, c.Efficiency)
	}
	s.Repairs = NewRepairCoordinator(s.Ship, s.Crew, opts.Navigator, rng, cfg.Repair, present, logger)
	s.Repairs.OnDeath = func(id CrewID, k world.SubsystemKind) {
		m, _, _ := s.Crew.Get(id)
		s.Log.Add(fmt.Sprintf("%s was killed repairing the %s.", m.Name, k), MsgCritical)
	}
	s.Gate = NewGate(present)
	s.Scheduler = NewScheduler(rng, cfg.Scheduler, s.Gate, s.startIncident, logger)
	s.Chapters = newChapters(s, opts.Scripts, logger)

	s.Log.Add(fmt.Sprintf("Systems check aboard the %s.", cfg.Name), MsgInfo)
	logger.Info("simulation created", "ship", cfg.Name, "crew", s.Crew.Alive(), "seed", opts.Seed)
	_ = s.Chapters.Enter(1)
	return s
}

// Outcome returns the terminal outcome, if reached.
func (s *Sim) Outcome() Outcome { return s.outcome }

// Debug reports whether debug commands are accepted.
func (s *Sim) Debug() bool { return s.debug }

// Tick advances the simulation by dt seconds.
func (s *Sim) Tick(dt float64) {
	if s.outcome.Over() || dt <= 0 {
		return
	}
	s.Ticks++
	s.Elapsed += dt
	s.Log.Stamp(s.Ticks)

	s.Chapters.Step(dt)
	s.Scheduler.Step(dt)
	for _, r := range s.Repairs.Step(dt) {
		s.reportRepair(r)
	}
	s.Fire.Step(dt)
	s.Crew.StepFatigue(dt)
	s.settle(s.Ledger.Tick(dt, s.Ship.LifeSupportOutput(), s.Ship.EngineOutput()))
}

func (s *Sim) reportRepair(r RepairResult) {
	m, _, _ := s.Crew.Get(r.Crew)
	switch r.Outcome {
	case RepairComplete:
		s.Log.Add(fmt.Sprintf("%s repaired the %s (+%.0f).", m.Name, r.Target, r.Healed), MsgInfo)
	case RepairCancelled:
		s.Log.Add(fmt.Sprintf("%s stands down: %s already repaired.", m.Name, r.Target), MsgSocial)
	}
}

// settle records a terminal outcome the first time one is reported.
func (s *Sim) settle(o Outcome) {
	if !o.Over() || s.outcome.Over() {
		return
	}
	s.outcome = o
	s.present.Outcome(o)
	s.log.Info("session over", "victory", o.Victory(), "reason", o.Reason, "elapsed", s.Elapsed)
}

// AssignCrew sends a crew unit to repair a subsystem.
func (s *Sim) AssignCrew(id CrewID, k world.SubsystemKind) error {
	if s.outcome.Over() {
		return ErrSessionOver
	}
	if err := s.Repairs.Assign(id, k); err != nil {
		s.present.Diagnostic(assignDiagnostic(err))
		return err
	}
	if m, _, ok := s.Crew.Get(id); ok {
		s.Log.Add(fmt.Sprintf("%s heading to the %s.", m.Name, k), MsgInfo)
	}
	return nil
}

// ResolveDecision picks an option of the open decision.
func (s *Sim) ResolveDecision(idx int) (string, error) {
	if s.outcome.Over() {
		return "", ErrSessionOver
	}
	result, err := s.Gate.Resolve(idx)
	if err != nil {
		s.present.Diagnostic("No such choice.")
		return "", err
	}
	s.LastResult = result
	if result != "" {
		s.Log.Add(result, MsgInfo)
	}
	s.settle(s.Ledger.Outcome())
	return result, nil
}

// TriggerIncident starts an incident immediately.
func (s *Sim) TriggerIncident(kind IncidentKind) error {
	if s.outcome.Over() {
		return ErrSessionOver
	}
	if err := s.Scheduler.Begin(kind); err != nil {
		if errors.Is(err, ErrIncidentActive) {
			s.present.Diagnostic("Another incident is still being handled.")
		} else {
			s.present.Diagnostic("Unknown incident.")
		}
		return err
	}
	return nil
}

// AdvanceToChapter jumps to chapter n.
func (s *Sim) AdvanceToChapter(n int) error {
	if s.outcome.Over() {
		return ErrSessionOver
	}
	if err := s.Chapters.Enter(n); err != nil {
		s.present.Diagnostic(fmt.Sprintf("There is no chapter %d.", n))
		return err
	}
	return nil
}

// Retune swaps rates and intervals from a reloaded config without touching
// state. Subsystem sizes, crew and chapters are fixed for the session.
func (s *Sim) Retune(cfg *world.ShipConfig) {
	s.Fire.Retune(cfg.Fire)
	s.Repairs.Retune(cfg.Repair)
	s.Scheduler.Retune(cfg.Scheduler)
	s.Log.Add("Tuning reloaded.", MsgInfo)
	s.log.Info("tuning reloaded", "death_rate", cfg.Repair.DeathRate,
		"repair_duration", cfg.Repair.Duration, "fire_growth", cfg.Fire.GrowthRate)
}

// startIncident is the scheduler's handler: apply the onset and open the gate.
func (s *Sim) startIncident(kind IncidentKind) error {
	if kind >= IncidentKindCount {
		return fmt.Errorf("start incident %d: %w", kind, ErrUnknownIncident)
	}
	inc := s.newIncident(kind)
	inc.Onset()
	if err := s.Gate.Open(inc); err != nil {
		return err
	}
	s.log.Info("incident started", "kind", kind.Key(), "chapter", s.Chapters.Number())
	return nil
}

// sacrificeCrew kills one crew unit for a decision and returns its name, or ""
// if nobody is left.
func (s *Sim) sacrificeCrew(why string) string {
	id, ok := s.Crew.PickSacrifice()
	if !ok {
		return ""
	}
	m, _, _ := s.Crew.Get(id)
	s.Crew.Kill(id)
	s.Repairs.Release(id)
	s.Log.Add(fmt.Sprintf("%s %s.", m.Name, why), MsgCritical)
	s.log.Info("crew sacrificed", "crew", id, "name", m.Name, "alive", s.Crew.Alive())
	return m.Name
}

func assignDiagnostic(err error) string {
	switch {
	case errors.Is(err, ErrCrewBusy):
		return "That crew member is already on a job."
	case errors.Is(err, ErrCrewDead):
		return "That crew member is dead."
	case errors.Is(err, ErrSubsystemStaffed):
		return "Someone is already working on that."
	case errors.Is(err, ErrAlreadyRepaired):
		return "Nothing to repair there."
	default:
		return "Assignment refused."
	}
}
