package game

import (
	"fmt"
	"log/slog"

	"github.com/spacehole-rogue/shipsim/internal/world"
)

// Navigator is the movement collaborator. The core never computes paths; it
// asks for a destination and polls for arrival.
type Navigator interface {
	MoveTo(id int, k world.SubsystemKind)
	Arrived(id int) bool
	Recall(id int)
}

// RepairOutcome is how a repair task ended.
type RepairOutcome uint8

const (
	RepairComplete RepairOutcome = iota
	RepairCrewDied
	RepairCancelled
)

// RepairResult reports a repair task that ended during a step.
type RepairResult struct {
	Crew    CrewID
	Target  world.SubsystemKind
	Outcome RepairOutcome
	Healed  float64
}

const completionTolerance = 1e-9

// RepairCoordinator pairs crew with subsystems and runs timed repairs.
type RepairCoordinator struct {
	ship    *Ship
	roster  *Roster
	nav     Navigator
	rng     Random
	cfg     world.RepairConfig
	present Presenter
	log     *slog.Logger

	warnedNav bool

	// OnDeath, when set, is called after a unit dies mid-repair.
	OnDeath func(id CrewID, k world.SubsystemKind)
}

// NewRepairCoordinator wires a coordinator. nav may be nil, in which case crew
// reach their station immediately.
func NewRepairCoordinator(ship *Ship, roster *Roster, nav Navigator, rng Random,
	cfg world.RepairConfig, p Presenter, log *slog.Logger) *RepairCoordinator {
	if p == nil {
		p = NopPresenter{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &RepairCoordinator{
		ship:    ship,
		roster:  roster,
		nav:     nav,
		rng:     rng,
		cfg:     cfg,
		present: p,
		log:     log,
	}
}

// Retune swaps repair duration, amount and death rate. Tasks in flight keep
// their duration.
func (c *RepairCoordinator) Retune(cfg world.RepairConfig) { c.cfg = cfg }

// DeathRate returns the per-second death chance rolled as rate*dt each tick.
func (c *RepairCoordinator) DeathRate() float64 { return c.cfg.DeathRate }

// Assign sends a crew unit to repair a subsystem. It changes nothing when the
// assignment is invalid.
func (c *RepairCoordinator) Assign(id CrewID, k world.SubsystemKind) error {
	sub := c.ship.Get(k)
	if sub == nil {
		return fmt.Errorf("assign crew %d: %w", id, ErrUnknownSubsystem)
	}
	_, task, ok := c.roster.Get(id)
	switch {
	case !ok:
		return fmt.Errorf("assign crew %d: %w", id, ErrUnknownCrew)
	case task.State == TaskDead:
		return fmt.Errorf("assign crew %d: %w", id, ErrCrewDead)
	case task.Busy():
		return fmt.Errorf("assign crew %d to %s: %w", id, k, ErrCrewBusy)
	}
	if k.SinglePosted() {
		if len(c.roster.Working(k)) > 0 {
			return fmt.Errorf("assign crew %d to %s: %w", id, k, ErrSubsystemStaffed)
		}
		if sub.IsFull() {
			return fmt.Errorf("assign crew %d to %s: %w", id, k, ErrAlreadyRepaired)
		}
	}
	*task = CrewTask{State: TaskAssigned, Target: k}
	return nil
}

// Step advances every task by dt seconds and returns the tasks that ended.
func (c *RepairCoordinator) Step(dt float64) []RepairResult {
	var results []RepairResult
	for _, id := range c.roster.IDs() {
		if r, done := c.stepTask(id, dt); done {
			results = append(results, r)
		}
	}
	c.updateGeneratorBoost()
	return results
}

func (c *RepairCoordinator) stepTask(id CrewID, dt float64) (RepairResult, bool) {
	m, task, ok := c.roster.Get(id)
	if !ok || !task.Busy() {
		return RepairResult{}, false
	}
	k := task.Target
	sub := c.ship.Get(k)

	if task.State == TaskAssigned {
		if c.nav == nil {
			if !c.warnedNav {
				c.warnedNav = true
				c.log.Warn("no navigator wired, crew arrive immediately", "err", ErrConfigurationMissing)
				c.present.Diagnostic("Navigation offline: crew move straight to stations.")
			}
		} else {
			c.nav.MoveTo(int(id), k)
		}
		task.State = TaskEnRoute
	}

	if k.SinglePosted() && sub.IsFull() {
		return c.free(id, task, RepairResult{Crew: id, Target: k, Outcome: RepairCancelled}), true
	}

	if task.State == TaskEnRoute {
		if c.nav != nil && !c.nav.Arrived(int(id)) {
			return RepairResult{}, false
		}
		task.State = TaskRepairing
		task.Elapsed = 0
		task.Duration = c.cfg.Duration / m.Efficiency()
	}

	// Rolled every tick, so the chance over a whole repair grows with frame rate.
	if c.cfg.DeathRate > 0 && c.rng.Float64() < c.cfg.DeathRate*dt {
		c.roster.Kill(id)
		c.Release(id)
		c.log.Info("crew died during repair", "crew", id, "name", m.Name, "subsystem", k.Key())
		if c.OnDeath != nil {
			c.OnDeath(id, k)
		}
		return RepairResult{Crew: id, Target: k, Outcome: RepairCrewDied}, true
	}

	task.Elapsed += dt
	frac := min(task.Elapsed/task.Duration, 1)
	c.present.RepairProgress(id, k, frac)
	if task.Elapsed+completionTolerance < task.Duration {
		return RepairResult{}, false
	}

	eff := m.Efficiency()
	amount := eff * c.cfg.Amount
	c.ship.Repair(k, amount)
	if m.AddXP(repairXP) {
		c.present.Diagnostic(fmt.Sprintf("%s reached engineering level %d.", m.Name, m.Level()))
	}
	return c.free(id, task, RepairResult{Crew: id, Target: k, Outcome: RepairComplete, Healed: amount}), true
}

// Release drops a dead unit from the navigator. Navigators that cannot forget
// a unit recall it to quarters instead.
func (c *RepairCoordinator) Release(id CrewID) {
	switch nav := c.nav.(type) {
	case nil:
	case interface{ Forget(int) }:
		nav.Forget(int(id))
	default:
		nav.Recall(int(id))
	}
}

func (c *RepairCoordinator) free(id CrewID, task *CrewTask, r RepairResult) RepairResult {
	*task = CrewTask{State: TaskIdle}
	if c.nav != nil {
		c.nav.Recall(int(id))
	}
	return r
}

// updateGeneratorBoost feeds the efficiency of crew working the generator into
// its output.
func (c *RepairCoordinator) updateGeneratorBoost() {
	total := 0.0
	for _, id := range c.roster.Working(world.Generator) {
		m, task, _ := c.roster.Get(id)
		if task.State == TaskRepairing {
			total += m.Efficiency()
		}
	}
	c.ship.Get(world.Generator).SetCrewBoost(total)
}
