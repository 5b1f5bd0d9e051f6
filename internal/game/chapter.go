package game

import (
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/spacehole-rogue/shipsim/internal/world"
)

// FinalChapter is the last chapter number.
const FinalChapter = 4

// barrierKinds must all be at full health before a barrier chapter ends.
var barrierKinds = []world.SubsystemKind{world.Engine, world.Hull, world.LifeSupport}

// step is one cooperative phase of a chapter. It returns true when done.
type step func(dt float64) bool

// Chapters sequences the scenario. Each chapter is a list of steps run in
// order; a step that is not done suspends the chapter until the next tick.
type Chapters struct {
	sim     *Sim
	scripts fs.FS
	log     *slog.Logger

	number int
	steps  []step
	pos    int
	next   int
}

func newChapters(s *Sim, scripts fs.FS, log *slog.Logger) *Chapters {
	return &Chapters{sim: s, scripts: scripts, log: log}
}

// Number returns the current chapter.
func (c *Chapters) Number() int { return c.number }

// Waiting reports whether the current chapter is blocked on a step.
func (c *Chapters) Waiting() bool { return c.pos < len(c.steps) }

// Enter jumps to chapter n and runs its steps up to the first wait.
func (c *Chapters) Enter(n int) error {
	if n < 1 || n > FinalChapter {
		return fmt.Errorf("enter chapter %d: %w", n, ErrBadChapter)
	}
	c.next = 0
	c.enter(n)
	c.Step(0)
	return nil
}

// Step runs the current chapter's steps until one is not done.
func (c *Chapters) Step(dt float64) {
	for c.pos < len(c.steps) {
		if !c.steps[c.pos](dt) {
			break
		}
		c.pos++
	}
	for c.next != 0 {
		n := c.next
		c.next = 0
		c.enter(n)
		for c.pos < len(c.steps) && c.steps[c.pos](0) {
			c.pos++
		}
	}
}

// requestNext advances to the next chapter once the current step returns.
func (c *Chapters) requestNext() bool {
	if c.number >= FinalChapter {
		return false
	}
	c.next = c.number + 1
	return true
}

func (c *Chapters) enter(n int) {
	s := c.sim
	cfg := s.Config.Chapter(n)
	c.number = n
	c.pos = 0
	c.steps = nil

	var kinds []IncidentKind
	for _, key := range cfg.Incidents {
		if k, ok := ParseIncidentKind(key); ok {
			kinds = append(kinds, k)
		} else {
			c.log.Warn("unknown incident in chapter config", "chapter", n, "incident", key)
		}
	}
	s.Scheduler.SetEnabled(kinds)
	s.Scheduler.Running = true

	title := cfg.Title
	if title == "" {
		title = fmt.Sprintf("Chapter %d", n)
	}
	s.Log.Add(fmt.Sprintf("Chapter %d: %s", n, title), MsgDiscovery)
	c.log.Info("chapter entered", "chapter", n, "incidents", len(kinds), "barrier", cfg.Barrier)

	if len(cfg.InitialDamage) > 0 {
		c.steps = append(c.steps, c.applyDamage(cfg.InitialDamage))
	}
	if n == 2 {
		c.steps = append(c.steps,
			c.waitGateFree(),
			c.openDecision(IncidentAsteroidField),
			c.waitGateFree(),
		)
	}
	if cfg.Barrier {
		c.steps = append(c.steps, c.repairBarrier())
	}
	if cfg.Script != "" {
		c.steps = append(c.steps, c.runScript(cfg.Script)...)
	}
	if n <= 2 {
		c.steps = append(c.steps, func(float64) bool {
			c.requestNext()
			return true
		})
	}
}

func (c *Chapters) applyDamage(damage map[string]float64) step {
	return func(float64) bool {
		keys := make([]string, 0, len(damage))
		for key := range damage {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if k, ok := world.ParseSubsystemKind(key); ok {
				c.sim.Ship.Damage(k, damage[key])
			}
		}
		return true
	}
}

func (c *Chapters) repairBarrier() step {
	announced := false
	return func(float64) bool {
		if c.sim.Ship.AllFull(barrierKinds...) {
			return true
		}
		if !announced {
			announced = true
			c.sim.Log.Add("Repair Engine, Hull and Life Support to continue.", MsgInfo)
		}
		return false
	}
}

func (c *Chapters) waitGateFree() step {
	return func(float64) bool {
		return !c.sim.Gate.Pending() && !c.sim.Scheduler.Active()
	}
}

func (c *Chapters) openDecision(kind IncidentKind) step {
	return func(float64) bool {
		inc := c.sim.newIncident(kind)
		inc.Onset()
		if err := c.sim.Gate.Open(inc); err != nil {
			return false
		}
		return true
	}
}

// runScript loads a chapter script. A script that cannot be loaded leaves the
// chapter without steps.
func (c *Chapters) runScript(name string) []step {
	s := c.sim
	if c.scripts == nil {
		c.log.Warn("chapter script without script source", "script", name, "err", ErrConfigurationMissing)
		s.present.Diagnostic("Chapter script unavailable: " + name)
		return nil
	}
	src, err := fs.ReadFile(c.scripts, name)
	if err != nil {
		c.log.Warn("read chapter script", "script", name, "err", err)
		s.present.Diagnostic("Chapter script unavailable: " + name)
		return nil
	}
	script, err := CompileChapterScript(name, src, s)
	if err != nil {
		c.log.Warn("compile chapter script", "script", name, "err", err)
		s.present.Diagnostic("Chapter script failed to compile: " + name)
		return nil
	}

	failed := false
	fail := func(err error) {
		failed = true
		c.log.Warn("chapter script error", "script", name, "err", err)
		s.present.Diagnostic("Chapter script stopped: " + name)
	}
	return []step{
		func(float64) bool {
			if err := script.Enter(); err != nil {
				fail(err)
			}
			return true
		},
		func(dt float64) bool {
			if failed {
				return true
			}
			if err := script.Update(dt); err != nil {
				fail(err)
				return true
			}
			return false
		},
	}
}
