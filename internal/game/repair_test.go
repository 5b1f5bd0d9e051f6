package game

import (
	"errors"
	"testing"

	"github.com/spacehole-rogue/shipsim/internal/world"
)

type repairFixture struct {
	ship   *Ship
	roster *Roster
	coord  *RepairCoordinator
	rec    *recorder
	crew   []CrewID
}

func newRepairFixture(nav Navigator, rng Random, effs ...float64) *repairFixture {
	cfg := quietConfig()
	rec := newRecorder()
	f := &repairFixture{ship: NewShip(cfg, rec), roster: NewRoster(), rec: rec}
	for i, e := range effs {
		f.crew = append(f.crew, f.roster.Spawn(cfg.Crew[i%len(cfg.Crew)].Name, e))
	}
	if rng == nil {
		rng = &stubRandom{float: 0.99}
	}
	f.coord = NewRepairCoordinator(f.ship, f.roster, nav, rng, cfg.Repair, rec, discardLogger())
	return f
}

func TestRepairCompletesOnFifthTick(t *testing.T) {
	f := newRepairFixture(nil, nil, 1.0)
	f.ship.Damage(world.Engine, 30)
	id := f.crew[0]

	if err := f.coord.Assign(id, world.Engine); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	for i := 1; i <= 4; i++ {
		if res := f.coord.Step(1); len(res) != 0 {
			t.Fatalf("tick %d: repair ended early: %+v", i, res)
		}
	}
	res := f.coord.Step(1)
	if len(res) != 1 || res[0].Outcome != RepairComplete || res[0].Healed != 10 {
		t.Fatalf("tick 5 results = %+v, want one completion of 10", res)
	}
	if got := f.ship.Get(world.Engine).Health(); got != 80 {
		t.Fatalf("engine health = %v, want 80", got)
	}
	_, task, _ := f.roster.Get(id)
	if task.State != TaskIdle {
		t.Fatalf("crew state = %v, want Idle", task.State)
	}
	if len(f.rec.diagnostics) != 1 {
		t.Fatalf("missing-navigator diagnostic posted %d times, want 1", len(f.rec.diagnostics))
	}
}

func TestRepairDurationScalesWithEfficiency(t *testing.T) {
	f := newRepairFixture(nil, nil, 2.0)
	f.ship.Damage(world.Hull, 40)
	f.coord.Assign(f.crew[0], world.Hull)

	f.coord.Step(1)
	f.coord.Step(1)
	res := f.coord.Step(0.5)
	if len(res) != 1 || res[0].Healed != 20 {
		t.Fatalf("results = %+v, want completion after 2.5s healing 20", res)
	}
}

func TestAssignRejections(t *testing.T) {
	f := newRepairFixture(nil, nil, 1, 1, 1)
	f.ship.Damage(world.Hull, 20)
	f.ship.Damage(world.Engine, 20)
	a, b, c := f.crew[0], f.crew[1], f.crew[2]
	if err := f.coord.Assign(a, world.Hull); err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	f.roster.Kill(c)

	cases := []struct {
		name string
		id   CrewID
		k    world.SubsystemKind
		want error
	}{
		{"staffed", b, world.Hull, ErrSubsystemStaffed},
		{"busy", a, world.Engine, ErrCrewBusy},
		{"already repaired", b, world.LifeSupport, ErrAlreadyRepaired},
		{"dead", c, world.Engine, ErrCrewDead},
		{"unknown crew", 42, world.Engine, ErrUnknownCrew},
		{"unknown subsystem", b, world.SubsystemCount, ErrUnknownSubsystem},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := f.coord.Assign(tc.id, tc.k)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Assign = %v, want %v", err, tc.want)
			}
		})
	}
	if _, task, _ := f.roster.Get(b); task.State != TaskIdle {
		t.Fatalf("rejected assignment changed state to %v", task.State)
	}
}

func TestGeneratorTakesSeveralCrew(t *testing.T) {
	f := newRepairFixture(nil, nil, 0.3, 0.4)
	for _, id := range f.crew {
		if err := f.coord.Assign(id, world.Generator); err != nil {
			t.Fatalf("Assign(%d, generator): %v", id, err)
		}
	}
	f.coord.Step(0.1)
	if got := f.ship.Get(world.Generator).Efficiency(); !near(got, 1.7) {
		t.Fatalf("generator efficiency = %v, want 1.7", got)
	}
}

func TestRepairDeathRoll(t *testing.T) {
	rng := &stubRandom{floats: []float64{0.1}, float: 0.99}
	f := newRepairFixture(nil, rng, 1, 1)
	f.coord.Retune(world.RepairConfig{Duration: 5, Amount: 10, DeathRate: 0.2})
	f.ship.Damage(world.Engine, 30)
	var died []CrewID
	f.coord.OnDeath = func(id CrewID, _ world.SubsystemKind) { died = append(died, id) }

	f.coord.Assign(f.crew[0], world.Engine)
	res := f.coord.Step(1)
	if len(res) != 1 || res[0].Outcome != RepairCrewDied {
		t.Fatalf("results = %+v, want a death", res)
	}
	if len(died) != 1 || died[0] != f.crew[0] {
		t.Fatalf("OnDeath calls = %v", died)
	}
	if f.roster.Alive() != 1 {
		t.Fatalf("alive = %d, want 1", f.roster.Alive())
	}
	if got := f.ship.Get(world.Engine).Health(); got != 70 {
		t.Fatalf("engine health = %v, want untouched 70", got)
	}
	if err := f.coord.Assign(f.crew[1], world.Engine); err != nil {
		t.Fatalf("station should be free after the death: %v", err)
	}
}

func TestRepairCancelledWhenTargetFull(t *testing.T) {
	f := newRepairFixture(nil, nil, 1)
	f.ship.Damage(world.Engine, 30)
	f.coord.Assign(f.crew[0], world.Engine)
	f.coord.Step(1)

	f.ship.Repair(world.Engine, 30)
	res := f.coord.Step(1)
	if len(res) != 1 || res[0].Outcome != RepairCancelled {
		t.Fatalf("results = %+v, want cancellation", res)
	}
	if _, task, _ := f.roster.Get(f.crew[0]); task.State != TaskIdle {
		t.Fatalf("state = %v, want Idle", task.State)
	}
}

func TestRepairAwardsXPAfterCredit(t *testing.T) {
	f := newRepairFixture(nil, nil, 1)
	m, _, _ := f.roster.Get(f.crew[0])
	m.XP = 30
	f.ship.Damage(world.Hull, 40)
	f.coord.Assign(f.crew[0], world.Hull)
	var res []RepairResult
	for i := 0; i < 10 && len(res) == 0; i++ {
		res = f.coord.Step(1)
	}
	if len(res) != 1 || res[0].Healed != 10 {
		t.Fatalf("results = %+v, want 10 at level 1 efficiency", res)
	}
	if m.Level() != 2 {
		t.Fatalf("level = %d, want 2 after the award", m.Level())
	}
}

// gridNav reports arrival after a fixed number of polls.
type gridNav struct {
	polls    int
	need     int
	moved    []world.SubsystemKind
	recalled int
}

func (n *gridNav) MoveTo(_ int, k world.SubsystemKind) { n.moved = append(n.moved, k); n.polls = 0 }
func (n *gridNav) Arrived(int) bool                    { n.polls++; return n.polls > n.need }
func (n *gridNav) Recall(int)                          { n.recalled++ }

func TestRepairWaitsForNavigator(t *testing.T) {
	nav := &gridNav{need: 3}
	f := newRepairFixture(nav, nil, 1)
	f.ship.Damage(world.Hull, 10)
	f.coord.Assign(f.crew[0], world.Hull)

	for i := 0; i < 3; i++ {
		f.coord.Step(1)
		if _, task, _ := f.roster.Get(f.crew[0]); task.State != TaskEnRoute {
			t.Fatalf("tick %d: state = %v, want En route", i+1, task.State)
		}
	}
	f.coord.Step(1)
	if _, task, _ := f.roster.Get(f.crew[0]); task.State != TaskRepairing {
		t.Fatalf("state = %v, want Repairing after arrival", task.State)
	}
	for i := 0; i < 10; i++ {
		f.coord.Step(1)
	}
	if len(nav.moved) != 1 || nav.moved[0] != world.Hull || nav.recalled != 1 {
		t.Fatalf("navigator moved=%v recalled=%d", nav.moved, nav.recalled)
	}
	if len(f.rec.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %v", f.rec.diagnostics)
	}
}

// forgetNav is a gridNav that can also drop units.
type forgetNav struct {
	*gridNav
	forgotten []int
}

func (n *forgetNav) Forget(id int) { n.forgotten = append(n.forgotten, id) }

func TestRepairDeathReleasesNavigator(t *testing.T) {
	cases := []struct {
		name         string
		forgets      bool
		wantForgot   int
		wantRecalled int
	}{
		{"navigator forgets the unit", true, 1, 0},
		{"navigator recalls the unit", false, 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grid := &gridNav{}
			fn := &forgetNav{gridNav: grid}
			var nav Navigator = grid
			if tc.forgets {
				nav = fn
			}
			rng := &stubRandom{floats: []float64{0.1}, float: 0.99}
			f := newRepairFixture(nav, rng, 1)
			f.coord.Retune(world.RepairConfig{Duration: 5, Amount: 10, DeathRate: 0.2})
			f.ship.Damage(world.Hull, 20)
			f.coord.Assign(f.crew[0], world.Hull)

			res := f.coord.Step(1)
			if len(res) != 1 || res[0].Outcome != RepairCrewDied {
				t.Fatalf("results = %+v, want a death", res)
			}
			if len(fn.forgotten) != tc.wantForgot || grid.recalled != tc.wantRecalled {
				t.Fatalf("forgotten = %v recalled = %d", fn.forgotten, grid.recalled)
			}
			if tc.forgets && fn.forgotten[0] != int(f.crew[0]) {
				t.Fatalf("forgot unit %d, want %d", fn.forgotten[0], f.crew[0])
			}
		})
	}
}

func TestSacrificeReleasesNavigator(t *testing.T) {
	nav := &forgetNav{gridNav: &gridNav{}}
	s := NewSim(quietConfig(), Options{Random: &stubRandom{}, Navigator: nav, Logger: discardLogger()})
	if name := s.sacrificeCrew("lost"); name == "" {
		t.Fatal("nobody sacrificed")
	}
	if len(nav.forgotten) != 1 || nav.forgotten[0] != int(s.Crew.IDs()[0]) {
		t.Fatalf("forgotten = %v", nav.forgotten)
	}
}
