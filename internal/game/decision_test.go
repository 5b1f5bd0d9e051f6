package game

import (
	"errors"
	"testing"

	"github.com/spacehole-rogue/shipsim/internal/world"
)

func TestGateLifecycle(t *testing.T) {
	gate := NewGate(nil)
	if _, err := gate.Resolve(0); !errors.Is(err, ErrGateClosed) {
		t.Fatalf("Resolve on closed gate = %v", err)
	}

	var during GateState
	inc := testIncident(IncidentDerelict, func() string {
		during = gate.State()
		return "done"
	})
	if err := gate.Open(inc); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := gate.Open(testIncident(IncidentFire, nil)); !errors.Is(err, ErrGateBusy) {
		t.Fatalf("second Open = %v, want ErrGateBusy", err)
	}
	if _, err := gate.Resolve(2); !errors.Is(err, ErrBadOption) {
		t.Fatalf("Resolve(2) = %v, want ErrBadOption", err)
	}
	if gate.State() != GateOpen || gate.Incident() != inc {
		t.Fatal("bad option changed the gate")
	}

	closed := 0
	gate.OnClose(func(got *Incident) {
		if got != inc {
			t.Errorf("OnClose got %v", got)
		}
		closed++
	})
	text, err := gate.Resolve(0)
	if err != nil || text != "done" {
		t.Fatalf("Resolve = %q, %v", text, err)
	}
	if during != GateResolving {
		t.Fatalf("state during effect = %v, want resolving", during)
	}
	if gate.Pending() || gate.Incident() != nil || closed != 1 {
		t.Fatalf("gate after resolve: pending=%v closed=%d", gate.Pending(), closed)
	}
}

func TestFireSacrificeOnce(t *testing.T) {
	s := newIdleSim(&stubRandom{float: 0.5}, nil)
	if err := s.TriggerIncident(IncidentFire); err != nil {
		t.Fatalf("TriggerIncident: %v", err)
	}
	inc := s.Gate.Incident()
	if inc == nil || inc.Targets[0] != world.Engine {
		t.Fatalf("fire incident = %+v", inc)
	}
	if !s.Ship.Get(world.Engine).IsOnFire() {
		t.Fatal("fire onset did not ignite the engine")
	}

	activeDuring := false
	effect := inc.Options[0].Effect
	inc.Options[0].Effect = func() string {
		activeDuring = s.Scheduler.Active()
		return effect()
	}

	if _, err := s.ResolveDecision(0); err != nil {
		t.Fatalf("ResolveDecision: %v", err)
	}
	if got := len(s.Crew.IDs()) - s.Crew.Alive(); got != 1 {
		t.Fatalf("%d crew lost, want exactly 1", got)
	}
	if !activeDuring {
		t.Fatal("scheduler released before the decision effect ran")
	}
	if s.Scheduler.Active() {
		t.Fatal("scheduler still active after resolution")
	}
	if s.Ship.Get(world.Engine).IsOnFire() {
		t.Fatal("sealed compartment still burning")
	}
}

func TestIncidentCatalog(t *testing.T) {
	type levels struct{ engine, hull, ls, gen, oxygen, fuel float64 }
	cases := []struct {
		kind         IncidentKind
		option       int
		want         levels
		engineDamage float64 // applied before the incident starts
	}{
		{IncidentFire, 1, levels{75, 100, 100, 100, 80, 100}, 0},
		// Onset leaves the engine at 55; the vent penalty takes it below 50.
		{IncidentFire, 1, levels{45, 100, 100, 100, 80, 100}, 30},
		{IncidentAsteroid, 0, levels{100, 80, 100, 100, 100, 85}, 0},
		{IncidentAsteroid, 1, levels{90, 65, 100, 100, 100, 100}, 0},
		{IncidentSystemFailure, 0, levels{85, 100, 100, 80, 100, 100}, 0},
		{IncidentSystemFailure, 1, levels{60, 100, 100, 100, 100, 100}, 0},
		{IncidentDerelict, 1, levels{100, 100, 100, 100, 100, 100}, 0},
		{IncidentGeneratorFailure, 0, levels{100, 100, 80, 80, 100, 100}, 0},
		{IncidentGeneratorFailure, 1, levels{100, 100, 100, 60, 90, 90}, 0},
		{IncidentAsteroidField, 0, levels{85, 65, 100, 100, 100, 100}, 0},
		{IncidentAsteroidField, 1, levels{100, 100, 100, 100, 100, 80}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.kind.Key(), func(t *testing.T) {
			s := newIdleSim(&stubRandom{float: 0.9}, nil)
			s.Ship.Damage(world.Engine, tc.engineDamage)
			if err := s.TriggerIncident(tc.kind); err != nil {
				t.Fatalf("TriggerIncident: %v", err)
			}
			if _, err := s.ResolveDecision(tc.option); err != nil {
				t.Fatalf("ResolveDecision(%d): %v", tc.option, err)
			}
			got := levels{
				s.Ship.Get(world.Engine).Health(),
				s.Ship.Get(world.Hull).Health(),
				s.Ship.Get(world.LifeSupport).Health(),
				s.Ship.Get(world.Generator).Health(),
				s.Ledger.Oxygen,
				s.Ledger.Fuel,
			}
			if got != tc.want {
				t.Fatalf("option %d: got %+v, want %+v", tc.option, got, tc.want)
			}
			if burning := s.Ship.Burning(); len(burning) != 0 {
				t.Fatalf("option %d left %v burning", tc.option, burning)
			}
			if s.Crew.Alive() != len(s.Config.Crew) {
				t.Fatalf("crew lost: %d alive", s.Crew.Alive())
			}
		})
	}
}

func TestDerelictBoardingLoss(t *testing.T) {
	s := newIdleSim(&stubRandom{float: 0.1}, nil)
	s.Ledger.Fuel, s.Ledger.Oxygen = 50, 50
	s.TriggerIncident(IncidentDerelict)
	text, err := s.ResolveDecision(0)
	if err != nil {
		t.Fatalf("ResolveDecision: %v", err)
	}
	if s.Ledger.Fuel != 75 || s.Ledger.Oxygen != 65 {
		t.Fatalf("salvage: fuel %v oxygen %v", s.Ledger.Fuel, s.Ledger.Oxygen)
	}
	if s.Crew.Alive() != len(s.Config.Crew)-1 {
		t.Fatalf("alive = %d, want one lost", s.Crew.Alive())
	}
	if s.LastResult != text || text == "" {
		t.Fatalf("LastResult = %q, result = %q", s.LastResult, text)
	}
}
