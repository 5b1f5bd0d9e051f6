package game

import (
	"errors"
	"testing"

	"github.com/spacehole-rogue/shipsim/internal/world"
)

func TestDispatchDebugGate(t *testing.T) {
	s := NewSim(quietConfig(), Options{Random: &stubRandom{}, Logger: discardLogger()})
	cases := []struct {
		name string
		cmd  Command
		want error
	}{
		{"trigger refused", TriggerIncident(IncidentFire), ErrDebugDisabled},
		{"advance refused", AdvanceChapter(4), ErrDebugDisabled},
		{"resolve allowed", ResolveDecision(1), nil},
		{"assign allowed", AssignCrew(1, world.Generator), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := s.Dispatch(tc.cmd); !errors.Is(err, tc.want) {
				t.Fatalf("Dispatch(%s) = %v, want %v", tc.cmd.Kind, err, tc.want)
			}
		})
	}
	if s.Chapters.Number() != 2 {
		t.Fatalf("refused advance changed chapter to %d", s.Chapters.Number())
	}
}

func TestDispatchDebugSession(t *testing.T) {
	s := newIdleSim(nil, nil)
	if err := s.Dispatch(AdvanceChapter(4)); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := s.Dispatch(TriggerIncident(IncidentGeneratorFailure)); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	if got := s.Status().Decision; got == nil || got.Title != "Generator Failure" || len(got.Options) != 2 {
		t.Fatalf("decision status = %+v", got)
	}
	if err := s.Dispatch(TriggerIncident(IncidentKindCount)); err == nil {
		t.Fatal("unknown incident accepted")
	}
}

func TestSessionEndsOnce(t *testing.T) {
	rec := newRecorder()
	s := newIdleSim(nil, rec)
	s.Ledger.Oxygen = 0.5

	tick(s, 5, 1)
	if len(rec.outcomes) != 1 {
		t.Fatalf("outcome reported %d times, want 1", len(rec.outcomes))
	}
	if o := s.Outcome(); o.Kind != OutcomeDefeat || o.Reason != "oxygen depleted" {
		t.Fatalf("outcome = %+v", o)
	}
	ticks := s.Ticks
	tick(s, 5, 1)
	if s.Ticks != ticks {
		t.Fatal("ticks advanced after the session ended")
	}
	if err := s.AssignCrew(1, world.Engine); !errors.Is(err, ErrSessionOver) {
		t.Fatalf("AssignCrew after the end = %v", err)
	}
	if _, err := s.ResolveDecision(0); !errors.Is(err, ErrSessionOver) {
		t.Fatalf("ResolveDecision after the end = %v", err)
	}
}

func TestDecisionCanEndSession(t *testing.T) {
	rec := newRecorder()
	s := newIdleSim(nil, rec)
	s.Ledger.Fuel = 10
	s.TriggerIncident(IncidentAsteroid)
	if _, err := s.ResolveDecision(0); err != nil {
		t.Fatalf("ResolveDecision: %v", err)
	}
	if o := s.Outcome(); o.Reason != "fuel exhausted" || len(rec.outcomes) != 1 {
		t.Fatalf("outcome = %+v, reported %d times", o, len(rec.outcomes))
	}
}

func TestAssignCrewThroughSim(t *testing.T) {
	rec := newRecorder()
	s := newIdleSim(nil, rec)
	s.Ship.Damage(world.LifeSupport, 30)

	ids := s.Crew.IDs()
	if err := s.AssignCrew(ids[0], world.LifeSupport); err != nil {
		t.Fatalf("AssignCrew: %v", err)
	}
	if err := s.AssignCrew(ids[1], world.LifeSupport); !errors.Is(err, ErrSubsystemStaffed) {
		t.Fatalf("second repairer = %v", err)
	}
	if len(rec.diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want one for the refusal", rec.diagnostics)
	}

	tick(s, 5, 1)
	st := s.Status()
	if st.Subsystems[world.LifeSupport].Health != 80 {
		t.Fatalf("life support = %v, want 80", st.Subsystems[world.LifeSupport].Health)
	}
	if st.Crew[0].State != TaskIdle || st.Crew[0].Name != "Okafor" {
		t.Fatalf("crew status = %+v", st.Crew[0])
	}
	if st.Chapter != 3 || st.Alive != 4 || st.Tick != 5 {
		t.Fatalf("status = chapter %d alive %d tick %d", st.Chapter, st.Alive, st.Tick)
	}
	if rec.progressCalls == 0 {
		t.Fatal("no repair progress reported")
	}
}

func TestRetuneKeepsState(t *testing.T) {
	s := newIdleSim(nil, nil)
	s.Ship.Damage(world.Hull, 10)
	cfg := quietConfig()
	cfg.Repair.DeathRate = 0.7
	cfg.Fire.GrowthRate = 3
	s.Retune(cfg)

	if s.Repairs.DeathRate() != 0.7 {
		t.Fatalf("death rate = %v", s.Repairs.DeathRate())
	}
	if got := s.Ship.Get(world.Hull).Health(); got != 90 {
		t.Fatalf("retune touched hull health: %v", got)
	}
	if s.Chapters.Number() != 3 {
		t.Fatalf("retune changed chapter to %d", s.Chapters.Number())
	}
}

func TestGeneratorCouplingFeedsLedger(t *testing.T) {
	s := newIdleSim(nil, nil)
	want := s.Ledger.Oxygen - 1
	s.Tick(1)
	if !near(s.Ledger.Oxygen, want) {
		t.Fatalf("oxygen = %v, want %v with a healthy generator", s.Ledger.Oxygen, want)
	}

	s.Ship.Damage(world.Generator, 90)
	if !s.Ship.Get(world.Generator).BelowThreshold() {
		t.Fatal("generator not critical at 10/100")
	}
	if got := s.Ship.LifeSupportOutput(); got != 0.5 {
		t.Fatalf("life support output = %v, want 0.5 with a critical generator", got)
	}
	want = s.Ledger.Oxygen - 2
	s.Tick(1)
	if !near(s.Ledger.Oxygen, want) {
		t.Fatalf("oxygen = %v, want %v", s.Ledger.Oxygen, want)
	}
}
