package session

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spacehole-rogue/shipsim/internal/config"
	"github.com/spacehole-rogue/shipsim/internal/render"
	"github.com/spacehole-rogue/shipsim/internal/world"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newSession(t *testing.T, env config.Env) *Session {
	t.Helper()
	s, err := New(env, nil, nil, render.HUDMinCols, render.HUDMinRows, quietLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewRejectsSmallGrid(t *testing.T) {
	if _, err := New(config.Env{}, nil, nil, 40, 20, quietLogger()); err == nil {
		t.Fatal("small grid accepted")
	}
}

func TestInputAssignsAndQuits(t *testing.T) {
	s := newSession(t, config.Env{DeathRate: 0, Seed: 3})
	if !s.Input(render.InputEngine) {
		t.Fatal("engine key quit the session")
	}
	st := s.Sim.Status()
	if st.Crew[0].Target != world.Engine {
		t.Fatalf("crew 0 = %+v, want heading to the engine", st.Crew[0])
	}
	if s.Input(render.InputQuit) {
		t.Fatal("quit key did not quit")
	}
}

func TestStepMovesCrew(t *testing.T) {
	s := newSession(t, config.Env{DeathRate: 0, Seed: 3})
	s.Input(render.InputEngine)
	id := s.Sim.Status().Crew[0].ID
	start := s.Walker.PositionOf(int(id))
	for range 10 {
		s.Step(0.1)
	}
	if s.Walker.PositionOf(int(id)) == start {
		t.Fatal("crew did not move toward the engine")
	}
	if s.Sim.Ticks != 10 {
		t.Fatalf("ticks = %d, want 10", s.Sim.Ticks)
	}
}

func TestFrameDrawsHUD(t *testing.T) {
	s := newSession(t, config.Env{DeathRate: -1})
	buf := s.Frame()
	if !strings.Contains(buf.Text(0), "Nomad") {
		t.Fatalf("title row = %q", buf.Text(0))
	}
}

func TestReloadRetunes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ship.yaml")
	if err := os.WriteFile(path, []byte("name: Heron\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newSession(t, config.Env{ConfigPath: path, DeathRate: -1})
	if s.Sim.Repairs.DeathRate() != 0.2 {
		t.Fatalf("death rate = %v", s.Sim.Repairs.DeathRate())
	}

	if err := os.WriteFile(path, []byte("name: Heron\nrepair:\n  death_rate: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s.Reload(filepath.Join(dir, "other.yaml"))
	if s.Sim.Repairs.DeathRate() != 0.2 {
		t.Fatal("reload applied a file that is not the ship config")
	}
	s.Reload(path)
	if s.Sim.Repairs.DeathRate() != 0.5 {
		t.Fatalf("death rate after reload = %v, want 0.5", s.Sim.Repairs.DeathRate())
	}

	if err := os.WriteFile(path, []byte("repair: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	s.Reload(path)
	if s.Sim.Repairs.DeathRate() != 0.5 {
		t.Fatal("failed reload changed the tuning")
	}
}

func TestSelectionFollowsControls(t *testing.T) {
	s := newSession(t, config.Env{DeathRate: 0})
	first := s.Selection()
	if first.X1 <= first.X0 {
		t.Fatalf("selection = %+v, want the first crew row", first)
	}
	s.Input(render.InputNextCrew)
	if next := s.Selection(); next.Y != first.Y+1 {
		t.Fatalf("selection row = %d after tab, want %d", next.Y, first.Y+1)
	}
}
