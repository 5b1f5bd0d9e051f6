package game

import (
	"io"
	"log/slog"

	"github.com/spacehole-rogue/shipsim/internal/world"
)

// stubRandom replays scripted values, then repeats the fallbacks.
type stubRandom struct {
	floats   []float64
	ints     []int
	float    float64
	int      int
	floatsAt int
	intsAt   int
}

func (r *stubRandom) Float64() float64 {
	if r.floatsAt < len(r.floats) {
		v := r.floats[r.floatsAt]
		r.floatsAt++
		return v
	}
	return r.float
}

func (r *stubRandom) IntN(n int) int {
	v := r.int
	if r.intsAt < len(r.ints) {
		v = r.ints[r.intsAt]
		r.intsAt++
	}
	if v >= n {
		v = n - 1
	}
	return v
}

// recorder counts presenter notifications.
type recorder struct {
	NopPresenter
	fireStarted   map[world.SubsystemKind]int
	fireStopped   map[world.SubsystemKind]int
	critEntered   map[world.SubsystemKind]int
	critExited    map[world.SubsystemKind]int
	opened        []string
	diagnostics   []string
	outcomes      []Outcome
	progressCalls int
}

func newRecorder() *recorder {
	return &recorder{
		fireStarted: map[world.SubsystemKind]int{},
		fireStopped: map[world.SubsystemKind]int{},
		critEntered: map[world.SubsystemKind]int{},
		critExited:  map[world.SubsystemKind]int{},
	}
}

func (r *recorder) FireStarted(k world.SubsystemKind)     { r.fireStarted[k]++ }
func (r *recorder) FireStopped(k world.SubsystemKind)     { r.fireStopped[k]++ }
func (r *recorder) CriticalEntered(k world.SubsystemKind) { r.critEntered[k]++ }
func (r *recorder) CriticalExited(k world.SubsystemKind)  { r.critExited[k]++ }
func (r *recorder) IncidentOpened(title, _ string, _ []string) {
	r.opened = append(r.opened, title)
}
func (r *recorder) Diagnostic(text string) { r.diagnostics = append(r.diagnostics, text) }
func (r *recorder) Outcome(o Outcome)      { r.outcomes = append(r.outcomes, o) }
func (r *recorder) RepairProgress(CrewID, world.SubsystemKind, float64) {
	r.progressCalls++
}

// quietConfig is the stock ship with no deaths, no scripted chapter damage and
// no barriers: a session that starts idle in chapter 1.
func quietConfig() *world.ShipConfig {
	cfg := world.DefaultShipConfig()
	cfg.Repair.DeathRate = 0
	cfg.Scheduler = world.SchedulerConfig{MinInterval: 1000, MaxInterval: 1000}
	for i := range cfg.Chapters {
		cfg.Chapters[i].InitialDamage = nil
		cfg.Chapters[i].Barrier = false
		cfg.Chapters[i].Script = ""
	}
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSim(cfg *world.ShipConfig, rng Random, p Presenter) *Sim {
	if rng == nil {
		rng = &stubRandom{float: 0.5}
	}
	return NewSim(cfg, Options{Random: rng, Presenter: p, Logger: discardLogger(), Debug: true})
}

func tick(s *Sim, n int, dt float64) {
	for i := 0; i < n; i++ {
		s.Tick(dt)
	}
}

// newIdleSim returns a quiet session parked in chapter 3 with a full ship and
// full tanks. Chapter 2's scripted decision is taken and its cost refunded.
func newIdleSim(rng Random, p Presenter) *Sim {
	s := newTestSim(quietConfig(), rng, p)
	if _, err := s.ResolveDecision(1); err != nil {
		panic(err)
	}
	s.Chapters.Step(0)
	s.Ledger.Fuel = MaxFuel
	s.Ledger.Distance = s.Ledger.DistanceMax
	return s
}
