package game

import "github.com/spacehole-rogue/shipsim/internal/world"

// DefaultAdjacency lists which flammable subsystems a fire can jump to.
var DefaultAdjacency = map[world.SubsystemKind][]world.SubsystemKind{
	world.Engine: {world.Hull},
	world.Hull:   {world.Engine},
}

// FireModel grows fires, burns their hosts and spreads them to adjacent
// flammable subsystems on a random interval.
type FireModel struct {
	ship      *Ship
	rng       Random
	cfg       world.FireConfig
	adjacency map[world.SubsystemKind][]world.SubsystemKind

	// timers holds the seconds left until the next spread check, per burning source.
	timers map[world.SubsystemKind]float64

	// SpreadChance maps source intensity to ignition probability per adjacent
	// target per interval. Replaceable for tuning and tests.
	SpreadChance func(intensity float64) float64
}

// NewFireModel creates a fire model over ship.
func NewFireModel(ship *Ship, rng Random, cfg world.FireConfig) *FireModel {
	return &FireModel{
		ship:         ship,
		rng:          rng,
		cfg:          cfg,
		adjacency:    DefaultAdjacency,
		timers:       make(map[world.SubsystemKind]float64),
		SpreadChance: DefaultSpreadChance,
	}
}

// DefaultSpreadChance is clamp(intensity*0.05, 0.1, 0.8).
func DefaultSpreadChance(intensity float64) float64 {
	return min(max(intensity*0.05, 0.1), 0.8)
}

// Retune swaps the growth and spread tuning.
func (f *FireModel) Retune(cfg world.FireConfig) { f.cfg = cfg }

// Step advances every fire by dt seconds.
func (f *FireModel) Step(dt float64) {
	for _, fl := range f.ship.Flammables() {
		k := fl.Kind()
		if !fl.IsOnFire() {
			delete(f.timers, k)
			continue
		}

		fl.Stoke(f.cfg.GrowthRate * dt)
		f.ship.Damage(k, fl.Intensity()*dt)
		if !fl.IsOnFire() {
			delete(f.timers, k)
			continue
		}

		left, ok := f.timers[k]
		if !ok {
			left = f.nextInterval()
		}
		left -= dt
		if left <= 0 {
			f.spread(fl)
			left = f.nextInterval()
		}
		f.timers[k] = left
	}
}

// Armed reports whether a spread timer is running for k.
func (f *FireModel) Armed(k world.SubsystemKind) bool {
	_, ok := f.timers[k]
	return ok
}

// spread rolls independently for each adjacent target that is not yet burning.
func (f *FireModel) spread(src world.Flammable) {
	chance := f.SpreadChance(src.Intensity())
	for _, k := range f.adjacency[src.Kind()] {
		target := f.ship.Get(k)
		if target == nil || target.IsOnFire() {
			continue
		}
		if f.rng.Float64() < chance {
			f.ship.Ignite(k)
		}
	}
}

func (f *FireModel) nextInterval() float64 {
	return uniform(f.rng, f.cfg.SpreadMin, f.cfg.SpreadMax)
}
