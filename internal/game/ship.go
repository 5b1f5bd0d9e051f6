package game

import "github.com/spacehole-rogue/shipsim/internal/world"

// Ship owns the subsystem set and is the only path that mutates it, so every
// threshold crossing turns into exactly one notification.
type Ship struct {
	Name       string
	Subsystems [world.SubsystemCount]*world.Subsystem

	present         Presenter
	igniteIntensity float64
}

// NewShip builds the ship described by cfg.
func NewShip(cfg *world.ShipConfig, p Presenter) *Ship {
	if p == nil {
		p = NopPresenter{}
	}
	return &Ship{
		Name:            cfg.Name,
		Subsystems:      cfg.NewSubsystems(),
		present:         p,
		igniteIntensity: cfg.Fire.InitialIntensity,
	}
}

// Get returns the subsystem of kind k, or nil for an unknown kind.
func (s *Ship) Get(k world.SubsystemKind) *world.Subsystem {
	if k >= world.SubsystemCount {
		return nil
	}
	return s.Subsystems[k]
}

// Damage lowers a subsystem's health. Falling below the threshold ignites a
// flammable subsystem or puts any other into its critical state.
func (s *Ship) Damage(k world.SubsystemKind, amount float64) {
	sub := s.Get(k)
	if sub == nil || amount <= 0 {
		return
	}
	edge := sub.Damage(amount)
	s.present.HealthChanged(k, sub.Health())
	s.applyEdge(sub, edge)
}

// ReduceEfficiency applies a lasting penalty of percent of max health.
func (s *Ship) ReduceEfficiency(k world.SubsystemKind, percent float64) {
	if sub := s.Get(k); sub != nil {
		s.Damage(k, percent/100*sub.MaxHealth())
	}
}

// Repair raises a subsystem's health. Reaching full health puts out its fire.
func (s *Ship) Repair(k world.SubsystemKind, amount float64) {
	sub := s.Get(k)
	if sub == nil || amount <= 0 {
		return
	}
	edge := sub.Repair(amount)
	s.present.HealthChanged(k, sub.Health())
	s.applyEdge(sub, edge)
}

// Ignite sets a flammable subsystem burning. Returns false if it could not.
func (s *Ship) Ignite(k world.SubsystemKind) bool {
	sub := s.Get(k)
	if sub == nil || !sub.Ignite(s.igniteIntensity) {
		return false
	}
	s.present.FireStarted(k)
	return true
}

// Extinguish puts out a fire without repairing the subsystem.
func (s *Ship) Extinguish(k world.SubsystemKind) bool {
	sub := s.Get(k)
	if sub == nil || !sub.Extinguish() {
		return false
	}
	s.present.FireStopped(k)
	return true
}

func (s *Ship) applyEdge(sub *world.Subsystem, edge world.Edge) {
	k := sub.Kind()
	switch {
	case edge.Has(world.EdgeFell) && sub.IsFlammable():
		s.Ignite(k)
	case edge.Has(world.EdgeFell):
		s.present.CriticalEntered(k)
	case edge.Has(world.EdgeRose) && !sub.IsFlammable():
		s.present.CriticalExited(k)
	}
	if edge.Has(world.EdgeExtinguished) {
		s.present.FireStopped(k)
	}
	// A burnt-out subsystem has nothing left to burn.
	if sub.Health() <= 0 && sub.IsOnFire() {
		s.Extinguish(k)
	}
}

// AllFull reports whether every listed subsystem is at max health.
func (s *Ship) AllFull(kinds ...world.SubsystemKind) bool {
	for _, k := range kinds {
		if sub := s.Get(k); sub == nil || !sub.IsFull() {
			return false
		}
	}
	return true
}

// Burning returns the kinds currently on fire.
func (s *Ship) Burning() []world.SubsystemKind {
	var out []world.SubsystemKind
	for _, sub := range s.Subsystems {
		if sub.IsOnFire() {
			out = append(out, sub.Kind())
		}
	}
	return out
}

// Flammables returns the flammable subsystems.
func (s *Ship) Flammables() []world.Flammable {
	var out []world.Flammable
	for _, sub := range s.Subsystems {
		if sub.IsFlammable() {
			out = append(out, sub)
		}
	}
	return out
}

// LifeSupportOutput is the life-support efficiency fed to the ledger. The
// generator scales it; a critical generator halves it.
func (s *Ship) LifeSupportOutput() float64 {
	gen := s.Subsystems[world.Generator]
	g := gen.Efficiency()
	if gen.BelowThreshold() {
		g = 0.5
	}
	out := s.Subsystems[world.LifeSupport].Efficiency() * g
	return min(max(out, world.MinEfficiency), world.MaxGeneratorBoost)
}

// EngineOutput is the engine efficiency fed to the ledger.
func (s *Ship) EngineOutput() float64 {
	return s.Subsystems[world.Engine].Efficiency()
}
