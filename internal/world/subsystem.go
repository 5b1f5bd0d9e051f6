package world

// SubsystemKind identifies one of the ship's repairable subsystems.
type SubsystemKind uint8

const (
	Engine SubsystemKind = iota
	Hull
	LifeSupport
	Generator
	SubsystemCount // sentinel
)

// Efficiency bounds.
const (
	MinEfficiency       = 0.1
	MaxGeneratorBoost   = 2.0
	MaxFireIntensity    = 10.0
	defaultMaxHealth    = 100.0
	fullHealthTolerance = 1e-9
)

// Edge reports the threshold crossings caused by a single Damage or Repair call.
type Edge uint8

const (
	EdgeNone Edge = 0
	// EdgeFell is set when health dropped below the subsystem threshold.
	EdgeFell Edge = 1 << iota
	// EdgeRose is set when health climbed back to or above the threshold.
	EdgeRose
	// EdgeFull is set when health reached max health.
	EdgeFull
	// EdgeExtinguished is set when the repair that reached max health put out a fire.
	EdgeExtinguished
	// EdgeDepleted is set when health reached zero.
	EdgeDepleted
)

// Has reports whether e contains all bits of flag.
func (e Edge) Has(flag Edge) bool { return e&flag == flag && flag != 0 }

// Flammable is implemented by subsystems that can burn.
type Flammable interface {
	Kind() SubsystemKind
	IsOnFire() bool
	Intensity() float64
	// Ignite sets the subsystem burning and returns true if it was not already.
	Ignite(intensity float64) bool
	// Extinguish puts out the fire and returns true if one was burning.
	Extinguish() bool
	// Stoke raises intensity by delta, clamped to MaxFireIntensity.
	Stoke(delta float64)
}

// Subsystem is the health and efficiency state of one ship subsystem.
// All mutation goes through Damage, Repair and ReduceEfficiency so that
// health stays within [0, MaxHealth].
type Subsystem struct {
	kind      SubsystemKind
	health    float64
	maxHealth float64

	// threshold is the fraction of maxHealth below which the subsystem is past
	// its edge (fire ignition for Engine/Hull, critical state for Generator).
	// Zero disables edge tracking.
	threshold float64
	below     bool

	flammable bool
	onFire    bool
	intensity float64

	// crewBoost is the summed efficiency of crew currently working the subsystem.
	// Only the Generator turns it into output above baseline.
	crewBoost float64
}

// NewSubsystem creates a subsystem at full health.
func NewSubsystem(kind SubsystemKind, maxHealth, threshold float64) *Subsystem {
	if maxHealth <= 0 {
		maxHealth = defaultMaxHealth
	}
	return &Subsystem{
		kind:      kind,
		health:    maxHealth,
		maxHealth: maxHealth,
		threshold: clamp(threshold, 0, 1),
		flammable: kind == Engine || kind == Hull,
	}
}

func (s *Subsystem) Kind() SubsystemKind { return s.kind }
func (s *Subsystem) Health() float64     { return s.health }
func (s *Subsystem) MaxHealth() float64  { return s.maxHealth }
func (s *Subsystem) Threshold() float64  { return s.threshold }
func (s *Subsystem) IsFlammable() bool   { return s.flammable }

// BelowThreshold reports whether the subsystem is latched below its threshold.
func (s *Subsystem) BelowThreshold() bool { return s.below }

// IsFull reports whether health is at max.
func (s *Subsystem) IsFull() bool { return s.health >= s.maxHealth-fullHealthTolerance }

// Fraction returns health/maxHealth.
func (s *Subsystem) Fraction() float64 { return s.health / s.maxHealth }

// Damage lowers health by amount. Negative amounts are ignored.
func (s *Subsystem) Damage(amount float64) Edge {
	if amount <= 0 {
		return EdgeNone
	}
	before := s.health
	s.health = clamp(s.health-amount, 0, s.maxHealth)

	var edge Edge
	if s.threshold > 0 && !s.below && s.health < s.threshold*s.maxHealth {
		s.below = true
		edge |= EdgeFell
	}
	if before > 0 && s.health == 0 {
		edge |= EdgeDepleted
	}
	return edge
}

// Repair raises health by amount. Reaching max health extinguishes any fire.
func (s *Subsystem) Repair(amount float64) Edge {
	if amount <= 0 {
		return EdgeNone
	}
	wasFull := s.IsFull()
	s.health = clamp(s.health+amount, 0, s.maxHealth)

	var edge Edge
	if s.below && s.health >= s.threshold*s.maxHealth {
		s.below = false
		edge |= EdgeRose
	}
	if s.IsFull() {
		s.health = s.maxHealth
		if !wasFull {
			edge |= EdgeFull
		}
		if s.Extinguish() {
			edge |= EdgeExtinguished
		}
	}
	return edge
}

// ReduceEfficiency applies a lasting penalty expressed as a percent of max health.
func (s *Subsystem) ReduceEfficiency(percent float64) Edge {
	return s.Damage(percent / 100 * s.maxHealth)
}

// Efficiency returns the output multiplier derived from health.
// Engine, Hull and LifeSupport scale down with damage and never drop below
// MinEfficiency. The Generator sits at 1.0 and is boosted by the crew working it.
func (s *Subsystem) Efficiency() float64 {
	if s.kind == Generator {
		return clamp(1.0+s.crewBoost, 0, MaxGeneratorBoost)
	}
	return clamp(s.health/s.maxHealth, MinEfficiency, 1.0)
}

// SetCrewBoost records the summed efficiency of crew working this subsystem.
func (s *Subsystem) SetCrewBoost(total float64) { s.crewBoost = max(total, 0) }

// CrewBoost returns the last value passed to SetCrewBoost.
func (s *Subsystem) CrewBoost() float64 { return s.crewBoost }

func (s *Subsystem) IsOnFire() bool     { return s.onFire }
func (s *Subsystem) Intensity() float64 { return s.intensity }

func (s *Subsystem) Ignite(intensity float64) bool {
	if !s.flammable || s.onFire || s.health <= 0 {
		return false
	}
	s.onFire = true
	s.intensity = clamp(intensity, 0, MaxFireIntensity)
	return true
}

func (s *Subsystem) Extinguish() bool {
	if !s.onFire {
		return false
	}
	s.onFire = false
	s.intensity = 0
	return true
}

func (s *Subsystem) Stoke(delta float64) {
	if !s.onFire {
		return
	}
	s.intensity = clamp(s.intensity+delta, 0, MaxFireIntensity)
}

// Name returns the human-readable name for this subsystem.
func (s *Subsystem) Name() string { return s.kind.String() }

// SinglePosted reports whether the subsystem takes at most one repairer.
func (k SubsystemKind) SinglePosted() bool { return k != Generator }

func (k SubsystemKind) String() string {
	if n, ok := subsystemNames[k]; ok {
		return n
	}
	return "Unknown"
}

// Key returns the config/script identifier for the kind.
func (k SubsystemKind) Key() string {
	if n, ok := subsystemKeys[k]; ok {
		return n
	}
	return ""
}

// ParseSubsystemKind maps a config/script key to a kind.
func ParseSubsystemKind(key string) (SubsystemKind, bool) {
	for k, n := range subsystemKeys {
		if n == key {
			return k, true
		}
	}
	return SubsystemCount, false
}

var subsystemNames = map[SubsystemKind]string{
	Engine:      "Engine",
	Hull:        "Hull",
	LifeSupport: "Life Support",
	Generator:   "Generator",
}

var subsystemKeys = map[SubsystemKind]string{
	Engine:      "engine",
	Hull:        "hull",
	LifeSupport: "life_support",
	Generator:   "generator",
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
