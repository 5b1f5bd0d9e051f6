package game

import "github.com/spacehole-rogue/shipsim/internal/world"

// Resource caps.
const (
	MaxOxygen = 100.0
	MaxFuel   = 100.0
)

// OutcomeKind is the terminal state of a session.
type OutcomeKind uint8

const (
	OutcomeNone OutcomeKind = iota
	OutcomeDefeat
	OutcomeVictory
)

// Outcome is the terminal result reported once by the ledger.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
}

func (o Outcome) Over() bool    { return o.Kind != OutcomeNone }
func (o Outcome) Victory() bool { return o.Kind == OutcomeVictory }

// Ledger tracks oxygen, fuel and remaining distance. Each level is clamped to
// its range and the first one to reach zero settles the outcome.
type Ledger struct {
	Oxygen      float64
	Fuel        float64
	Distance    float64
	DistanceMax float64

	outcome Outcome
}

// NewLedger creates a ledger with the configured starting levels.
func NewLedger(cfg world.ResourceConfig) *Ledger {
	return &Ledger{
		Oxygen:      min(cfg.Oxygen, MaxOxygen),
		Fuel:        min(cfg.Fuel, MaxFuel),
		Distance:    cfg.Distance,
		DistanceMax: cfg.Distance,
	}
}

// Outcome returns the settled outcome, if any.
func (l *Ledger) Outcome() Outcome { return l.outcome }

// Tick depletes resources for dt seconds at the given efficiencies. Oxygen
// drains faster as life support degrades, fuel as the engine degrades, while
// distance covered grows with engine efficiency. It returns the outcome the
// first time one is reached and a zero Outcome otherwise.
func (l *Ledger) Tick(dt, lifeSupportEff, engineEff float64) Outcome {
	if l.outcome.Over() || dt <= 0 {
		return Outcome{}
	}
	lifeSupportEff = max(lifeSupportEff, world.MinEfficiency)
	engineEff = max(engineEff, world.MinEfficiency)

	l.Oxygen = clampRange(l.Oxygen-dt/lifeSupportEff, 0, MaxOxygen)
	l.Fuel = clampRange(l.Fuel-dt*0.5/engineEff, 0, MaxFuel)
	l.Distance = clampRange(l.Distance-dt*10*engineEff, 0, l.DistanceMax)
	return l.settle()
}

// AddOxygen adjusts oxygen by delta, clamped.
func (l *Ledger) AddOxygen(delta float64) Outcome {
	l.Oxygen = clampRange(l.Oxygen+delta, 0, MaxOxygen)
	return l.settle()
}

// AddFuel adjusts fuel by delta, clamped.
func (l *Ledger) AddFuel(delta float64) Outcome {
	l.Fuel = clampRange(l.Fuel+delta, 0, MaxFuel)
	return l.settle()
}

// AddDistance adjusts remaining distance by delta, clamped.
func (l *Ledger) AddDistance(delta float64) Outcome {
	l.Distance = clampRange(l.Distance+delta, 0, l.DistanceMax)
	return l.settle()
}

// settle latches the first terminal threshold, checked oxygen, fuel, distance.
func (l *Ledger) settle() Outcome {
	if l.outcome.Over() {
		return Outcome{}
	}
	switch {
	case l.Oxygen <= 0:
		l.outcome = Outcome{Kind: OutcomeDefeat, Reason: "oxygen depleted"}
	case l.Fuel <= 0:
		l.outcome = Outcome{Kind: OutcomeDefeat, Reason: "fuel exhausted"}
	case l.Distance <= 0:
		l.outcome = Outcome{Kind: OutcomeVictory, Reason: "destination reached"}
	default:
		return Outcome{}
	}
	return l.outcome
}

func (l *Ledger) OxygenPct() int   { return int(l.Oxygen * 100 / MaxOxygen) }
func (l *Ledger) FuelPct() int     { return int(l.Fuel * 100 / MaxFuel) }
func (l *Ledger) ProgressPct() int { return int((l.DistanceMax - l.Distance) * 100 / l.DistanceMax) }

func clampRange(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
