package game

import (
	"fmt"

	"github.com/spacehole-rogue/shipsim/internal/world"
)

// IncidentKind identifies a negative event that ends in a decision.
type IncidentKind uint8

const (
	IncidentFire IncidentKind = iota
	IncidentAsteroid
	IncidentSystemFailure
	IncidentDerelict
	IncidentGeneratorFailure
	IncidentAsteroidField // scripted, chapter 2
	IncidentKindCount     // sentinel
)

var incidentKeys = [IncidentKindCount]string{
	"fire", "asteroid", "system_failure", "derelict", "generator_failure", "asteroid_field",
}

var incidentTitles = [IncidentKindCount]string{
	"Fire", "Asteroid Strike", "System Failure", "Derelict Contact", "Generator Failure", "Asteroid Field",
}

func (k IncidentKind) String() string {
	if k < IncidentKindCount {
		return incidentTitles[k]
	}
	return "Unknown"
}

// Key returns the config identifier for the kind.
func (k IncidentKind) Key() string {
	if k < IncidentKindCount {
		return incidentKeys[k]
	}
	return ""
}

// ParseIncidentKind maps a config key to a kind.
func ParseIncidentKind(key string) (IncidentKind, bool) {
	for i, k := range incidentKeys {
		if k == key {
			return IncidentKind(i), true
		}
	}
	return IncidentKindCount, false
}

// DecisionOption is one of the two answers to an incident. Effect applies the
// outcome and returns the text reported back to the player.
type DecisionOption struct {
	Label  string
	Effect func() string
}

// Incident is an active event: what it hit and the choice it forces.
type Incident struct {
	Kind    IncidentKind
	Title   string
	Text    string
	Targets []world.SubsystemKind
	Options [2]DecisionOption

	// Onset applies the immediate damage when the incident starts.
	Onset func()
}

// Labels returns the option labels in order.
func (inc *Incident) Labels() []string {
	return []string{inc.Options[0].Label, inc.Options[1].Label}
}

// Incident tuning.
const (
	fireOnsetDamage      = 15.0
	fireVentOxygen       = 20.0
	fireVentPenalty      = 10.0
	asteroidHullDamage   = 20.0
	asteroidEvadeFuel    = 15.0
	asteroidBraceDamage  = 15.0
	failureDamage        = 30.0
	failureRerouteCost   = 20.0
	failureRerouteRepair = 15.0
	failurePatchPenalty  = 10.0
	derelictFuel         = 25.0
	derelictOxygen       = 15.0
	derelictLossChance   = 0.5
	genFailureDamage     = 40.0
	genDivertPenalty     = 20.0
	genDivertRepair      = 20.0
	genReserveCost       = 10.0
	fieldHullDamage      = 35.0
	fieldEngineDamage    = 15.0
	fieldDetourFuel      = 20.0
	fieldDetourDistance  = 150.0
)

// newIncident builds the incident of the given kind against the current ship.
func (s *Sim) newIncident(kind IncidentKind) *Incident {
	inc := &Incident{Kind: kind, Title: kind.String(), Onset: func() {}}
	ship := s.Ship

	switch kind {
	case IncidentFire:
		flam := []world.SubsystemKind{world.Engine, world.Hull}
		t := flam[s.rng.IntN(len(flam))]
		inc.Targets = []world.SubsystemKind{t}
		inc.Text = fmt.Sprintf("A fire has broken out in the %s compartment.", t)
		inc.Onset = func() {
			ship.Damage(t, fireOnsetDamage)
			ship.Ignite(t)
		}
		inc.Options = [2]DecisionOption{
			{Label: "Sacrifice a crew member to seal the compartment", Effect: func() string {
				name := s.sacrificeCrew("sealed in with the fire")
				ship.Extinguish(t)
				if name == "" {
					return "Nobody left to send. The fire burns itself out."
				}
				return fmt.Sprintf("%s seals the hatch from inside. The fire is out.", name)
			}},
			{Label: "Vent the compartment to space", Effect: func() string {
				// Penalty damage can cross the ignition edge; extinguish after it.
				ship.ReduceEfficiency(t, fireVentPenalty)
				ship.Extinguish(t)
				s.Ledger.AddOxygen(-fireVentOxygen)
				return fmt.Sprintf("The %s fire dies in vacuum. -%.0f oxygen.", t, fireVentOxygen)
			}},
		}

	case IncidentAsteroid:
		inc.Targets = []world.SubsystemKind{world.Hull}
		inc.Text = "A rock the size of a shuttle clips the hull. More are coming."
		inc.Onset = func() { ship.Damage(world.Hull, asteroidHullDamage) }
		inc.Options = [2]DecisionOption{
			{Label: "Evasive manoeuvres", Effect: func() string {
				s.Ledger.AddFuel(-asteroidEvadeFuel)
				return fmt.Sprintf("You burn hard and slip past. -%.0f fuel.", asteroidEvadeFuel)
			}},
			{Label: "Brace for impact", Effect: func() string {
				ship.Damage(world.Hull, asteroidBraceDamage)
				ship.ReduceEfficiency(world.Engine, failurePatchPenalty)
				return "The second impact rattles the engine mounts."
			}},
		}

	case IncidentSystemFailure:
		pool := []world.SubsystemKind{world.Engine, world.Hull, world.LifeSupport}
		t := pool[s.rng.IntN(len(pool))]
		inc.Targets = []world.SubsystemKind{t}
		inc.Text = fmt.Sprintf("%s has tripped offline.", t)
		inc.Onset = func() { ship.Damage(t, failureDamage) }
		inc.Options = [2]DecisionOption{
			{Label: "Reroute power from the generator", Effect: func() string {
				ship.Damage(world.Generator, failureRerouteCost)
				ship.Repair(t, failureRerouteRepair)
				return fmt.Sprintf("%s comes back on generator power.", t)
			}},
			{Label: "Leave it for the repair crews", Effect: func() string {
				ship.ReduceEfficiency(t, failurePatchPenalty)
				return fmt.Sprintf("%s limps along at reduced output.", t)
			}},
		}

	case IncidentDerelict:
		inc.Text = "Sensors pick up a drifting hulk. Its tanks may still hold something."
		inc.Options = [2]DecisionOption{
			{Label: "Send a boarding party", Effect: func() string {
				s.Ledger.AddFuel(derelictFuel)
				s.Ledger.AddOxygen(derelictOxygen)
				msg := fmt.Sprintf("Salvage recovered: +%.0f fuel, +%.0f oxygen.", derelictFuel, derelictOxygen)
				if s.rng.Float64() < derelictLossChance {
					if name := s.sacrificeCrew("lost aboard the derelict"); name != "" {
						msg += fmt.Sprintf(" %s did not come back.", name)
					}
				}
				return msg
			}},
			{Label: "Keep flying", Effect: func() string {
				return "The hulk tumbles away into the dark."
			}},
		}

	case IncidentGeneratorFailure:
		inc.Targets = []world.SubsystemKind{world.Generator}
		inc.Text = "The generator surges and drops to a whine."
		inc.Onset = func() { ship.Damage(world.Generator, genFailureDamage) }
		inc.Options = [2]DecisionOption{
			{Label: "Divert power from life support", Effect: func() string {
				ship.ReduceEfficiency(world.LifeSupport, genDivertPenalty)
				ship.Repair(world.Generator, genDivertRepair)
				return "The generator steadies. Life support runs thin."
			}},
			{Label: "Run on reserves", Effect: func() string {
				s.Ledger.AddOxygen(-genReserveCost)
				s.Ledger.AddFuel(-genReserveCost)
				return fmt.Sprintf("Reserves drained: -%.0f oxygen, -%.0f fuel.", genReserveCost, genReserveCost)
			}},
		}

	case IncidentAsteroidField:
		inc.Targets = []world.SubsystemKind{world.Hull, world.Engine}
		inc.Text = "A dense asteroid field lies across the course."
		inc.Options = [2]DecisionOption{
			{Label: "Thread the field", Effect: func() string {
				ship.Damage(world.Hull, fieldHullDamage)
				ship.Damage(world.Engine, fieldEngineDamage)
				return "You make it through. The hull is a mess."
			}},
			{Label: "Go around", Effect: func() string {
				s.Ledger.AddFuel(-fieldDetourFuel)
				s.Ledger.AddDistance(fieldDetourDistance)
				return fmt.Sprintf("The detour costs %.0f fuel and adds %.0f to the trip.", fieldDetourFuel, fieldDetourDistance)
			}},
		}
	}
	return inc
}
