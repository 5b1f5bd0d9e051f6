package world

import "math"

// Position is a point on the deck, in deck units.
type Position struct {
	X, Y float64
}

// Dist returns the straight-line distance between two positions.
func (p Position) Dist(o Position) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// Deck holds the station coordinates for each subsystem plus the crew quarters
// where idle crew wait.
type Deck struct {
	Stations [SubsystemCount]Position
	Quarters Position
}

// NewDeck builds a deck from config.
func NewDeck(cfg DeckConfig) *Deck {
	d := &Deck{Quarters: Position{X: cfg.Quarters[0], Y: cfg.Quarters[1]}}
	for key, xy := range cfg.Stations {
		if k, ok := ParseSubsystemKind(key); ok {
			d.Stations[k] = Position{X: xy[0], Y: xy[1]}
		}
	}
	return d
}

// Station returns the station position for a subsystem.
func (d *Deck) Station(k SubsystemKind) Position {
	if k >= SubsystemCount {
		return d.Quarters
	}
	return d.Stations[k]
}

// walker is one crew unit moving across the deck.
type walker struct {
	pos    Position
	target Position
	moving bool
}

// Walker moves crew in straight lines toward their stations. It has no notion
// of walls or paths; arrival is reported once a unit is within the stopping
// distance of its target.
type Walker struct {
	Deck             *Deck
	Speed            float64 // deck units per second
	StoppingDistance float64

	units map[int]*walker
}

// NewWalker creates a walker over the deck.
func NewWalker(deck *Deck, cfg DeckConfig) *Walker {
	return &Walker{
		Deck:             deck,
		Speed:            cfg.Speed,
		StoppingDistance: cfg.StoppingDistance,
		units:            make(map[int]*walker),
	}
}

func (w *Walker) unit(id int) *walker {
	u, ok := w.units[id]
	if !ok {
		u = &walker{pos: w.Deck.Quarters, target: w.Deck.Quarters}
		w.units[id] = u
	}
	return u
}

// MoveTo sends a crew unit toward a subsystem station.
func (w *Walker) MoveTo(id int, k SubsystemKind) {
	u := w.unit(id)
	u.target = w.Deck.Station(k)
	u.moving = true
}

// Recall sends a crew unit back to quarters.
func (w *Walker) Recall(id int) {
	u := w.unit(id)
	u.target = w.Deck.Quarters
	u.moving = true
}

// Arrived reports whether the unit is within stopping distance of its target.
func (w *Walker) Arrived(id int) bool {
	u := w.unit(id)
	return u.pos.Dist(u.target) <= w.StoppingDistance
}

// Forget drops a unit, e.g. after it died.
func (w *Walker) Forget(id int) { delete(w.units, id) }

// PositionOf returns the unit's current deck position.
func (w *Walker) PositionOf(id int) Position { return w.unit(id).pos }

// Step advances every moving unit by dt seconds.
func (w *Walker) Step(dt float64) {
	for _, u := range w.units {
		if !u.moving {
			continue
		}
		d := u.pos.Dist(u.target)
		stepLen := w.Speed * dt
		if d <= w.StoppingDistance || stepLen >= d {
			u.pos = u.target
			u.moving = false
			continue
		}
		u.pos.X += (u.target.X - u.pos.X) / d * stepLen
		u.pos.Y += (u.target.Y - u.pos.Y) / d * stepLen
	}
}
