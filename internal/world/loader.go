package world

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ShipConfig is the YAML definition of a ship and its scenario tuning.
type ShipConfig struct {
	Name       string                     `yaml:"name"`
	Subsystems map[string]SubsystemConfig `yaml:"subsystems"`
	Resources  ResourceConfig             `yaml:"resources"`
	Fire       FireConfig                 `yaml:"fire"`
	Repair     RepairConfig               `yaml:"repair"`
	Scheduler  SchedulerConfig            `yaml:"scheduler"`
	Crew       []CrewConfig               `yaml:"crew"`
	Chapters   []ChapterConfig            `yaml:"chapters"`
	Deck       DeckConfig                 `yaml:"deck"`
}

// SubsystemConfig sets the size and edge threshold of one subsystem.
type SubsystemConfig struct {
	MaxHealth float64 `yaml:"max_health"`
	Threshold float64 `yaml:"threshold"`
}

// ResourceConfig holds starting resource levels.
type ResourceConfig struct {
	Oxygen   float64 `yaml:"oxygen"`
	Fuel     float64 `yaml:"fuel"`
	Distance float64 `yaml:"distance"`
}

// FireConfig tunes fire growth and spread.
type FireConfig struct {
	InitialIntensity float64 `yaml:"initial_intensity"`
	GrowthRate       float64 `yaml:"growth_rate"` // intensity per second
	SpreadMin        float64 `yaml:"spread_min"`  // seconds
	SpreadMax        float64 `yaml:"spread_max"`
}

// RepairConfig tunes crew repair tasks.
type RepairConfig struct {
	Duration  float64 `yaml:"duration"`   // nominal seconds at efficiency 1
	Amount    float64 `yaml:"amount"`     // health restored per unit efficiency
	DeathRate float64 `yaml:"death_rate"` // per-second death chance, rolled every tick as rate*dt
}

// SchedulerConfig bounds the random wait between incidents.
type SchedulerConfig struct {
	MinInterval float64 `yaml:"min_interval"`
	MaxInterval float64 `yaml:"max_interval"`
}

// CrewConfig describes one starting crew unit.
type CrewConfig struct {
	Name       string  `yaml:"name"`
	Efficiency float64 `yaml:"efficiency"`
}

// ChapterConfig describes one chapter of the scenario.
type ChapterConfig struct {
	Number        int                `yaml:"number"`
	Title         string             `yaml:"title"`
	InitialDamage map[string]float64 `yaml:"initial_damage"`
	Incidents     []string           `yaml:"incidents"`
	Barrier       bool               `yaml:"barrier"`
	Script        string             `yaml:"script"`
}

// DeckConfig places subsystem stations on the deck for the walker.
type DeckConfig struct {
	Speed            float64               `yaml:"speed"`
	StoppingDistance float64               `yaml:"stopping_distance"`
	Stations         map[string][2]float64 `yaml:"stations"`
	Quarters         [2]float64            `yaml:"quarters"`
}

// DefaultShipConfig returns the stock scenario.
func DefaultShipConfig() *ShipConfig {
	return &ShipConfig{
		Name: "Nomad",
		Subsystems: map[string]SubsystemConfig{
			"engine":       {MaxHealth: 100, Threshold: 0.5},
			"hull":         {MaxHealth: 100, Threshold: 0.5},
			"life_support": {MaxHealth: 100},
			"generator":    {MaxHealth: 100, Threshold: 0.2},
		},
		Resources: ResourceConfig{Oxygen: 100, Fuel: 100, Distance: 1000},
		Fire:      FireConfig{InitialIntensity: 1, GrowthRate: 0.5, SpreadMin: 5, SpreadMax: 15},
		Repair:    RepairConfig{Duration: 5, Amount: 10, DeathRate: 0.2},
		Scheduler: SchedulerConfig{MinInterval: 10, MaxInterval: 20},
		Crew: []CrewConfig{
			{Name: "Okafor", Efficiency: 1.0},
			{Name: "Lindqvist", Efficiency: 1.2},
			{Name: "Tamura", Efficiency: 0.8},
			{Name: "Reyes", Efficiency: 1.0},
		},
		Chapters: []ChapterConfig{
			{
				Number:        1,
				Title:         "Cold Start",
				InitialDamage: map[string]float64{"engine": 40, "hull": 30, "life_support": 50},
				Incidents:     []string{"fire", "system_failure"},
				Barrier:       true,
			},
			{
				Number:    2,
				Title:     "The Field",
				Incidents: []string{"fire", "system_failure", "asteroid", "generator_failure"},
				Barrier:   true,
			},
			{
				Number:    3,
				Title:     "Drift",
				Incidents: []string{"fire", "system_failure", "asteroid", "generator_failure", "derelict"},
			},
			{
				Number:    4,
				Title:     "Last Leg",
				Incidents: []string{"fire", "system_failure", "asteroid", "generator_failure", "derelict"},
			},
		},
		Deck: DeckConfig{
			Speed:            3,
			StoppingDistance: 0.5,
			Stations: map[string][2]float64{
				"engine":       {2, 8},
				"hull":         {10, 2},
				"life_support": {14, 8},
				"generator":    {6, 12},
			},
			Quarters: [2]float64{8, 6},
		},
	}
}

// LoadShipConfig parses a ShipConfig from YAML bytes. Fields left out of the
// document keep their default values.
func LoadShipConfig(data []byte) (*ShipConfig, error) {
	cfg := DefaultShipConfig()
	// Maps and slices from the document replace the defaults wholesale.
	cfg.Crew = nil
	cfg.Chapters = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse ship config: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize fills gaps with defaults and validates ranges.
func (c *ShipConfig) Normalize() error {
	def := DefaultShipConfig()
	if c.Name == "" {
		c.Name = def.Name
	}
	if c.Subsystems == nil {
		c.Subsystems = map[string]SubsystemConfig{}
	}
	for key, sc := range c.Subsystems {
		if _, ok := ParseSubsystemKind(key); !ok {
			return fmt.Errorf("unknown subsystem %q", key)
		}
		if sc.MaxHealth < 0 {
			return fmt.Errorf("subsystem %s: max_health must be positive, got %v", key, sc.MaxHealth)
		}
		if sc.Threshold < 0 || sc.Threshold > 1 {
			return fmt.Errorf("subsystem %s: threshold must be within [0,1], got %v", key, sc.Threshold)
		}
	}
	for key, sc := range def.Subsystems {
		cur, ok := c.Subsystems[key]
		if !ok {
			c.Subsystems[key] = sc
			continue
		}
		if cur.MaxHealth == 0 {
			cur.MaxHealth = sc.MaxHealth
		}
		c.Subsystems[key] = cur
	}

	if c.Resources.Oxygen <= 0 {
		c.Resources.Oxygen = def.Resources.Oxygen
	}
	if c.Resources.Fuel <= 0 {
		c.Resources.Fuel = def.Resources.Fuel
	}
	if c.Resources.Distance <= 0 {
		c.Resources.Distance = def.Resources.Distance
	}

	if c.Fire.InitialIntensity <= 0 {
		c.Fire.InitialIntensity = def.Fire.InitialIntensity
	}
	if c.Fire.GrowthRate < 0 {
		return fmt.Errorf("fire: growth_rate must not be negative")
	}
	if c.Fire.SpreadMin <= 0 && c.Fire.SpreadMax <= 0 {
		c.Fire.SpreadMin, c.Fire.SpreadMax = def.Fire.SpreadMin, def.Fire.SpreadMax
	}
	if c.Fire.SpreadMax < c.Fire.SpreadMin {
		return fmt.Errorf("fire: spread_max %v below spread_min %v", c.Fire.SpreadMax, c.Fire.SpreadMin)
	}

	if c.Repair.Duration <= 0 {
		c.Repair.Duration = def.Repair.Duration
	}
	if c.Repair.Amount <= 0 {
		c.Repair.Amount = def.Repair.Amount
	}
	if c.Repair.DeathRate < 0 {
		return fmt.Errorf("repair: death_rate must not be negative")
	}

	if c.Scheduler.MinInterval <= 0 && c.Scheduler.MaxInterval <= 0 {
		c.Scheduler = def.Scheduler
	}
	if c.Scheduler.MaxInterval < c.Scheduler.MinInterval {
		return fmt.Errorf("scheduler: max_interval %v below min_interval %v",
			c.Scheduler.MaxInterval, c.Scheduler.MinInterval)
	}

	if len(c.Crew) == 0 {
		c.Crew = def.Crew
	}
	for i := range c.Crew {
		if c.Crew[i].Efficiency <= 0 {
			c.Crew[i].Efficiency = 1.0
		}
		if c.Crew[i].Name == "" {
			c.Crew[i].Name = fmt.Sprintf("Crew %d", i+1)
		}
	}

	if len(c.Chapters) == 0 {
		c.Chapters = def.Chapters
	}
	for _, ch := range c.Chapters {
		if ch.Number < 1 || ch.Number > 4 {
			return fmt.Errorf("chapter number %d outside 1..4", ch.Number)
		}
		for key := range ch.InitialDamage {
			if _, ok := ParseSubsystemKind(key); !ok {
				return fmt.Errorf("chapter %d: unknown subsystem %q", ch.Number, key)
			}
		}
	}

	if c.Deck.Speed <= 0 {
		c.Deck.Speed = def.Deck.Speed
	}
	if c.Deck.StoppingDistance <= 0 {
		c.Deck.StoppingDistance = def.Deck.StoppingDistance
	}
	if len(c.Deck.Stations) == 0 {
		c.Deck.Stations = def.Deck.Stations
		c.Deck.Quarters = def.Deck.Quarters
	}
	return nil
}

// Chapter returns the config for chapter n, or an empty one.
func (c *ShipConfig) Chapter(n int) ChapterConfig {
	for _, ch := range c.Chapters {
		if ch.Number == n {
			return ch
		}
	}
	return ChapterConfig{Number: n}
}

// NewSubsystems builds the subsystem set described by the config.
func (c *ShipConfig) NewSubsystems() [SubsystemCount]*Subsystem {
	var out [SubsystemCount]*Subsystem
	for k := SubsystemKind(0); k < SubsystemCount; k++ {
		sc := c.Subsystems[k.Key()]
		out[k] = NewSubsystem(k, sc.MaxHealth, sc.Threshold)
	}
	return out
}
