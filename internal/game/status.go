package game

import "github.com/spacehole-rogue/shipsim/internal/world"

// SubsystemStatus is a read-only view of one subsystem.
type SubsystemStatus struct {
	Kind       world.SubsystemKind
	Health     float64
	MaxHealth  float64
	Efficiency float64
	Critical   bool
	OnFire     bool
	Intensity  float64
	Crew       int // units assigned
}

// CrewStatus is a read-only view of one crew unit.
type CrewStatus struct {
	ID         CrewID
	Name       string
	State      TaskState
	Target     world.SubsystemKind
	Progress   float64 // 0..1 while repairing
	Efficiency float64
	Level      int
	Fatigue    float64
}

// DecisionStatus is the open decision, if any.
type DecisionStatus struct {
	Title   string
	Text    string
	Options []string
}

// Status is a value snapshot of the simulation for front-ends.
type Status struct {
	Ship       string
	Tick       uint64
	Elapsed    float64
	Chapter    int
	Title      string // chapter title
	Subsystems [world.SubsystemCount]SubsystemStatus
	Oxygen     float64
	Fuel       float64
	Distance   float64
	Progress   int // percent of the trip covered
	Crew       []CrewStatus
	Alive      int
	Decision   *DecisionStatus
	LastResult string
	NextIn     float64 // seconds until the scheduler draws again
	Outcome    Outcome
}

// Status returns a snapshot of the current state.
func (s *Sim) Status() Status {
	st := Status{
		Ship:       s.Ship.Name,
		Tick:       s.Ticks,
		Elapsed:    s.Elapsed,
		Chapter:    s.Chapters.Number(),
		Title:      s.Config.Chapter(s.Chapters.Number()).Title,
		Oxygen:     s.Ledger.Oxygen,
		Fuel:       s.Ledger.Fuel,
		Distance:   s.Ledger.Distance,
		Progress:   s.Ledger.ProgressPct(),
		Alive:      s.Crew.Alive(),
		LastResult: s.LastResult,
		NextIn:     s.Scheduler.Remaining(),
		Outcome:    s.outcome,
	}
	for k, sub := range s.Ship.Subsystems {
		st.Subsystems[k] = SubsystemStatus{
			Kind:       sub.Kind(),
			Health:     sub.Health(),
			MaxHealth:  sub.MaxHealth(),
			Efficiency: sub.Efficiency(),
			Critical:   sub.BelowThreshold(),
			OnFire:     sub.IsOnFire(),
			Intensity:  sub.Intensity(),
			Crew:       len(s.Crew.Working(sub.Kind())),
		}
	}
	for _, id := range s.Crew.IDs() {
		m, task, ok := s.Crew.Get(id)
		if !ok {
			continue
		}
		cs := CrewStatus{
			ID:         id,
			Name:       m.Name,
			State:      task.State,
			Target:     task.Target,
			Efficiency: m.Efficiency(),
			Level:      m.Level(),
			Fatigue:    m.Fatigue,
		}
		if task.State == TaskRepairing && task.Duration > 0 {
			cs.Progress = min(task.Elapsed/task.Duration, 1)
		}
		st.Crew = append(st.Crew, cs)
	}
	if inc := s.Gate.Incident(); inc != nil {
		st.Decision = &DecisionStatus{Title: inc.Title, Text: inc.Text, Options: inc.Labels()}
	}
	return st
}
