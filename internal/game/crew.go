package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"github.com/spacehole-rogue/shipsim/internal/world"
)

// CrewID is the stable external identifier of a crew unit.
type CrewID int

// TaskState is where a crew unit is in its repair task.
type TaskState uint8

const (
	TaskIdle TaskState = iota
	TaskAssigned
	TaskEnRoute
	TaskRepairing
	TaskDead
)

func (s TaskState) String() string {
	switch s {
	case TaskIdle:
		return "Idle"
	case TaskAssigned:
		return "Assigned"
	case TaskEnRoute:
		return "En route"
	case TaskRepairing:
		return "Repairing"
	case TaskDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// CrewMember is the identity and condition of a crew unit.
type CrewMember struct {
	ID             CrewID
	Name           string
	BaseEfficiency float64
	Fatigue        float64 // 0 = rested, 100 = exhausted
	XP             float64 // engineering experience
}

// CrewTask is the repair task component of a crew unit.
type CrewTask struct {
	State    TaskState
	Target   world.SubsystemKind
	Elapsed  float64
	Duration float64
}

// Busy reports whether the unit holds an assignment.
func (t *CrewTask) Busy() bool {
	return t.State == TaskAssigned || t.State == TaskEnRoute || t.State == TaskRepairing
}

// Fatigue rates, per second.
const (
	fatigueGain    = 2.0
	fatigueRecover = 1.0
	maxFatigue     = 100.0
)

// engineeringXP maps level to cumulative XP required.
// Level 1 = 0 XP, level 10 = 1000 XP (max).
var engineeringXP = [11]float64{0, 0, 40, 90, 160, 250, 360, 490, 640, 810, 1000}

// repairXP is awarded for each completed repair.
const repairXP = 20.0

// Level converts the unit's XP to an engineering level (1-10).
func (m *CrewMember) Level() int {
	for i := 10; i >= 1; i-- {
		if m.XP >= engineeringXP[i] {
			return i
		}
	}
	return 1
}

// Efficiency is the unit's repair-speed multiplier including skill.
func (m *CrewMember) Efficiency() float64 {
	return m.BaseEfficiency * (1 + 0.05*float64(m.Level()-1))
}

// AddXP adds experience and reports whether the unit levelled up.
func (m *CrewMember) AddXP(amount float64) bool {
	before := m.Level()
	m.XP = min(m.XP+amount, engineeringXP[10])
	return m.Level() > before
}

// Roster holds the crew as entities of an ECS world.
type Roster struct {
	ECS *ecs.World

	spawn   *ecs.Map2[CrewMember, CrewTask]
	members *ecs.Map[CrewMember]
	tasks   *ecs.Map[CrewTask]
	all     *ecs.Filter2[CrewMember, CrewTask]

	byID   map[CrewID]ecs.Entity
	order  []CrewID
	alive  int
	nextID CrewID
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	w := ecs.NewWorld(64)
	return &Roster{
		ECS:     w,
		spawn:   ecs.NewMap2[CrewMember, CrewTask](w),
		members: ecs.NewMap[CrewMember](w),
		tasks:   ecs.NewMap[CrewTask](w),
		all:     ecs.NewFilter2[CrewMember, CrewTask](w),
		byID:    make(map[CrewID]ecs.Entity),
		nextID:  1,
	}
}

// Spawn adds a crew unit and returns its ID.
func (r *Roster) Spawn(name string, efficiency float64) CrewID {
	if efficiency <= 0 {
		efficiency = 1.0
	}
	id := r.nextID
	r.nextID++
	if name == "" {
		name = fmt.Sprintf("Crew %d", id)
	}
	e := r.spawn.NewEntity(
		&CrewMember{ID: id, Name: name, BaseEfficiency: efficiency},
		&CrewTask{State: TaskIdle},
	)
	r.byID[id] = e
	r.order = append(r.order, id)
	r.alive++
	return id
}

// Get returns the components of a crew unit.
func (r *Roster) Get(id CrewID) (*CrewMember, *CrewTask, bool) {
	e, ok := r.byID[id]
	if !ok || !r.ECS.Alive(e) {
		return nil, nil, false
	}
	return r.members.Get(e), r.tasks.Get(e), true
}

// IDs returns every crew ID in spawn order, dead ones included.
func (r *Roster) IDs() []CrewID { return r.order }

// Alive returns the number of living crew.
func (r *Roster) Alive() int { return r.alive }

// Kill marks a crew unit dead. It returns the task the unit held and false if
// the unit was unknown or already dead.
func (r *Roster) Kill(id CrewID) (CrewTask, bool) {
	_, task, ok := r.Get(id)
	if !ok || task.State == TaskDead {
		return CrewTask{}, false
	}
	prev := *task
	*task = CrewTask{State: TaskDead}
	r.alive--
	return prev, true
}

// PickSacrifice chooses the unit lost to a decision: the first idle unit, else
// the first living one.
func (r *Roster) PickSacrifice() (CrewID, bool) {
	var fallback CrewID
	found := false
	for _, id := range r.order {
		_, task, ok := r.Get(id)
		if !ok || task.State == TaskDead {
			continue
		}
		if task.State == TaskIdle {
			return id, true
		}
		if !found {
			fallback, found = id, true
		}
	}
	return fallback, found
}

// Working returns the living units repairing k, in spawn order.
func (r *Roster) Working(k world.SubsystemKind) []CrewID {
	var out []CrewID
	for _, id := range r.order {
		if _, task, ok := r.Get(id); ok && task.Busy() && task.Target == k {
			out = append(out, id)
		}
	}
	return out
}

// StepFatigue tires working units and rests idle ones.
func (r *Roster) StepFatigue(dt float64) {
	query := r.all.Query()
	for query.Next() {
		m, task := query.Get()
		switch task.State {
		case TaskRepairing:
			m.Fatigue = min(m.Fatigue+fatigueGain*dt, maxFatigue)
		case TaskIdle:
			m.Fatigue = max(m.Fatigue-fatigueRecover*dt, 0)
		}
	}
}
