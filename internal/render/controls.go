package render

import (
	"github.com/spacehole-rogue/shipsim/internal/game"
	"github.com/spacehole-rogue/shipsim/internal/world"
)

// Input is a backend-independent key action.
type Input uint8

const (
	InputNone Input = iota
	InputOption1
	InputOption2
	InputNextCrew
	InputPrevCrew
	InputEngine
	InputHull
	InputLifeSupport
	InputGenerator
	InputAdvance // debug
	InputQuit
	inputTrigger // debug, one per incident kind
)

// TriggerInput is the debug input that starts incidents of kind k.
func TriggerInput(k game.IncidentKind) Input { return inputTrigger + Input(k) }

// Controls holds the crew selection and turns inputs into commands.
type Controls struct {
	Selected int // index into Status.Crew
}

// Command maps an input to a command against the current status. It returns
// false for inputs that only change the selection or do nothing.
func (c *Controls) Command(in Input, st game.Status) (game.Command, bool) {
	c.clamp(st)
	switch in {
	case InputOption1, InputOption2:
		if st.Decision == nil {
			return game.Command{}, false
		}
		return game.ResolveDecision(int(in - InputOption1)), true
	case InputNextCrew:
		c.cycle(st, 1)
	case InputPrevCrew:
		c.cycle(st, -1)
	case InputEngine, InputHull, InputLifeSupport, InputGenerator:
		if len(st.Crew) == 0 {
			return game.Command{}, false
		}
		k := world.SubsystemKind(in - InputEngine)
		return game.AssignCrew(st.Crew[c.Selected].ID, k), true
	case InputAdvance:
		return game.AdvanceChapter(st.Chapter + 1), true
	default:
		if in >= inputTrigger && in < inputTrigger+Input(game.IncidentKindCount) {
			return game.TriggerIncident(game.IncidentKind(in - inputTrigger)), true
		}
	}
	return game.Command{}, false
}

// cycle moves the selection to the next living crew unit in direction dir.
func (c *Controls) cycle(st game.Status, dir int) {
	n := len(st.Crew)
	for i := 1; i <= n; i++ {
		j := ((c.Selected+dir*i)%n + n) % n
		if st.Crew[j].State != game.TaskDead {
			c.Selected = j
			return
		}
	}
}

func (c *Controls) clamp(st game.Status) {
	if c.Selected >= len(st.Crew) || c.Selected < 0 {
		c.Selected = 0
	}
}
