package game

import (
	"fmt"

	"github.com/spacehole-rogue/shipsim/internal/world"
)

// CommandKind identifies a player or debug command.
type CommandKind uint8

const (
	CmdAssignCrew CommandKind = iota
	CmdResolveDecision
	CmdTriggerIncident // debug
	CmdAdvanceChapter  // debug
	CommandKindCount
)

func (k CommandKind) String() string {
	switch k {
	case CmdAssignCrew:
		return "assign crew"
	case CmdResolveDecision:
		return "resolve decision"
	case CmdTriggerIncident:
		return "trigger incident"
	case CmdAdvanceChapter:
		return "advance chapter"
	default:
		return "unknown command"
	}
}

// Debug reports whether the command is only accepted in debug sessions.
func (k CommandKind) Debug() bool {
	return k == CmdTriggerIncident || k == CmdAdvanceChapter
}

// Command is a request from a front-end. Only the fields of its kind are read.
type Command struct {
	Kind      CommandKind
	Crew      CrewID
	Subsystem world.SubsystemKind
	Option    int
	Incident  IncidentKind
	Chapter   int
}

func AssignCrew(id CrewID, k world.SubsystemKind) Command {
	return Command{Kind: CmdAssignCrew, Crew: id, Subsystem: k}
}

func ResolveDecision(option int) Command {
	return Command{Kind: CmdResolveDecision, Option: option}
}

func TriggerIncident(kind IncidentKind) Command {
	return Command{Kind: CmdTriggerIncident, Incident: kind}
}

func AdvanceChapter(n int) Command {
	return Command{Kind: CmdAdvanceChapter, Chapter: n}
}

// Dispatch runs a command against the simulation.
func (s *Sim) Dispatch(cmd Command) error {
	if cmd.Kind.Debug() && !s.debug {
		s.log.Debug("debug command refused", "command", cmd.Kind.String())
		return fmt.Errorf("%s: %w", cmd.Kind, ErrDebugDisabled)
	}
	switch cmd.Kind {
	case CmdAssignCrew:
		return s.AssignCrew(cmd.Crew, cmd.Subsystem)
	case CmdResolveDecision:
		_, err := s.ResolveDecision(cmd.Option)
		return err
	case CmdTriggerIncident:
		return s.TriggerIncident(cmd.Incident)
	case CmdAdvanceChapter:
		return s.AdvanceToChapter(cmd.Chapter)
	}
	return fmt.Errorf("dispatch command %d: unknown kind", cmd.Kind)
}
