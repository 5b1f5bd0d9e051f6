package game

import "errors"

// Command failures. None of them change simulation state.
var (
	ErrConfigurationMissing = errors.New("required collaborator missing")
	ErrUnknownCrew          = errors.New("unknown crew unit")
	ErrCrewDead             = errors.New("crew unit is dead")
	ErrCrewBusy             = errors.New("crew unit already assigned")
	ErrSubsystemStaffed     = errors.New("subsystem already has a repairer")
	ErrAlreadyRepaired      = errors.New("subsystem already at full health")
	ErrUnknownSubsystem     = errors.New("unknown subsystem")
	ErrGateClosed           = errors.New("no decision pending")
	ErrGateBusy             = errors.New("a decision is already pending")
	ErrBadOption            = errors.New("no such decision option")
	ErrIncidentActive       = errors.New("an incident is already active")
	ErrUnknownIncident      = errors.New("unknown incident kind")
	ErrBadChapter           = errors.New("chapter out of range")
	ErrDebugDisabled        = errors.New("debug commands disabled")
	ErrSessionOver          = errors.New("session is over")
)
