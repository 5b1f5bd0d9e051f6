package game

import (
	"fmt"

	"github.com/spacehole-rogue/shipsim/internal/world"
)

// Presenter receives one-way notifications from the simulation core. Calls are
// fire-and-forget; the core never reads anything back.
type Presenter interface {
	HealthChanged(k world.SubsystemKind, health float64)
	FireStarted(k world.SubsystemKind)
	FireStopped(k world.SubsystemKind)
	CriticalEntered(k world.SubsystemKind)
	CriticalExited(k world.SubsystemKind)
	RepairProgress(crew CrewID, k world.SubsystemKind, frac float64)
	IncidentOpened(title, text string, labels []string)
	Diagnostic(text string)
	Outcome(o Outcome)
}

// NopPresenter discards every notification.
type NopPresenter struct{}

func (NopPresenter) HealthChanged(world.SubsystemKind, float64)          {}
func (NopPresenter) FireStarted(world.SubsystemKind)                     {}
func (NopPresenter) FireStopped(world.SubsystemKind)                     {}
func (NopPresenter) CriticalEntered(world.SubsystemKind)                 {}
func (NopPresenter) CriticalExited(world.SubsystemKind)                  {}
func (NopPresenter) RepairProgress(CrewID, world.SubsystemKind, float64) {}
func (NopPresenter) IncidentOpened(string, string, []string)             {}
func (NopPresenter) Diagnostic(string)                                   {}
func (NopPresenter) Outcome(Outcome)                                     {}

// LogPresenter turns the discrete notifications into comms log lines.
// Continuous ones (health, repair progress) are left to the HUD.
type LogPresenter struct {
	NopPresenter
	Log *MessageLog
}

func (p LogPresenter) FireStarted(k world.SubsystemKind) {
	p.Log.Add(fmt.Sprintf("FIRE in %s!", k), MsgCritical)
}

func (p LogPresenter) FireStopped(k world.SubsystemKind) {
	p.Log.Add(fmt.Sprintf("%s fire is out.", k), MsgInfo)
}

func (p LogPresenter) CriticalEntered(k world.SubsystemKind) {
	p.Log.Add(fmt.Sprintf("%s CRITICAL. Output failing.", k), MsgCritical)
}

func (p LogPresenter) CriticalExited(k world.SubsystemKind) {
	p.Log.Add(fmt.Sprintf("%s stabilised.", k), MsgDiscovery)
}

func (p LogPresenter) IncidentOpened(title, text string, labels []string) {
	p.Log.Add(title+": "+text, MsgWarning)
	for i, l := range labels {
		p.Log.Add(fmt.Sprintf("  [%d] %s", i+1, l), MsgSocial)
	}
}

func (p LogPresenter) Diagnostic(text string) { p.Log.Add(text, MsgWarning) }

func (p LogPresenter) Outcome(o Outcome) {
	if o.Victory() {
		p.Log.Add("Destination reached. "+o.Reason, MsgDiscovery)
		return
	}
	p.Log.Add("GAME OVER: "+o.Reason, MsgCritical)
}

// Presenters fans notifications out to several presenters in order.
type Presenters []Presenter

func (ps Presenters) HealthChanged(k world.SubsystemKind, h float64) {
	for _, p := range ps {
		p.HealthChanged(k, h)
	}
}

func (ps Presenters) FireStarted(k world.SubsystemKind) {
	for _, p := range ps {
		p.FireStarted(k)
	}
}

func (ps Presenters) FireStopped(k world.SubsystemKind) {
	for _, p := range ps {
		p.FireStopped(k)
	}
}

func (ps Presenters) CriticalEntered(k world.SubsystemKind) {
	for _, p := range ps {
		p.CriticalEntered(k)
	}
}

func (ps Presenters) CriticalExited(k world.SubsystemKind) {
	for _, p := range ps {
		p.CriticalExited(k)
	}
}

func (ps Presenters) RepairProgress(c CrewID, k world.SubsystemKind, f float64) {
	for _, p := range ps {
		p.RepairProgress(c, k, f)
	}
}

func (ps Presenters) IncidentOpened(title, text string, labels []string) {
	for _, p := range ps {
		p.IncidentOpened(title, text, labels)
	}
}

func (ps Presenters) Diagnostic(text string) {
	for _, p := range ps {
		p.Diagnostic(text)
	}
}

func (ps Presenters) Outcome(o Outcome) {
	for _, p := range ps {
		p.Outcome(o)
	}
}
