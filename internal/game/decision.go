package game

import "fmt"

// GateState is the state of the decision gate.
type GateState uint8

const (
	GateClosed GateState = iota
	GateOpen
	GateResolving
)

// Gate presents the two options of an incident and holds everything that
// waits on it until the player picks one.
type Gate struct {
	state    GateState
	incident *Incident
	present  Presenter
	onClose  []func(*Incident)
}

// NewGate creates a closed gate.
func NewGate(p Presenter) *Gate {
	if p == nil {
		p = NopPresenter{}
	}
	return &Gate{present: p}
}

// State returns the gate state.
func (g *Gate) State() GateState { return g.state }

// Pending reports whether a decision is open or being applied.
func (g *Gate) Pending() bool { return g.state != GateClosed }

// Incident returns the incident awaiting a decision, or nil.
func (g *Gate) Incident() *Incident { return g.incident }

// OnClose registers fn to run after each resolution has been fully applied.
func (g *Gate) OnClose(fn func(*Incident)) { g.onClose = append(g.onClose, fn) }

// Open presents an incident's options.
func (g *Gate) Open(inc *Incident) error {
	if g.state != GateClosed {
		return fmt.Errorf("open %s: %w", inc.Kind, ErrGateBusy)
	}
	g.state = GateOpen
	g.incident = inc
	g.present.IncidentOpened(inc.Title, inc.Text, inc.Labels())
	return nil
}

// Resolve applies the chosen option, closes the gate and then releases the
// waiters. It returns the option's result text.
func (g *Gate) Resolve(idx int) (string, error) {
	if g.state != GateOpen {
		return "", fmt.Errorf("resolve option %d: %w", idx, ErrGateClosed)
	}
	inc := g.incident
	if idx < 0 || idx >= len(inc.Options) {
		return "", fmt.Errorf("resolve %s option %d: %w", inc.Kind, idx, ErrBadOption)
	}

	g.state = GateResolving
	result := ""
	if eff := inc.Options[idx].Effect; eff != nil {
		result = eff()
	}
	g.state = GateClosed
	g.incident = nil

	for _, fn := range g.onClose {
		fn(inc)
	}
	return result, nil
}
