package render

import (
	"fmt"

	"github.com/spacehole-rogue/shipsim/internal/game"
	"github.com/spacehole-rogue/shipsim/internal/world"
)

// Fixed HUD layout, in cells. The HUD needs at least 80x30.
const (
	HUDMinCols = 80
	HUDMinRows = 30

	subsysRow   = 2
	crewRow     = 9
	decisionRow = 16
	commsRow    = 23
	rightX      = 42
	barWidth    = 12
)

// HUD lays out a status snapshot into a cell buffer.
type HUD struct {
	Deck *world.Deck
	// Position reports where a crew unit stands. Nil hides the deck view.
	Position func(id game.CrewID) world.Position
	Debug    bool
}

// Draw renders the whole screen.
func (h *HUD) Draw(buf *CellBuffer, st game.Status, log *game.MessageLog, ctl *Controls) {
	buf.Clear()
	h.drawTitle(buf, st)
	h.drawSubsystems(buf, st)
	h.drawResources(buf, st)
	h.drawCrew(buf, st, ctl)
	h.drawDeck(buf, st, ctl)
	h.drawDecision(buf, st)
	h.drawComms(buf, log)
	h.drawHelp(buf, st)
}

func (h *HUD) drawTitle(buf *CellBuffer, st game.Status) {
	x := buf.WriteString(1, 0, "SHIPSIM", ColorWhite, ColorBlack)
	x = buf.WriteString(x+2, 0, fmt.Sprintf("[ %s ]", st.Ship), ColorLightCyan, ColorBlack)
	chapter := fmt.Sprintf("Chapter %d: %s", st.Chapter, st.Title)
	buf.WriteString(x+2, 0, chapter, ColorYellow, ColorBlack)
	clock := fmt.Sprintf("T+%4.0fs", st.Elapsed)
	buf.WriteString(buf.Cols-len(clock)-1, 0, clock, ColorDarkGray, ColorBlack)
}

func (h *HUD) drawSubsystems(buf *CellBuffer, st game.Status) {
	buf.Box(0, subsysRow, rightX-1, 6, "Systems", ColorDarkGray)
	for i, sub := range st.Subsystems {
		y := subsysRow + 1 + i
		frac := sub.Health / sub.MaxHealth
		label := ColorLightGray
		if sub.Critical {
			label = ColorLightRed
		}
		buf.WriteString(2, y, fmt.Sprintf("%-12s", sub.Kind), uint8(label), ColorBlack)
		buf.Bar(14, y, barWidth, frac, LevelColor(frac, ColorLightGreen))
		buf.WriteString(27, y, fmt.Sprintf("%3.0f", sub.Health), LevelColor(frac, ColorLightGray), ColorBlack)
		switch {
		case sub.OnFire:
			buf.WriteString(31, y, fmt.Sprintf("FIRE %3.1f", sub.Intensity), ColorLightRed, ColorBlack)
		case sub.Kind == world.Generator:
			buf.WriteString(31, y, fmt.Sprintf("x%.2f", sub.Efficiency), ColorYellow, ColorBlack)
		case sub.Crew > 0:
			buf.WriteString(31, y, "crewed", ColorLightCyan, ColorBlack)
		}
	}
}

func (h *HUD) drawResources(buf *CellBuffer, st game.Status) {
	buf.Box(rightX, subsysRow, buf.Cols-rightX, 6, "Supplies", ColorDarkGray)
	rows := []struct {
		label string
		frac  float64
		value string
		clr   uint8
	}{
		{"Oxygen", st.Oxygen / game.MaxOxygen, fmt.Sprintf("%3.0f", st.Oxygen), ColorLightCyan},
		{"Fuel", st.Fuel / game.MaxFuel, fmt.Sprintf("%3.0f", st.Fuel), ColorLightMagenta},
		{"Trip", float64(st.Progress) / 100, fmt.Sprintf("%3d%%", st.Progress), ColorLightGreen},
	}
	for i, r := range rows {
		y := subsysRow + 1 + i
		buf.WriteString(rightX+2, y, fmt.Sprintf("%-7s", r.label), ColorLightGray, ColorBlack)
		clr := r.clr
		if r.label != "Trip" {
			clr = LevelColor(r.frac, r.clr)
		}
		buf.Bar(rightX+10, y, barWidth, r.frac, clr)
		buf.WriteString(rightX+23, y, r.value, clr, ColorBlack)
	}
	buf.WriteString(rightX+2, subsysRow+4, fmt.Sprintf("%.0f to go", st.Distance), ColorDarkGray, ColorBlack)
}

func (h *HUD) drawCrew(buf *CellBuffer, st game.Status, ctl *Controls) {
	buf.Box(0, crewRow, rightX-1, 7, fmt.Sprintf("Crew %d/%d", st.Alive, len(st.Crew)), ColorDarkGray)
	for i, c := range st.Crew {
		if i >= 5 {
			break
		}
		y := crewRow + 1 + i
		fg := uint8(ColorLightGray)
		if c.State == game.TaskDead {
			fg = ColorDarkGray
		}
		if ctl != nil && ctl.Selected == i {
			buf.Set(1, y, '>', ColorYellow, ColorBlack)
			if c.State != game.TaskDead {
				fg = ColorWhite
			}
		}
		buf.WriteString(2, y, fmt.Sprintf("%-10.10s L%d", c.Name, c.Level), fg, ColorBlack)
		task := c.State.String()
		if c.State != game.TaskIdle && c.State != game.TaskDead {
			task += " " + c.Target.String()
		}
		buf.WriteString(17, y, fmt.Sprintf("%-16.16s", task), fg, ColorBlack)
		if c.State == game.TaskRepairing {
			buf.Bar(34, y, 5, c.Progress, ColorLightGreen)
		}
	}
}

// Selection returns the crew row under the selection cursor, for backends to
// draw inverted. It is empty when nothing is selected.
func (h *HUD) Selection(st game.Status, ctl *Controls) Span {
	if ctl == nil || ctl.Selected < 0 || ctl.Selected >= min(len(st.Crew), 5) {
		return Span{}
	}
	if st.Crew[ctl.Selected].State == game.TaskDead {
		return Span{}
	}
	return Span{Y: crewRow + 1 + ctl.Selected, X0: 2, X1: rightX - 2}
}

func (h *HUD) drawDeck(buf *CellBuffer, st game.Status, ctl *Controls) {
	w, hgt := buf.Cols-rightX, 7
	buf.Box(rightX, crewRow, w, hgt, "Deck", ColorDarkGray)
	if h.Deck == nil || h.Position == nil {
		return
	}
	// Fit the deck extent into the box interior.
	maxX, maxY := h.Deck.Quarters.X, h.Deck.Quarters.Y
	for _, p := range h.Deck.Stations {
		maxX, maxY = max(maxX, p.X), max(maxY, p.Y)
	}
	innerW, innerH := float64(w-3), float64(hgt-3)
	cell := func(p world.Position) (int, int) {
		x := rightX + 1 + int(p.X/max(maxX, 1)*innerW+0.5)
		y := crewRow + 1 + int(p.Y/max(maxY, 1)*innerH+0.5)
		return x, y
	}

	x, y := cell(h.Deck.Quarters)
	buf.Set(x, y, 'Q', ColorBrown, ColorBlack)
	for k, p := range h.Deck.Stations {
		sub := st.Subsystems[k]
		fg := LevelColor(sub.Health/sub.MaxHealth, ColorLightGray)
		if sub.OnFire {
			fg = ColorLightRed
		}
		x, y := cell(p)
		buf.Set(x, y, stationGlyph[k], fg, ColorBlack)
	}
	for i, c := range st.Crew {
		if c.State == game.TaskDead {
			continue
		}
		fg := uint8(ColorLightCyan)
		if ctl != nil && ctl.Selected == i {
			fg = ColorYellow
		}
		x, y := cell(h.Position(c.ID))
		buf.Set(x, y, '1'+byte(i), fg, ColorBlack)
	}
}

var stationGlyph = [world.SubsystemCount]byte{
	world.Engine:      'E',
	world.Hull:        'H',
	world.LifeSupport: 'L',
	world.Generator:   'G',
}

func (h *HUD) drawDecision(buf *CellBuffer, st game.Status) {
	if st.Outcome.Over() {
		clr := uint8(ColorLightRed)
		head := "LOST"
		if st.Outcome.Victory() {
			clr, head = ColorLightGreen, "ARRIVED"
		}
		buf.Box(0, decisionRow, buf.Cols, 6, head, clr)
		buf.WriteString(2, decisionRow+2, st.Outcome.Reason, clr, ColorBlack)
		buf.WriteString(2, decisionRow+3, fmt.Sprintf("Survivors: %d   Time: %.0fs", st.Alive, st.Elapsed),
			ColorLightGray, ColorBlack)
		return
	}
	if d := st.Decision; d != nil {
		buf.Box(0, decisionRow, buf.Cols, 6, d.Title, ColorYellow)
		buf.WriteString(2, decisionRow+1, d.Text, ColorWhite, ColorBlack)
		for i, opt := range d.Options {
			buf.WriteString(2, decisionRow+3+i, fmt.Sprintf("[%d] %s", i+1, opt), ColorLightCyan, ColorBlack)
		}
		return
	}
	buf.Box(0, decisionRow, buf.Cols, 6, "Bridge", ColorDarkGray)
	if st.LastResult != "" {
		buf.WriteString(2, decisionRow+1, st.LastResult, ColorLightGray, ColorBlack)
	}
	if h.Debug && st.NextIn > 0 {
		buf.WriteString(2, decisionRow+4, fmt.Sprintf("next incident roll in %.0fs", st.NextIn), ColorDarkGray, ColorBlack)
	}
}

func (h *HUD) drawComms(buf *CellBuffer, log *game.MessageLog) {
	buf.WriteString(1, commsRow, "--- Comms ---", ColorLightCyan, ColorBlack)
	if log == nil {
		return
	}
	n := buf.Rows - commsRow - 2
	for i, msg := range log.Recent(n) {
		buf.WriteString(2, commsRow+1+i, msg.Text, MsgColor(msg.Priority), ColorBlack)
	}
}

func (h *HUD) drawHelp(buf *CellBuffer, st game.Status) {
	help := "TAB: Crew  E/H/L/G: Repair  1/2: Decide  ESC: Quit"
	if h.Debug {
		help += "  F1-F6: Incident  N: Next chapter"
	}
	buf.WriteString(1, buf.Rows-1, help, ColorDarkGray, ColorBlack)
}
