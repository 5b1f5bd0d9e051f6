// Package tty draws the HUD to a terminal through tcell.
package tty

import (
	"github.com/gdamore/tcell/v2"
	"github.com/spacehole-rogue/shipsim/internal/game"
	"github.com/spacehole-rogue/shipsim/internal/render"
)

var palette [16]tcell.Color

func init() {
	for i, c := range render.Palette {
		palette[i] = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
}

// Style returns the tcell style for a cell's palette colors.
func Style(fg, bg uint8) tcell.Style {
	return tcell.StyleDefault.Foreground(palette[fg&15]).Background(palette[bg&15])
}

// Blit copies buf onto screen, reversing the cells inside sel. Cells past the
// screen edge are dropped by tcell. Call screen.Show afterwards.
func Blit(screen tcell.Screen, buf *render.CellBuffer, sel render.Span) {
	for y := 0; y < buf.Rows; y++ {
		for x := 0; x < buf.Cols; x++ {
			c := buf.Cells[y*buf.Cols+x]
			style := Style(c.FG, c.BG)
			if sel.Contains(x, y) {
				style = style.Reverse(true)
			}
			screen.SetContent(x, y, render.CP437ToUnicode[c.Glyph], nil, style)
		}
	}
}

// Translate maps a key event to an input.
func Translate(ev *tcell.EventKey) render.Input {
	return TranslateKey(ev.Key(), ev.Rune())
}

// TranslateKey maps a tcell key and rune to an input.
func TranslateKey(key tcell.Key, r rune) render.Input {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return render.InputQuit
	case tcell.KeyTab:
		return render.InputNextCrew
	case tcell.KeyBacktab:
		return render.InputPrevCrew
	case tcell.KeyF1, tcell.KeyF2, tcell.KeyF3, tcell.KeyF4, tcell.KeyF5, tcell.KeyF6:
		return render.TriggerInput(game.IncidentKind(key - tcell.KeyF1))
	case tcell.KeyRune:
		return runeInput(r)
	}
	return render.InputNone
}

func runeInput(r rune) render.Input {
	switch r {
	case '1':
		return render.InputOption1
	case '2':
		return render.InputOption2
	case 'e', 'E':
		return render.InputEngine
	case 'h', 'H':
		return render.InputHull
	case 'l', 'L':
		return render.InputLifeSupport
	case 'g', 'G':
		return render.InputGenerator
	case 'n', 'N':
		return render.InputAdvance
	case 'q', 'Q':
		return render.InputQuit
	}
	return render.InputNone
}
