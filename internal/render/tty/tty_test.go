package tty

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/spacehole-rogue/shipsim/internal/game"
	"github.com/spacehole-rogue/shipsim/internal/render"
)

func TestTranslateKey(t *testing.T) {
	cases := []struct {
		name string
		key  tcell.Key
		r    rune
		want render.Input
	}{
		{"escape", tcell.KeyEscape, 0, render.InputQuit},
		{"tab", tcell.KeyTab, 0, render.InputNextCrew},
		{"backtab", tcell.KeyBacktab, 0, render.InputPrevCrew},
		{"option 1", tcell.KeyRune, '1', render.InputOption1},
		{"option 2", tcell.KeyRune, '2', render.InputOption2},
		{"engine", tcell.KeyRune, 'e', render.InputEngine},
		{"hull upper", tcell.KeyRune, 'H', render.InputHull},
		{"life support", tcell.KeyRune, 'l', render.InputLifeSupport},
		{"generator", tcell.KeyRune, 'g', render.InputGenerator},
		{"advance", tcell.KeyRune, 'n', render.InputAdvance},
		{"fire", tcell.KeyF1, 0, render.TriggerInput(game.IncidentFire)},
		{"asteroid field", tcell.KeyF6, 0, render.TriggerInput(game.IncidentAsteroidField)},
		{"unbound rune", tcell.KeyRune, 'z', render.InputNone},
		{"unbound key", tcell.KeyF9, 0, render.InputNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TranslateKey(tc.key, tc.r); got != tc.want {
				t.Fatalf("TranslateKey(%v, %q) = %v, want %v", tc.key, tc.r, got, tc.want)
			}
		})
	}
}

func TestBlit(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 3)

	buf := render.NewCellBuffer(10, 3)
	buf.WriteString(0, 0, "O2", render.ColorLightCyan, render.ColorBlack)
	buf.Set(3, 1, render.GlyphFullBlock, render.ColorLightRed, render.ColorBlue)
	Blit(screen, buf, render.Span{Y: 2, X0: 0, X1: 2})
	screen.Show()

	if r, _, _, _ := screen.GetContent(1, 0); r != '2' {
		t.Fatalf("cell (1,0) = %q, want '2'", r)
	}
	r, _, style, _ := screen.GetContent(3, 1)
	if r != '█' {
		t.Fatalf("cell (3,1) = %q, want a full block", r)
	}
	if style != Style(render.ColorLightRed, render.ColorBlue) {
		t.Fatalf("style = %v, want light red on blue", style)
	}
	if _, _, style, _ := screen.GetContent(1, 2); style != Style(render.ColorWhite, render.ColorBlack).Reverse(true) {
		t.Fatalf("selected cell style = %v, want reversed", style)
	}
}
