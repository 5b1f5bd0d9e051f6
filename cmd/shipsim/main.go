package main

import (
	"log"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spacehole-rogue/shipsim/assets"
	"github.com/spacehole-rogue/shipsim/internal/config"
	"github.com/spacehole-rogue/shipsim/internal/game"
	"github.com/spacehole-rogue/shipsim/internal/render"
	"github.com/spacehole-rogue/shipsim/internal/render/gfx"
	"github.com/spacehole-rogue/shipsim/internal/session"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	title        = "Shipsim"

	cellWidth  = 16
	cellHeight = 16
	gridCols   = screenWidth / cellWidth   // 80
	gridRows   = screenHeight / cellHeight // 45
)

var keyInputs = []struct {
	key ebiten.Key
	in  render.Input
}{
	{ebiten.KeyEscape, render.InputQuit},
	{ebiten.KeyDigit1, render.InputOption1},
	{ebiten.KeyDigit2, render.InputOption2},
	{ebiten.KeyE, render.InputEngine},
	{ebiten.KeyH, render.InputHull},
	{ebiten.KeyL, render.InputLifeSupport},
	{ebiten.KeyG, render.InputGenerator},
	{ebiten.KeyN, render.InputAdvance},
	{ebiten.KeyF1, render.TriggerInput(game.IncidentFire)},
	{ebiten.KeyF2, render.TriggerInput(game.IncidentAsteroid)},
	{ebiten.KeyF3, render.TriggerInput(game.IncidentSystemFailure)},
	{ebiten.KeyF4, render.TriggerInput(game.IncidentDerelict)},
	{ebiten.KeyF5, render.TriggerInput(game.IncidentGeneratorFailure)},
	{ebiten.KeyF6, render.TriggerInput(game.IncidentAsteroidField)},
}

// Game is the Ebitengine game struct. It owns rendering and input.
// All gameplay state lives in the session.
type Game struct {
	renderer *gfx.GridRenderer
	session  *session.Session
	dt       float64
}

func NewGame(env config.Env) (*Game, error) {
	ship, err := assets.Ships.ReadFile("ships/nomad.yaml")
	if err != nil {
		return nil, err
	}
	s, err := session.New(env, ship, assets.Scripts(), gridCols, gridRows, slog.Default())
	if err != nil {
		return nil, err
	}
	return &Game{
		renderer: gfx.NewGridRenderer(gfx.NewFontAtlas(), cellWidth, cellHeight),
		session:  s,
		dt:       1 / float64(env.TPS),
	}, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		in := render.InputNextCrew
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			in = render.InputPrevCrew
		}
		g.session.Input(in)
	}
	for _, k := range keyInputs {
		if inpututil.IsKeyJustPressed(k.key) && !g.session.Input(k.in) {
			return ebiten.Termination
		}
	}

	g.session.Step(g.dt)
	g.session.Frame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.session.Buffer, g.session.Selection())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatal(err)
	}
	if env.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	g, err := NewGame(env)
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer g.session.Close()

	ebiten.SetTPS(env.TPS)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
