// Command shipsim-tty runs the simulation in a terminal.
package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spacehole-rogue/shipsim/assets"
	"github.com/spacehole-rogue/shipsim/internal/config"
	"github.com/spacehole-rogue/shipsim/internal/render"
	"github.com/spacehole-rogue/shipsim/internal/render/tty"
	"github.com/spacehole-rogue/shipsim/internal/session"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatal(err)
	}
	// The terminal is the HUD; logs go to stderr only when asked for.
	level := slog.LevelWarn
	if env.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ship, err := assets.Ships.ReadFile("ships/nomad.yaml")
	if err != nil {
		log.Fatalf("load ship: %v", err)
	}
	s, err := session.New(env, ship, assets.Scripts(), render.HUDMinCols, render.HUDMinRows, logger)
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer s.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	run(screen, s, time.Second/time.Duration(env.TPS))
}

func run(screen tcell.Screen, s *session.Session, frame time.Duration) {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	dt := frame.Seconds()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if !s.Input(tty.Translate(ev)) {
					return
				}
			}
		case <-ticker.C:
			s.Step(dt)
			tty.Blit(screen, s.Frame(), s.Selection())
			screen.Show()
		}
	}
}
