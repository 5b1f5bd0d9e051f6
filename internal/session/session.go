// Package session wires a simulation, the deck walker and the HUD into the
// loop both front-ends run.
package session

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spacehole-rogue/shipsim/internal/config"
	"github.com/spacehole-rogue/shipsim/internal/game"
	"github.com/spacehole-rogue/shipsim/internal/render"
	"github.com/spacehole-rogue/shipsim/internal/world"
)

// Session owns everything a front-end needs between frames.
type Session struct {
	Env      config.Env
	Sim      *game.Sim
	Walker   *world.Walker
	HUD      *render.HUD
	Controls render.Controls
	Buffer   *render.CellBuffer

	watcher *config.Watcher
	log     *slog.Logger
}

// New loads the ship, builds the simulation and, when env.Watch is set,
// starts watching the config and script directories.
func New(env config.Env, fallbackShip []byte, scripts fs.FS, cols, rows int, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cols < render.HUDMinCols || rows < render.HUDMinRows {
		return nil, fmt.Errorf("new session: grid %dx%d smaller than %dx%d",
			cols, rows, render.HUDMinCols, render.HUDMinRows)
	}
	cfg, err := env.LoadShip(fallbackShip)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	deck := world.NewDeck(cfg.Deck)
	walker := world.NewWalker(deck, cfg.Deck)
	sim := game.NewSim(cfg, game.Options{
		Seed:      env.Seed,
		Navigator: walker,
		Logger:    logger,
		Scripts:   env.Scripts(scripts),
		Debug:     env.Debug,
	})

	s := &Session{
		Env:    env,
		Sim:    sim,
		Walker: walker,
		Buffer: render.NewCellBuffer(cols, rows),
		log:    logger,
	}
	s.HUD = &render.HUD{
		Deck:     deck,
		Position: func(id game.CrewID) world.Position { return walker.PositionOf(int(id)) },
		Debug:    env.Debug,
	}

	if dirs := env.WatchDirs(); env.Watch && len(dirs) > 0 {
		w, err := config.NewWatcher(dirs...)
		if err != nil {
			logger.Warn("live reload disabled", "error", err)
		} else {
			s.watcher = w
			logger.Info("watching for changes", "dirs", dirs)
		}
	}
	return s, nil
}

// Input applies one key action. It reports false when the player quit.
func (s *Session) Input(in render.Input) bool {
	if in == render.InputQuit {
		return false
	}
	cmd, ok := s.Controls.Command(in, s.Sim.Status())
	if !ok {
		return true
	}
	if err := s.Sim.Dispatch(cmd); err != nil {
		s.log.Debug("command refused", "command", cmd.Kind, "error", err)
	}
	return true
}

// Step moves the crew, advances the simulation and applies pending reloads.
func (s *Session) Step(dt float64) {
	s.Walker.Step(dt)
	s.Sim.Tick(dt)
	s.drainReloads()
}

// Frame redraws the HUD into the session's buffer and returns it.
func (s *Session) Frame() *render.CellBuffer {
	s.HUD.Draw(s.Buffer, s.Sim.Status(), s.Sim.Log, &s.Controls)
	return s.Buffer
}

// Selection is the span of the last frame to draw inverted.
func (s *Session) Selection() render.Span {
	return s.HUD.Selection(s.Sim.Status(), &s.Controls)
}

// Close stops the watcher, if any.
func (s *Session) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}

func (s *Session) drainReloads() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-s.watcher.Events:
			if !ok {
				s.watcher = nil
				return
			}
			s.Reload(path)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				s.watcher = nil
				return
			}
			s.log.Warn("watch error", "error", err)
		default:
			return
		}
	}
}

// Reload reacts to a changed file. Ship configs retune the running
// simulation; scripts are recompiled on the next chapter entry.
func (s *Session) Reload(path string) {
	switch {
	case config.IsShipFile(path):
		if s.Env.ConfigPath != "" && filepath.Clean(path) != filepath.Clean(s.Env.ConfigPath) {
			return
		}
		env := s.Env
		env.ConfigPath = path
		cfg, err := env.LoadShip(nil)
		if err != nil {
			s.log.Warn("reload ship config", "path", path, "error", err)
			s.Sim.Log.Add("Tuning reload failed; keeping current values.", game.MsgWarning)
			return
		}
		s.Sim.Retune(cfg)
		s.log.Info("ship config reloaded", "path", path)
	case config.IsScriptFile(path):
		s.log.Info("chapter script changed", "path", path)
	}
}
