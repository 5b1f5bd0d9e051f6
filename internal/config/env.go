package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/spacehole-rogue/shipsim/internal/world"
)

// Env is the process configuration read from SHIPSIM_* variables.
type Env struct {
	ConfigPath string  `env:"SHIPSIM_CONFIG"`
	ScriptDir  string  `env:"SHIPSIM_SCRIPTS"`
	Seed       uint64  `env:"SHIPSIM_SEED" envDefault:"0"`
	TPS        int     `env:"SHIPSIM_TPS" envDefault:"60"`
	DeathRate  float64 `env:"SHIPSIM_DEATH_RATE" envDefault:"-1"`
	Watch      bool    `env:"SHIPSIM_WATCH" envDefault:"false"`
	Debug      bool    `env:"SHIPSIM_DEBUG" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses Env and clamps the tick rate.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	if e.TPS <= 0 {
		e.TPS = 60
	}
	return e, nil
}

// LoadShip reads the ship config at e.ConfigPath, or parses fallback when no
// path is set, and applies the environment overrides.
func (e Env) LoadShip(fallback []byte) (*world.ShipConfig, error) {
	data := fallback
	if e.ConfigPath != "" {
		b, err := os.ReadFile(e.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("read ship config: %w", err)
		}
		data = b
	}
	var (
		cfg *world.ShipConfig
		err error
	)
	if len(data) == 0 {
		cfg = world.DefaultShipConfig()
	} else if cfg, err = world.LoadShipConfig(data); err != nil {
		return nil, err
	}
	e.Apply(cfg)
	return cfg, nil
}

// Scripts returns the chapter script filesystem: ScriptDir when set,
// otherwise embedded.
func (e Env) Scripts(embedded fs.FS) fs.FS {
	if e.ScriptDir == "" {
		return embedded
	}
	return os.DirFS(e.ScriptDir)
}

// WatchDirs lists the directories to watch for live reload.
func (e Env) WatchDirs() []string {
	var dirs []string
	if e.ConfigPath != "" {
		dirs = append(dirs, filepath.Dir(e.ConfigPath))
	}
	if e.ScriptDir != "" && !slices.Contains(dirs, filepath.Clean(e.ScriptDir)) {
		dirs = append(dirs, filepath.Clean(e.ScriptDir))
	}
	return dirs
}

// Apply writes the environment overrides into cfg.
func (e Env) Apply(cfg *world.ShipConfig) {
	if e.DeathRate >= 0 {
		cfg.Repair.DeathRate = e.DeathRate
	}
}
