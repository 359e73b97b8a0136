package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/fivecarddraw/internal/config"
	"github.com/lox/fivecarddraw/internal/game"
	"github.com/lox/fivecarddraw/internal/history"
	"github.com/lox/fivecarddraw/internal/randutil"
	"github.com/lox/fivecarddraw/internal/tui"
)

type PlayCmd struct {
	Config  string `kong:"default='fivecarddraw.hcl',help='Path to HCL config file'"`
	Seed    int64  `kong:"default='0',help='RNG seed, 0 for time-based'"`
	LogFile string `kong:"default='',help='Write debug logs to this file'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	logger, cleanup, err := newLogger(c.LogFile)
	if err != nil {
		return err
	}
	defer cleanup()

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("starting match", "seed", seed)

	store := history.New(cfg.History.Path, history.WithLimit(cfg.History.Limit))
	if err := store.Load(); err != nil {
		logger.Warn("could not load match history", "error", err)
	}

	g := game.New(cfg.GameConfig(), logger, randutil.New(seed))
	return tui.Run(g, store, logger)
}

// newLogger builds a logger that stays off the terminal while the TUI
// owns it: silent unless a log file is given
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
	})
	return logger, func() { f.Close() }, nil
}
