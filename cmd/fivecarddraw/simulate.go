package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/lox/fivecarddraw/internal/config"
	"github.com/lox/fivecarddraw/internal/simulator"
)

type SimulateCmd struct {
	Matches int    `kong:"default='100',help='Number of matches to play'"`
	Seed    int64  `kong:"default='12345',help='Base RNG seed'"`
	Workers int    `kong:"default='0',help='Parallel workers, 0 for NumCPU'"`
	Config  string `kong:"default='fivecarddraw.hcl',help='Path to HCL config file'"`
	Verbose bool   `kong:"help='Log every action'"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	level := log.WarnLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sim := simulator.New(simulator.Config{
		Matches: c.Matches,
		Seed:    c.Seed,
		Workers: workers,
		Game:    cfg.GameConfig(),
		Logger:  logger,
	})

	results, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(results.Summary())
	return nil
}
