package main

import (
	"fmt"

	"github.com/lox/fivecarddraw/internal/config"
	"github.com/lox/fivecarddraw/internal/game"
	"github.com/lox/fivecarddraw/internal/history"
)

type HistoryCmd struct {
	Config string `kong:"default='fivecarddraw.hcl',help='Path to HCL config file'"`
}

func (c *HistoryCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	store := history.New(cfg.History.Path, history.WithLimit(cfg.History.Limit))
	if err := store.Load(); err != nil {
		return err
	}

	entries := store.Entries()
	if len(entries) == 0 {
		fmt.Println("no matches recorded yet")
		return nil
	}

	wins, losses, ties := store.Summary()
	fmt.Printf("record: %dW-%dL-%dT\n\n", wins, losses, ties)
	for _, e := range entries {
		outcome := "lost"
		if e.Result == game.PlayerWins {
			outcome = "won"
		} else if e.Result == game.TieGame {
			outcome = "tied"
		}
		fmt.Printf("%s  %s %d-%d\n",
			e.Date.Local().Format("2006-01-02 15:04"),
			outcome, e.PlayerScore, e.OpponentScore)
	}
	return nil
}
