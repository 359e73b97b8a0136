// Package config loads game settings from an HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/fivecarddraw/internal/game"
	"github.com/lox/fivecarddraw/internal/history"
)

// Config represents the complete configuration
type Config struct {
	Game    GameSettings    `hcl:"game,block"`
	History HistorySettings `hcl:"history,block"`
}

// GameSettings contains the match parameters
type GameSettings struct {
	StartingChips int    `hcl:"starting_chips,optional"`
	SmallBet      int    `hcl:"small_bet,optional"`
	BigBet        int    `hcl:"big_bet,optional"`
	TargetScore   int    `hcl:"target_score,optional"`
	PlayerName    string `hcl:"player_name,optional"`
	OpponentName  string `hcl:"opponent_name,optional"`
}

// HistorySettings contains match history persistence settings
type HistorySettings struct {
	Path  string `hcl:"path,optional"`
	Limit int    `hcl:"limit,optional"`
}

// Default returns the default configuration
func Default() *Config {
	g := game.DefaultConfig()
	return &Config{
		Game: GameSettings{
			StartingChips: g.StartingChips,
			SmallBet:      g.SmallBet,
			BigBet:        g.BigBet,
			TargetScore:   g.TargetScore,
			PlayerName:    g.PlayerName,
			OpponentName:  g.OpponentName,
		},
		History: HistorySettings{
			Path:  defaultHistoryPath(),
			Limit: history.DefaultLimit,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; a present file has its omitted values filled in from them.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&config)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyDefaults(config *Config) {
	defaults := Default()

	if config.Game.StartingChips == 0 {
		config.Game.StartingChips = defaults.Game.StartingChips
	}
	if config.Game.SmallBet == 0 {
		config.Game.SmallBet = defaults.Game.SmallBet
	}
	if config.Game.BigBet == 0 {
		config.Game.BigBet = defaults.Game.BigBet
	}
	if config.Game.TargetScore == 0 {
		config.Game.TargetScore = defaults.Game.TargetScore
	}
	if config.Game.PlayerName == "" {
		config.Game.PlayerName = defaults.Game.PlayerName
	}
	if config.Game.OpponentName == "" {
		config.Game.OpponentName = defaults.Game.OpponentName
	}
	if config.History.Path == "" {
		config.History.Path = defaults.History.Path
	}
	if config.History.Limit == 0 {
		config.History.Limit = defaults.History.Limit
	}
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.Game.SmallBet <= 0 {
		return fmt.Errorf("small_bet must be positive, got %d", c.Game.SmallBet)
	}
	if c.Game.BigBet < c.Game.SmallBet {
		return fmt.Errorf("big_bet %d must be at least small_bet %d", c.Game.BigBet, c.Game.SmallBet)
	}
	if c.Game.StartingChips < 2*c.Game.SmallBet {
		return fmt.Errorf("starting_chips %d too small for ante %d", c.Game.StartingChips, c.Game.SmallBet)
	}
	if c.Game.TargetScore <= 0 {
		return fmt.Errorf("target_score must be positive, got %d", c.Game.TargetScore)
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("history limit must be positive, got %d", c.History.Limit)
	}
	return nil
}

// GameConfig converts the settings into the engine's config
func (c *Config) GameConfig() game.Config {
	return game.Config{
		StartingChips: c.Game.StartingChips,
		SmallBet:      c.Game.SmallBet,
		BigBet:        c.Game.BigBet,
		TargetScore:   c.Game.TargetScore,
		PlayerName:    c.Game.PlayerName,
		OpponentName:  c.Game.OpponentName,
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "fivecarddraw-history.json"
	}
	return home + "/.fivecarddraw/history.json"
}
