// Package simulator plays AI-vs-AI matches to sanity-check the engine
// and measure outcome balance between the seats.
package simulator

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/fivecarddraw/internal/evaluator"
	"github.com/lox/fivecarddraw/internal/game"
	"github.com/lox/fivecarddraw/internal/randutil"
)

// maxSteps bounds the command loop of one match. A fixed-limit match to
// 100 finishes in well under a thousand steps; hitting the bound means
// the state machine stopped making progress.
const maxSteps = 100_000

// Config holds configuration for running simulations
type Config struct {
	Matches int
	Seed    int64
	Workers int
	Game    game.Config
	Logger  *log.Logger
}

// Results aggregates the outcomes of all simulated matches
type Results struct {
	Matches            int
	PlayerWins         int
	OpponentWins       int
	TotalPlayerScore   int
	TotalOpponentScore int
}

// Summary formats the results for display
func (r Results) Summary() string {
	return fmt.Sprintf("%d matches: player %d (%.1f%%), opponent %d, avg score %.1f-%.1f",
		r.Matches,
		r.PlayerWins, 100*float64(r.PlayerWins)/float64(r.Matches),
		r.OpponentWins,
		float64(r.TotalPlayerScore)/float64(r.Matches),
		float64(r.TotalOpponentScore)/float64(r.Matches))
}

// Simulator runs full matches with both seats driven by the AI
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{config: config}
}

// Run plays the configured number of matches across the worker pool
// and aggregates the results. Each match gets an independent seed
// derived from the base seed, so a run is reproducible regardless of
// worker count.
func (s *Simulator) Run(ctx context.Context) (*Results, error) {
	results := &Results{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Matches; i++ {
		matchSeed := s.config.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.playMatch(matchSeed)
			if err != nil {
				return fmt.Errorf("match with seed %d: %w", matchSeed, err)
			}

			mu.Lock()
			defer mu.Unlock()
			results.Matches++
			results.TotalPlayerScore += result.PlayerScore
			results.TotalOpponentScore += result.OpponentScore
			switch result.Winner {
			case game.PlayerWins:
				results.PlayerWins++
			case game.OpponentWins:
				results.OpponentWins++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// playMatch drives one match to completion, piloting the player seat
// with its own AI instance
func (s *Simulator) playMatch(seed int64) (*game.MatchResult, error) {
	g := game.New(s.config.Game, s.config.Logger, randutil.New(seed))
	pilot := game.NewAIEngine(randutil.New(seed ^ 0x5ca1ab1e))

	if err := g.StartMatch(); err != nil {
		return nil, err
	}

	for step := 0; step < maxSteps; step++ {
		state := g.Snapshot()

		switch state.Phase {
		case game.Betting:
			if state.Player.Active {
				if err := s.pilotAct(g, pilot, state); err != nil {
					return nil, err
				}
			} else {
				if _, err := g.OpponentAct(); err != nil {
					return nil, err
				}
			}

		case game.Drawing:
			if !state.PlayerHasDrawn {
				for _, i := range pilot.ChooseDiscards(state.Player.Hand) {
					if err := g.ToggleCardSelection(i); err != nil {
						return nil, err
					}
				}
				if _, err := g.Draw(); err != nil {
					return nil, err
				}
			} else {
				if _, err := g.OpponentDraw(); err != nil {
					return nil, err
				}
			}

		case game.GameOver:
			result, err := g.Continue()
			if err != nil {
				return nil, err
			}
			if result != nil {
				return result, nil
			}

		default:
			return nil, fmt.Errorf("unexpected phase %s", state.Phase)
		}
	}

	return nil, fmt.Errorf("match did not terminate within %d steps", maxSteps)
}

// pilotAct maps an AI decision onto the player seat's strict commands,
// clamping amounts to the limits first
func (s *Simulator) pilotAct(g *game.Game, pilot *game.AIEngine, state game.State) error {
	eval, err := evaluator.Evaluate(state.Player.Hand)
	if err != nil {
		return err
	}

	cap := state.Limits.Cap(state.Betting.Round)
	decision := pilot.Decide(eval, game.DecisionContext{
		Pot:          state.Pot,
		CurrentBet:   state.Betting.CurrentBet,
		AmountToCall: state.AmountToCall(),
		Cap:          cap,
		Chips:        state.Player.Chips,
	})

	switch decision.Action {
	case game.Bet:
		amount := min(decision.Amount, cap)
		amount = min(amount, state.Player.Chips)
		if amount <= 0 || state.Betting.CurrentBet > 0 {
			return g.Check()
		}
		return g.Bet(amount)
	case game.Check:
		if state.AmountToCall() > 0 {
			return g.Call()
		}
		return g.Check()
	case game.Call:
		return g.Call()
	case game.Raise:
		increment := min(decision.Amount, cap-state.Betting.CurrentBet)
		if increment <= 0 {
			return g.Call()
		}
		return g.Raise(increment)
	case game.Fold:
		return g.Fold()
	default:
		return fmt.Errorf("unknown decision %v", decision.Action)
	}
}
