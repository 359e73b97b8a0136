package main

import (
	"fmt"

	"github.com/lox/fivecarddraw/internal/deck"
	"github.com/lox/fivecarddraw/internal/evaluator"
)

type EvalCmd struct {
	Hands []string `kong:"arg,required,help='Hands in compact notation, e.g. AsKsQsJsTs'"`
}

func (c *EvalCmd) Run() error {
	evals := make([]evaluator.Evaluation, 0, len(c.Hands))
	for _, notation := range c.Hands {
		cards, err := deck.ParseCards(notation)
		if err != nil {
			return fmt.Errorf("invalid hand %q: %w", notation, err)
		}
		eval, err := evaluator.Evaluate(cards)
		if err != nil {
			return fmt.Errorf("invalid hand %q: %w", notation, err)
		}
		evals = append(evals, eval)
		fmt.Printf("%-15s %s (value %d)\n", notation, eval.Category, eval.Value)
	}

	if len(evals) == 2 {
		switch evaluator.Compare(evals[0], evals[1]) {
		case 1:
			fmt.Println("first hand wins")
		case -1:
			fmt.Println("second hand wins")
		default:
			fmt.Println("tie")
		}
	}
	return nil
}
