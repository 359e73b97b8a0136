package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Cards    key.Binding
	Bet      key.Binding
	Check    key.Binding
	Call     key.Binding
	Raise    key.Binding
	Fold     key.Binding
	Draw     key.Binding
	Continue key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Cards: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "select cards"),
		),
		Bet: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bet"),
		),
		Check: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "check"),
		),
		Call: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "call"),
		),
		Raise: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "raise"),
		),
		Fold: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fold"),
		),
		Draw: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "draw"),
		),
		Continue: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cards, k.Bet, k.Check, k.Call, k.Raise, k.Fold, k.Draw, k.Continue, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Bet, k.Check, k.Call, k.Raise, k.Fold},
		{k.Cards, k.Draw, k.Continue, k.Quit},
	}
}
