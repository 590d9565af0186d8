package engine

import "github.com/AustinJGreen/bangdice/internal/dice"

// Policy decides which dice to keep before a reroll.
//
// Split is only consulted for states that can still be rerolled. It returns
// the dice held back and how many dice go back into the cup; held.Total()
// plus reroll must equal s.Total().
type Policy interface {
	Name() string
	Split(s dice.State) (held dice.State, reroll int)
}

// RerollAll keeps every gattling and dynamite and rerolls everything else.
type RerollAll struct{}

func (RerollAll) Name() string { return "Shoot for as many gattling as possible" }

func (RerollAll) Split(s dice.State) (dice.State, int) {
	return dice.State{Gattling: s.Gattling, Dynamite: s.Dynamite}, s.Other
}
