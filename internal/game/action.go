package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/liarsbar/internal/deck"
)

// ActionType tags the variants of Action
type ActionType uint8

const (
	// Challenge contests the active claim, triggering resolution
	Challenge ActionType = iota
	// PlayDevil plays the Devil card as a forced single-card play
	PlayDevil
	// PlayCombo plays 1..3 cards claimed to match the round target
	PlayCombo
)

// Action is a move submitted to the engine. It is a tagged variant:
// Challenge carries no payload, PlayDevil always plays exactly the Devil
// card, and PlayCombo carries the cards being played. Actions are plain
// values and can be compared via their Key.
type Action struct {
	Type  ActionType
	Count int         // number of cards played; zero for Challenge
	Cards []deck.Card // cards leaving the hand; nil for Challenge
}

// NewChallenge returns the challenge action
func NewChallenge() Action {
	return Action{Type: Challenge}
}

// NewPlayDevil returns the forced devil play
func NewPlayDevil() Action {
	return Action{Type: PlayDevil, Count: 1, Cards: []deck.Card{deck.Devil}}
}

// NewPlayCombo returns a combination play of the given cards
func NewPlayCombo(cards ...deck.Card) Action {
	return Action{Type: PlayCombo, Count: len(cards), Cards: cards}
}

// Key returns a canonical string identity for the action, suitable for use
// as a value-table key. Combinations with the same rank multiset share a
// key regardless of card order.
func (a Action) Key() string {
	switch a.Type {
	case Challenge:
		return "challenge"
	case PlayDevil:
		return "devil"
	default:
		return fmt.Sprintf("play%d:%s", a.Count, sortedCards(a.Cards))
	}
}

// String returns a human-readable representation for logs
func (a Action) String() string {
	switch a.Type {
	case Challenge:
		return "challenge"
	case PlayDevil:
		return "play devil"
	default:
		return fmt.Sprintf("play %d [%s]", a.Count, sortedCards(a.Cards))
	}
}

func sortedCards(cards []deck.Card) string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	sort.Strings(names)
	return strings.Join(names, "")
}
