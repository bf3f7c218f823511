package game

import "github.com/lox/liarsbar/internal/deck"

// MaxComboSize is the largest combination a player may claim in one play
const MaxComboSize = 3

// LegalActions enumerates every legal action for a hand under the active
// claim (nil when no claim is live) and the current round target.
//
// The enumeration is deterministic: the same hand, claim and target always
// produce the same actions in the same order. Combinations are canonical by
// rank multiset, so two Jokers in hand yield one "play a Joker" action, not
// two positionally distinct duplicates.
func LegalActions(hand []deck.Card, claim *Claim, target deck.Card) []Action {
	var actions []Action
	if claim != nil {
		actions = append(actions, NewChallenge())
	}

	// Holding the Devil forces it: the only play on offer is the Devil
	// itself, overriding normal combination generation.
	if deck.Count(hand, deck.Devil) > 0 {
		return append(actions, NewPlayDevil())
	}

	// Candidate pool: cards matching the round target, Jokers included.
	targets := deck.Count(hand, target)
	jokers := deck.Count(hand, deck.Joker)

	minSize := 1
	if claim != nil {
		minSize = claim.Count
	}
	for size := minSize; size <= MaxComboSize; size++ {
		for nt := min(size, targets); nt >= 0; nt-- {
			nj := size - nt
			if nj > jokers {
				continue
			}
			cards := make([]deck.Card, 0, size)
			for i := 0; i < nt; i++ {
				cards = append(cards, target)
			}
			for i := 0; i < nj; i++ {
				cards = append(cards, deck.Joker)
			}
			actions = append(actions, NewPlayCombo(cards...))
		}
	}
	return actions
}
