package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// Deck composition for a single round. The target rank gets one fewer copy
// than the off ranks so that claims about it are genuinely scarce.
const (
	OffRankCopies = 6
	TargetCopies  = 5
	JokerCopies   = 2
	DevilCopies   = 1

	// Size is the total number of cards dealt each round
	Size = 2*OffRankCopies + TargetCopies + JokerCopies + DevilCopies

	// HandSize is the number of cards each player is dealt
	HandSize = 5
)

// ErrPlayerCount is returned when the deck cannot be dealt evenly
var ErrPlayerCount = fmt.Errorf("deck: player count * %d must equal %d", HandSize, Size)

// Build constructs a fresh round deck for the given target rank, shuffles it
// with the provided RNG and deals it round-robin into numPlayers hands of
// HandSize cards each. The deck is fully consumed: no cards are left over.
//
// numPlayers must satisfy numPlayers*HandSize == Size, otherwise the deal
// would silently drop or double-deal cards; Build rejects it up front.
func Build(target Card, numPlayers int, rng *rand.Rand) ([][]Card, error) {
	if !target.IsTarget() {
		return nil, fmt.Errorf("deck: %s cannot be a round target", target)
	}
	if numPlayers <= 0 || numPlayers*HandSize != Size {
		return nil, fmt.Errorf("%w, got %d players", ErrPlayerCount, numPlayers)
	}

	cards := make([]Card, 0, Size)
	for _, rank := range Targets {
		copies := OffRankCopies
		if rank == target {
			copies = TargetCopies
		}
		for i := 0; i < copies; i++ {
			cards = append(cards, rank)
		}
	}
	for i := 0; i < JokerCopies; i++ {
		cards = append(cards, Joker)
	}
	cards = append(cards, Devil)

	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	hands := make([][]Card, numPlayers)
	for i := range hands {
		hands[i] = make([]Card, 0, HandSize)
	}
	for i, card := range cards {
		hands[i%numPlayers] = append(hands[i%numPlayers], card)
	}
	return hands, nil
}

// Count returns how many cards in the slice equal c
func Count(cards []Card, c Card) int {
	n := 0
	for _, card := range cards {
		if card == c {
			n++
		}
	}
	return n
}

// CountMatching returns how many cards in the slice count toward a claim
// against target (the target rank itself plus Jokers)
func CountMatching(cards []Card, target Card) int {
	n := 0
	for _, card := range cards {
		if card.Matches(target) {
			n++
		}
	}
	return n
}
