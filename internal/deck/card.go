package deck

// Card represents a card in the liar's deck
type Card uint8

const (
	Ace Card = iota
	King
	Queen
	Joker
	Devil
)

// Targets lists the ranks a round target may be drawn from.
// Jokers and the Devil are never round targets.
var Targets = [3]Card{Ace, King, Queen}

// String returns the string representation of a card
func (c Card) String() string {
	switch c {
	case Ace:
		return "A"
	case King:
		return "K"
	case Queen:
		return "Q"
	case Joker:
		return "J"
	case Devil:
		return "D"
	default:
		return "?"
	}
}

// Matches returns true if the card counts toward a claim against target.
// Jokers are wild and match any target.
func (c Card) Matches(target Card) bool {
	return c == target || c == Joker
}

// IsTarget returns true if the card is a rank that can be a round target
func (c Card) IsTarget() bool {
	return c == Ace || c == King || c == Queen
}
