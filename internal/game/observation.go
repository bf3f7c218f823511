package game

import (
	"github.com/lox/liarsbar/internal/deck"
	"github.com/lox/liarsbar/internal/revolver"
)

// Claim records the most recent unchallenged play: how many cards were
// claimed and the round target they were claimed against
type Claim struct {
	Count  int
	Target deck.Card
}

// Observation is the acting player's view of the game. All slices are
// copies; mutating an observation never touches engine state.
type Observation struct {
	Player    int                     // acting player's seat index
	Hand      []deck.Card             // own hand
	Chambers  [revolver.Chambers]bool // own revolver chamber states
	FiringPin int                     // own current firing position
	Claim     *Claim                  // active claim, nil when none
	Target    deck.Card               // current round target rank
	Alive     []bool                  // per-seat liveness, ordered by seat
	HandSizes []int                   // per-seat hand sizes, ordered by seat
}

// LegalActions enumerates the actions legal from this observation. This is
// the enumerator boundary the policies consume; it never inspects hidden
// state.
func (o Observation) LegalActions() []Action {
	return LegalActions(o.Hand, o.Claim, o.Target)
}
