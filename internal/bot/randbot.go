package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/liarsbar/internal/game"
)

// RandBot is a simple baseline that makes uniform random legal actions
type RandBot struct {
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(logger *log.Logger) *RandBot {
	return &RandBot{logger: logger}
}

func (b *RandBot) SelectAction(rng *rand.Rand, obs game.Observation, legal []game.Action) game.Action {
	return legal[rng.IntN(len(legal))]
}
