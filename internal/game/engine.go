package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/liarsbar/internal/deck"
	"github.com/lox/liarsbar/internal/randutil"
	"github.com/lox/liarsbar/internal/revolver"
)

// Reward magnitudes surfaced to the learning consumers. These are part of
// the external reward contract, not internal engine state.
const (
	RewardPlay       = 10.0   // any accepted play
	RewardDevilBonus = 20.0   // extra when the play includes the Devil
	RewardChallenge  = 50.0   // challenge that eliminates the claimant
	RewardBackfire   = -100.0 // challenge that eliminates the challenger
	RewardSurvival   = 30.0   // surviving a retribution pull
	RewardVictory    = 200.0  // being the last player standing
)

var (
	// ErrIllegalMove is returned when an action references cards not in the
	// acting player's hand or challenges with no active claim. The engine
	// state is unchanged when it is returned.
	ErrIllegalMove = errors.New("game: illegal move")

	// ErrGameOver is returned by Step once the game has terminated
	ErrGameOver = errors.New("game: game is over")
)

// Config configures a new game
type Config struct {
	Players int        // must satisfy Players * deck.HandSize == deck.Size
	Rng     *rand.Rand // optional; defaults to a time-seeded source
	Logger  *log.Logger
}

// GameState is the turn state machine for a single game. It owns the hands,
// the played pile, the active claim, per-seat liveness and the revolver
// mechanic. One instance serves one game; it is not safe for concurrent use.
type GameState struct {
	rng        *rand.Rand
	logger     *log.Logger
	numPlayers int

	hands     [][]deck.Card
	pile      []deck.Card
	discarded int // cards retired by past resolutions, for conservation checks
	claim     *Claim
	claimant  int
	target    deck.Card
	turn      int
	alive     []bool
	revolvers *revolver.Mechanic
	done      bool
}

// New creates a game for the configured player count. The player count is
// validated eagerly so a mis-sized table fails before any round starts.
func New(cfg Config) (*GameState, error) {
	if cfg.Players*deck.HandSize != deck.Size {
		return nil, fmt.Errorf("%w, got %d players", deck.ErrPlayerCount, cfg.Players)
	}
	rng := cfg.Rng
	if rng == nil {
		rng = randutil.New(time.Now().UnixNano())
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &GameState{
		rng:        rng,
		logger:     logger,
		numPlayers: cfg.Players,
		claimant:   -1,
	}, nil
}

// NumPlayers returns the configured player count
func (g *GameState) NumPlayers() int {
	return g.numPlayers
}

// Reset deals a fresh game: draws a round target, builds and deals the
// deck, arms every player's revolver with a single bullet and hands the
// turn to seat 0. It returns the first acting player's observation.
func (g *GameState) Reset() (Observation, error) {
	g.target = deck.Targets[g.rng.IntN(len(deck.Targets))]
	hands, err := deck.Build(g.target, g.numPlayers, g.rng)
	if err != nil {
		return Observation{}, err
	}
	g.hands = hands
	g.pile = g.pile[:0]
	g.discarded = 0
	g.claim = nil
	g.claimant = -1
	g.turn = 0
	g.alive = make([]bool, g.numPlayers)
	for i := range g.alive {
		g.alive[i] = true
	}
	g.revolvers = revolver.New(g.numPlayers, g.rng)
	for i := 0; i < g.numPlayers; i++ {
		g.revolvers.Arm(i)
	}
	g.done = false

	g.logger.Debug("game reset", "players", g.numPlayers, "target", g.target)
	return g.Observe(), nil
}

// Observe returns the current acting player's observation
func (g *GameState) Observe() Observation {
	return g.ObserveSeat(g.turn)
}

// ObserveSeat returns the observation from a specific seat's perspective
func (g *GameState) ObserveSeat(player int) Observation {
	obs := Observation{
		Player:    player,
		Hand:      append([]deck.Card(nil), g.hands[player]...),
		Chambers:  g.revolvers.Loaded(player),
		FiringPin: g.revolvers.Position(player),
		Target:    g.target,
		Alive:     append([]bool(nil), g.alive...),
		HandSizes: make([]int, g.numPlayers),
	}
	for i, hand := range g.hands {
		obs.HandSizes[i] = len(hand)
	}
	if g.claim != nil {
		claim := *g.claim
		obs.Claim = &claim
	}
	return obs
}

// LegalActions enumerates the legal actions for the acting player
func (g *GameState) LegalActions() []Action {
	if g.done {
		return nil
	}
	return LegalActions(g.hands[g.turn], g.claim, g.target)
}

// Turn returns the seat index of the acting player
func (g *GameState) Turn() int {
	return g.turn
}

// Done reports whether the game has terminated
func (g *GameState) Done() bool {
	return g.done
}

// Winner returns the surviving seat, or -1 if the game is still running or
// ended with no survivor
func (g *GameState) Winner() int {
	if !g.done {
		return -1
	}
	for i, alive := range g.alive {
		if alive {
			return i
		}
	}
	return -1
}

// Step applies the acting player's action and advances the turn to the
// next living seat. It returns the next acting player's observation, the
// reward earned by the step, and whether the game has terminated.
//
// Step is atomic: on error no hand, pile or turn state has changed.
func (g *GameState) Step(action Action) (Observation, float64, bool, error) {
	if g.done {
		return g.Observe(), 0, true, ErrGameOver
	}

	var reward float64
	var err error
	switch action.Type {
	case Challenge:
		reward, err = g.resolveChallenge()
	case PlayDevil, PlayCombo:
		reward, err = g.applyPlay(action)
	default:
		err = fmt.Errorf("%w: unknown action type %d", ErrIllegalMove, action.Type)
	}
	if err != nil {
		return g.Observe(), 0, g.done, err
	}

	g.advanceTurn()
	if g.done && g.Winner() >= 0 {
		reward += RewardVictory
	}
	return g.Observe(), reward, g.done, nil
}

// applyPlay removes the played cards from the acting player's hand, appends
// them to the pile and installs the new claim.
func (g *GameState) applyPlay(action Action) (float64, error) {
	cards := action.Cards
	if action.Type == PlayDevil {
		cards = []deck.Card{deck.Devil}
	}
	if len(cards) == 0 || len(cards) > MaxComboSize {
		return 0, fmt.Errorf("%w: play of %d cards", ErrIllegalMove, len(cards))
	}
	if action.Count != 0 && action.Count != len(cards) {
		return 0, fmt.Errorf("%w: claimed %d cards but played %d", ErrIllegalMove, action.Count, len(cards))
	}
	if err := g.removeFromHand(g.turn, cards); err != nil {
		return 0, err
	}

	g.pile = append(g.pile, cards...)
	g.claim = &Claim{Count: len(cards), Target: g.target}
	g.claimant = g.turn

	reward := RewardPlay
	if deck.Count(cards, deck.Devil) > 0 {
		reward += RewardDevilBonus
	}
	g.logger.Debug("play accepted", "seat", g.turn, "action", action, "pile", len(g.pile))
	return reward, nil
}

// resolveChallenge verifies the active claim against the cards actually
// played, pulls the loser's revolver, applies devil retribution if the
// Devil surfaced, and resets the round.
func (g *GameState) resolveChallenge() (float64, error) {
	if g.claim == nil {
		return 0, fmt.Errorf("%w: challenge with no active claim", ErrIllegalMove)
	}

	challenger := g.turn
	claimant := g.claimant
	slice := g.pile[len(g.pile)-g.claim.Count:]
	valid := deck.CountMatching(slice, g.claim.Target)
	honest := valid >= g.claim.Count

	// Honest claim: the challenge fails and the challenger pulls.
	// Dishonest claim: the claimant pulls.
	loser := claimant
	if honest {
		loser = challenger
	}
	fired := g.pull(loser)

	var reward float64
	switch {
	case !honest && fired:
		reward += RewardChallenge
	case honest && fired:
		reward += RewardBackfire
	}
	g.logger.Debug("challenge resolved",
		"challenger", challenger, "claimant", claimant,
		"valid", valid, "claimed", g.claim.Count, "honest", honest,
		"loser", loser, "fired", fired)

	if deck.Count(slice, deck.Devil) > 0 {
		reward += g.retributionSweep(loser, challenger)
	}

	// Round reset: retire the pile, clear the claim and redraw the target.
	g.discarded += len(g.pile)
	g.pile = g.pile[:0]
	g.claim = nil
	g.claimant = -1
	g.target = deck.Targets[g.rng.IntN(len(deck.Targets))]

	if g.aliveCount() <= 1 {
		g.done = true
	}
	return reward, nil
}

// retributionSweep pulls the revolver of every still-alive player except
// the one the primary resolution just pulled. Each player is pulled at most
// once. Returns the survival reward earned by the acting player.
func (g *GameState) retributionSweep(pulled, actor int) float64 {
	var reward float64
	for p := 0; p < g.numPlayers; p++ {
		if p == pulled || !g.alive[p] {
			continue
		}
		fired := g.pull(p)
		if p == actor && !fired {
			reward += RewardSurvival
		}
	}
	return reward
}

// pull fires a player's revolver and marks them eliminated if it fires.
// This is the sole elimination path in the engine.
func (g *GameState) pull(player int) bool {
	fired := g.revolvers.Pull(player)
	if fired {
		g.alive[player] = false
		g.logger.Debug("player eliminated", "seat", player, "remaining", g.aliveCount())
	}
	return fired
}

// removeFromHand removes the named cards from a player's hand. It verifies
// full membership before mutating anything so a failed play leaves the hand
// untouched.
func (g *GameState) removeFromHand(player int, cards []deck.Card) error {
	hand := g.hands[player]
	for _, c := range cards {
		if deck.Count(hand, c) < deck.Count(cards, c) {
			return fmt.Errorf("%w: %s not in hand", ErrIllegalMove, c)
		}
	}
	for _, c := range cards {
		for i := range hand {
			if hand[i] == c {
				hand = append(hand[:i], hand[i+1:]...)
				break
			}
		}
	}
	g.hands[player] = hand
	return nil
}

// advanceTurn moves the cursor to the next living seat
func (g *GameState) advanceTurn() {
	if g.aliveCount() == 0 {
		g.done = true
		return
	}
	for i := 0; i < g.numPlayers; i++ {
		g.turn = (g.turn + 1) % g.numPlayers
		if g.alive[g.turn] {
			return
		}
	}
}

func (g *GameState) aliveCount() int {
	n := 0
	for _, alive := range g.alive {
		if alive {
			n++
		}
	}
	return n
}

// Validate checks the engine's conservation invariants: every card is in a
// hand, on the pile or retired by a past resolution, and every revolver
// still holds exactly one bullet.
func (g *GameState) Validate() error {
	total := len(g.pile) + g.discarded
	for _, hand := range g.hands {
		total += len(hand)
	}
	if total != deck.Size {
		return fmt.Errorf("game: card conservation violated: %d cards accounted for, want %d", total, deck.Size)
	}
	return g.revolvers.Validate()
}
