package game

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/liarsbar/internal/deck"
	"github.com/lox/liarsbar/internal/randutil"
	"github.com/lox/liarsbar/internal/revolver"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestGame(t *testing.T, seed int64) *GameState {
	t.Helper()
	g, err := New(Config{
		Players: deck.Size / deck.HandSize,
		Rng:     randutil.New(seed),
		Logger:  testLogger(),
	})
	require.NoError(t, err)
	return g
}

// scenarioGame builds a game with injected hands and bullet placements,
// bypassing the dealer so challenge outcomes are deterministic.
func scenarioGame(hands [][]deck.Card, target deck.Card, bullets []int) *GameState {
	n := len(hands)
	rng := randutil.New(1)
	mech := revolver.New(n, rng)
	alive := make([]bool, n)
	for i := 0; i < n; i++ {
		mech.ArmAt(i, bullets[i])
		alive[i] = true
	}
	return &GameState{
		rng:        rng,
		logger:     testLogger(),
		numPlayers: n,
		hands:      hands,
		claimant:   -1,
		target:     target,
		alive:      alive,
		revolvers:  mech,
	}
}

func TestNewRejectsPlayerCount(t *testing.T) {
	for _, players := range []int{0, 2, 3, 5} {
		_, err := New(Config{Players: players, Logger: testLogger()})
		if !errors.Is(err, deck.ErrPlayerCount) {
			t.Errorf("New with %d players: expected ErrPlayerCount, got %v", players, err)
		}
	}
}

func TestResetInvariants(t *testing.T) {
	g := newTestGame(t, 42)
	obs, err := g.Reset()
	require.NoError(t, err)

	assert.Equal(t, 0, obs.Player)
	assert.Len(t, obs.Hand, deck.HandSize)
	assert.True(t, obs.Target.IsTarget())
	assert.Nil(t, obs.Claim)

	total := 0
	for _, size := range obs.HandSizes {
		assert.Equal(t, deck.HandSize, size)
		total += size
	}
	assert.Equal(t, deck.Size, total)
	for seat, alive := range obs.Alive {
		assert.True(t, alive, "seat %d should start alive", seat)
	}
	assert.Equal(t, 0, obs.FiringPin)
	require.NoError(t, g.Validate())
}

func TestStepPlayRecordsClaim(t *testing.T) {
	p0 := []deck.Card{deck.Ace, deck.Joker, deck.King, deck.King, deck.Queen}
	p1 := []deck.Card{deck.Queen, deck.Queen, deck.King, deck.Ace, deck.Ace}
	g := scenarioGame([][]deck.Card{p0, p1}, deck.Ace, []int{5, 5})

	obs, reward, done, err := g.Step(NewPlayCombo(deck.Ace, deck.Joker))
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, RewardPlay, reward)

	assert.Equal(t, 1, obs.Player, "turn should pass to the next seat")
	require.NotNil(t, obs.Claim)
	assert.Equal(t, 2, obs.Claim.Count)
	assert.Equal(t, deck.Ace, obs.Claim.Target)
	assert.Equal(t, []int{3, 5}, obs.HandSizes)
	assert.Equal(t, []deck.Card{deck.Ace, deck.Joker}, g.pile)
}

func TestHonestClaimBackfiresOnChallenger(t *testing.T) {
	// End-to-end: player 0 plays two genuine matches, player 1 challenges
	// into a loaded chamber and eliminates themselves.
	p0 := []deck.Card{deck.Ace, deck.Joker, deck.King, deck.King, deck.Queen}
	p1 := []deck.Card{deck.Queen, deck.Queen, deck.King, deck.Ace, deck.Ace}
	g := scenarioGame([][]deck.Card{p0, p1}, deck.Ace, []int{5, 0})

	_, reward, done, err := g.Step(NewPlayCombo(deck.Ace, deck.Joker))
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, RewardPlay, reward)

	_, reward, done, err = g.Step(NewChallenge())
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, RewardBackfire+RewardVictory, reward)
	assert.Equal(t, 0, g.Winner())
	assert.Equal(t, []bool{true, false}, g.alive)
}

func TestHonestClaimChallengerSurvives(t *testing.T) {
	p0 := []deck.Card{deck.Ace, deck.Joker, deck.King, deck.King, deck.Queen}
	p1 := []deck.Card{deck.Queen, deck.Queen, deck.King, deck.Ace, deck.Ace}
	g := scenarioGame([][]deck.Card{p0, p1}, deck.Ace, []int{5, 5})

	_, _, _, err := g.Step(NewPlayCombo(deck.Ace, deck.Joker))
	require.NoError(t, err)

	obs, reward, done, err := g.Step(NewChallenge())
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 0.0, reward, "surviving a failed challenge earns nothing")
	assert.Equal(t, []bool{true, true}, g.alive)

	// Round reset: pile and claim cleared, fresh target drawn, firing pin
	// advanced for the challenger only.
	assert.Nil(t, obs.Claim)
	assert.Empty(t, g.pile)
	assert.True(t, g.target.IsTarget())
	assert.Equal(t, 1, g.revolvers.Position(1))
	assert.Equal(t, 0, g.revolvers.Position(0))
	assert.Equal(t, 0, obs.Player, "turn should wrap back to player 0")
}

func TestDishonestClaimEliminatesClaimant(t *testing.T) {
	// The engine validates hand membership only; a dishonest play slipped
	// past the enumerator must still resolve against the claimant.
	p0 := []deck.Card{deck.Queen, deck.Queen, deck.King, deck.King, deck.Ace}
	p1 := []deck.Card{deck.Ace, deck.Joker, deck.King, deck.Queen, deck.Queen}
	g := scenarioGame([][]deck.Card{p0, p1}, deck.Ace, []int{0, 5})

	_, _, _, err := g.Step(NewPlayCombo(deck.Queen, deck.Queen))
	require.NoError(t, err)

	_, reward, done, err := g.Step(NewChallenge())
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, RewardChallenge+RewardVictory, reward)
	assert.Equal(t, 1, g.Winner())
	assert.Equal(t, []bool{false, true}, g.alive)
}

func TestDevilRetributionSweep(t *testing.T) {
	hands := [][]deck.Card{
		{deck.Devil, deck.Ace, deck.King, deck.Queen, deck.Queen},
		{deck.Ace, deck.Joker, deck.King, deck.Queen, deck.Queen},
		{deck.Ace, deck.King, deck.King, deck.Queen, deck.Queen},
		{deck.Ace, deck.Ace, deck.King, deck.Joker, deck.Queen},
	}
	// Claimant's chamber fires immediately; everyone else survives the sweep.
	g := scenarioGame(hands, deck.Ace, []int{0, 5, 5, 5})

	_, _, _, err := g.Step(NewPlayDevil())
	require.NoError(t, err)

	// The Devil never matches the target, so the challenge succeeds: the
	// claimant is pulled, then the Devil triggers a sweep of everyone else.
	_, reward, done, err := g.Step(NewChallenge())
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, RewardChallenge+RewardSurvival, reward)
	assert.Equal(t, []bool{false, true, true, true}, g.alive)

	// Every surviving player was pulled exactly once.
	for seat := 1; seat < 4; seat++ {
		assert.Equal(t, 1, g.revolvers.Position(seat), "seat %d", seat)
	}
	assert.Equal(t, 1, g.revolvers.Position(0), "claimant pulled once, not swept")
}

func TestChallengeWithoutClaim(t *testing.T) {
	g := newTestGame(t, 3)
	_, err := g.Reset()
	require.NoError(t, err)

	before := g.ObserveSeat(g.Turn())
	_, reward, done, err := g.Step(NewChallenge())
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.Equal(t, 0.0, reward)
	assert.False(t, done)

	after := g.ObserveSeat(before.Player)
	assert.Equal(t, before.Hand, after.Hand, "state must be unchanged on error")
	assert.Equal(t, before.Player, g.Turn())
}

func TestPlayMissingCardsLeavesStateUntouched(t *testing.T) {
	p0 := []deck.Card{deck.Queen, deck.Queen, deck.King, deck.King, deck.Ace}
	p1 := []deck.Card{deck.Ace, deck.Joker, deck.King, deck.Queen, deck.Queen}
	g := scenarioGame([][]deck.Card{p0, p1}, deck.Ace, []int{0, 5})

	_, _, _, err := g.Step(NewPlayCombo(deck.Ace, deck.Ace))
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.Equal(t, p0, g.hands[0])
	assert.Empty(t, g.pile)
	assert.Nil(t, g.claim)
	assert.Equal(t, 0, g.Turn())
}

func TestClaimCountMismatchRejected(t *testing.T) {
	p0 := []deck.Card{deck.Ace, deck.Ace, deck.King, deck.King, deck.Queen}
	p1 := []deck.Card{deck.Ace, deck.Joker, deck.King, deck.Queen, deck.Queen}
	g := scenarioGame([][]deck.Card{p0, p1}, deck.Ace, []int{0, 5})

	action := Action{Type: PlayCombo, Count: 3, Cards: []deck.Card{deck.Ace, deck.Ace}}
	_, _, _, err := g.Step(action)
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestStepAfterGameOver(t *testing.T) {
	p0 := []deck.Card{deck.Ace, deck.King, deck.King, deck.Queen, deck.Queen}
	p1 := []deck.Card{deck.Ace, deck.Joker, deck.King, deck.Queen, deck.Queen}
	g := scenarioGame([][]deck.Card{p0, p1}, deck.Ace, []int{5, 0})

	_, _, _, err := g.Step(NewPlayCombo(deck.Ace))
	require.NoError(t, err)
	_, _, done, err := g.Step(NewChallenge())
	require.NoError(t, err)
	require.True(t, done)

	_, _, done, err = g.Step(NewPlayCombo(deck.Ace))
	assert.ErrorIs(t, err, ErrGameOver)
	assert.True(t, done)
}

// TestRandomPlayoutInvariants drives full games with random legal actions
// and checks liveness monotonicity, cursor validity and card conservation
// after every step.
func TestRandomPlayoutInvariants(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := newTestGame(t, seed)
		_, err := g.Reset()
		require.NoError(t, err)

		rng := randutil.New(seed + 1000)
		prevAlive := g.aliveCount()
		for steps := 0; steps < 500 && !g.Done(); steps++ {
			legal := g.LegalActions()
			if len(legal) == 0 {
				break
			}
			_, _, done, err := g.Step(legal[rng.IntN(len(legal))])
			require.NoError(t, err, "seed %d step %d", seed, steps)
			require.NoError(t, g.Validate(), "seed %d step %d", seed, steps)

			alive := g.aliveCount()
			require.LessOrEqual(t, alive, prevAlive, "alive count must never increase")
			prevAlive = alive

			if !done {
				require.True(t, g.alive[g.Turn()], "cursor on eliminated seat %d", g.Turn())
			}
			require.Equal(t, done, alive <= 1, "done exactly when one player remains")
		}
	}
}
