// Package revolver implements the elimination mechanic: a six-chamber
// cylinder per player with a single bullet, advanced one chamber per pull.
package revolver

import (
	"fmt"
	rand "math/rand/v2"
)

// Chambers is the number of chambers in every cylinder
const Chambers = 6

// cylinder holds one player's chamber states and firing pin position
type cylinder struct {
	loaded [Chambers]bool
	pin    int
}

// Mechanic owns one cylinder per player, keyed by player index.
// Cylinders are armed once at game start and never re-armed.
type Mechanic struct {
	rng       *rand.Rand
	cylinders []cylinder
}

// New creates a mechanic with an unarmed cylinder per player
func New(numPlayers int, rng *rand.Rand) *Mechanic {
	return &Mechanic{
		rng:       rng,
		cylinders: make([]cylinder, numPlayers),
	}
}

// Arm places exactly one bullet in a uniformly random chamber of the
// player's cylinder. Any previously loaded chamber is cleared first, so the
// single-bullet invariant holds even if Arm is called again.
func (m *Mechanic) Arm(player int) {
	m.ArmAt(player, m.rng.IntN(Chambers))
}

// ArmAt places the bullet in a specific chamber. Deterministic setups
// (tests, replays) use this instead of Arm.
func (m *Mechanic) ArmAt(player, chamber int) {
	cyl := &m.cylinders[player]
	cyl.loaded = [Chambers]bool{}
	cyl.loaded[chamber%Chambers] = true
}

// Pull fires the player's revolver: it reads the chamber aligned with the
// firing pin, advances the pin by one position regardless of the outcome,
// and reports whether the chamber was loaded.
func (m *Mechanic) Pull(player int) bool {
	cyl := &m.cylinders[player]
	fired := cyl.loaded[cyl.pin]
	cyl.pin = (cyl.pin + 1) % Chambers
	return fired
}

// Loaded returns a copy of the player's chamber states
func (m *Mechanic) Loaded(player int) [Chambers]bool {
	return m.cylinders[player].loaded
}

// Position returns the chamber index currently aligned for firing
func (m *Mechanic) Position(player int) int {
	return m.cylinders[player].pin
}

// Validate checks the single-bullet invariant for every cylinder
func (m *Mechanic) Validate() error {
	for i := range m.cylinders {
		bullets := 0
		for _, loaded := range m.cylinders[i].loaded {
			if loaded {
				bullets++
			}
		}
		if bullets != 1 {
			return fmt.Errorf("revolver: player %d has %d bullets, want 1", i, bullets)
		}
	}
	return nil
}
