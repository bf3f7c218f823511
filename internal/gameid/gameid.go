// Package gameid generates sortable episode identifiers used to correlate
// log lines and report rows within a training run.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Crockford's base32 alphabet
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// IDLength is the length of every generated ID: a 9-character millisecond
// timestamp prefix (sortable) plus a 9-character random suffix.
const IDLength = 18

// RandSource interface for dependency injection of randomness
type RandSource interface {
	IntN(n int) int
}

// Generator produces episode IDs with configurable randomness
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a generator. A nil RandSource falls back to
// crypto/rand for the suffix.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// New creates an episode ID using crypto/rand for the suffix
func New() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new episode ID
func (g *Generator) Generate() string {
	var buf [IDLength]byte

	ts := uint64(time.Now().UnixMilli())
	for i := 8; i >= 0; i-- {
		buf[i] = alphabet[ts&0x1f]
		ts >>= 5
	}

	suffix := buf[9:]
	if g.randSource != nil {
		for i := range suffix {
			suffix[i] = alphabet[g.randSource.IntN(len(alphabet))]
		}
	} else {
		var raw [9]byte
		if _, err := rand.Read(raw[:]); err != nil {
			panic("gameid: failed to read random bytes: " + err.Error())
		}
		for i := range suffix {
			suffix[i] = alphabet[raw[i]&0x1f]
		}
	}
	return string(buf[:])
}

// Validate checks that an ID has the expected length and alphabet
func Validate(id string) error {
	if len(id) != IDLength {
		return fmt.Errorf("episode ID must be exactly %d characters, got %d", IDLength, len(id))
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
