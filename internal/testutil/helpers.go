package testutil

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game"
)

// SeededRNG returns a generator with a fixed seed so exploration draws
// and full playouts repeat run after run.
func SeededRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger discards the match and store logging that tests never read.
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// MatchFrom resumes a match at the given position with logging discarded,
// the usual way tests drop a session onto a fixture board.
func MatchFrom(s game.State) *game.Match {
	return game.NewMatchFrom(s, zerolog.Nop())
}
