package testutil

import (
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game"
)

// CreateCaptureState builds a position where Player One's pit 0 holds a
// single marble and pit 1 is empty, so playing pit 0 lands in an empty own
// pit and steals the four marbles sitting opposite, five captured in all.
func CreateCaptureState() game.State {
	return game.State{
		Pits:   [game.BoardSize]uint8{1, 0, 0, 0, 0, 3, 10, 5, 5, 5, 5, 4, 0, 34},
		ToMove: game.PlayerOne,
	}
}

// CreateEndgameState builds a position one move from the end: each side
// keeps a single marble in its last pit, and Player One playing pit 5 banks
// it and triggers the closing sweep. Store counts are the callers' to pick,
// so the same fixture covers wins, losses and draws.
func CreateEndgameState(oneScore, twoScore uint8) game.State {
	s := game.State{ToMove: game.PlayerOne}
	s.Pits[game.PitsPerSide-1] = 1
	s.Pits[game.PlayerOneStore] = oneScore
	s.Pits[game.PlayerTwoStore-1] = 1
	s.Pits[game.PlayerTwoStore] = twoScore
	return s
}
