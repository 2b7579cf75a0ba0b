package game

import (
	"fmt"
	"strings"
)

// Board layout: fourteen counters in sowing order. Indices 0-5 are Player
// One's pits and 6 is their store; 7-12 are Player Two's pits and 13 is
// their store.
const (
	PitsPerSide     = 6
	BoardSize       = 14
	PlayerOneStore  = 6
	PlayerTwoStore  = 13
	StartingMarbles = 6
)

// Player identifies a side of the board.
type Player uint8

const (
	PlayerOne Player = iota
	PlayerTwo
)

func (p Player) String() string {
	if p == PlayerOne {
		return "Player 1"
	}
	return "Player 2"
}

// Opponent returns the other side.
func (p Player) Opponent() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// pitOffset returns the index of the player's leftmost pit.
func (p Player) pitOffset() int {
	if p == PlayerOne {
		return 0
	}
	return PlayerOneStore + 1
}

// store returns the index of the player's store.
func (p Player) store() int {
	if p == PlayerOne {
		return PlayerOneStore
	}
	return PlayerTwoStore
}

// Action selects the Nth pit counting from the mover's leftmost pit.
type Action uint8

func (a Action) String() string {
	return fmt.Sprintf("pit %d", uint8(a))
}

// State is the full board position including whose turn it is.
type State struct {
	Pits   [BoardSize]uint8
	ToMove Player
}

// NewState returns the standard starting position with Player One to move.
func NewState() State {
	var s State
	for i := 0; i < BoardSize; i++ {
		if i == PlayerOneStore || i == PlayerTwoStore {
			continue
		}
		s.Pits[i] = StartingMarbles
	}
	return s
}

// View is the mover centric projection used as the learning key: the mover's
// six pits first, then the opponent's six. Stores and the turn marker are
// dropped, so mirrored positions share a single table entry.
type View [2 * PitsPerSide]uint8

// View projects the position from the mover's perspective.
func (s State) View() View {
	var v View
	m := s.ToMove.pitOffset()
	o := s.ToMove.Opponent().pitOffset()
	for i := 0; i < PitsPerSide; i++ {
		v[i] = s.Pits[m+i]
		v[PitsPerSide+i] = s.Pits[o+i]
	}
	return v
}

// Row returns a copy of one side's six playing pits in board order.
func (s State) Row(p Player) [PitsPerSide]uint8 {
	var row [PitsPerSide]uint8
	off := p.pitOffset()
	copy(row[:], s.Pits[off:off+PitsPerSide])
	return row
}

// Score returns the number of marbles in a player's store.
func (s State) Score(p Player) uint8 {
	return s.Pits[p.store()]
}

// String renders the position with Player Two's pits reversed on top, the
// way the board looks from Player One's seat.
func (s State) String() string {
	var sb strings.Builder
	top := s.Row(PlayerTwo)
	fmt.Fprintf(&sb, "%2d |", s.Score(PlayerTwo))
	for i := PitsPerSide - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%3d", top[i])
	}
	sb.WriteString(" |\n")
	bottom := s.Row(PlayerOne)
	sb.WriteString("   |")
	for i := 0; i < PitsPerSide; i++ {
		fmt.Fprintf(&sb, "%3d", bottom[i])
	}
	fmt.Fprintf(&sb, " | %2d\n", s.Score(PlayerOne))
	fmt.Fprintf(&sb, "to move: %s", s.ToMove)
	return sb.String()
}
