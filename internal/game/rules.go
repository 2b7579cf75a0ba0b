package game

import "fmt"

// Transition is the outcome of applying one action to a position.
type Transition struct {
	Next     State
	Reward   float64
	Terminal bool
	FreeTurn bool
	Captured uint8
}

// Apply plays one move for the side to move and returns the outcome. The
// move resolves in order: sow, capture, end-of-game sweep, reward, turn
// switch. The reward is the mover's store gain minus the opponent's,
// measured after capture and sweep.
//
// Apply panics when the action is out of range or plays an empty pit;
// callers own validation (see Match.Play).
func Apply(s State, a Action) Transition {
	mover := s.ToMove
	if int(a) >= PitsPerSide {
		panic(fmt.Sprintf("game: action %d out of range [0,%d)", a, PitsPerSide))
	}
	src := mover.pitOffset() + int(a)
	if s.Pits[src] == 0 {
		panic(fmt.Sprintf("game: action %d plays an empty pit", a))
	}

	prevOwn := int(s.Pits[mover.store()])
	prevOpp := int(s.Pits[mover.Opponent().store()])

	next := s
	last := sow(&next.Pits, src)
	captured := steal(&next.Pits, mover, last)
	terminal := sweepIfEnded(&next.Pits)

	dOwn := int(next.Pits[mover.store()]) - prevOwn
	dOpp := int(next.Pits[mover.Opponent().store()]) - prevOpp

	freeTurn := last == mover.store() && !terminal
	if !terminal && !freeTurn {
		next.ToMove = mover.Opponent()
	}

	return Transition{
		Next:     next,
		Reward:   float64(dOwn - dOpp),
		Terminal: terminal,
		FreeTurn: freeTurn,
		Captured: captured,
	}
}

// sow empties the source pit and drops one marble into each following
// counter, wrapping around the whole board. Both stores receive marbles on
// the way. Returns the index of the last counter filled.
func sow(pits *[BoardSize]uint8, src int) int {
	count := int(pits[src])
	pits[src] = 0
	idx := src
	for ; count > 0; count-- {
		idx = (idx + 1) % BoardSize
		pits[idx]++
	}
	return idx
}

// steal resolves the capture rule: when the last marble landed in one of the
// mover's own pits that was empty before, and the opposite pit holds any
// marbles, both pits are emptied into the mover's store. Stores never
// trigger a capture. Returns the number of marbles captured.
func steal(pits *[BoardSize]uint8, mover Player, last int) uint8 {
	lo := mover.pitOffset()
	if last < lo || last >= lo+PitsPerSide {
		return 0
	}
	if pits[last] != 1 {
		return 0
	}
	opposite := oppositePit(last)
	if pits[opposite] == 0 {
		return 0
	}
	captured := pits[last] + pits[opposite]
	pits[mover.store()] += captured
	pits[last] = 0
	pits[opposite] = 0
	return captured
}

// oppositePit maps a playing pit to the one facing it across the board.
func oppositePit(pit int) int {
	return 2*PitsPerSide - pit
}

// sweepIfEnded checks the termination condition: once either side's six
// pits are all empty, every remaining marble moves into its owner's store
// and the position is final.
func sweepIfEnded(pits *[BoardSize]uint8) bool {
	if sideSum(pits, PlayerOne) != 0 && sideSum(pits, PlayerTwo) != 0 {
		return false
	}
	for _, p := range []Player{PlayerOne, PlayerTwo} {
		off := p.pitOffset()
		total := 0
		for i := off; i < off+PitsPerSide; i++ {
			total += int(pits[i])
			pits[i] = 0
		}
		pits[p.store()] += uint8(total)
	}
	return true
}

func sideSum(pits *[BoardSize]uint8, p Player) int {
	off := p.pitOffset()
	sum := 0
	for i := off; i < off+PitsPerSide; i++ {
		sum += int(pits[i])
	}
	return sum
}
