package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func boardTotal(s State) int {
	total := 0
	for _, c := range s.Pits {
		total += int(c)
	}
	return total
}

func TestApply_SowsOneMarblePerFollowingPit(t *testing.T) {
	s := NewState()

	tr := Apply(s, 1)

	want := [BoardSize]uint8{6, 0, 7, 7, 7, 7, 1, 7, 6, 6, 6, 6, 6, 0}
	assert.Equal(t, want, tr.Next.Pits)
	assert.False(t, tr.Terminal)
	assert.EqualValues(t, 0, tr.Captured)
}

func TestApply_SowsThroughBothStores(t *testing.T) {
	s := State{
		Pits:   [BoardSize]uint8{1, 0, 0, 0, 0, 8, 20, 1, 1, 1, 1, 1, 1, 29},
		ToMove: PlayerOne,
	}

	tr := Apply(s, 5)

	// Eight marbles from pit 5 reach both stores and every opposing pit.
	want := [BoardSize]uint8{1, 0, 0, 0, 0, 0, 21, 2, 2, 2, 2, 2, 2, 30}
	assert.Equal(t, want, tr.Next.Pits)
	// Both stores gained one, so the mover's net reward is zero.
	assert.Equal(t, 0.0, tr.Reward)
	assert.False(t, tr.FreeTurn)
	assert.Equal(t, PlayerTwo, tr.Next.ToMove)
}

func TestApply_FreeTurn_WhenLastMarbleLandsInOwnStore(t *testing.T) {
	s := NewState()

	// Pit 0 holds six marbles; the sixth lands exactly in the store.
	tr := Apply(s, 0)

	assert.True(t, tr.FreeTurn)
	assert.Equal(t, PlayerOne, tr.Next.ToMove, "mover keeps the turn")
	assert.Equal(t, 1.0, tr.Reward)
	assert.False(t, tr.Terminal)
}

func TestApply_NoFreeTurn_WhenLastMarbleLandsElsewhere(t *testing.T) {
	s := NewState()

	tr := Apply(s, 1)

	assert.False(t, tr.FreeTurn)
	assert.Equal(t, PlayerTwo, tr.Next.ToMove, "turn passes to the opponent")
}

func TestApply_FreeTurn_PlayerTwoStore(t *testing.T) {
	s := NewState()
	s.ToMove = PlayerTwo

	// Pit 7 holds six marbles; the sixth lands in store 13.
	tr := Apply(s, 0)

	assert.True(t, tr.FreeTurn)
	assert.Equal(t, PlayerTwo, tr.Next.ToMove)
	assert.Equal(t, 1.0, tr.Reward)
}

func TestApply_Steal_CapturesLandingAndOppositePit(t *testing.T) {
	s := State{
		Pits:   [BoardSize]uint8{1, 0, 0, 0, 0, 3, 10, 5, 5, 5, 5, 4, 0, 34},
		ToMove: PlayerOne,
	}

	// One marble from pit 0 lands in empty pit 1; pit 11 faces it with 4.
	tr := Apply(s, 0)

	assert.EqualValues(t, 5, tr.Captured)
	assert.EqualValues(t, 0, tr.Next.Pits[1], "landing pit emptied")
	assert.EqualValues(t, 0, tr.Next.Pits[11], "opposite pit emptied")
	assert.EqualValues(t, 15, tr.Next.Pits[PlayerOneStore])
	assert.Equal(t, 5.0, tr.Reward)
	assert.False(t, tr.Terminal)
	assert.Equal(t, PlayerTwo, tr.Next.ToMove)
}

func TestApply_Steal_PlayerTwoCapturesFromPlayerOne(t *testing.T) {
	s := State{
		Pits:   [BoardSize]uint8{2, 2, 2, 2, 7, 2, 5, 1, 0, 0, 0, 0, 2, 10},
		ToMove: PlayerTwo,
	}

	// One marble from pit 7 lands in empty pit 8; pit 4 faces it with 7.
	tr := Apply(s, 0)

	assert.EqualValues(t, 8, tr.Captured)
	assert.EqualValues(t, 0, tr.Next.Pits[8])
	assert.EqualValues(t, 0, tr.Next.Pits[4])
	assert.EqualValues(t, 18, tr.Next.Pits[PlayerTwoStore])
	assert.Equal(t, 8.0, tr.Reward, "reward speaks from the mover's perspective")
	assert.Equal(t, PlayerOne, tr.Next.ToMove)
}

func TestApply_Steal_NoCaptureFromTheOpeningPosition(t *testing.T) {
	// Action 4 sows through the store and ends on pit 10, which already
	// holds marbles.
	tr := Apply(NewState(), 4)

	assert.EqualValues(t, 0, tr.Captured)
	assert.EqualValues(t, 7, tr.Next.Pits[10])
	assert.EqualValues(t, 1, tr.Next.Pits[PlayerOneStore], "only the sown marble scores")
	assert.Equal(t, 1.0, tr.Reward)
}

func TestApply_Steal_SkipsNonEmptyLandingPit(t *testing.T) {
	s := State{
		Pits:   [BoardSize]uint8{1, 1, 0, 0, 0, 0, 5, 1, 1, 1, 1, 4, 1, 10},
		ToMove: PlayerOne,
	}

	// Lands in pit 1, which already held a marble before the sow.
	tr := Apply(s, 0)

	assert.EqualValues(t, 0, tr.Captured)
	assert.EqualValues(t, 2, tr.Next.Pits[1])
	assert.EqualValues(t, 4, tr.Next.Pits[11], "opposite pit untouched")
	assert.EqualValues(t, 5, tr.Next.Pits[PlayerOneStore])
	assert.Equal(t, 0.0, tr.Reward)
}

func TestApply_Steal_SkipsEmptyOppositePit(t *testing.T) {
	s := State{
		Pits:   [BoardSize]uint8{1, 0, 0, 0, 0, 3, 10, 5, 5, 5, 5, 0, 4, 34},
		ToMove: PlayerOne,
	}

	// Lands in empty pit 1, but pit 11 across from it is empty too.
	tr := Apply(s, 0)

	assert.EqualValues(t, 0, tr.Captured)
	assert.EqualValues(t, 1, tr.Next.Pits[1], "sown marble stays put")
	assert.EqualValues(t, 10, tr.Next.Pits[PlayerOneStore])
	assert.Equal(t, 0.0, tr.Reward)
}

func TestApply_Steal_NeverTriggersOnOpponentPits(t *testing.T) {
	s := State{
		Pits:   [BoardSize]uint8{0, 0, 0, 0, 9, 3, 10, 5, 0, 5, 5, 5, 5, 20},
		ToMove: PlayerOne,
	}

	// Three marbles from pit 5 end in pit 8: previously empty, opposite
	// pit 4 holds nine, but pit 8 belongs to the opponent.
	tr := Apply(s, 5)

	assert.EqualValues(t, 0, tr.Captured)
	assert.EqualValues(t, 1, tr.Next.Pits[8])
	assert.EqualValues(t, 9, tr.Next.Pits[4])
	assert.EqualValues(t, 11, tr.Next.Pits[PlayerOneStore], "store gains the sown marble only")
}

func TestApply_Termination_SweepsRemainingMarbles(t *testing.T) {
	s := State{
		Pits:   [BoardSize]uint8{0, 0, 0, 0, 0, 1, 30, 2, 0, 0, 0, 1, 0, 38},
		ToMove: PlayerOne,
	}

	tr := Apply(s, 5)

	require.True(t, tr.Terminal)
	for i := 0; i < BoardSize; i++ {
		if i == PlayerOneStore || i == PlayerTwoStore {
			continue
		}
		assert.EqualValues(t, 0, tr.Next.Pits[i], "pit %d swept", i)
	}
	assert.EqualValues(t, 31, tr.Next.Pits[PlayerOneStore])
	assert.EqualValues(t, 41, tr.Next.Pits[PlayerTwoStore])
	// The sweep counts into the reward: mover gained 1, opponent gained 3.
	assert.Equal(t, -2.0, tr.Reward)
	assert.False(t, tr.FreeTurn)
	assert.Equal(t, PlayerOne, tr.Next.ToMove, "terminal states keep the final mover")
}

func TestApply_Termination_WhenOpponentSideEmpties(t *testing.T) {
	// Player one's move leaves the opponent's side empty via a capture.
	s := State{
		Pits:   [BoardSize]uint8{1, 0, 0, 0, 0, 3, 10, 0, 0, 0, 0, 4, 0, 54},
		ToMove: PlayerOne,
	}

	tr := Apply(s, 0)

	require.True(t, tr.Terminal)
	// Capture takes pits 1 and 11, emptying player two's side; player
	// one's remaining pit 5 is then swept into their own store.
	assert.EqualValues(t, 18, tr.Next.Pits[PlayerOneStore])
	assert.EqualValues(t, 54, tr.Next.Pits[PlayerTwoStore])
	assert.Equal(t, 8.0, tr.Reward)
}

func TestApply_PanicsOnEmptyPit(t *testing.T) {
	s := State{
		Pits:   [BoardSize]uint8{0, 6, 6, 6, 6, 6, 0, 6, 6, 6, 6, 6, 6, 6},
		ToMove: PlayerOne,
	}

	assert.Panics(t, func() { Apply(s, 0) })
}

func TestApply_PanicsOnOutOfRangeAction(t *testing.T) {
	s := NewState()

	assert.Panics(t, func() { Apply(s, Action(PitsPerSide)) })
	assert.Panics(t, func() { Apply(s, Action(13)) })
}

func TestApply_RandomPlayouts_ConserveMarblesUntilTheEnd(t *testing.T) {
	rng := newTestRNG()
	env := Game{}

	for game := 0; game < 25; game++ {
		s := NewState()
		require.Equal(t, 72, boardTotal(s))

		for step := 0; step < 10000; step++ {
			actions := env.Actions(s.View())
			require.NotEmpty(t, actions, "non-terminal states always offer a move")

			mover := s.ToMove
			tr := Apply(s, actions[rng.Intn(len(actions))])

			assert.Equal(t, 72, boardTotal(tr.Next), "marbles only move, never vanish")

			if tr.Terminal {
				for i := 0; i < BoardSize; i++ {
					if i != PlayerOneStore && i != PlayerTwoStore {
						require.EqualValues(t, 0, tr.Next.Pits[i])
					}
				}
				require.EqualValues(t, 72,
					int(tr.Next.Pits[PlayerOneStore])+int(tr.Next.Pits[PlayerTwoStore]))
				break
			}

			// Free turn exactly when the mover keeps the move.
			assert.Equal(t, tr.FreeTurn, tr.Next.ToMove == mover)
			s = tr.Next
		}
	}
}
