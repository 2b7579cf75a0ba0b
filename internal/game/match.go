package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Match drives a single game from the starting position to the end. Unlike
// the stateless Game adapter it validates moves instead of panicking, which
// makes it the right entry point for interactive callers.
type Match struct {
	id     string
	state  State
	turn   int
	over   bool
	logger zerolog.Logger
}

// NewMatch creates a match at the starting position.
func NewMatch(logger zerolog.Logger) *Match {
	return NewMatchFrom(NewState(), logger)
}

// NewMatchFrom resumes a match from an arbitrary position. A position with
// no marbles left on either row is already over.
func NewMatchFrom(s State, logger zerolog.Logger) *Match {
	id := uuid.NewString()
	m := &Match{
		id:    id,
		state: s,
		over:  sideSum(&s.Pits, PlayerOne) == 0 && sideSum(&s.Pits, PlayerTwo) == 0,
		logger: logger.With().
			Str("component", "match").
			Str("match_id", id).
			Logger(),
	}
	m.logger.Debug().Msg("match created")
	return m
}

// Play applies one move for the side to move.
func (m *Match) Play(a Action) (Transition, error) {
	if m.over {
		return Transition{}, ErrMatchOver
	}
	if int(a) >= PitsPerSide {
		return Transition{}, fmt.Errorf("%w: pit %d", ErrInvalidAction, a)
	}
	if m.state.Pits[m.state.ToMove.pitOffset()+int(a)] == 0 {
		return Transition{}, fmt.Errorf("%w: pit %d", ErrEmptyPit, a)
	}

	mover := m.state.ToMove
	t := Apply(m.state, a)
	m.state = t.Next
	m.turn++
	m.over = t.Terminal

	m.logger.Debug().
		Int("turn", m.turn).
		Stringer("mover", mover).
		Uint8("action", uint8(a)).
		Float64("reward", t.Reward).
		Uint8("captured", t.Captured).
		Bool("free_turn", t.FreeTurn).
		Bool("terminal", t.Terminal).
		Msg("move applied")
	return t, nil
}

// Public accessors
func (m *Match) ID() string     { return m.id }
func (m *Match) State() State   { return m.state }
func (m *Match) ToMove() Player { return m.state.ToMove }
func (m *Match) Turn() int      { return m.turn }
func (m *Match) IsOver() bool   { return m.over }

// Legal lists the moves currently available to the side to move.
func (m *Match) Legal() []Action {
	if m.over {
		return nil
	}
	return Game{}.Actions(m.state.View())
}

// Scores returns both store counts in player order.
func (m *Match) Scores() (int, int) {
	return int(m.state.Score(PlayerOne)), int(m.state.Score(PlayerTwo))
}

// Winner returns the leading player once the match is over. The boolean is
// false while the match is running or when it ended in a draw.
func (m *Match) Winner() (Player, bool) {
	if !m.over {
		return PlayerOne, false
	}
	one, two := m.Scores()
	switch {
	case one > two:
		return PlayerOne, true
	case two > one:
		return PlayerTwo, true
	default:
		return PlayerOne, false
	}
}
