package game

import (
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/rl"
)

// Game adapts the Mancala rules to the rl contracts. It carries no state;
// positions flow through the methods.
type Game struct{}

var _ rl.Environment[State, View, Action] = Game{}

// New returns the starting position.
func (Game) New() State {
	return NewState()
}

// Project reduces a position to its learning key.
func (Game) Project(s State) View {
	return s.View()
}

// Actions lists the mover's non-empty pits in ascending order. The result
// is never empty for a key reached through Step: a position with no legal
// action would have been swept and reported terminal by the transition
// that produced it.
func (Game) Actions(key View) []Action {
	actions := make([]Action, 0, PitsPerSide)
	for i := 0; i < PitsPerSide; i++ {
		if key[i] > 0 {
			actions = append(actions, Action(i))
		}
	}
	return actions
}

// Step applies an action and reports whether the episode continues. On a
// terminal transition the successor is dropped and ok is false.
func (Game) Step(s State, a Action) (State, float64, bool) {
	t := Apply(s, a)
	if t.Terminal {
		return State{}, t.Reward, false
	}
	return t.Next, t.Reward, true
}
