// Package rl holds the contracts an environment and a policy agree on,
// plus a trainer that runs episodes against them. The type parameters are
// S for the full environment state, K for the projected key policies learn
// on, and A for actions.
package rl

// Environment describes a turn-based task as seen by a learning policy.
type Environment[S any, K comparable, A comparable] interface {
	// New returns a fresh starting state.
	New() S
	// Project reduces a state to the key policies learn on. Projection is
	// pure; a state can be projected any number of times.
	Project(s S) K
	// Actions lists the legal actions for a key, in a stable order.
	// Implementations must return at least one action for every key
	// reachable through Step.
	Actions(key K) []A
	// Step applies an action to a state. ok reports whether the episode
	// continues; on a terminal transition the successor is dropped and ok
	// is false.
	Step(s S, a A) (next S, reward float64, ok bool)
}

// Policy chooses actions and learns from observed transitions.
type Policy[S any, K comparable, A comparable] interface {
	// ChooseAction picks one of the legal actions for the key.
	ChooseAction(key K) A
	// Improve feeds one observed transition back into the policy. next is
	// nil exactly when the transition ended the episode.
	Improve(key K, action A, reward float64, next *S)
	// OnEpisodeEnd runs once after every finished episode.
	OnEpisodeEnd()
}
