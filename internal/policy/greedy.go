package policy

import (
	"fmt"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/rl"
)

// Checking interface compatibility
var _ rl.Policy[struct{}, string, int] = (*Greedy[struct{}, string, int])(nil)

// Greedy always plays the action with the highest stored value and learns
// with a one-step Q-learning update. Ties break towards the action listed
// first by the environment, so selection is deterministic for a given table.
type Greedy[S any, K, A comparable] struct {
	env          rl.Environment[S, K, A]
	table        *Table[K, A]
	learningRate float64
	gamma        float64
}

// NewGreedy creates a greedy policy with an empty value table.
func NewGreedy[S any, K, A comparable](env rl.Environment[S, K, A], learningRate, gamma float64) *Greedy[S, K, A] {
	return &Greedy[S, K, A]{
		env:          env,
		table:        NewTable[K, A](),
		learningRate: learningRate,
		gamma:        gamma,
	}
}

// ChooseAction returns the legal action with the highest table value,
// treating unvisited pairs as zero. It panics when the environment offers
// no actions: every reachable non-terminal key must have at least one.
func (g *Greedy[S, K, A]) ChooseAction(key K) A {
	actions := g.env.Actions(key)
	if len(actions) == 0 {
		panic(fmt.Sprintf("policy: no legal actions for key %v", key))
	}
	best := actions[0]
	bestValue := g.table.Get(key, best)
	for _, a := range actions[1:] {
		if v := g.table.Get(key, a); v > bestValue {
			best, bestValue = a, v
		}
	}
	return best
}

// Improve applies the one-step update
//
//	q(s,a) ← q(s,a) + α·(target − q(s,a))
//
// where target is the reward alone when the episode ended, and otherwise
// the reward plus gamma times the value of the greedy action at the
// successor key.
func (g *Greedy[S, K, A]) Improve(key K, action A, reward float64, next *S) {
	target := reward
	if next != nil {
		nextKey := g.env.Project(*next)
		target += g.gamma * g.table.Get(nextKey, g.ChooseAction(nextKey))
	}
	former := g.table.Get(key, action)
	g.table.Set(key, action, former+g.learningRate*(target-former))
}

// OnEpisodeEnd is a no-op; the greedy policy keeps no schedule.
func (g *Greedy[S, K, A]) OnEpisodeEnd() {}

// Table exposes the value table, mainly for inspection and persistence.
func (g *Greedy[S, K, A]) Table() *Table[K, A] {
	return g.table
}

// LearningRate returns the step size alpha.
func (g *Greedy[S, K, A]) LearningRate() float64 { return g.learningRate }

// Gamma returns the discount factor.
func (g *Greedy[S, K, A]) Gamma() float64 { return g.gamma }
