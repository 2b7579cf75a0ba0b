package policy

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/rl"
)

// Checking interface compatibility
var _ rl.Policy[struct{}, string, int] = (*Random[struct{}, string, int])(nil)

// Random plays a uniformly random legal action and never learns. It is the
// baseline opponent for evaluation runs.
type Random[S any, K, A comparable] struct {
	env rl.Environment[S, K, A]
	rng *rand.Rand
}

// NewRandom creates a random policy. A nil rng gets seeded from the clock.
func NewRandom[S any, K, A comparable](env rl.Environment[S, K, A], rng *rand.Rand) *Random[S, K, A] {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Random[S, K, A]{env: env, rng: rng}
}

// ChooseAction picks one of the legal actions uniformly.
func (r *Random[S, K, A]) ChooseAction(key K) A {
	actions := r.env.Actions(key)
	if len(actions) == 0 {
		panic(fmt.Sprintf("policy: no legal actions for key %v", key))
	}
	return actions[r.rng.Intn(len(actions))]
}

// Improve is a no-op; the random policy keeps no estimates.
func (r *Random[S, K, A]) Improve(K, A, float64, *S) {}

// OnEpisodeEnd is a no-op.
func (r *Random[S, K, A]) OnEpisodeEnd() {}
