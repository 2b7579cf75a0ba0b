package policy

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/rl"
)

// Checking interface compatibility
var _ rl.Policy[struct{}, string, int] = (*EpsilonGreedy[struct{}, string, int])(nil)

// Params bundles the learning and exploration parameters of an
// epsilon-greedy policy.
type Params struct {
	LearningRate float64
	Gamma        float64
	MaxEpsilon   float64
	MinEpsilon   float64
	DecayRate    float64
}

// DefaultParams returns the parameters a fresh policy starts with.
func DefaultParams() Params {
	return Params{
		LearningRate: 0.2,
		Gamma:        1.0,
		MaxEpsilon:   1.0,
		MinEpsilon:   0.1,
		DecayRate:    0.01,
	}
}

// EpsilonGreedy wraps a greedy policy with exploration: with probability
// epsilon it plays a uniformly random legal action instead of the greedy
// one. Epsilon decays exponentially from MaxEpsilon towards MinEpsilon as
// episodes complete. Exploration affects selection only; updates flow
// through to the wrapped greedy policy unchanged.
type EpsilonGreedy[S any, K, A comparable] struct {
	greedy     *Greedy[S, K, A]
	minEpsilon float64
	maxEpsilon float64
	decayRate  float64
	episode    int
	rng        *rand.Rand
}

// NewEpsilonGreedy creates an exploring policy with an empty value table.
// A nil rng gets seeded from the clock.
func NewEpsilonGreedy[S any, K, A comparable](env rl.Environment[S, K, A], p Params, rng *rand.Rand) *EpsilonGreedy[S, K, A] {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &EpsilonGreedy[S, K, A]{
		greedy:     NewGreedy(env, p.LearningRate, p.Gamma),
		minEpsilon: p.MinEpsilon,
		maxEpsilon: p.MaxEpsilon,
		decayRate:  p.DecayRate,
		rng:        rng,
	}
}

// Epsilon returns the current exploration probability,
//
//	min + (max − min)·exp(−decay·episode)
//
// which starts at MaxEpsilon and approaches MinEpsilon as episodes pass.
func (p *EpsilonGreedy[S, K, A]) Epsilon() float64 {
	return p.minEpsilon + (p.maxEpsilon-p.minEpsilon)*math.Exp(-p.decayRate*float64(p.episode))
}

// ChooseAction explores with probability Epsilon and otherwise delegates
// to the wrapped greedy policy.
func (p *EpsilonGreedy[S, K, A]) ChooseAction(key K) A {
	if p.rng.Float64() < p.Epsilon() {
		actions := p.greedy.env.Actions(key)
		if len(actions) == 0 {
			panic(fmt.Sprintf("policy: no legal actions for key %v", key))
		}
		return actions[p.rng.Intn(len(actions))]
	}
	return p.greedy.ChooseAction(key)
}

// Improve delegates the update to the wrapped greedy policy.
func (p *EpsilonGreedy[S, K, A]) Improve(key K, action A, reward float64, next *S) {
	p.greedy.Improve(key, action, reward, next)
}

// OnEpisodeEnd advances the exploration schedule by one episode.
func (p *EpsilonGreedy[S, K, A]) OnEpisodeEnd() {
	p.episode++
}

// Greedy exposes the wrapped greedy core, used when playing without
// exploration.
func (p *EpsilonGreedy[S, K, A]) Greedy() *Greedy[S, K, A] {
	return p.greedy
}

// Episode returns how many episodes the schedule has seen.
func (p *EpsilonGreedy[S, K, A]) Episode() int { return p.episode }

// Params returns the policy's parameters in constructor form.
func (p *EpsilonGreedy[S, K, A]) Params() Params {
	return Params{
		LearningRate: p.greedy.learningRate,
		Gamma:        p.greedy.gamma,
		MaxEpsilon:   p.maxEpsilon,
		MinEpsilon:   p.minEpsilon,
		DecayRate:    p.decayRate,
	}
}
