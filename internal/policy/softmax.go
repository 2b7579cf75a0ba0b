package policy

import (
	"fmt"
	"math"
	"time"

	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/rl"
)

// Checking interface compatibility
var _ rl.Policy[struct{}, string, int] = (*Softmax[struct{}, string, int])(nil)

// Softmax samples actions with Boltzmann weights over the wrapped greedy
// policy's table values: exp(q/temperature), normalized. High temperatures
// flatten the distribution towards uniform, low ones sharpen it towards
// greedy. Updates flow through to the wrapped policy unchanged.
type Softmax[S any, K, A comparable] struct {
	greedy      *Greedy[S, K, A]
	temperature float64
	src         erand.Source
}

// NewSoftmax wraps a greedy policy with Boltzmann exploration. A nil source
// gets seeded from the clock.
func NewSoftmax[S any, K, A comparable](greedy *Greedy[S, K, A], temperature float64, src erand.Source) *Softmax[S, K, A] {
	if src == nil {
		src = erand.NewSource(uint64(time.Now().UnixNano()))
	}
	return &Softmax[S, K, A]{
		greedy:      greedy,
		temperature: temperature,
		src:         src,
	}
}

// ChooseAction samples a legal action with probability proportional to
// exp(q/temperature). Values are shifted by their maximum before
// exponentiation to keep the weights finite.
func (s *Softmax[S, K, A]) ChooseAction(key K) A {
	actions := s.greedy.env.Actions(key)
	if len(actions) == 0 {
		panic(fmt.Sprintf("policy: no legal actions for key %v", key))
	}

	vals := make([]float64, len(actions))
	largest := s.greedy.table.Get(key, actions[0])
	for i, a := range actions {
		vals[i] = s.greedy.table.Get(key, a)
		if vals[i] > largest {
			largest = vals[i]
		}
	}

	sum := 0.0
	for i := range vals {
		vals[i] = math.Exp((vals[i] - largest) / s.temperature)
		sum += vals[i]
	}

	weights := make([]float64, len(vals))
	for i, v := range vals {
		weights[i] = v / sum
	}

	i, ok := sampleuv.NewWeighted(weights, s.src).Take()
	if !ok {
		// Weights always sum to one here, so sampling cannot run dry.
		panic("policy: softmax sampling failed")
	}
	return actions[i]
}

// Improve delegates the update to the wrapped greedy policy.
func (s *Softmax[S, K, A]) Improve(key K, action A, reward float64, next *S) {
	s.greedy.Improve(key, action, reward, next)
}

// OnEpisodeEnd is a no-op; the temperature is fixed.
func (s *Softmax[S, K, A]) OnEpisodeEnd() {}
