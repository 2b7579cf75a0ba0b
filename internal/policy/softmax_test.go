package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	erand "golang.org/x/exp/rand"
)

func TestSoftmax_ChooseAction_OnlyLegalActions(t *testing.T) {
	g := NewGreedy[int, int, int](sparseEnv{}, 0.5, 1.0)
	s := NewSoftmax(g, 1.0, erand.NewSource(7))

	for i := 0; i < 100; i++ {
		require.Contains(t, []int{2, 5}, s.ChooseAction(0))
	}
}

func TestSoftmax_ChooseAction_FavorsHigherValuedAction(t *testing.T) {
	g := NewGreedy[int, int, int](chainEnv{goal: 3}, 0.5, 1.0)
	g.Table().Set(0, 0, 0.0)
	g.Table().Set(0, 1, 3.0)
	s := NewSoftmax(g, 1.0, erand.NewSource(7))

	counts := map[int]int{}
	for i := 0; i < 500; i++ {
		counts[s.ChooseAction(0)]++
	}
	// exp(3)/(exp(3)+exp(0)) ~ 0.95, so action 1 dominates but action 0
	// still gets sampled.
	assert.Greater(t, counts[1], 400)
	assert.Positive(t, counts[0])
}

func TestSoftmax_ChooseAction_HighTemperatureFlattensTowardUniform(t *testing.T) {
	g := NewGreedy[int, int, int](chainEnv{goal: 3}, 0.5, 1.0)
	g.Table().Set(0, 0, 0.0)
	g.Table().Set(0, 1, 3.0)
	s := NewSoftmax(g, 100.0, erand.NewSource(7))

	counts := map[int]int{}
	for i := 0; i < 500; i++ {
		counts[s.ChooseAction(0)]++
	}
	// At temperature 100 the 3-point gap is nearly invisible.
	assert.Greater(t, counts[0], 150)
	assert.Greater(t, counts[1], 150)
}

func TestSoftmax_ChooseAction_NoActions_Panics(t *testing.T) {
	g := NewGreedy[int, int, int](deadEnv{}, 0.5, 1.0)
	s := NewSoftmax(g, 1.0, erand.NewSource(7))

	assert.Panics(t, func() { s.ChooseAction(0) })
}

func TestSoftmax_Improve_DelegatesToWrappedGreedy(t *testing.T) {
	g := NewGreedy[int, int, int](chainEnv{goal: 3}, 0.5, 1.0)
	s := NewSoftmax(g, 1.0, erand.NewSource(7))

	s.Improve(2, 1, -1, nil)

	assert.InDelta(t, -0.5, g.Table().Get(2, 1), 1e-12)
}
