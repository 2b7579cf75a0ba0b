package rl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_EmptyResults(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, Summary{}, s)
}

func TestSummarize_SingleEpisodeHasNoSpread(t *testing.T) {
	s := Summarize([]EpisodeResult{{Episode: 0, Steps: 40, Return: 7}})

	assert.Equal(t, 1, s.Episodes)
	assert.Equal(t, 7.0, s.MeanReturn)
	assert.Equal(t, 0.0, s.StdReturn)
	assert.Equal(t, 40.0, s.MeanSteps)
	assert.Zero(t, s.Truncated)
}

func TestSummarize_AggregatesReturnsAndSteps(t *testing.T) {
	results := []EpisodeResult{
		{Episode: 0, Steps: 10, Return: 1},
		{Episode: 1, Steps: 20, Return: 2, Truncated: true},
		{Episode: 2, Steps: 30, Return: 3},
	}

	s := Summarize(results)

	assert.Equal(t, 3, s.Episodes)
	assert.InDelta(t, 2.0, s.MeanReturn, 1e-12)
	assert.InDelta(t, 1.0, s.StdReturn, 1e-12)
	assert.InDelta(t, 20.0, s.MeanSteps, 1e-12)
	assert.Equal(t, 1, s.Truncated)
}
