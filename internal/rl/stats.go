package rl

import "gonum.org/v1/gonum/stat"

// Summary aggregates the results of a training run.
type Summary struct {
	Episodes   int
	MeanReturn float64
	StdReturn  float64
	MeanSteps  float64
	Truncated  int
}

// Summarize reduces episode results to headline numbers.
func Summarize(results []EpisodeResult) Summary {
	s := Summary{Episodes: len(results)}
	if len(results) == 0 {
		return s
	}
	returns := make([]float64, len(results))
	steps := make([]float64, len(results))
	for i, r := range results {
		returns[i] = r.Return
		steps[i] = float64(r.Steps)
		if r.Truncated {
			s.Truncated++
		}
	}
	s.MeanReturn = stat.Mean(returns, nil)
	s.MeanSteps = stat.Mean(steps, nil)
	if len(results) > 1 {
		s.StdReturn = stat.StdDev(returns, nil)
	}
	return s
}
