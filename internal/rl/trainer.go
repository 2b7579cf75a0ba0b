package rl

import (
	"context"

	"github.com/rs/zerolog"
)

// EpisodeResult summarizes one finished episode.
type EpisodeResult struct {
	Episode   int
	Steps     int
	Return    float64
	Truncated bool
}

// TrainerConfig controls a training run.
type TrainerConfig struct {
	// Episodes is the number of episodes to run.
	Episodes int
	// MaxSteps caps the steps per episode; 0 means unbounded.
	MaxSteps int
	// OnEpisode, when set, runs after every episode.
	OnEpisode func(EpisodeResult)
}

// Trainer runs a policy against an environment for a configured number of
// episodes. Training is synchronous: one environment, one policy, one
// transition at a time.
type Trainer[S any, K comparable, A comparable] struct {
	env    Environment[S, K, A]
	policy Policy[S, K, A]
	cfg    TrainerConfig
	logger zerolog.Logger
}

// NewTrainer wires an environment and a policy into a trainer.
func NewTrainer[S any, K comparable, A comparable](env Environment[S, K, A], policy Policy[S, K, A], cfg TrainerConfig, logger zerolog.Logger) *Trainer[S, K, A] {
	return &Trainer[S, K, A]{
		env:    env,
		policy: policy,
		cfg:    cfg,
		logger: logger.With().Str("component", "trainer").Logger(),
	}
}

// Run executes the configured number of episodes. Every episode starts from
// a fresh state and steps until the environment reports the end or the step
// cap is reached. Cancelling the context stops the run between episodes and
// returns the results collected so far alongside the context error.
func (t *Trainer[S, K, A]) Run(ctx context.Context) ([]EpisodeResult, error) {
	results := make([]EpisodeResult, 0, t.cfg.Episodes)
	for ep := 0; ep < t.cfg.Episodes; ep++ {
		select {
		case <-ctx.Done():
			t.logger.Warn().Int("episode", ep).Msg("training cancelled")
			return results, ctx.Err()
		default:
		}

		res := t.runEpisode(ep)
		results = append(results, res)
		t.policy.OnEpisodeEnd()
		if t.cfg.OnEpisode != nil {
			t.cfg.OnEpisode(res)
		}
		t.logger.Debug().
			Int("episode", res.Episode).
			Int("steps", res.Steps).
			Float64("return", res.Return).
			Bool("truncated", res.Truncated).
			Msg("episode finished")
	}
	return results, nil
}

func (t *Trainer[S, K, A]) runEpisode(ep int) EpisodeResult {
	state := t.env.New()
	res := EpisodeResult{Episode: ep}
	for {
		if t.cfg.MaxSteps > 0 && res.Steps >= t.cfg.MaxSteps {
			res.Truncated = true
			return res
		}
		key := t.env.Project(state)
		action := t.policy.ChooseAction(key)
		next, reward, ok := t.env.Step(state, action)
		res.Steps++
		res.Return += reward
		if !ok {
			t.policy.Improve(key, action, reward, nil)
			return res
		}
		t.policy.Improve(key, action, reward, &next)
		state = next
	}
}
