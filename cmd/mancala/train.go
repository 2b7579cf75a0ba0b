package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/gosuri/uilive"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/policy"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/rl"
)

func trainCommand() *cobra.Command {
	episodes := -1
	maxSteps := -1
	var seed int64

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Run self-play Q-learning episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if episodes == -1 {
				episodes = cfg.Training.Episodes
			}
			if maxSteps == -1 {
				maxSteps = cfg.Training.MaxSteps
			}
			if seed == 0 {
				seed = cfg.Training.Seed
			}
			return runTraining(cfg, episodes, maxSteps, seed)
		},
	}

	cmd.Flags().IntVar(&episodes, "episodes", -1, "Number of episodes to run (-1 to use config default)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", -1, "Step cap per episode, 0 for unbounded (-1 to use config default)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 to use config default, then the clock)")

	return cmd
}

func runTraining(cfg *config.Config, episodes, maxSteps int, seed int64) error {
	env := game.Game{}
	store := newPolicyStore(cfg.Policy.Path)
	rng := newRNG(seed)

	pol, err := store.LoadOrNew(policyParams(cfg), rng)
	if err != nil {
		return err
	}
	exploring, label := explorationPolicy(cfg, pol, rng)

	// A config edit mid-run retunes logging without a restart.
	config.WatchConfig(func() {
		setupLogging(config.Get().Logging.Level)
		log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
	})

	ctx, cancel := signalContext()
	defer cancel()

	log.Info().
		Int("episodes", episodes).
		Int("max_steps", maxSteps).
		Int("start_episode", pol.Episode()).
		Str("exploration", cfg.Policy.Exploration).
		Str("policy_path", store.Path()).
		Msg("Starting training")

	writer := uilive.New()
	writer.Start()

	table := pol.Greedy().Table()
	window := make([]float64, 0, cfg.Training.ProgressEvery)
	onEpisode := func(res rl.EpisodeResult) {
		window = append(window, res.Return)
		if (res.Episode+1)%cfg.Training.ProgressEvery != 0 {
			return
		}
		fmt.Fprintf(writer, "episode %d/%d  %s  table %d  mean return %.3f (last %d)\n",
			res.Episode+1, episodes, label(), table.Len(), stat.Mean(window, nil), len(window))
		window = window[:0]
	}

	trainer := rl.NewTrainer[game.State, game.View, game.Action](env, exploring, rl.TrainerConfig{
		Episodes:  episodes,
		MaxSteps:  maxSteps,
		OnEpisode: onEpisode,
	}, log.Logger)

	results, err := trainer.Run(ctx)
	writer.Stop()
	cancelled := errors.Is(err, context.Canceled)
	if err != nil && !cancelled {
		return err
	}

	// Interrupted runs still save: partial training is training.
	if err := store.Save(pol); err != nil {
		return err
	}
	if cancelled {
		log.Warn().Int("completed", len(results)).Msg("Training interrupted, progress saved")
	}

	sum := rl.Summarize(results)
	fmt.Printf("trained %d episodes: mean return %.3f ± %.3f, mean steps %.1f, truncated %d\n",
		sum.Episodes, sum.MeanReturn, sum.StdReturn, sum.MeanSteps, sum.Truncated)
	fmt.Printf("table entries %d, schedule episode %d, epsilon %.3f\n",
		table.Len(), pol.Episode(), pol.Epsilon())
	return nil
}

// explorationPolicy picks the exploring wrapper the config names. Both
// wrappers share the loaded greedy core, so updates and persistence see one
// table either way. The label callback feeds the progress line; epsilon
// moves with the schedule while temperature stays fixed.
func explorationPolicy(cfg *config.Config, pol *policy.EpsilonGreedy[game.State, game.View, game.Action], rng *rand.Rand) (rl.Policy[game.State, game.View, game.Action], func() string) {
	if cfg.Policy.Exploration == "softmax" {
		src := erand.NewSource(uint64(rng.Int63()))
		soft := policy.NewSoftmax(pol.Greedy(), cfg.Policy.Temperature, src)
		return soft, func() string {
			return fmt.Sprintf("temperature %.2f", cfg.Policy.Temperature)
		}
	}
	return pol, func() string {
		return fmt.Sprintf("epsilon %.3f", pol.Epsilon())
	}
}
