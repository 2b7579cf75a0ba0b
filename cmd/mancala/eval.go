package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/arena"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/policy"
)

func evalCommand() *cobra.Command {
	games := -1

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Pit the stored policy against a random baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if games == -1 {
				games = cfg.Eval.Games
			}
			return runEvaluation(cfg, games)
		},
	}

	cmd.Flags().IntVar(&games, "games", -1, "Number of evaluation games (-1 to use config default)")

	return cmd
}

func runEvaluation(cfg *config.Config, games int) error {
	store := newPolicyStore(cfg.Policy.Path)
	rng := newRNG(cfg.Eval.Seed)

	pol, err := store.LoadOrNew(policyParams(cfg), rng)
	if err != nil {
		return err
	}

	log.Info().
		Int("games", games).
		Int("max_turns", cfg.Eval.MaxTurns).
		Str("policy_path", store.Path()).
		Int("table_entries", pol.Greedy().Table().Len()).
		Msg("Starting evaluation")

	// The greedy core plays; exploration would only blur the measurement.
	baseline := policy.NewRandom[game.State, game.View, game.Action](game.Game{}, rng)
	ar := arena.New(pol.Greedy(), baseline, arena.Config{
		Games:    games,
		MaxTurns: cfg.Eval.MaxTurns,
	}, log.Logger)

	ctx, cancel := signalContext()
	defer cancel()

	res, err := ar.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Printf("greedy vs random over %d games\n", res.Games)
	fmt.Printf("  wins %d  losses %d  draws %d  win rate %.1f%%\n",
		res.WinsA, res.WinsB, res.Draws, 100*res.WinRateA())
	fmt.Printf("  margin %+.2f ± %.2f marbles\n", res.MeanMargin(), res.StdMargin())
	return nil
}
