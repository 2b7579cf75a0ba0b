package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/config"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/ui"
)

func playCommand() *cobra.Command {
	var learn bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game against the stored policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if !cmd.Flags().Changed("learn") {
				learn = cfg.Play.Learn
			}
			return runPlay(cfg, learn, os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&learn, "learn", false, "Update the policy from this game (unset to use config default)")

	return cmd
}

func runPlay(cfg *config.Config, learn bool, in io.Reader, out io.Writer) error {
	store := newPolicyStore(cfg.Policy.Path)
	pol, err := store.LoadOrNew(policyParams(cfg), newRNG(0))
	if err != nil {
		return err
	}

	log.Info().
		Str("policy_path", store.Path()).
		Bool("learn", learn).
		Float64("epsilon", pol.Epsilon()).
		Msg("Starting interactive game")

	session := ui.NewSession(ui.SessionConfig{
		Opponent: pol,
		In:       in,
		Out:      out,
		Learn:    learn,
		Logger:   log.Logger,
	})
	if err := session.Run(); err != nil {
		return err
	}

	// A normal exit always writes the policy back, learning or not, so
	// the file at policy.path exists after the first game.
	if err := store.Save(pol); err != nil {
		return err
	}
	if learn {
		fmt.Fprintf(out, "policy updated at %s\n", store.Path())
	}
	return nil
}
