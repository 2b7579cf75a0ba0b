package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/arena"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/policy"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/rl"
)

// Manual end-to-end smoke check: train a small policy, persist it, reload
// it and measure the greedy core against a random baseline.
//
//	go run test_integration.go
func main() {
	// Set up logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	dir, err := os.MkdirTemp("", "mancala-smoke")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	env := game.Game{}
	store := policy.NewStore[game.State, game.View, game.Action](
		filepath.Join(dir, "policy.csv"), env, env, zlog.Logger)

	pol, err := store.LoadOrNew(policy.DefaultParams(), nil)
	if err != nil {
		log.Fatalf("Failed to create policy: %v", err)
	}

	log.Printf("Training 5000 episodes...")
	trainer := rl.NewTrainer[game.State, game.View, game.Action](env, pol, rl.TrainerConfig{
		Episodes: 5000,
		OnEpisode: func(res rl.EpisodeResult) {
			if (res.Episode+1)%1000 == 0 {
				log.Printf("Episode %d, epsilon %.3f, table %d",
					res.Episode+1, pol.Epsilon(), pol.Greedy().Table().Len())
			}
		},
	}, zlog.Logger)

	results, err := trainer.Run(context.Background())
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}
	sum := rl.Summarize(results)
	log.Printf("Trained %d episodes, mean return %.3f, mean steps %.1f",
		sum.Episodes, sum.MeanReturn, sum.MeanSteps)

	if err := store.Save(pol); err != nil {
		log.Fatalf("Failed to save policy: %v", err)
	}
	reloaded, err := store.Load(nil)
	if err != nil {
		log.Fatalf("Failed to reload policy: %v", err)
	}
	log.Printf("Reloaded %d table entries at episode %d",
		reloaded.Greedy().Table().Len(), reloaded.Episode())

	baseline := policy.NewRandom[game.State, game.View, game.Action](env, nil)
	ar := arena.New(reloaded.Greedy(), baseline, arena.Config{
		Games:    200,
		MaxTurns: 1000,
	}, zlog.Logger)

	res, err := ar.Run(context.Background())
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}
	log.Printf("Greedy vs random over %d games: win rate %.1f%%, margin %+.2f",
		res.Games, 100*res.WinRateA(), res.MeanMargin())
}
