// Package arena pits two action-choosing policies against each other on the
// real engine and aggregates the outcomes.
package arena

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game"
)

// Chooser picks a move for the position key it is handed. Every policy in
// the policy package satisfies this once instantiated for the game types.
type Chooser interface {
	ChooseAction(key game.View) game.Action
}

// Config controls an evaluation run.
type Config struct {
	// Games is the number of head-to-head games to play.
	Games int
	// MaxTurns caps the turns per game; a capped game counts as a draw.
	// 0 means unbounded.
	MaxTurns int
}

// Result aggregates a finished run. Margins holds one entry per game, the
// final score difference from contestant A's point of view.
type Result struct {
	Games   int
	WinsA   int
	WinsB   int
	Draws   int
	Margins []float64
}

// WinRateA is the fraction of games contestant A won outright.
func (r Result) WinRateA() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.WinsA) / float64(r.Games)
}

// MeanMargin is the average score difference from A's point of view.
func (r Result) MeanMargin() float64 {
	if len(r.Margins) == 0 {
		return 0
	}
	return stat.Mean(r.Margins, nil)
}

// StdMargin is the sample standard deviation of the margins.
func (r Result) StdMargin() float64 {
	if len(r.Margins) < 2 {
		return 0
	}
	return stat.StdDev(r.Margins, nil)
}

// Arena plays a fixed number of games between two choosers. Seats swap
// every game so neither contestant keeps the first-move advantage.
type Arena struct {
	a, b   Chooser
	cfg    Config
	logger zerolog.Logger
}

// New wires two contestants into an arena.
func New(a, b Chooser, cfg Config, logger zerolog.Logger) *Arena {
	return &Arena{
		a:   a,
		b:   b,
		cfg: cfg,
		logger: logger.With().
			Str("component", "arena").
			Logger(),
	}
}

// Run plays the configured number of games. Cancelling the context stops
// the run between games and returns the tally so far alongside the context
// error.
func (ar *Arena) Run(ctx context.Context) (Result, error) {
	res := Result{Margins: make([]float64, 0, ar.cfg.Games)}
	for g := 0; g < ar.cfg.Games; g++ {
		select {
		case <-ctx.Done():
			ar.logger.Warn().Int("game", g).Msg("evaluation cancelled")
			return res, ctx.Err()
		default:
		}

		aAsPlayerOne := g%2 == 0
		margin, capped, err := ar.playGame(aAsPlayerOne)
		if err != nil {
			return res, fmt.Errorf("game %d: %w", g, err)
		}

		res.Games++
		res.Margins = append(res.Margins, margin)
		switch {
		case capped || margin == 0:
			res.Draws++
		case margin > 0:
			res.WinsA++
		default:
			res.WinsB++
		}

		ar.logger.Debug().
			Int("game", g).
			Bool("a_plays_first", aAsPlayerOne).
			Float64("margin", margin).
			Bool("capped", capped).
			Msg("game finished")
	}
	return res, nil
}

// playGame runs one match to the end or the turn cap. The margin comes back
// from contestant A's point of view regardless of seating.
func (ar *Arena) playGame(aAsPlayerOne bool) (margin float64, capped bool, err error) {
	m := game.NewMatch(ar.logger)
	for turns := 0; !m.IsOver(); turns++ {
		if ar.cfg.MaxTurns > 0 && turns >= ar.cfg.MaxTurns {
			capped = true
			break
		}

		chooser := ar.a
		if (m.ToMove() == game.PlayerOne) != aAsPlayerOne {
			chooser = ar.b
		}
		if _, err := m.Play(chooser.ChooseAction(m.State().View())); err != nil {
			return 0, false, err
		}
	}

	one, two := m.Scores()
	margin = float64(one - two)
	if !aAsPlayerOne {
		margin = -margin
	}
	return margin, capped, nil
}
