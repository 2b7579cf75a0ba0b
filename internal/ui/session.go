package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/rl"
)

// SessionConfig wires up an interactive session.
type SessionConfig struct {
	// Match is the game to play; nil starts a fresh one.
	Match *game.Match
	// Opponent answers for Player Two and, when Learn is set, absorbs
	// every transition played by either side.
	Opponent rl.Policy[game.State, game.View, game.Action]
	// In is the player's line-oriented input, usually stdin.
	In io.Reader
	// Out receives boards, prompts and announcements, usually stdout.
	Out io.Writer
	// Learn feeds the observed game back into the opponent policy.
	Learn  bool
	Logger zerolog.Logger
}

// Session plays one game between the human on Player One's seat and the
// opponent policy on Player Two's. It owns all input recovery: blank,
// invalid or empty-pit choices are answered with another prompt, so the
// engine only ever sees legal moves.
type Session struct {
	match    *game.Match
	opponent rl.Policy[game.State, game.View, game.Action]
	in       *bufio.Scanner
	out      io.Writer
	learn    bool
	logger   zerolog.Logger
}

const (
	humanSeat = game.PlayerOne
	botSeat   = game.PlayerTwo
)

// NewSession builds a session from its parts.
func NewSession(cfg SessionConfig) *Session {
	match := cfg.Match
	if match == nil {
		match = game.NewMatch(cfg.Logger)
	}
	return &Session{
		match:    match,
		opponent: cfg.Opponent,
		in:       bufio.NewScanner(cfg.In),
		out:      cfg.Out,
		learn:    cfg.Learn,
		logger:   cfg.Logger.With().Str("component", "session").Logger(),
	}
}

// Match exposes the underlying match, mainly for inspection after Run.
func (s *Session) Match() *game.Match { return s.match }

// Run plays until the game ends, the player quits, or the input source
// closes. The returned error reports input read failures only; quitting
// and end of input are normal exits.
func (s *Session) Run() error {
	fmt.Fprintf(s.out, "You hold the bottom row as %s. Good luck!\n\n", humanSeat)

	for !s.match.IsOver() {
		if s.match.ToMove() == humanSeat {
			quit, err := s.humanTurn()
			if err != nil {
				return err
			}
			if quit {
				fmt.Fprintln(s.out, "Ok, goodbye")
				s.logger.Info().Int("turn", s.match.Turn()).Msg("player quit")
				return nil
			}
		} else {
			s.botTurn()
		}
	}

	s.finish()
	return nil
}

// humanTurn renders the position and prompts until the player either
// plays a legal move or quits. Running out of input counts as quitting.
func (s *Session) humanTurn() (quit bool, err error) {
	fmt.Fprintln(s.out, game.Render(s.match.State(), humanSeat))
	fmt.Fprintf(s.out, "[turn %d] choose your pit (0-5, q quits): ", s.match.Turn()+1)

	for {
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return false, fmt.Errorf("reading player input: %w", err)
			}
			fmt.Fprintln(s.out)
			return true, nil
		}

		switch req := ParseRequest(s.in.Text()); req.Kind {
		case RequestQuit:
			return true, nil
		case RequestNone:
			fmt.Fprint(s.out, "Well, you gotta do something: ")
		case RequestInvalid:
			fmt.Fprint(s.out, "That is not something you can do, try again: ")
		case RequestAction:
			key := s.match.State().View()
			tr, err := s.match.Play(req.Action)
			if errors.Is(err, game.ErrEmptyPit) {
				fmt.Fprintf(s.out, "Pit %d is empty, pick another: ", req.Action)
				continue
			}
			if err != nil {
				return false, err
			}
			fmt.Fprintf(s.out, "You play pit %d.\n", req.Action)
			s.afterMove(humanSeat, key, req.Action, tr)
			return false, nil
		}
	}
}

// botTurn lets the opponent policy move. The policy contract guarantees a
// legal action, so a rejected move is a programming error, not something
// to recover from.
func (s *Session) botTurn() {
	key := s.match.State().View()
	action := s.opponent.ChooseAction(key)

	tr, err := s.match.Play(action)
	if err != nil {
		panic(fmt.Sprintf("ui: opponent chose an illegal action: %v", err))
	}
	fmt.Fprintf(s.out, "%s plays pit %d.\n", botSeat, action)
	s.afterMove(botSeat, key, action, tr)
}

// afterMove announces what the move did and, when learning is on, feeds
// the transition to the policy exactly the way a training step would: the
// projection before the move, and no successor on the final move.
func (s *Session) afterMove(mover game.Player, key game.View, action game.Action, tr game.Transition) {
	if tr.Captured > 0 {
		fmt.Fprintf(s.out, "%s captures %d marbles!\n", mover, tr.Captured)
	}
	if tr.FreeTurn {
		fmt.Fprintf(s.out, "%s gets another turn.\n", mover)
	}
	if s.learn {
		var next *game.State
		if !tr.Terminal {
			next = &tr.Next
		}
		s.opponent.Improve(key, action, tr.Reward, next)
	}
}

// finish shows the swept final position and announces the verdict. A
// finished game counts as one episode for the opponent's schedule when it
// was learning along.
func (s *Session) finish() {
	fmt.Fprintln(s.out, game.Render(s.match.State(), humanSeat))

	one, two := s.match.Scores()
	if winner, ok := s.match.Winner(); ok {
		hi, lo := one, two
		if winner == botSeat {
			hi, lo = two, one
		}
		fmt.Fprintf(s.out, "%s wins %d to %d.\n", winner, hi, lo)
	} else {
		fmt.Fprintf(s.out, "A draw, %d marbles each.\n", one)
	}

	if s.learn {
		s.opponent.OnEpisodeEnd()
	}
	s.logger.Info().
		Int("turns", s.match.Turn()).
		Int("player_one", one).
		Int("player_two", two).
		Msg("match finished")
}
