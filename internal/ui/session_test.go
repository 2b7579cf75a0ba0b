package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/policy"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/rl"
	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/testutil"
)

// scriptedOpponent replays a fixed move list and records every learning
// call it receives.
type scriptedOpponent struct {
	moves        []game.Action
	improvements int
	terminalNext bool
	episodeEnds  int
}

var _ rl.Policy[game.State, game.View, game.Action] = (*scriptedOpponent)(nil)

func (s *scriptedOpponent) ChooseAction(game.View) game.Action {
	if len(s.moves) == 0 {
		panic("scripted opponent ran out of moves")
	}
	a := s.moves[0]
	s.moves = s.moves[1:]
	return a
}

func (s *scriptedOpponent) Improve(_ game.View, _ game.Action, _ float64, next *game.State) {
	s.improvements++
	if next == nil {
		s.terminalNext = true
	}
}

func (s *scriptedOpponent) OnEpisodeEnd() { s.episodeEnds++ }

func newTestSession(cfg SessionConfig) (*Session, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cfg.Out = out
	cfg.Logger = testutil.NopLogger()
	return NewSession(cfg), out
}

func TestNewSession_StartsAFreshMatchWhenNoneGiven(t *testing.T) {
	s, _ := newTestSession(SessionConfig{
		Opponent: &scriptedOpponent{},
		In:       strings.NewReader(""),
	})

	assert.Equal(t, game.NewState(), s.Match().State())
	assert.False(t, s.Match().IsOver())
}

func TestSession_Run_QuitSaysGoodbye(t *testing.T) {
	s, out := newTestSession(SessionConfig{
		Opponent: &scriptedOpponent{},
		In:       strings.NewReader("q\n"),
	})

	err := s.Run()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Ok, goodbye")
	assert.False(t, s.Match().IsOver())
}

func TestSession_Run_EndOfInputQuitsCleanly(t *testing.T) {
	s, out := newTestSession(SessionConfig{
		Opponent: &scriptedOpponent{},
		In:       strings.NewReader(""),
	})

	err := s.Run()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Ok, goodbye")
}

func TestSession_Run_RepromptsOnBlankAndInvalidInput(t *testing.T) {
	s, out := newTestSession(SessionConfig{
		Opponent: &scriptedOpponent{},
		In:       strings.NewReader("\nhelp me\nq\n"),
	})

	err := s.Run()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Well, you gotta do something")
	assert.Contains(t, out.String(), "That is not something you can do")
	assert.Equal(t, 0, s.Match().Turn(), "rejected input never reaches the engine")
}

func TestSession_Run_EmptyPitIsRepromptedNotPlayed(t *testing.T) {
	// Pit 0 holds six marbles, so the first move banks the last one for a
	// free turn and leaves pit 0 empty for the second attempt.
	s, out := newTestSession(SessionConfig{
		Opponent: &scriptedOpponent{},
		In:       strings.NewReader("0\n0\nq\n"),
	})

	err := s.Run()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Player 1 gets another turn.")
	assert.Contains(t, out.String(), "Pit 0 is empty, pick another")
	assert.Equal(t, 1, s.Match().Turn())
}

func TestSession_Run_OpponentAnswersTheHumanMove(t *testing.T) {
	bot := &scriptedOpponent{moves: []game.Action{0}}
	s, out := newTestSession(SessionConfig{
		Opponent: bot,
		In:       strings.NewReader("1\nq\n"),
	})

	err := s.Run()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "You play pit 1.")
	assert.Contains(t, out.String(), "Player 2 plays pit 0.")
	assert.Empty(t, bot.moves)
	assert.Equal(t, 2, s.Match().Turn())
}

func TestSession_Run_LearningFeedsBothSidesMoves(t *testing.T) {
	bot := &scriptedOpponent{moves: []game.Action{0}}
	s, _ := newTestSession(SessionConfig{
		Opponent: bot,
		In:       strings.NewReader("1\nq\n"),
		Learn:    true,
	})

	require.NoError(t, s.Run())

	assert.Equal(t, 2, bot.improvements, "both the human's and the bot's moves are learned from")
	assert.Equal(t, 0, bot.episodeEnds, "a quit game is not an episode")
}

func TestSession_Run_LearnOffLeavesThePolicyUntouched(t *testing.T) {
	bot := &scriptedOpponent{moves: []game.Action{0}}
	s, _ := newTestSession(SessionConfig{
		Opponent: bot,
		In:       strings.NewReader("1\nq\n"),
	})

	require.NoError(t, s.Run())

	assert.Equal(t, 0, bot.improvements)
	assert.Equal(t, 0, bot.episodeEnds)
}

func TestSession_Run_AnnouncesACapture(t *testing.T) {
	bot := &scriptedOpponent{moves: []game.Action{0}}
	s, out := newTestSession(SessionConfig{
		Match:    testutil.MatchFrom(testutil.CreateCaptureState()),
		Opponent: bot,
		In:       strings.NewReader("0\nq\n"),
	})

	err := s.Run()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Player 1 captures 5 marbles!")
}

func TestSession_Run_FinishesAndAnnouncesTheWinner(t *testing.T) {
	bot := &scriptedOpponent{}
	s, out := newTestSession(SessionConfig{
		Match:    testutil.MatchFrom(testutil.CreateEndgameState(40, 30)),
		Opponent: bot,
		In:       strings.NewReader("5\n"),
		Learn:    true,
	})

	err := s.Run()

	require.NoError(t, err)
	assert.True(t, s.Match().IsOver())
	assert.Contains(t, out.String(), "Player 1 wins 41 to 31.")
	assert.Equal(t, 1, bot.improvements)
	assert.True(t, bot.terminalNext, "the closing move carries no successor")
	assert.Equal(t, 1, bot.episodeEnds)
}

func TestSession_Run_AnnouncesADraw(t *testing.T) {
	s, out := newTestSession(SessionConfig{
		Match:    testutil.MatchFrom(testutil.CreateEndgameState(35, 35)),
		Opponent: &scriptedOpponent{},
		In:       strings.NewReader("5\n"),
	})

	err := s.Run()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "A draw, 36 marbles each.")
}

func TestSession_Run_PanicsWhenTheOpponentCheats(t *testing.T) {
	start := game.NewState()
	start.ToMove = game.PlayerTwo
	s, _ := newTestSession(SessionConfig{
		Match:    testutil.MatchFrom(start),
		Opponent: &scriptedOpponent{moves: []game.Action{9}},
		In:       strings.NewReader(""),
	})

	assert.Panics(t, func() { _ = s.Run() }, "illegal policy action must not be recovered")
}

func TestSession_Run_FullGameAgainstALearningPolicy(t *testing.T) {
	pol := policy.NewEpsilonGreedy[game.State, game.View, game.Action](
		game.Game{}, policy.DefaultParams(), testutil.SeededRNG(7))
	s, _ := newTestSession(SessionConfig{
		Opponent: pol,
		In:       strings.NewReader(strings.Repeat("0\n1\n2\n3\n4\n5\n", 2000)),
		Learn:    true,
	})

	err := s.Run()

	require.NoError(t, err)
	require.True(t, s.Match().IsOver(), "cycling through all pits must finish the game")

	state := s.Match().State()
	total := 0
	for _, c := range state.Pits {
		total += int(c)
	}
	assert.Equal(t, 72, total, "marbles are conserved")
	assert.Equal(t, 1, pol.Episode())
	assert.Greater(t, pol.Greedy().Table().Len(), 0, "the played game left values behind")
}
