package policy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/rl"
)

// ErrMalformed reports persisted policy text that does not parse. Every
// decode failure wraps it, so callers can tell a corrupt file from a
// missing one with a single errors.Is check.
var ErrMalformed = errors.New("malformed policy data")

// Encoding converts learning keys and actions to and from their persisted
// text form. The environment supplies the implementation since only it
// knows the shape of its keys.
type Encoding[K, A comparable] interface {
	EncodeState(key K) string
	DecodeState(text string) (K, error)
	EncodeAction(a A) string
	DecodeAction(text string) (A, error)
}

// Write persists an epsilon-greedy policy as semicolon-separated text:
// one line of exploration parameters, one line of learning parameters,
// then one line per table entry.
//
//	min_epsilon;max_epsilon;decay_rate;episode
//	gamma;learning_rate
//	key;action;value
func Write[S any, K, A comparable](w io.Writer, enc Encoding[K, A], p *EpsilonGreedy[S, K, A]) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s;%s;%s;%d\n",
		formatFloat(p.minEpsilon), formatFloat(p.maxEpsilon), formatFloat(p.decayRate), p.episode); err != nil {
		return err
	}
	if err := writeGreedy(bw, enc, p.greedy); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteGreedy persists a bare greedy policy: the learning parameter line
// followed by the table entries.
func WriteGreedy[S any, K, A comparable](w io.Writer, enc Encoding[K, A], g *Greedy[S, K, A]) error {
	bw := bufio.NewWriter(w)
	if err := writeGreedy(bw, enc, g); err != nil {
		return err
	}
	return bw.Flush()
}

func writeGreedy[S any, K, A comparable](w io.Writer, enc Encoding[K, A], g *Greedy[S, K, A]) error {
	if _, err := fmt.Fprintf(w, "%s;%s\n", formatFloat(g.gamma), formatFloat(g.learningRate)); err != nil {
		return err
	}

	type record struct {
		key, action string
		value       float64
	}
	records := make([]record, 0, g.table.Len())
	for p, v := range g.table.values {
		records = append(records, record{enc.EncodeState(p.key), enc.EncodeAction(p.action), v})
	}
	// Stable order, so saving the same table twice produces identical files.
	sort.Slice(records, func(i, j int) bool {
		if records[i].key != records[j].key {
			return records[i].key < records[j].key
		}
		return records[i].action < records[j].action
	})

	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%s;%s;%s\n", r.key, r.action, formatFloat(r.value)); err != nil {
			return err
		}
	}
	return nil
}

// Read loads a policy in the Write format. Parsing is strict: a wrong
// field count, an unparsable number, or trailing content on any record
// fails the whole load with ErrMalformed. There are no partial loads.
// A nil rng gets seeded from the clock.
func Read[S any, K, A comparable](r io.Reader, env rl.Environment[S, K, A], enc Encoding[K, A], rng *rand.Rand) (*EpsilonGreedy[S, K, A], error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: line 1: missing exploration parameters", ErrMalformed)
	}
	fields := strings.Split(sc.Text(), ";")
	if len(fields) != 4 {
		return nil, fmt.Errorf("%w: line 1: want 4 fields, got %d", ErrMalformed, len(fields))
	}
	minEpsilon, err := parseFloat(fields[0], 1)
	if err != nil {
		return nil, err
	}
	maxEpsilon, err := parseFloat(fields[1], 1)
	if err != nil {
		return nil, err
	}
	decayRate, err := parseFloat(fields[2], 1)
	if err != nil {
		return nil, err
	}
	episode, err := parseEpisode(fields[3], 1)
	if err != nil {
		return nil, err
	}

	greedy, err := readGreedy(sc, env, enc, 1)
	if err != nil {
		return nil, err
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &EpsilonGreedy[S, K, A]{
		greedy:     greedy,
		minEpsilon: minEpsilon,
		maxEpsilon: maxEpsilon,
		decayRate:  decayRate,
		episode:    episode,
		rng:        rng,
	}, nil
}

// ReadGreedy loads a bare greedy policy in the WriteGreedy format, with
// the same strictness as Read.
func ReadGreedy[S any, K, A comparable](r io.Reader, env rl.Environment[S, K, A], enc Encoding[K, A]) (*Greedy[S, K, A], error) {
	sc := bufio.NewScanner(r)
	return readGreedy(sc, env, enc, 0)
}

func readGreedy[S any, K, A comparable](sc *bufio.Scanner, env rl.Environment[S, K, A], enc Encoding[K, A], offset int) (*Greedy[S, K, A], error) {
	line := offset + 1
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: line %d: missing learning parameters", ErrMalformed, line)
	}
	fields := strings.Split(sc.Text(), ";")
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: line %d: want 2 fields, got %d", ErrMalformed, line, len(fields))
	}
	gamma, err := parseFloat(fields[0], line)
	if err != nil {
		return nil, err
	}
	learningRate, err := parseFloat(fields[1], line)
	if err != nil {
		return nil, err
	}

	g := NewGreedy(env, learningRate, gamma)
	for sc.Scan() {
		line++
		fields := strings.Split(sc.Text(), ";")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: want 3 fields, got %d", ErrMalformed, line, len(fields))
		}
		key, err := enc.DecodeState(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		action, err := enc.DecodeAction(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		value, err := parseFloat(fields[2], line)
		if err != nil {
			return nil, err
		}
		g.table.Set(key, action, value)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloat(text string, line int) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: bad number %q", ErrMalformed, line, text)
	}
	return v, nil
}

// parseEpisode accepts a non-negative episode count rendered as any
// float-compatible integer, e.g. "42" or "42.0".
func parseEpisode(text string, line int) (int, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: line %d: bad episode count %q", ErrMalformed, line, text)
	}
	return int(v), nil
}
