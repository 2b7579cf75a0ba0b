package policy

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/rl"
)

// Store reads and writes one policy file at a fixed path. The path is
// injected so tests can point it at temporary storage.
type Store[S any, K, A comparable] struct {
	path   string
	env    rl.Environment[S, K, A]
	enc    Encoding[K, A]
	logger zerolog.Logger
}

// NewStore creates a store for the given path.
func NewStore[S any, K, A comparable](path string, env rl.Environment[S, K, A], enc Encoding[K, A], logger zerolog.Logger) *Store[S, K, A] {
	return &Store[S, K, A]{
		path:   path,
		env:    env,
		enc:    enc,
		logger: logger.With().Str("component", "policy_store").Str("path", path).Logger(),
	}
}

// Path returns where the store saves and loads.
func (s *Store[S, K, A]) Path() string { return s.path }

// Save writes the policy to the store's path, overwriting any previous
// file. Parent directories are created as needed.
func (s *Store[S, K, A]) Save(p *EpsilonGreedy[S, K, A]) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create policy directory: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create policy file: %w", err)
	}
	if err := Write(f, s.enc, p); err != nil {
		f.Close()
		return fmt.Errorf("failed to write policy: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close policy file: %w", err)
	}

	s.logger.Info().
		Int("entries", p.greedy.table.Len()).
		Int("episode", p.episode).
		Msg("saved policy")
	return nil
}

// Load reads the policy from the store's path. A missing file surfaces as
// fs.ErrNotExist; corrupt content as ErrMalformed.
func (s *Store[S, K, A]) Load(rng *rand.Rand) (*EpsilonGreedy[S, K, A], error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Read(f, s.env, s.enc, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy from %s: %w", s.path, err)
	}

	s.logger.Info().
		Int("entries", p.greedy.table.Len()).
		Int("episode", p.episode).
		Msg("loaded policy")
	return p, nil
}

// LoadOrNew loads the stored policy if the file exists, and otherwise
// returns a fresh one with the given parameters. A file that exists but
// does not parse is an error, never silently replaced: the caller decides
// what to do with a corrupt policy.
func (s *Store[S, K, A]) LoadOrNew(params Params, rng *rand.Rand) (*EpsilonGreedy[S, K, A], error) {
	p, err := s.Load(rng)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info().Msg("no policy file, starting fresh")
		return NewEpsilonGreedy(s.env, params, rng), nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
