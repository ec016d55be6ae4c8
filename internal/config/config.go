// Package config holds the tunable constants of the learner and its
// collaborators (spec.md §6) and an optional TOML overlay for them, the way
// the teacher threads a single config value through construction rather than
// reaching for package-level globals.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Epsilon is the distinguished empty-string label used throughout the
// automaton and grammar packages.
const Epsilon = ""

// DefaultAlphabet is Σ when none is configured, per spec.md §1.
const DefaultAlphabet = "abc"

// Config is the read-only set of loop budgets and probabilities threaded
// through the learner, MAT, and word generator. Construct with Default and
// adjust fields, or load an overlay with Load.
type Config struct {
	// Alphabet is Σ, a fixed finite set of single-character symbols.
	Alphabet string

	// EquivalenceTests bounds the number of sampled words the grammar-backed
	// MAT checks before declaring heuristic equivalence.
	EquivalenceTests int

	// RegularityTests is the REGULARITY_TESTS budget (default 10). It is
	// loaded and overlaid like the other fields; no component in this
	// repository reads it.
	RegularityTests int

	// PumpTests is the number of repetitions i the Pumper tries for each
	// five-way split.
	PumpTests int

	// FiniteStateProbability is the chance the word generator halts its
	// state-chain walk at an accepting state.
	FiniteStateProbability float64

	// CompleteWordProbability is the chance a segment walk in the word
	// generator stops early once it reaches its target state.
	CompleteWordProbability float64

	// MutationsCount is the MUTATIONS_COUNT budget (default 6). It is
	// loaded and overlaid like the other fields; no component in this
	// repository reads it, and the word generator applies no mutations.
	MutationsCount int
}

// Default returns the configuration described by spec.md §6.
func Default() Config {
	return Config{
		Alphabet:                DefaultAlphabet,
		EquivalenceTests:        10,
		RegularityTests:         10,
		PumpTests:               10,
		FiniteStateProbability:  0.25,
		CompleteWordProbability: 0.5,
		MutationsCount:          6,
	}
}

// overlay is the shape of the optional TOML config file. Any field left
// unset in the file keeps its Default() value.
type overlay struct {
	Alphabet                *string  `toml:"alphabet"`
	EquivalenceTests        *int     `toml:"equivalence_tests"`
	RegularityTests         *int     `toml:"regularity_tests"`
	PumpTests               *int     `toml:"pump_tests"`
	FiniteStateProbability  *float64 `toml:"finite_state_probability"`
	CompleteWordProbability *float64 `toml:"complete_word_probability"`
	MutationsCount          *int     `toml:"mutations_count"`
}

// Load reads path as TOML and applies it on top of Default(). A missing
// file is not an error: Default() is returned unchanged, matching the
// teacher's preference for a config file that is optional glue rather than
// required ceremony.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	var ov overlay
	if _, err := toml.DecodeFile(path, &ov); err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}

	if ov.Alphabet != nil {
		cfg.Alphabet = *ov.Alphabet
	}
	if ov.EquivalenceTests != nil {
		cfg.EquivalenceTests = *ov.EquivalenceTests
	}
	if ov.RegularityTests != nil {
		cfg.RegularityTests = *ov.RegularityTests
	}
	if ov.PumpTests != nil {
		cfg.PumpTests = *ov.PumpTests
	}
	if ov.FiniteStateProbability != nil {
		cfg.FiniteStateProbability = *ov.FiniteStateProbability
	}
	if ov.CompleteWordProbability != nil {
		cfg.CompleteWordProbability = *ov.CompleteWordProbability
	}
	if ov.MutationsCount != nil {
		cfg.MutationsCount = *ov.MutationsCount
	}

	return cfg, nil
}

// Symbols returns Σ as a slice of single-character strings, in the order
// they appear in Alphabet.
func (c Config) Symbols() []string {
	syms := make([]string, 0, len(c.Alphabet))
	for _, r := range c.Alphabet {
		syms = append(syms, string(r))
	}
	return syms
}
