package mat

import (
	"math/rand"

	"github.com/dekarrin/nlstar/internal/automaton"
	"github.com/dekarrin/nlstar/internal/config"
	"github.com/dekarrin/nlstar/internal/grammar"
	"github.com/dekarrin/nlstar/internal/nlerrors"
)

// GrammarMAT answers membership by CYK-deriving a word from a CNF grammar
// (spec.md §4.4: "the grammar-backed MAT answers membership by attempting
// to derive the word from the BNF form of the CNF grammar") and answers
// equivalence by sampling words from the candidate automaton and checking
// each one for a disagreement, up to a configured quota
// (EquivalenceTests, spec.md §6).
type GrammarMAT struct {
	cnf   *grammar.Grammar
	cache QueryCache
	cfg   config.Config
	rng   *rand.Rand

	// lastEquivalenceWords records the words tried by the most recent
	// Equivalent call, for diagnostics. It is unexported and nothing outside
	// this type reads it; the driver does not print it.
	lastEquivalenceWords []string
}

// NewGrammarMAT builds a GrammarMAT over g, normalizing g to CNF first (a
// copy; g itself is left untouched per spec.md §5's "owned by a single
// logical actor" rule). rng drives the equivalence-query word sampling.
func NewGrammarMAT(g *grammar.Grammar, cfg config.Config, rng *rand.Rand) *GrammarMAT {
	cnf := g.Copy()
	cnf.ToCNF()
	return &GrammarMAT{
		cnf:   cnf,
		cache: NewMemCache(),
		cfg:   cfg,
		rng:   rng,
	}
}

// WithCache replaces m's QueryCache (e.g. with a SQLiteCache for
// cross-run persistence) and returns m for chaining.
func (m *GrammarMAT) WithCache(cache QueryCache) *GrammarMAT {
	m.cache = cache
	return m
}

// IsMember reports whether w is derivable from the CNF grammar, caching
// the answer. When the cache already holds an answer for w, that answer is
// returned without re-deriving w, so repeated queries always agree; a
// cached answer is not compared against the grammar.
func (m *GrammarMAT) IsMember(w string) bool {
	if cached, ok := m.cache.Get(w); ok {
		return cached
	}
	member := m.cnf.Accepts(w)
	m.cache.Put(w, member)
	return member
}

// Equivalent samples up to m.cfg.EquivalenceTests words from candidate via
// automaton.Generator, stopping at the first word whose membership in the
// grammar disagrees with its acceptance by candidate. If every sampled
// word agrees, Equivalent heuristically reports Ok (spec.md §4.4).
func (m *GrammarMAT) Equivalent(candidate automaton.Automaton) EquivalenceResult {
	m.lastEquivalenceWords = nil

	gen := automaton.NewGenerator(candidate, m.rng, m.cfg.FiniteStateProbability, m.cfg.CompleteWordProbability)
	words := gen.Generate(m.cfg.EquivalenceTests)
	m.lastEquivalenceWords = words

	for _, w := range words {
		inCandidate := automaton.Accepts(candidate, w)
		inTeacher := m.IsMember(w)
		if inCandidate != inTeacher {
			return WithCounterexample(w)
		}
	}

	// The generator only ever produces words accepted by candidate
	// (automaton.Generator's contract), so it cannot by itself witness a
	// word candidate rejects but the teacher accepts. That asymmetry is
	// inherent to sampling-based equivalence and is why spec.md §4.4 calls
	// the Ok result heuristic rather than exact.
	return OkResult
}

// mustCNF is a defensive assertion helper used by tests to confirm the
// internal grammar invariant holds; it is not part of the MAT interface.
func (m *GrammarMAT) mustCNF() {
	for nt, prods := range m.cnf.Productions {
		for _, p := range prods {
			if len(p.Elements) > 2 {
				panic(nlerrors.Unreachable("GrammarMAT holds a non-CNF grammar"))
			}
			_ = nt
		}
	}
}
