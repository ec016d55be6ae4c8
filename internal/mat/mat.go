// Package mat defines the Minimally Adequate Teacher contract of spec.md
// §4.4 and a concrete grammar-backed implementation that answers
// equivalence by sampling candidate words with the automaton package's
// random walk generator and checking them against a CFG.
package mat

import "github.com/dekarrin/nlstar/internal/automaton"

// EquivalenceResult is the outcome of an equivalence query: either Ok, or a
// Counterexample that is a member of exactly one of the candidate
// automaton's language and the teacher's language.
type EquivalenceResult struct {
	Ok                bool
	Counterexample    string
	HasCounterexample bool
}

// OkResult is the EquivalenceResult meaning the candidate is accepted as
// equivalent (possibly only heuristically, per spec.md §4.4).
var OkResult = EquivalenceResult{Ok: true}

// WithCounterexample builds an EquivalenceResult carrying a distinguishing
// word.
func WithCounterexample(w string) EquivalenceResult {
	return EquivalenceResult{Ok: false, Counterexample: w, HasCounterexample: true}
}

// MAT is the abstract teacher the NL* learner consumes (spec.md §4.4): a
// total membership oracle and an equivalence oracle over candidate
// automata.
type MAT interface {
	// IsMember reports whether w belongs to the teacher's language. Total;
	// never fails.
	IsMember(w string) bool

	// Equivalent compares candidate against the teacher's language. When
	// equivalence is undecidable in general (the grammar-backed MAT), this
	// may be a heuristic after a configured sampling quota.
	Equivalent(candidate automaton.Automaton) EquivalenceResult
}
