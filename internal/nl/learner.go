package nl

import (
	"sort"

	"github.com/dekarrin/nlstar/internal/automaton"
	"github.com/dekarrin/nlstar/internal/mat"
)

// Learner drives the NL* loop of spec.md §4.5 over a MAT, producing a
// deterministic automaton approximating the teacher's language.
type Learner struct {
	teacher  mat.MAT
	alphabet []string

	arena    *Arena
	main     *MainTable
	extended *ExtendedTable

	// Iteration is a monotonic counter incremented once per loop pass,
	// exposed for diagnostics and for the checkpoint format (SPEC_FULL.md
	// §3).
	Iteration int
}

// New builds a Learner over teacher with the given alphabet (spec.md §4.5).
// Both tables start with ε inserted, per spec.md §4.6 ("both include the
// empty string in their prefix and suffix sets at construction").
func New(teacher mat.MAT, alphabet []string) *Learner {
	arena := NewArena()
	main := NewMainTable(teacher, alphabet, arena)
	extended := NewExtendedTable(teacher, alphabet, arena)
	extended.InsertPrefix("")

	return &Learner{
		teacher:  teacher,
		alphabet: alphabet,
		arena:    arena,
		main:     main,
		extended: extended,
	}
}

// Main returns the learner's MainTable, for diagnostics and tests.
func (l *Learner) Main() *MainTable { return l.main }

// Extended returns the learner's ExtendedTable, for diagnostics and tests.
func (l *Learner) Extended() *ExtendedTable { return l.extended }

// insertPrefix inserts u into both tables, keeping U·Σ synchronized with U
// (spec.md §4.6: the Extended table always holds u and u·a for every
// a ∈ Σ, for every u the Main table holds).
func (l *Learner) insertPrefix(u string) {
	l.main.InsertPrefix(u)
	l.extended.InsertPrefix(u)
}

// insertSuffix adds e to the shared suffix set, extending both tables'
// rows and re-deriving U_basic in the Main table.
func (l *Learner) insertSuffix(e string) {
	l.main.InsertSuffix(e)
	l.extended.InsertSuffix(e)
}

// Run executes the NL* loop to completion and returns the final
// deterministic automaton (spec.md §4.5). budget bounds the number of
// loop iterations as a last-resort safety net; spec.md's termination
// property guarantees the loop exits via an Ok equivalence answer well
// before any realistic budget is exhausted.
func (l *Learner) Run(budget int) automaton.Automaton {
	var hypothesis automaton.Automaton

	for iter := 0; budget <= 0 || iter < budget; iter++ {
		l.Iteration = iter

		if u, ok := l.checkCompleteness(); ok {
			l.insertPrefix(u)
			for _, a := range l.alphabet {
				l.insertPrefix(u + a)
			}
			continue
		}

		if suffix, ok := l.checkConsistency(); ok {
			l.insertSuffix(suffix)
			continue
		}

		hypothesis = automaton.Determinize(l.buildRFSA(), l.alphabet)

		result := l.teacher.Equivalent(hypothesis)
		if result.Ok {
			return hypothesis
		}

		for _, u := range properNonEmptyPrefixes(result.Counterexample) {
			l.insertPrefix(u)
		}
	}

	return hypothesis
}

// checkCompleteness implements spec.md §4.5 step 1: find a u ∈ U·Σ whose
// row is not covered by U_basic, if any.
func (l *Learner) checkCompleteness() (string, bool) {
	for _, u := range l.extended.prefixes {
		row, _ := l.extended.row(u)
		if !l.main.isCoveredRow(row) {
			return u, true
		}
	}
	return "", false
}

// checkConsistency implements spec.md §4.5 step 2: find an ordered pair
// (u1, u2) in U with row(u1) ⊆ row(u2) and a symbol a where row(u1·a) is
// not a subset of row(u2·a), and return a distinguishing suffix a·e.
func (l *Learner) checkConsistency() (string, bool) {
	prefixes := l.main.prefixes
	for _, u1 := range prefixes {
		row1, _ := l.main.row(u1)
		for _, u2 := range prefixes {
			if u1 == u2 {
				continue
			}
			row2, _ := l.main.row(u2)
			if !row1.IsSubsetOf(row2) {
				continue
			}
			for _, a := range l.alphabet {
				ra, _ := l.extended.row(u1 + a)
				rb, _ := l.extended.row(u2 + a)
				if !ra.IsSubsetOf(rb) {
					e := firstDifferingSuffix(l.arena, ra, rb)
					return a + e, true
				}
			}
		}
	}
	return "", false
}

// firstDifferingSuffix returns a suffix in ra but not rb (ra ⊄ rb is
// assumed), in ascending suffix-id order for determinism.
func firstDifferingSuffix(arena *Arena, ra, rb Bitset) string {
	for _, id := range ra.Elements() {
		if !rb.Has(id) {
			return arena.Suffix(id)
		}
	}
	panic("firstDifferingSuffix: ra is a subset of rb")
}

// buildRFSA implements spec.md §4.5 step 3: states are basic prefixes,
// start is the basic prefix whose row equals row(ε) (or a synthesized
// start state when ε's row is not itself prime), acceptance is membership
// of ε in a state's row, and transitions are the non-deterministic
// row-inclusion relation.
func (l *Learner) buildRFSA() automaton.Automaton {
	basics := l.main.Basic()
	sort.Strings(basics)
	startIsBasic := l.main.IsBasic("")

	var b automaton.Builder
	stateOf := map[string]int{}

	// automaton.Start is always index 0 (the Automaton package's
	// convention), so the start state's AddState call must come first.
	var startIdx int
	if startIsBasic {
		// "" sorts first among any set of strings, so basics[0] == "" and
		// its state naturally lands at index 0.
		for _, u := range basics {
			row, _ := l.main.row(u)
			stateOf[u] = b.AddState(row.Has(0)) // suffix id 0 is always ε
		}
		startIdx = stateOf[""]
	} else {
		epsRow, _ := l.main.row("")
		startIdx = b.AddState(epsRow.Has(0))
		for _, u := range basics {
			row, _ := l.main.row(u)
			stateOf[u] = b.AddState(row.Has(0))
		}
	}

	for _, u := range basics {
		uState := stateOf[u]
		for _, a := range l.alphabet {
			uaRow, _ := l.extended.row(u + a)
			for _, v := range basics {
				vRow, _ := l.main.row(v)
				if vRow.IsSubsetOf(uaRow) {
					b.AddTransition(uState, a, stateOf[v])
				}
			}
		}
	}

	if !startIsBasic {
		for _, a := range l.alphabet {
			epsARow, _ := l.extended.row(a)
			for _, v := range basics {
				vRow, _ := l.main.row(v)
				if vRow.IsSubsetOf(epsARow) {
					b.AddTransition(startIdx, a, stateOf[v])
				}
			}
		}
	}

	return b.Build(false)
}

// properNonEmptyPrefixes returns every proper, non-empty prefix of w, in
// ascending length order — spec.md §9's resolved open question #4: the
// counterexample word itself is not inserted, only its proper prefixes.
func properNonEmptyPrefixes(w string) []string {
	var prefixes []string
	for i := 1; i < len(w); i++ {
		prefixes = append(prefixes, w[:i])
	}
	return prefixes
}
