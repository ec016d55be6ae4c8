package automaton

import "github.com/dekarrin/nlstar/internal/util"

// Accepts reports whether word is accepted by a, walking it as a (possibly
// non-deterministic, possibly ε-containing) automaton: the set of "current"
// states starts as the ε-closure of {Start} and is advanced one symbol at a
// time, ε-closing after each step. word is accepted iff some state in the
// final set is accepting.
func Accepts(a Automaton, word string) bool {
	current := a.EpsilonClosure(util.KeySetOf([]int{Start}))

	for _, r := range word {
		symbol := string(r)
		next := util.NewKeySet[int]()
		for _, s := range current.Elements() {
			for j := range a.trans[s] {
				if a.trans[s][j].Has(symbol) {
					next.Add(j)
				}
			}
		}
		current = a.EpsilonClosure(next)
		if current.Empty() {
			return false
		}
	}

	for _, s := range current.Elements() {
		if a.accept[s] {
			return true
		}
	}
	return false
}
