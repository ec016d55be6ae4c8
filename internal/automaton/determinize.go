package automaton

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/nlstar/internal/util"
)

// EpsilonClosure returns the least state set containing every state in qs
// and closed under ε-transitions: breadth-first, never revisiting a state,
// per spec.md §4.1.
func (a Automaton) EpsilonClosure(qs util.KeySet[int]) util.KeySet[int] {
	closure := util.NewKeySet[int]()
	queue := make([]int, 0, qs.Len())
	for _, q := range qs.Elements() {
		if !closure.Has(q) {
			closure.Add(q)
			queue = append(queue, q)
		}
	}

	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]

		for j := range a.trans[q] {
			if a.trans[q][j].Has(Epsilon) && !closure.Has(j) {
				closure.Add(j)
				queue = append(queue, j)
			}
		}
	}

	return closure
}

// subsetKey returns the canonical, tie-breaking key for a set of source
// states: their sorted indices joined by a separator that cannot appear in
// a formatted integer, giving a stable bijection between subsets and
// destination ids (spec.md §4.1: "Tie-break by the canonical ordering of
// the subset").
func subsetKey(qs util.KeySet[int]) string {
	elems := qs.Elements()
	sort.Ints(elems)
	parts := make([]string, len(elems))
	for i, q := range elems {
		parts[i] = strconv.Itoa(q)
	}
	return strings.Join(parts, ",")
}

// Determinize converts an ε-NFA to an equivalent DFA by subset construction
// (spec.md §4.1). It maintains a bijection between ε-closed subsets of
// source states (keyed canonically by subsetKey) and destination state ids,
// starting from the ε-closure of {Start} as destination 0, and processing a
// work queue of destination states: for each symbol in alphabet, the union
// over the destination's source subset of single-symbol successors, ε-closed
// again, becomes either an existing or a newly allocated destination.
// Terminates because the state space is bounded by 2^|Q|.
//
// alphabet must list every symbol that may label a transition in a; ε must
// not be included.
func Determinize(a Automaton, alphabet []string) Automaton {
	var b Builder

	idOf := map[string]int{}
	subsetOf := map[int]util.KeySet[int]{}

	startSet := a.EpsilonClosure(util.KeySetOf([]int{Start}))
	startKey := subsetKey(startSet)
	startID := b.AddState(anyAccepting(a, startSet))
	idOf[startKey] = startID
	subsetOf[startID] = startSet

	queue := []int{startID}
	for len(queue) > 0 {
		destID := queue[0]
		queue = queue[1:]
		subset := subsetOf[destID]

		for _, symbol := range alphabet {
			next := util.NewKeySet[int]()
			for _, s := range subset.Elements() {
				for j := range a.trans[s] {
					if a.trans[s][j].Has(symbol) {
						next.Add(j)
					}
				}
			}
			if next.Empty() {
				continue
			}
			next = a.EpsilonClosure(next)

			key := subsetKey(next)
			nextID, ok := idOf[key]
			if !ok {
				nextID = b.AddState(anyAccepting(a, next))
				idOf[key] = nextID
				subsetOf[nextID] = next
				queue = append(queue, nextID)
			}

			b.AddTransition(destID, symbol, nextID)
		}
	}

	return b.Build(true)
}

func anyAccepting(a Automaton, qs util.KeySet[int]) bool {
	for _, q := range qs.Elements() {
		if a.accept[q] {
			return true
		}
	}
	return false
}
