package automaton

import "github.com/dekarrin/nlstar/internal/nlerrors"

// Intersect returns the product automaton of two deterministic automata:
// states are reachable pairs (p, q), a transition ((p,q), a, (p',q')) exists
// iff a ∈ δ1(p,p') ∧ a ∈ δ2(q,q'), the start is (q0¹, q0²), and a pair
// accepts iff both components do. Built by BFS from the start pair so only
// reachable pairs are materialized (spec.md §4.1; the spec notes this
// construction is the canonical choice for an operation the source left
// unimplemented — see DESIGN.md Open Question 1).
//
// Precondition: both automata must be deterministic.
func Intersect(a, b Automaton, alphabet []string) Automaton {
	if !a.deterministic || !b.deterministic {
		panic(nlerrors.Precondition("Intersect: both automata must be deterministic"))
	}

	var bld Builder

	type pair struct{ p, q int }
	idOf := map[pair]int{}

	start := pair{Start, Start}
	startID := bld.AddState(a.accept[start.p] && b.accept[start.q])
	idOf[start] = startID

	queue := []pair{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curID := idOf[cur]

		for _, symbol := range alphabet {
			np := a.Next(cur.p, symbol)
			nq := b.Next(cur.q, symbol)
			if np == -1 || nq == -1 {
				continue
			}

			next := pair{np, nq}
			nextID, ok := idOf[next]
			if !ok {
				nextID = bld.AddState(a.accept[np] && b.accept[nq])
				idOf[next] = nextID
				queue = append(queue, next)
			}

			bld.AddTransition(curID, symbol, nextID)
		}
	}

	return bld.Build(true)
}
