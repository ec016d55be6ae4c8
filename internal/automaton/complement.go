package automaton

import "github.com/dekarrin/nlstar/internal/nlerrors"

// Complement returns a DFA accepting Σ* \ L(a) (spec.md §4.1). Precondition:
// a must be deterministic (Complement panics otherwise — a precondition
// violation per spec.md §7). The steps, in order:
//
//  1. find, for each state, the symbols in alphabet lacking an outgoing
//     transition;
//  2. if any such gap exists, extend Q with one trap state per symbol,
//     wire every deficient (state, symbol) to its trap, and make every
//     trap absorbing (it transitions to itself, or to the corresponding
//     trap, on every symbol);
//  3. invert the accept set.
//
// q0 is preserved.
func Complement(a Automaton, alphabet []string) Automaton {
	if !a.deterministic {
		panic(nlerrors.Precondition("Complement: automaton is not deterministic"))
	}

	var b Builder
	for q := 0; q < a.size; q++ {
		b.AddState(!a.accept[q])
	}
	for i := 0; i < a.size; i++ {
		for j := range a.trans[i] {
			for _, label := range a.trans[i][j].Elements() {
				b.AddTransition(i, label, j)
			}
		}
	}

	missing := map[int][]string{}
	anyMissing := false
	for q := 0; q < a.size; q++ {
		for _, symbol := range alphabet {
			if a.Next(q, symbol) == -1 {
				missing[q] = append(missing[q], symbol)
				anyMissing = true
			}
		}
	}

	if anyMissing {
		trapOf := map[string]int{}
		for _, symbol := range alphabet {
			// Trap states are non-accepting in the completed automaton, so
			// after the accept set is inverted they are accepting: every
			// word that falls off the original automaton is in the
			// complement.
			trapOf[symbol] = b.AddState(true)
		}

		for q, symbols := range missing {
			for _, symbol := range symbols {
				b.AddTransition(q, symbol, trapOf[symbol])
			}
		}

		for _, fromSymbol := range alphabet {
			trap := trapOf[fromSymbol]
			for _, symbol := range alphabet {
				b.AddTransition(trap, symbol, trapOf[symbol])
			}
		}
	}

	return b.Build(true)
}
