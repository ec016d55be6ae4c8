package grammar

// Accepts reports whether g, which must already be in Chomsky Normal Form,
// derives word. Implements the CYK algorithm: a table[i][j] holds the set
// of non-terminals deriving the substring of length j+1 starting at i,
// built bottom-up from single symbols.
//
// This is the membership procedure spec.md §4.4 assumes the grammar MAT
// uses once both candidate and teacher languages are normalized into CNF
// (there is no BNF-parsing/CYK library in the retrieved corpus analogous to
// the original's bnf crate, so membership is derived directly from the CNF
// invariant rather than a third-party parser).
func (g *Grammar) Accepts(word string) bool {
	n := len(word)
	if n == 0 {
		return g.derivesEpsilon(g.Start)
	}

	// table[i][j] = set of non-terminals deriving word[i : i+j+1]
	table := make([][]map[string]bool, n)
	for i := range table {
		table[i] = make([]map[string]bool, n)
		for j := range table[i] {
			table[i][j] = map[string]bool{}
		}
	}

	for i := 0; i < n; i++ {
		sym := string(word[i])
		for nt, prods := range g.Productions {
			for _, p := range prods {
				if len(p.Elements) == 1 && p.Elements[0] == sym {
					table[i][0][nt] = true
				}
			}
		}
	}

	for length := 2; length <= n; length++ {
		for i := 0; i <= n-length; i++ {
			j := length - 1
			for split := 1; split < length; split++ {
				left := table[i][split-1]
				right := table[i+split][length-split-1]
				for nt, prods := range g.Productions {
					if table[i][j][nt] {
						continue
					}
					for _, p := range prods {
						if len(p.Elements) != 2 {
							continue
						}
						if left[p.Elements[0]] && right[p.Elements[1]] {
							table[i][j][nt] = true
							break
						}
					}
				}
			}
		}
	}

	return table[0][n-1][g.Start]
}

// derivesEpsilon reports whether nt directly has an ε-production; only the
// start symbol can carry one in a well-formed CNF grammar (spec.md §3).
func (g *Grammar) derivesEpsilon(nt string) bool {
	for _, p := range g.Productions[nt] {
		if p.IsEpsilon() {
			return true
		}
	}
	return false
}
