package grammar

import "github.com/dekarrin/nlstar/internal/util"

// ToPrefixGrammar builds the prefix grammar of g: a CFG generating exactly
// the set of prefixes of strings in L(g) (spec.md §4.3, the
// "prefix-grammar law" of spec.md §8). Every non-terminal A gets an
// ε-shadowed copy Aε; for a unary rule A -> a, Aε gains Aε -> a | ε; for a
// binary rule A -> BC, Aε gains Aε -> B Cε | Bε. The new start symbol is
// Sε, with Sε -> ε added to cover the empty prefix.
//
// Ported directly from cfg.rs's to_prefix_grammar, operating on CNF input
// (so every production has exactly one or two elements already).
func (g *Grammar) ToPrefixGrammar() *Grammar {
	pg := &Grammar{
		NonTerminals: g.NonTerminals.Copy().(util.StringSet),
		Terminals:    g.Terminals.Copy().(util.StringSet),
		Productions:  map[string][]Production{},
		Start:        epsilonShadow(g.Start),
		freshCounter: g.freshCounter,
	}

	for nt, prods := range g.Productions {
		pg.Productions[nt] = append([]Production(nil), prods...)
	}

	for _, nt := range g.NonTerminals.Elements() {
		ntEps := epsilonShadow(nt)
		pg.NonTerminals.Add(ntEps)

		for _, prod := range g.Productions[nt] {
			switch len(prod.Elements) {
			case 1:
				pg.Productions[ntEps] = append(pg.Productions[ntEps],
					Production{Elements: []string{prod.Elements[0]}},
					Production{Elements: nil},
				)
			case 2:
				pg.Productions[ntEps] = append(pg.Productions[ntEps],
					Production{Elements: []string{prod.Elements[0], epsilonShadow(prod.Elements[1])}},
					Production{Elements: []string{epsilonShadow(prod.Elements[0])}},
				)
			}
		}
	}

	pg.Productions[pg.Start] = append(pg.Productions[pg.Start], Production{Elements: nil})

	return pg
}

// epsilonShadow names the ε-shadowed copy of non-terminal nt.
func epsilonShadow(nt string) string { return nt + "ε" }

// ToInverted swaps the two symbols of every binary production, leaving
// unary and ε productions untouched. Used as a building block for the
// suffix and infix grammar constructions (spec.md §4.3): suffix(G) =
// invert(prefix(invert(G))), infix(G) = prefix(suffix(G)).
func (g *Grammar) ToInverted() *Grammar {
	inv := &Grammar{
		NonTerminals: g.NonTerminals.Copy().(util.StringSet),
		Terminals:    g.Terminals.Copy().(util.StringSet),
		Productions:  map[string][]Production{},
		Start:        g.Start,
		freshCounter: g.freshCounter,
	}

	for nt, prods := range g.Productions {
		for _, prod := range prods {
			elements := append([]string(nil), prod.Elements...)
			if len(elements) == 2 {
				elements[0], elements[1] = elements[1], elements[0]
			}
			inv.Productions[nt] = append(inv.Productions[nt], Production{Elements: elements})
		}
	}

	return inv
}

// ToSuffixGrammar builds the suffix grammar of g, generating the suffixes
// of L(g): suffix(G) = invert(prefix(invert(G))) (spec.md §4.3).
func (g *Grammar) ToSuffixGrammar() *Grammar {
	return g.ToInverted().ToPrefixGrammar().ToInverted()
}

// ToInfixGrammar builds the infix grammar of g, generating the infixes
// (substrings) of L(g): infix(G) = prefix(suffix(G)) (spec.md §4.3).
func (g *Grammar) ToInfixGrammar() *Grammar {
	return g.ToSuffixGrammar().ToPrefixGrammar()
}
