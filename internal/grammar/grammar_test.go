package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildScenario3 builds the CFG of spec.md §8 scenarios 3 and 4: S -> aSb | ab.
func buildScenario3() *Grammar {
	return MustParse([]string{"S -> aSb | ab"})
}

func TestParse_RoundTripsThroughPrettyString(t *testing.T) {
	g := buildScenario3()
	assert.Equal(t, "S", g.Start)
	assert.True(t, g.Terminals.Has("a"))
	assert.True(t, g.Terminals.Has("b"))
	assert.Len(t, g.Productions["S"], 2)

	reparsed := MustParse([]string{g.PrettyString()})
	assert.Equal(t, g.Start, reparsed.Start)
	assert.Equal(t, len(g.Productions["S"]), len(reparsed.Productions["S"]))
}

func TestParse_SkipsMalformedLines(t *testing.T) {
	g := Parse([]string{"S -> ab", "not a rule", "1abc -> x"}, nil)
	require.Equal(t, "S", g.Start)
	require.Len(t, g.Productions["S"], 1)
}

func TestToCNF_Scenario3_AcceptsAabb(t *testing.T) {
	g := buildScenario3().Copy()
	g.ToCNF()

	assert.True(t, g.Accepts("aabb"))
	assert.False(t, g.Accepts("aab"))
	assert.False(t, g.Accepts(""))
}

func TestToCNF_ProductionsAreBinaryOrTerminalOrStartEpsilon(t *testing.T) {
	g := buildScenario3().Copy()
	g.ToCNF()

	for nt, prods := range g.Productions {
		for _, p := range prods {
			switch len(p.Elements) {
			case 0:
				assert.Equal(t, g.Start, nt, "only the start symbol may have an ε-production")
			case 1:
				assert.True(t, g.Terminals.Has(p.Elements[0]), "unary CNF productions must rewrite to a terminal")
			case 2:
				assert.True(t, g.NonTerminals.Has(p.Elements[0]))
				assert.True(t, g.NonTerminals.Has(p.Elements[1]))
			default:
				t.Fatalf("CNF production with %d elements: %v", len(p.Elements), p.Elements)
			}
		}
	}
}

func TestToPrefixGrammar_Scenario4_AcceptsAab(t *testing.T) {
	g := buildScenario3().Copy()
	g.ToCNF()

	pg := g.ToPrefixGrammar()
	pg.ToCNF()

	assert.True(t, pg.Accepts("aab"))
}

func TestToPrefixGrammar_PrefixGrammarLaw(t *testing.T) {
	g := buildScenario3().Copy()
	g.ToCNF()
	pg := g.ToPrefixGrammar()
	pg.ToCNF()

	// every prefix of a word in L(g) must be accepted by the prefix grammar
	for _, w := range []string{"aabb", "ab", "aaabbb"} {
		for i := 0; i <= len(w); i++ {
			assert.True(t, pg.Accepts(w[:i]), "prefix %q of %q should be accepted", w[:i], w)
		}
	}
}

func TestToInverted_Involution(t *testing.T) {
	g := buildScenario3().Copy()
	g.ToCNF()

	twice := g.ToInverted().ToInverted()
	assert.True(t, g.Accepts("aabb"))
	assert.True(t, twice.Accepts("aabb"))
}

// TestToCNF_RepeatedNullableSymbolInProduction covers a production with
// more than one occurrence of a nullable non-terminal: S -> A A, A -> a | ε.
// removeEpsilonRules must emit a variant for every subset of the nullable
// occurrences, not just one occurrence at a time, or S loses its ability to
// derive "" (both A's elided) and single "a" derivations get mishandled.
func TestToCNF_RepeatedNullableSymbolInProduction(t *testing.T) {
	g := MustParse([]string{"S -> A A", "A -> a|"}).Copy()
	g.ToCNF()

	assert.True(t, g.Accepts(""), "both A's elided should derive the empty string")
	assert.True(t, g.Accepts("a"), "one A present, the other elided")
	assert.True(t, g.Accepts("aa"))
	assert.False(t, g.Accepts("aaa"))
}

func TestBNF_SortsAlternativesAndUsesStartFirst(t *testing.T) {
	g := buildScenario3()
	bnf := g.BNF()
	require.Contains(t, bnf, "<S> ::=")
	assert.Equal(t, "<S> ::= 'a' 'b' | 'a' <S> 'b'\n", bnf)
}
