package mat

import (
	"math/rand"
	"testing"

	"github.com/dekarrin/nlstar/internal/automaton"
	"github.com/dekarrin/nlstar/internal/config"
	"github.com/dekarrin/nlstar/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarMAT_IsMember_CachesAndAgrees(t *testing.T) {
	g := grammar.MustParse([]string{"S -> aSb | ab"})
	m := NewGrammarMAT(g, config.Default(), rand.New(rand.NewSource(1)))
	m.mustCNF()

	assert.True(t, m.IsMember("aabb"))
	assert.False(t, m.IsMember("aab"))

	cached, ok := m.cache.Get("aabb")
	require.True(t, ok)
	assert.True(t, cached)
}

func TestGrammarMAT_Equivalent_AgreesWithExactDFA(t *testing.T) {
	// teacher language: a* (via S -> aS | ε), candidate: exact DFA for a*
	g := grammar.New("S")
	g.AddProduction("S", grammar.Production{Elements: []string{"a", "S"}})
	g.AddProduction("S", grammar.Production{Elements: nil})
	g.Terminals.Add("a")

	cfg := config.Default()
	m := NewGrammarMAT(g, cfg, rand.New(rand.NewSource(2)))

	var b automaton.Builder
	s0 := b.AddState(true)
	b.AddTransition(s0, "a", s0)
	candidate := b.Build(true)

	result := m.Equivalent(candidate)
	assert.True(t, result.Ok)
}

func TestGrammarMAT_Equivalent_FindsCounterexample(t *testing.T) {
	g := grammar.New("S")
	g.AddProduction("S", grammar.Production{Elements: []string{"a", "S"}})
	g.AddProduction("S", grammar.Production{Elements: nil})
	g.Terminals.Add("a")
	g.Terminals.Add("b")

	cfg := config.Default()
	cfg.EquivalenceTests = 200
	m := NewGrammarMAT(g, cfg, rand.New(rand.NewSource(3)))

	// wrong candidate: accepts a*b instead of a*
	var b automaton.Builder
	s0 := b.AddState(false)
	s1 := b.AddState(true)
	b.AddTransition(s0, "a", s0)
	b.AddTransition(s0, "b", s1)
	candidate := b.Build(true)

	result := m.Equivalent(candidate)
	assert.False(t, result.Ok)
	assert.True(t, result.HasCounterexample)
}
