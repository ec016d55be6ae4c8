package automaton

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_ProducesAcceptedWords(t *testing.T) {
	a := Determinize(buildScenario1(), abAlphabet)
	g := NewGenerator(a, rand.New(rand.NewSource(42)), 0.25, 0.5)

	words := g.Generate(50)
	require.Len(t, words, 50)
	for _, w := range words {
		assert.True(t, Accepts(a, w), "generated word %q not accepted", w)
	}
}

func TestGenerator_EmptyAutomatonYieldsNoWords(t *testing.T) {
	var b Builder
	b.AddState(false)
	a := b.Build(true)

	g := NewGenerator(a, rand.New(rand.NewSource(1)), 0.25, 0.5)
	assert.Empty(t, g.Generate(10))
}

func TestGenerator_EpsilonWordWhenStartAccepting(t *testing.T) {
	var b Builder
	s0 := b.AddState(true)
	a := b.Build(true)
	_ = s0

	g := NewGenerator(a, rand.New(rand.NewSource(7)), 1.0, 0.5)
	words := g.Generate(5)
	for _, w := range words {
		assert.Equal(t, "", w)
	}
}
