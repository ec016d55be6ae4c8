package automaton

import (
	"testing"

	"github.com/dekarrin/nlstar/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var abAlphabet = []string{"a", "b"}

// buildScenario1 builds the automaton of spec.md §8 scenario 1:
// A = ({0,1}, {a,b}, δ={0→a→1, 1→a→1, 1→b→0}, q0=0, F={1}).
func buildScenario1() Automaton {
	var b Builder
	s0 := b.AddState(false)
	s1 := b.AddState(true)
	b.AddTransition(s0, "a", s1)
	b.AddTransition(s1, "a", s1)
	b.AddTransition(s1, "b", s0)
	return b.Build(true)
}

func TestDeterminize_Scenario1_IsomorphicNoEpsilon(t *testing.T) {
	a := buildScenario1()
	d := Determinize(a, abAlphabet)

	assert.True(t, d.IsDeterministic())
	d.Transitions(func(_ int, label string, _ int) {
		assert.NotEqual(t, Epsilon, label, "determinized automaton must have no ε edges")
	})

	for _, w := range []string{"", "a", "aa", "ab", "aba", "abab", "b", "aab"} {
		assert.Equal(t, Accepts(a, w), Accepts(d, w), "word %q", w)
	}
}

func TestDeterminize_Idempotent(t *testing.T) {
	a := buildScenario1()
	once := Determinize(a, abAlphabet)
	twice := Determinize(once, abAlphabet)

	assert.Equal(t, once.Size(), twice.Size())
	for _, w := range []string{"", "a", "b", "aab", "abba", "aaaa"} {
		assert.Equal(t, Accepts(once, w), Accepts(twice, w), "word %q", w)
	}
}

func TestEpsilonClosure_Fixpoint(t *testing.T) {
	var b Builder
	s0 := b.AddState(false)
	s1 := b.AddState(false)
	s2 := b.AddState(true)
	b.AddTransition(s0, Epsilon, s1)
	b.AddTransition(s1, Epsilon, s2)
	a := b.Build(false)

	c1 := a.EpsilonClosure(util.KeySetOf([]int{s0}))
	c2 := a.EpsilonClosure(c1)

	assert.True(t, c1.Equal(c2))
	assert.True(t, c1.Has(s0))
	assert.True(t, c1.Has(s1))
	assert.True(t, c1.Has(s2))
}

func TestComplement_Involution(t *testing.T) {
	a := buildScenario1() // missing b from state 0: incomplete over {a,b}

	c := Complement(a, abAlphabet)
	cc := Complement(c, abAlphabet)

	words := []string{"", "a", "b", "aa", "ab", "ba", "bb", "aab", "aba"}
	for _, w := range words {
		assert.Equal(t, Accepts(a, w), Accepts(cc, w), "word %q", w)
		assert.NotEqual(t, Accepts(a, w), Accepts(c, w), "word %q should flip under complement", w)
	}
}

func TestComplement_Scenario6_CompleteDFA_InvertsAcceptOnly(t *testing.T) {
	alphabet := []string{"a", "b", "c"}
	var b Builder
	for i := 0; i < 4; i++ {
		b.AddState(i == 0 || i == 1)
	}
	for i := 0; i < 4; i++ {
		for _, sym := range alphabet {
			b.AddTransition(i, sym, (i+1)%4)
		}
	}
	a := b.Build(true)

	c := Complement(a, alphabet)

	require.Equal(t, a.Size(), c.Size())
	assert.False(t, c.IsAccepting(0))
	assert.False(t, c.IsAccepting(1))
	assert.True(t, c.IsAccepting(2))
	assert.True(t, c.IsAccepting(3))

	for i := 0; i < 4; i++ {
		for _, sym := range alphabet {
			assert.Equal(t, a.Next(i, sym), c.Next(i, sym))
		}
	}
}

func TestIntersect_Product(t *testing.T) {
	// L1 = a*, L2 = (aa)*; intersection should be (aa)*
	var b1 Builder
	s0 := b1.AddState(true)
	b1.AddTransition(s0, "a", s0)
	a1 := b1.Build(true)

	var b2 Builder
	t0 := b2.AddState(true)
	t1 := b2.AddState(false)
	b2.AddTransition(t0, "a", t1)
	b2.AddTransition(t1, "a", t0)
	a2 := b2.Build(true)

	p := Intersect(a1, a2, []string{"a"})

	for _, n := range []int{0, 1, 2, 3, 4, 5} {
		word := ""
		for i := 0; i < n; i++ {
			word += "a"
		}
		assert.Equal(t, n%2 == 0, Accepts(p, word), "word %q", word)
	}
}

func TestAutomaton_EmptyCornerCase(t *testing.T) {
	var b Builder
	b.AddState(false)
	a := b.Build(true)

	assert.True(t, a.Empty())
}
