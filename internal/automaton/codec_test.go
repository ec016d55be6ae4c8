package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	a := Determinize(buildScenario1(), abAlphabet)

	data := Encode(a)
	restored, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, a.Size(), restored.Size())
	for _, w := range []string{"", "a", "ab", "aab", "abab", "b"} {
		assert.Equal(t, Accepts(a, w), Accepts(restored, w), "word %q", w)
	}
}
