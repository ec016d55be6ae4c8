package mat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemCache_GetPutRoundTrip(t *testing.T) {
	c := NewMemCache()

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Put("a", true)
	member, ok := c.Get("a")
	assert.True(t, ok)
	assert.True(t, member)

	c.Put("b", false)
	member, ok = c.Get("b")
	assert.True(t, ok)
	assert.False(t, member)
}
