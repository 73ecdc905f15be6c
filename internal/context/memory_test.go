package context

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache_PutIncrementsVersionAndRenders(t *testing.T) {
	m := newMemoryCache()
	assert.Equal(t, "", m.render())

	m.put("first memory", 0.8)
	out := m.render()
	assert.Contains(t, out, "first memory")
	assert.Contains(t, out, "0.80")

	before := m.version
	m.put("second memory", 0.5)
	assert.Greater(t, m.version, before)

	snap := m.snapshot()
	assert.Len(t, snap, 2)
}
