package context

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryIndex_SearchRanksByRelevance(t *testing.T) {
	idx := NewMemoryIndex().(*memoryIndex)
	idx.Put("the quick brown fox")
	idx.Put("fox fox fox jumps")
	idx.Put("unrelated content")

	results := idx.Search("fox")
	assert.Len(t, results, 2)
	assert.Greater(t, results[0].Relevance, results[1].Relevance)
}

func TestMemoryIndex_SearchEmptyQuery(t *testing.T) {
	idx := NewMemoryIndex()
	assert.Empty(t, idx.Search(""))
}

func TestMemoryIndex_Stats(t *testing.T) {
	idx := NewMemoryIndex().(*memoryIndex)
	idx.Put("a")
	idx.Put("b")
	stats := idx.Stats()
	assert.Equal(t, 2, stats.EntryCount)
	assert.Equal(t, uint64(2), stats.Version)
}
