package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	t.Run("partial last page rounds up", func(t *testing.T) {
		p := NewPagination(1, 10, 25)
		assert.Equal(t, 3, p.TotalPages)
		assert.True(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})

	t.Run("middle page has both neighbours", func(t *testing.T) {
		p := NewPagination(2, 10, 25)
		assert.True(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("last page has no next", func(t *testing.T) {
		p := NewPagination(3, 10, 25)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("empty result set", func(t *testing.T) {
		p := NewPagination(1, 10, 0)
		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 60, CompletionPercentage(3, 5))
	assert.Equal(t, 0, CompletionPercentage(0, 0), "zero total must yield zero")
	assert.Equal(t, 100, CompletionPercentage(4, 4))
	assert.Equal(t, 33, CompletionPercentage(1, 3))
	assert.Equal(t, 67, CompletionPercentage(2, 3))
}
