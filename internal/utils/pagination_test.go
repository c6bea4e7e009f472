package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	t.Run("middle page has both neighbors", func(t *testing.T) {
		result := Paginate([]int{4, 5, 6}, 9, 2, 3)
		assert.Equal(t, int32(3), result.TotalPages)
		assert.True(t, result.HasNextPage)
		assert.True(t, result.HasPrevPage)
	})

	t.Run("last partial page", func(t *testing.T) {
		result := Paginate([]int{10}, 10, 4, 3)
		assert.Equal(t, int32(4), result.TotalPages)
		assert.False(t, result.HasNextPage)
		assert.True(t, result.HasPrevPage)
	})

	t.Run("empty result set", func(t *testing.T) {
		result := Paginate[string](nil, 0, 1, 20)
		assert.NotNil(t, result.Items)
		assert.Empty(t, result.Items)
		assert.Zero(t, result.TotalPages)
		assert.False(t, result.HasNextPage)
		assert.False(t, result.HasPrevPage)
	})
}

func TestNormalizePageParams(t *testing.T) {
	page, size := NormalizePageParams(0, 0)
	assert.Equal(t, int32(1), page)
	assert.Equal(t, int32(20), size)

	page, size = NormalizePageParams(3, 500)
	assert.Equal(t, int32(3), page)
	assert.Equal(t, int32(100), size)
}
