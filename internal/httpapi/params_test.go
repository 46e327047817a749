package httpapi

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CamiloBarros/todolist/internal/model"
	"github.com/CamiloBarros/todolist/internal/store"
)

func TestParseTaskFilter(t *testing.T) {
	t.Run("absent parameters leave the filter empty", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/tasks", nil)
		filter, err := parseTaskFilter(r)
		require.NoError(t, err)
		assert.Nil(t, filter.Completed)
		assert.Nil(t, filter.CategoryID)
		assert.Nil(t, filter.Priority)
		assert.Nil(t, filter.DueDate)
		assert.Empty(t, filter.Search)
		assert.Empty(t, filter.TagIDs)
	})

	t.Run("all parameters parse", func(t *testing.T) {
		r := httptest.NewRequest("GET",
			"/api/v1/tasks?completed=true&category=3&priority=high&due_date=2026-09-15&search=milk&tags=1,2,3", nil)
		filter, err := parseTaskFilter(r)
		require.NoError(t, err)
		require.NotNil(t, filter.Completed)
		assert.True(t, *filter.Completed)
		assert.Equal(t, int64(3), *filter.CategoryID)
		assert.Equal(t, model.PriorityHigh, *filter.Priority)
		assert.Equal(t, "2026-09-15", filter.DueDate.Format("2006-01-02"))
		assert.Equal(t, "milk", filter.Search)
		assert.Equal(t, []int64{1, 2, 3}, filter.TagIDs)
	})

	t.Run("invalid enum is rejected, not ignored", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/tasks?priority=urgent", nil)
		_, err := parseTaskFilter(r)
		assert.True(t, store.IsValidation(err))
	})

	t.Run("non-positive ids are rejected", func(t *testing.T) {
		for _, query := range []string{"category=0", "category=-1", "category=abc", "tags=1,x", "tags=0"} {
			r := httptest.NewRequest("GET", "/api/v1/tasks?"+query, nil)
			_, err := parseTaskFilter(r)
			assert.True(t, store.IsValidation(err), "query %q", query)
		}
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/tasks?due_date=15-09-2026", nil)
		_, err := parseTaskFilter(r)
		assert.True(t, store.IsValidation(err))
	})
}

func TestParseListOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/tasks?sort_by=priority&sort_direction=asc&page=2&limit=50", nil)
	opts := parseListOptions(r)
	assert.Equal(t, "priority", opts.SortBy)
	assert.Equal(t, "asc", opts.SortDirection)
	assert.Equal(t, 2, opts.Page)
	assert.Equal(t, 50, opts.Limit)
}

func TestParseForce(t *testing.T) {
	assert.False(t, parseForce(httptest.NewRequest("DELETE", "/api/v1/categories/3", nil)))
	assert.True(t, parseForce(httptest.NewRequest("DELETE", "/api/v1/categories/3?force=true", nil)))
	assert.False(t, parseForce(httptest.NewRequest("DELETE", "/api/v1/categories/3?force=banana", nil)))
}
