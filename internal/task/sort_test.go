package task

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CamiloBarros/todolist/internal/model"
)

func TestResolveSort(t *testing.T) {
	t.Run("defaults to created_at descending", func(t *testing.T) {
		order := resolveSort(model.ListOptions{})
		assert.Equal(t, "t.created_at DESC", order)
	})

	t.Run("unknown sort field falls back to created_at", func(t *testing.T) {
		order := resolveSort(model.ListOptions{SortBy: "password_hash; DROP TABLE tasks"})
		assert.Equal(t, "t.created_at DESC", order)
	})

	t.Run("explicit ascending token", func(t *testing.T) {
		order := resolveSort(model.ListOptions{SortBy: "title", SortDirection: "asc"})
		assert.Equal(t, "t.title ASC", order)
	})

	t.Run("anything but asc sorts descending", func(t *testing.T) {
		for _, dir := range []string{"", "desc", "descending", "up", "ASCending"} {
			order := resolveSort(model.ListOptions{SortBy: "due_date", SortDirection: dir})
			assert.Equal(t, "t.due_date DESC", order, "direction %q", dir)
		}
	})

	t.Run("priority sorts by severity not alphabetically", func(t *testing.T) {
		order := resolveSort(model.ListOptions{SortBy: "priority"})
		assert.Equal(t, priorityRank+" DESC", order)
		assert.Contains(t, order, "WHEN 'high' THEN 3")
	})
}

func TestResolvePage(t *testing.T) {
	limits := Limits{DefaultPageSize: 10, MaxPageSize: 100}

	t.Run("defaults", func(t *testing.T) {
		spec := resolvePage(model.ListOptions{}, limits)
		assert.Equal(t, 1, spec.page)
		assert.Equal(t, 10, spec.limit)
		assert.Equal(t, uint64(0), spec.offset)
	})

	t.Run("page below one falls back to one", func(t *testing.T) {
		spec := resolvePage(model.ListOptions{Page: -3}, limits)
		assert.Equal(t, 1, spec.page)
	})

	t.Run("limit clamped to maximum", func(t *testing.T) {
		spec := resolvePage(model.ListOptions{Limit: 5000}, limits)
		assert.Equal(t, 100, spec.limit)
	})

	t.Run("offset derives from page and effective limit", func(t *testing.T) {
		spec := resolvePage(model.ListOptions{Page: 3, Limit: 25}, limits)
		assert.Equal(t, uint64(50), spec.offset)
	})
}
