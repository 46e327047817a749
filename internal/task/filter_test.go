package task

import (
	"strings"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CamiloBarros/todolist/internal/model"
)

func renderPredicates(t *testing.T, userID int64, f model.TaskFilter) (string, []interface{}) {
	t.Helper()
	sql, args, err := squirrel.Select("COUNT(*)").
		From("tasks t").
		Where(buildPredicates(userID, f)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	require.NoError(t, err)
	return sql, args
}

func TestBuildPredicates(t *testing.T) {
	t.Run("empty filter constrains only ownership", func(t *testing.T) {
		sql, args := renderPredicates(t, 7, model.TaskFilter{})
		assert.Contains(t, sql, "t.user_id = $1")
		assert.NotContains(t, sql, "completed")
		assert.NotContains(t, sql, "priority")
		assert.NotContains(t, sql, "due_date")
		assert.NotContains(t, sql, "ILIKE")
		assert.NotContains(t, sql, "task_tags")
		assert.Equal(t, []interface{}{int64(7)}, args)
	})

	t.Run("completed false is a real constraint", func(t *testing.T) {
		completed := false
		sql, args := renderPredicates(t, 7, model.TaskFilter{Completed: &completed})
		assert.Contains(t, sql, "t.completed = $2")
		assert.Equal(t, []interface{}{int64(7), false}, args)
	})

	t.Run("category and priority are exact matches", func(t *testing.T) {
		categoryID := int64(3)
		priority := model.PriorityHigh
		sql, args := renderPredicates(t, 7, model.TaskFilter{CategoryID: &categoryID, Priority: &priority})
		assert.Contains(t, sql, "t.category_id = $2")
		assert.Contains(t, sql, "t.priority = $3")
		assert.Equal(t, []interface{}{int64(7), int64(3), model.PriorityHigh}, args)
	})

	t.Run("due date matches the calendar day", func(t *testing.T) {
		day := time.Date(2026, 9, 15, 13, 45, 0, 0, time.UTC)
		sql, _ := renderPredicates(t, 7, model.TaskFilter{DueDate: &day})
		assert.Contains(t, sql, "t.due_date::date = $2::date")
	})

	t.Run("search hits title or description case-insensitively", func(t *testing.T) {
		sql, args := renderPredicates(t, 7, model.TaskFilter{Search: "groceries"})
		assert.Contains(t, sql, "t.title ILIKE $2")
		assert.Contains(t, sql, "t.description ILIKE $3")
		assert.Contains(t, args, "%groceries%")
	})

	t.Run("tags use OR semantics via EXISTS on the join table", func(t *testing.T) {
		sql, args := renderPredicates(t, 7, model.TaskFilter{TagIDs: []int64{1, 2, 3}})
		assert.Contains(t, sql, "EXISTS (SELECT 1 FROM task_tags tt WHERE tt.task_id = t.id AND tt.tag_id = ANY($2))")
		assert.Len(t, args, 2)
	})

	t.Run("ownership is the first predicate", func(t *testing.T) {
		completed := true
		sql, _ := renderPredicates(t, 7, model.TaskFilter{Completed: &completed, Search: "x"})
		assert.Less(t, strings.Index(sql, "t.user_id"), strings.Index(sql, "t.completed"))
	})

	t.Run("search value is bound, never concatenated", func(t *testing.T) {
		sql, args := renderPredicates(t, 7, model.TaskFilter{Search: "'; DROP TABLE tasks; --"})
		assert.NotContains(t, sql, "DROP TABLE")
		assert.Contains(t, args, "%'; DROP TABLE tasks; --%")
	})
}
