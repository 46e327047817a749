package task

import (
	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/CamiloBarros/todolist/internal/model"
)

// buildPredicates turns a filter into the conjunction used by both the page
// fetch and the count query. Feeding both from this single function keeps
// pagination metadata in lock-step with the returned rows.
//
// Ownership is always the first predicate. Absent filter fields add no
// clause. Every value is bound as a parameter.
func buildPredicates(userID int64, f model.TaskFilter) squirrel.And {
	pred := squirrel.And{squirrel.Eq{"t.user_id": userID}}

	if f.Completed != nil {
		pred = append(pred, squirrel.Eq{"t.completed": *f.Completed})
	}
	if f.CategoryID != nil {
		pred = append(pred, squirrel.Eq{"t.category_id": *f.CategoryID})
	}
	if f.Priority != nil {
		pred = append(pred, squirrel.Eq{"t.priority": *f.Priority})
	}
	if f.DueDate != nil {
		// Calendar-day match; time of day is ignored.
		pred = append(pred, squirrel.Expr("t.due_date::date = ?::date", *f.DueDate))
	}
	if f.Search != "" {
		needle := "%" + f.Search + "%"
		pred = append(pred, squirrel.Or{
			squirrel.ILike{"t.title": needle},
			squirrel.ILike{"t.description": needle},
		})
	}
	if len(f.TagIDs) > 0 {
		// OR semantics: one matching tag qualifies the task.
		pred = append(pred, squirrel.Expr(
			"EXISTS (SELECT 1 FROM task_tags tt WHERE tt.task_id = t.id AND tt.tag_id = ANY(?))",
			pq.Array(f.TagIDs),
		))
	}

	return pred
}
