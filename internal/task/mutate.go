package task

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/CamiloBarros/todolist/internal/model"
	"github.com/CamiloBarros/todolist/internal/store"
)

const maxTitleLength = 255

// Create inserts a task and its tag associations as one transaction.
// Ownership of the referenced category and of every tag is verified before
// any row is written; partial validity is never accepted.
func (s *Service) Create(ctx context.Context, userID int64, draft model.TaskDraft) (*model.Task, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, store.Validationf("task.create", "title is required")
	}
	if len(title) > maxTitleLength {
		return nil, store.Validationf("task.create", "title exceeds %d characters", maxTitleLength)
	}

	priority := draft.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, store.Validationf("task.create", "invalid priority %q", priority)
	}

	if draft.DueDate != nil && !afterToday(*draft.DueDate, time.Now()) {
		return nil, store.Validationf("task.create", "due date must be after today")
	}

	tagIDs := dedupe(draft.TagIDs)

	var taskID int64
	err := s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if draft.CategoryID != nil {
			if err := verifyCategoryOwned(ctx, tx, userID, *draft.CategoryID); err != nil {
				return err
			}
		}
		if len(tagIDs) > 0 {
			if err := verifyTagsOwned(ctx, tx, userID, tagIDs); err != nil {
				return err
			}
		}

		query, args, err := squirrel.Insert("tasks").
			Columns("user_id", "category_id", "title", "description", "priority", "due_date").
			Values(userID, draft.CategoryID, title, draft.Description, priority, draft.DueDate).
			Suffix("RETURNING id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return store.WrapDBError(err, "task.create", "task")
		}
		if err := tx.GetContext(ctx, &taskID, query, args...); err != nil {
			return store.WrapDBError(err, "task.create", "task")
		}

		return s.insertTagLinks(ctx, tx, taskID, tagIDs)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("task created", "user_id", userID, "task_id", taskID)

	// Reload through the read path so the response shape always matches
	// the read contract.
	return s.Get(ctx, userID, taskID)
}

// Update applies a partial patch. Omitted fields stay untouched. A supplied
// tag list, including the empty list, replaces the association set in full.
// The whole patch commits or rolls back as one transaction.
func (s *Service) Update(ctx context.Context, userID, taskID int64, patch model.TaskPatch) (*model.Task, error) {
	if patch.Empty() {
		return nil, store.Validationf("task.update", "nothing to update")
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, store.Validationf("task.update", "title is required")
		}
		if len(title) > maxTitleLength {
			return nil, store.Validationf("task.update", "title exceeds %d characters", maxTitleLength)
		}
		patch.Title = &title
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, store.Validationf("task.update", "invalid priority %q", *patch.Priority)
	}
	if patch.DueDate.Set && patch.DueDate.Value != nil && !afterToday(*patch.DueDate.Value, time.Now()) {
		return nil, store.Validationf("task.update", "due date must be after today")
	}

	err := s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var id int64
		if err := tx.GetContext(ctx, &id,
			"SELECT id FROM tasks WHERE id = $1 AND user_id = $2", taskID, userID); err != nil {
			return store.WrapDBError(err, "task.update", "task")
		}

		if patch.CategoryID.Set && patch.CategoryID.Value != nil {
			if err := verifyCategoryOwned(ctx, tx, userID, *patch.CategoryID.Value); err != nil {
				return err
			}
		}

		var tagIDs []int64
		if patch.TagIDs != nil {
			tagIDs = dedupe(*patch.TagIDs)
			if len(tagIDs) > 0 {
				if err := verifyTagsOwned(ctx, tx, userID, tagIDs); err != nil {
					return err
				}
			}
		}

		update := squirrel.Update("tasks").
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": taskID, "user_id": userID}).
			PlaceholderFormat(squirrel.Dollar)

		if patch.Title != nil {
			update = update.Set("title", *patch.Title)
		}
		if patch.Description.Set {
			update = update.Set("description", patch.Description.Value)
		}
		if patch.CategoryID.Set {
			update = update.Set("category_id", patch.CategoryID.Value)
		}
		if patch.Priority != nil {
			update = update.Set("priority", *patch.Priority)
		}
		if patch.DueDate.Set {
			update = update.Set("due_date", patch.DueDate.Value)
		}
		if patch.Completed != nil {
			// completed_at pairing happens in the same statement as the
			// flag change.
			update = update.Set("completed", *patch.Completed)
			if *patch.Completed {
				update = update.Set("completed_at", squirrel.Expr("NOW()"))
			} else {
				update = update.Set("completed_at", nil)
			}
		}

		query, args, err := update.ToSql()
		if err != nil {
			return store.WrapDBError(err, "task.update", "task")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return store.WrapDBError(err, "task.update", "task")
		}

		if patch.TagIDs != nil {
			// Association rewrite: drop the full set, reinsert the new one.
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM task_tags WHERE task_id = $1", taskID); err != nil {
				return store.WrapDBError(err, "task.update", "task_tag")
			}
			if err := s.insertTagLinks(ctx, tx, taskID, tagIDs); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("task updated", "user_id", userID, "task_id", taskID)

	return s.Get(ctx, userID, taskID)
}

// Delete removes a task and its associations. Zero affected task rows
// (wrong owner or missing id) reports NotFound and rolls back the join-row
// delete.
func (s *Service) Delete(ctx context.Context, userID, taskID int64) error {
	err := s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM task_tags tt USING tasks t
			 WHERE tt.task_id = t.id AND t.id = $1 AND t.user_id = $2`,
			taskID, userID); err != nil {
			return store.WrapDBError(err, "task.delete", "task_tag")
		}

		res, err := tx.ExecContext(ctx,
			"DELETE FROM tasks WHERE id = $1 AND user_id = $2", taskID, userID)
		if err != nil {
			return store.WrapDBError(err, "task.delete", "task")
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return store.WrapDBError(err, "task.delete", "task")
		}
		if rows == 0 {
			return store.NotFound("task.delete", "task")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug("task deleted", "user_id", userID, "task_id", taskID)
	return nil
}

// verifyCategoryOwned rejects category references across user boundaries.
func verifyCategoryOwned(ctx context.Context, tx *sqlx.Tx, userID, categoryID int64) error {
	var id int64
	err := tx.GetContext(ctx, &id,
		"SELECT id FROM categories WHERE id = $1 AND user_id = $2", categoryID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Validationf("task.category", "category %d does not belong to user", categoryID)
	}
	if err != nil {
		return store.WrapDBError(err, "task.category", "category")
	}
	return nil
}

// verifyTagsOwned requires every requested tag to belong to the user; the
// matched count must equal the requested count.
func verifyTagsOwned(ctx context.Context, tx *sqlx.Tx, userID int64, tagIDs []int64) error {
	var count int64
	err := tx.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM tags WHERE user_id = $1 AND id = ANY($2)",
		userID, pq.Array(tagIDs))
	if err != nil {
		return store.WrapDBError(err, "task.tags", "tag")
	}
	if count != int64(len(tagIDs)) {
		return store.Validationf("task.tags", "one or more tags do not belong to user")
	}
	return nil
}

func (s *Service) insertTagLinks(ctx context.Context, tx *sqlx.Tx, taskID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	insert := squirrel.Insert("task_tags").
		Columns("task_id", "tag_id").
		PlaceholderFormat(squirrel.Dollar)
	for _, tagID := range tagIDs {
		insert = insert.Values(taskID, tagID)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return store.WrapDBError(err, "task.tags", "task_tag")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return store.WrapDBError(err, "task.tags", "task_tag")
	}
	return nil
}

// afterToday reports whether t falls strictly after now's calendar day.
func afterToday(t, now time.Time) bool {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	due := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return due.After(today)
}

func dedupe(ids []int64) []int64 {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
