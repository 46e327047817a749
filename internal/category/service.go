// Package category implements owner-scoped category CRUD with the
// two-mode delete policy: reject while tasks still reference the category,
// or force-detach them first.
package category

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/CamiloBarros/todolist/internal/logger"
	"github.com/CamiloBarros/todolist/internal/model"
	"github.com/CamiloBarros/todolist/internal/store"
)

const maxNameLength = 100

// Service manages categories for their owner.
type Service struct {
	db  *sqlx.DB
	tx  *store.TransactionManager
	log *slog.Logger
}

// NewService creates a category service.
func NewService(db *sqlx.DB) *Service {
	return &Service{db: db, tx: store.NewTransactionManager(db), log: logger.Task()}
}

var categoryColumns = []string{
	"c.id", "c.user_id", "c.name", "c.description", "c.color",
	"c.created_at", "c.updated_at",
}

// List returns the user's categories with their task counts, by name.
func (s *Service) List(ctx context.Context, userID int64) ([]model.Category, error) {
	cols := append(append([]string{}, categoryColumns...), "COUNT(t.id) AS task_count")
	query, args, err := squirrel.Select(cols...).
		From("categories c").
		LeftJoin("tasks t ON t.category_id = c.id").
		Where(squirrel.Eq{"c.user_id": userID}).
		GroupBy("c.id").
		OrderBy("c.name").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, store.WrapDBError(err, "category.list", "category")
	}

	categories := []model.Category{}
	if err := s.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, store.WrapDBError(err, "category.list", "category")
	}
	return categories, nil
}

// Get fetches one category; foreign ownership reads as absence.
func (s *Service) Get(ctx context.Context, userID, categoryID int64) (*model.Category, error) {
	query, args, err := squirrel.Select(categoryColumns...).
		From("categories c").
		Where(squirrel.Eq{"c.id": categoryID, "c.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, store.WrapDBError(err, "category.get", "category")
	}

	var category model.Category
	if err := s.db.GetContext(ctx, &category, query, args...); err != nil {
		return nil, store.WrapDBError(err, "category.get", "category")
	}
	return &category, nil
}

// Create inserts a category. Duplicate names per user surface as conflicts.
func (s *Service) Create(ctx context.Context, userID int64, draft model.CategoryDraft) (*model.Category, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	query, args, err := squirrel.Insert("categories").
		Columns("user_id", "name", "description", "color").
		Values(userID, draft.Name, draft.Description, draft.Color).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, store.WrapDBError(err, "category.create", "category")
	}

	var id int64
	if err := s.db.GetContext(ctx, &id, query, args...); err != nil {
		return nil, store.WrapDBError(err, "category.create", "category")
	}

	s.log.Debug("category created", "user_id", userID, "category_id", id)
	return s.Get(ctx, userID, id)
}

// Update replaces the mutable fields of a category.
func (s *Service) Update(ctx context.Context, userID, categoryID int64, draft model.CategoryDraft) (*model.Category, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	query, args, err := squirrel.Update("categories").
		Set("name", draft.Name).
		Set("description", draft.Description).
		Set("color", draft.Color).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": categoryID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, store.WrapDBError(err, "category.update", "category")
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, store.WrapDBError(err, "category.update", "category")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, store.WrapDBError(err, "category.update", "category")
	}
	if rows == 0 {
		return nil, store.NotFound("category.update", "category")
	}

	return s.Get(ctx, userID, categoryID)
}

// Delete removes a category. Without force it is rejected while tasks
// still reference it; with force those tasks lose the reference first.
// Tasks are never cascade-deleted.
func (s *Service) Delete(ctx context.Context, userID, categoryID int64, force bool) error {
	err := s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var referencing int64
		if err := tx.GetContext(ctx, &referencing,
			"SELECT COUNT(*) FROM tasks WHERE category_id = $1 AND user_id = $2",
			categoryID, userID); err != nil {
			return store.WrapDBError(err, "category.delete", "category")
		}

		if referencing > 0 {
			if !force {
				return store.Conflictf("category.delete", "category has %d associated tasks", referencing)
			}
			if _, err := tx.ExecContext(ctx,
				"UPDATE tasks SET category_id = NULL, updated_at = NOW() WHERE category_id = $1 AND user_id = $2",
				categoryID, userID); err != nil {
				return store.WrapDBError(err, "category.delete", "task")
			}
		}

		res, err := tx.ExecContext(ctx,
			"DELETE FROM categories WHERE id = $1 AND user_id = $2", categoryID, userID)
		if err != nil {
			return store.WrapDBError(err, "category.delete", "category")
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return store.WrapDBError(err, "category.delete", "category")
		}
		if rows == 0 {
			return store.NotFound("category.delete", "category")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug("category deleted", "user_id", userID, "category_id", categoryID, "force", force)
	return nil
}

func validateDraft(draft *model.CategoryDraft) error {
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return store.Validationf("category", "name is required")
	}
	if len(draft.Name) > maxNameLength {
		return store.Validationf("category", "name exceeds %d characters", maxNameLength)
	}
	if draft.Color == "" {
		draft.Color = model.DefaultColor
	}
	if !model.ValidHexColor(draft.Color) {
		return store.Validationf("category", "invalid color %q", draft.Color)
	}
	return nil
}
