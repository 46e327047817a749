// Package tag implements owner-scoped tag CRUD. Deleting a tag follows the
// same two-mode policy as categories: reject while associations exist, or
// force-delete which removes the join rows first.
package tag

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

const maxNameLength = 50

// Service manages tags for their owner.
type Service struct {
	db  *sqlx.DB
	tx  *store.TransactionManager
	log *slog.Logger
}

// NewService creates a tag service.
func NewService(db *sqlx.DB) *Service {
	return &Service{db: db, tx: store.NewTransactionManager(db), log: logger.Task()}
}

var tagColumns = []string{
	"g.id", "g.user_id", "g.name", "g.color", "g.created_at", "g.updated_at",
}

// List returns the user's tags with their usage counts, by name.
func (s *Service) List(ctx context.Context, userID int64) ([]model.Tag, error) {
	cols := append(append([]string{}, tagColumns...), "COUNT(tt.task_id) AS usage_count")
	query, args, err := squirrel.Select(cols...).
		From("tags g").
		LeftJoin("task_tags tt ON tt.tag_id = g.id").
		Where(squirrel.Eq{"g.user_id": userID}).
		GroupBy("g.id").
		OrderBy("g.name").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, store.WrapDBError(err, "tag.list", "tag")
	}

	tags := []model.Tag{}
	if err := s.db.SelectContext(ctx, &tags, query, args...); err != nil {
		return nil, store.WrapDBError(err, "tag.list", "tag")
	}
	return tags, nil
}

// Get fetches one tag; foreign ownership reads as absence.
func (s *Service) Get(ctx context.Context, userID, tagID int64) (*model.Tag, error) {
	query, args, err := squirrel.Select(tagColumns...).
		From("tags g").
		Where(squirrel.Eq{"g.id": tagID, "g.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, store.WrapDBError(err, "tag.get", "tag")
	}

	var tag model.Tag
	if err := s.db.GetContext(ctx, &tag, query, args...); err != nil {
		return nil, store.WrapDBError(err, "tag.get", "tag")
	}
	return &tag, nil
}

// Create inserts a tag. Duplicate names per user surface as conflicts.
func (s *Service) Create(ctx context.Context, userID int64, draft model.TagDraft) (*model.Tag, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	query, args, err := squirrel.Insert("tags").
		Columns("user_id", "name", "color").
		Values(userID, draft.Name, draft.Color).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, store.WrapDBError(err, "tag.create", "tag")
	}

	var id int64
	if err := s.db.GetContext(ctx, &id, query, args...); err != nil {
		return nil, store.WrapDBError(err, "tag.create", "tag")
	}

	s.log.Debug("tag created", "user_id", userID, "tag_id", id)
	return s.Get(ctx, userID, id)
}

// Update replaces the mutable fields of a tag.
func (s *Service) Update(ctx context.Context, userID, tagID int64, draft model.TagDraft) (*model.Tag, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	query, args, err := squirrel.Update("tags").
		Set("name", draft.Name).
		Set("color", draft.Color).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": tagID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, store.WrapDBError(err, "tag.update", "tag")
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, store.WrapDBError(err, "tag.update", "tag")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, store.WrapDBError(err, "tag.update", "tag")
	}
	if rows == 0 {
		return nil, store.NotFound("tag.update", "tag")
	}

	return s.Get(ctx, userID, tagID)
}

// Delete removes a tag. Without force it is rejected while task
// associations exist; with force the join rows go first.
func (s *Service) Delete(ctx context.Context, userID, tagID int64, force bool) error {
	err := s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var associations int64
		if err := tx.GetContext(ctx, &associations,
			`SELECT COUNT(*) FROM task_tags tt
			 JOIN tags g ON g.id = tt.tag_id
			 WHERE tt.tag_id = $1 AND g.user_id = $2`,
			tagID, userID); err != nil {
			return store.WrapDBError(err, "tag.delete", "tag")
		}

		if associations > 0 {
			if !force {
				return store.Conflictf("tag.delete", "tag has %d associated tasks", associations)
			}
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM task_tags WHERE tag_id = $1", tagID); err != nil {
				return store.WrapDBError(err, "tag.delete", "task_tag")
			}
		}

		res, err := tx.ExecContext(ctx,
			"DELETE FROM tags WHERE id = $1 AND user_id = $2", tagID, userID)
		if err != nil {
			return store.WrapDBError(err, "tag.delete", "tag")
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return store.WrapDBError(err, "tag.delete", "tag")
		}
		if rows == 0 {
			return store.NotFound("tag.delete", "tag")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug("tag deleted", "user_id", userID, "tag_id", tagID, "force", force)
	return nil
}

func validateDraft(draft *model.TagDraft) error {
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return store.Validationf("tag", "name is required")
	}
	if len(draft.Name) > maxNameLength {
		return store.Validationf("tag", "name exceeds %d characters", maxNameLength)
	}
	if draft.Color == "" {
		draft.Color = model.DefaultColor
	}
	if !model.ValidHexColor(draft.Color) {
		return store.Validationf("tag", "invalid color %q", draft.Color)
	}
	return nil
}
