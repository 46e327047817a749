// Package stats computes the per-user aggregate view: summary counts,
// priority and category breakdowns, recent completions and popular tags.
package stats

import (
	"context"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/CamiloBarros/todolist/internal/logger"
	"github.com/CamiloBarros/todolist/internal/model"
	"github.com/CamiloBarros/todolist/internal/store"
)

// Service aggregates statistics for one user in a single logical read.
// The individual statements run without a cross-statement transaction;
// slight staleness under concurrent writes is accepted.
type Service struct {
	db  *sqlx.DB
	log *slog.Logger
}

// NewService creates a statistics service.
func NewService(db *sqlx.DB) *Service {
	return &Service{db: db, log: logger.Stats()}
}

// Overview computes the full aggregate set for one user.
func (s *Service) Overview(ctx context.Context, userID int64) (*model.Statistics, error) {
	summary, err := s.summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.byPriority(ctx, userID)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.byCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.recentActivity(ctx, userID)
	if err != nil {
		return nil, err
	}
	popular, err := s.popularTags(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.Statistics{
		Summary:        summary,
		ByPriority:     byPriority,
		ByCategory:     byCategory,
		RecentActivity: recent,
		PopularTags:    popular,
	}, nil
}

func (s *Service) summary(ctx context.Context, userID int64) (model.StatsSummary, error) {
	query, args, err := squirrel.Select(
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE completed) AS completed",
		"COUNT(*) FILTER (WHERE NOT completed) AS pending",
		"COUNT(*) FILTER (WHERE NOT completed AND due_date < NOW()) AS overdue",
		"COUNT(*) FILTER (WHERE NOT completed AND due_date >= NOW() AND due_date < NOW() + INTERVAL '7 days') AS due_soon",
	).
		From("tasks").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return model.StatsSummary{}, store.WrapDBError(err, "stats.summary", "task")
	}

	var summary model.StatsSummary
	if err := s.db.GetContext(ctx, &summary, query, args...); err != nil {
		return model.StatsSummary{}, store.WrapDBError(err, "stats.summary", "task")
	}

	summary.CompletedPercentage = model.CompletionPercentage(summary.Completed, summary.Total)
	return summary, nil
}

func (s *Service) byPriority(ctx context.Context, userID int64) ([]model.PriorityStats, error) {
	query, args, err := squirrel.Select(
		"priority",
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE completed) AS completed",
		"COUNT(*) FILTER (WHERE NOT completed) AS pending",
	).
		From("tasks").
		Where(squirrel.Eq{"user_id": userID}).
		GroupBy("priority").
		OrderBy("CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, store.WrapDBError(err, "stats.priority", "task")
	}

	var rows []model.PriorityStats
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, store.WrapDBError(err, "stats.priority", "task")
	}

	for i := range rows {
		rows[i].CompletedPercentage = model.CompletionPercentage(rows[i].Completed, rows[i].Total)
	}
	return rows, nil
}

func (s *Service) byCategory(ctx context.Context, userID int64) ([]model.CategoryStats, error) {
	type categoryRow struct {
		CategoryID *int64  `db:"category_id"`
		Name       *string `db:"name"`
		Color      *string `db:"color"`
		Total      int64   `db:"total"`
		Completed  int64   `db:"completed"`
		Pending    int64   `db:"pending"`
	}

	query, args, err := squirrel.Select(
		"c.id AS category_id",
		"c.name AS name",
		"c.color AS color",
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE t.completed) AS completed",
		"COUNT(*) FILTER (WHERE NOT t.completed) AS pending",
	).
		From("tasks t").
		LeftJoin("categories c ON c.id = t.category_id").
		Where(squirrel.Eq{"t.user_id": userID}).
		GroupBy("c.id", "c.name", "c.color").
		OrderBy("COUNT(*) DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, store.WrapDBError(err, "stats.category", "task")
	}

	var rows []categoryRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, store.WrapDBError(err, "stats.category", "task")
	}

	out := make([]model.CategoryStats, 0, len(rows))
	for _, r := range rows {
		entry := model.CategoryStats{
			CategoryID:          r.CategoryID,
			Name:                "Uncategorized",
			Color:               r.Color,
			Total:               r.Total,
			Completed:           r.Completed,
			Pending:             r.Pending,
			CompletedPercentage: model.CompletionPercentage(r.Completed, r.Total),
		}
		if r.Name != nil {
			entry.Name = *r.Name
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *Service) recentActivity(ctx context.Context, userID int64) ([]model.DailyCompletion, error) {
	// Only days with at least one completion produce a row.
	var rows []model.DailyCompletion
	err := s.db.SelectContext(ctx, &rows,
		`SELECT to_char(completed_at::date, 'YYYY-MM-DD') AS day, COUNT(*) AS completed
		 FROM tasks
		 WHERE user_id = $1 AND completed AND completed_at >= CURRENT_DATE - INTERVAL '6 days'
		 GROUP BY completed_at::date
		 ORDER BY completed_at::date`,
		userID)
	if err != nil {
		return nil, store.WrapDBError(err, "stats.recent", "task")
	}
	return rows, nil
}

func (s *Service) popularTags(ctx context.Context, userID int64) ([]model.TagUsage, error) {
	query, args, err := squirrel.Select(
		"g.id", "g.name", "g.color",
		"COUNT(*) AS usage_count",
	).
		From("task_tags tt").
		Join("tags g ON g.id = tt.tag_id").
		Where(squirrel.Eq{"g.user_id": userID}).
		GroupBy("g.id", "g.name", "g.color").
		OrderBy("usage_count DESC", "g.name").
		Limit(10).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, store.WrapDBError(err, "stats.tags", "tag")
	}

	var rows []model.TagUsage
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, store.WrapDBError(err, "stats.tags", "tag")
	}
	return rows, nil
}
