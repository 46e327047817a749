package task

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/CamiloBarros/todolist/internal/model"
	"github.com/CamiloBarros/todolist/internal/store"
)

// taskColumns are the selected columns for every hydrated fetch. The
// category side comes from a LEFT JOIN so tasks without a category still
// appear.
var taskColumns = []string{
	"t.id", "t.user_id", "t.category_id", "t.title", "t.description",
	"t.completed", "t.priority", "t.due_date", "t.completed_at",
	"t.created_at", "t.updated_at",
	"c.id AS c_id", "c.name AS c_name", "c.color AS c_color",
}

// taskRow is the scan target for the joined select.
type taskRow struct {
	model.Task
	CatID    *int64  `db:"c_id"`
	CatName  *string `db:"c_name"`
	CatColor *string `db:"c_color"`
}

func (r *taskRow) toTask() model.Task {
	t := r.Task
	if r.CatID != nil {
		t.Category = &model.CategorySummary{ID: *r.CatID, Name: *r.CatName, Color: *r.CatColor}
	}
	if t.Tags == nil {
		t.Tags = []model.TagSummary{}
	}
	return t
}

func selectTasks() squirrel.SelectBuilder {
	return squirrel.Select(taskColumns...).
		From("tasks t").
		LeftJoin("categories c ON c.id = t.category_id").
		PlaceholderFormat(squirrel.Dollar)
}

// List returns one page of hydrated tasks plus pagination metadata. The
// count query consumes the same predicates as the page fetch, so the
// metadata always describes the filtered set.
func (s *Service) List(ctx context.Context, userID int64, filter model.TaskFilter, opts model.ListOptions) ([]model.Task, model.Pagination, error) {
	pred := buildPredicates(userID, filter)
	spec := resolvePage(opts, s.limits)

	countSQL, countArgs, err := squirrel.Select("COUNT(*)").
		From("tasks t").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, model.Pagination{}, store.WrapDBError(err, "task.list", "task")
	}

	var total int64
	if err := s.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, model.Pagination{}, store.WrapDBError(err, "task.list", "task")
	}

	pageSQL, pageArgs, err := selectTasks().
		Where(pred).
		OrderBy(resolveSort(opts)).
		Limit(uint64(spec.limit)).
		Offset(spec.offset).
		ToSql()
	if err != nil {
		return nil, model.Pagination{}, store.WrapDBError(err, "task.list", "task")
	}

	var rows []taskRow
	if err := s.db.SelectContext(ctx, &rows, pageSQL, pageArgs...); err != nil {
		return nil, model.Pagination{}, store.WrapDBError(err, "task.list", "task")
	}

	tasks := make([]model.Task, 0, len(rows))
	ids := make([]int64, 0, len(rows))
	for i := range rows {
		tasks = append(tasks, rows[i].toTask())
		ids = append(ids, rows[i].ID)
	}

	if err := s.attachTags(ctx, s.db, ids, tasks); err != nil {
		return nil, model.Pagination{}, err
	}

	return tasks, model.NewPagination(spec.page, spec.limit, total), nil
}

// Get fetches one hydrated task. A task owned by another user behaves
// exactly like a missing one.
func (s *Service) Get(ctx context.Context, userID, taskID int64) (*model.Task, error) {
	return s.getTx(ctx, s.db, userID, taskID)
}

func (s *Service) getTx(ctx context.Context, q sqlx.ExtContext, userID, taskID int64) (*model.Task, error) {
	query, args, err := selectTasks().
		Where(squirrel.Eq{"t.id": taskID, "t.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, store.WrapDBError(err, "task.get", "task")
	}

	var row taskRow
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		return nil, store.WrapDBError(err, "task.get", "task")
	}

	t := row.toTask()
	tasks := []model.Task{t}
	if err := s.attachTags(ctx, q, []int64{t.ID}, tasks); err != nil {
		return nil, err
	}
	return &tasks[0], nil
}

// attachTags loads the full tag list for every task on the page in one
// query. The list reflects the join table in full; an active tag filter
// narrows which tasks appear, never which tags a task shows.
func (s *Service) attachTags(ctx context.Context, q sqlx.ExtContext, ids []int64, tasks []model.Task) error {
	if len(ids) == 0 {
		return nil
	}

	type tagRow struct {
		TaskID int64  `db:"task_id"`
		ID     int64  `db:"id"`
		Name   string `db:"name"`
		Color  string `db:"color"`
	}

	var rows []tagRow
	err := sqlx.SelectContext(ctx, q, &rows,
		`SELECT tt.task_id, g.id, g.name, g.color
		 FROM task_tags tt
		 JOIN tags g ON g.id = tt.tag_id
		 WHERE tt.task_id = ANY($1)
		 ORDER BY g.name`,
		pq.Array(ids))
	if err != nil {
		return store.WrapDBError(err, "task.tags", "tag")
	}

	byTask := make(map[int64][]model.TagSummary, len(ids))
	for _, r := range rows {
		byTask[r.TaskID] = append(byTask[r.TaskID], model.TagSummary{ID: r.ID, Name: r.Name, Color: r.Color})
	}

	for i := range tasks {
		if tags, ok := byTask[tasks[i].ID]; ok {
			tasks[i].Tags = tags
		}
	}
	return nil
}
