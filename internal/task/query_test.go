package task

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CamiloBarros/todolist/internal/model"
	"github.com/CamiloBarros/todolist/internal/store"
)

var taskRowColumns = []string{
	"id", "user_id", "category_id", "title", "description",
	"completed", "priority", "due_date", "completed_at",
	"created_at", "updated_at", "c_id", "c_name", "c_color",
}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	return NewService(sqlxDB, DefaultLimits()), mock
}

func TestList(t *testing.T) {
	userID := int64(7)
	now := time.Now()

	t.Run("returns hydrated page with lock-step total", func(t *testing.T) {
		svc, mock := newTestService(t)
		catID := int64(3)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks t`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		mock.ExpectQuery(`SELECT t\.id, .* FROM tasks t LEFT JOIN categories c ON c\.id = t\.category_id`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(1, userID, catID, "Buy milk", nil, false, "high", nil, nil, now, now, catID, "Errands", "#ff0000").
				AddRow(2, userID, nil, "Write report", "quarterly", true, "low", nil, now, now, now, nil, nil, nil))

		mock.ExpectQuery(`SELECT tt\.task_id, g\.id, g\.name, g\.color`).
			WithArgs(pq.Array([]int64{1, 2})).
			WillReturnRows(sqlmock.NewRows([]string{"task_id", "id", "name", "color"}).
				AddRow(1, 5, "urgent", "#00ff00").
				AddRow(1, 6, "home", "#0000ff"))

		items, pagination, err := svc.List(context.Background(), userID, model.TaskFilter{}, model.ListOptions{})
		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, int64(12), pagination.Total)
		assert.Equal(t, 1, pagination.Page)
		assert.Equal(t, 10, pagination.Limit)
		assert.Equal(t, 2, pagination.TotalPages)
		assert.True(t, pagination.HasNext)
		assert.False(t, pagination.HasPrev)

		require.NotNil(t, items[0].Category)
		assert.Equal(t, "Errands", items[0].Category.Name)
		assert.Len(t, items[0].Tags, 2)

		assert.Nil(t, items[1].Category)
		assert.Empty(t, items[1].Tags)
		assert.NotNil(t, items[1].Tags, "tag list must be empty, not null")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matches yields empty page, not an error", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks t`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT t\.id, .* FROM tasks t`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(taskRowColumns))

		items, pagination, err := svc.List(context.Background(), userID, model.TaskFilter{}, model.ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, int64(0), pagination.Total)
		assert.Equal(t, 0, pagination.TotalPages)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filter arguments reach both queries identically", func(t *testing.T) {
		svc, mock := newTestService(t)
		completed := true

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks t`).
			WithArgs(userID, completed).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT t\.id, .* FROM tasks t`).
			WithArgs(userID, completed).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(1, userID, nil, "Done thing", nil, true, "medium", nil, now, now, now, nil, nil, nil))
		mock.ExpectQuery(`SELECT tt\.task_id, g\.id`).
			WithArgs(pq.Array([]int64{1})).
			WillReturnRows(sqlmock.NewRows([]string{"task_id", "id", "name", "color"}))

		items, pagination, err := svc.List(context.Background(), userID,
			model.TaskFilter{Completed: &completed}, model.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, int64(1), pagination.Total)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGet(t *testing.T) {
	userID := int64(7)
	now := time.Now()

	t.Run("hydrates a single task", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(`SELECT t\.id, .* FROM tasks t LEFT JOIN categories c`).
			WithArgs(int64(42), userID).
			WillReturnRows(sqlmock.NewRows(taskRowColumns).
				AddRow(42, userID, nil, "Buy milk", nil, false, "medium", nil, nil, now, now, nil, nil, nil))
		mock.ExpectQuery(`SELECT tt\.task_id, g\.id`).
			WithArgs(pq.Array([]int64{42})).
			WillReturnRows(sqlmock.NewRows([]string{"task_id", "id", "name", "color"}).
				AddRow(42, 5, "urgent", "#00ff00"))

		item, err := svc.Get(context.Background(), userID, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), item.ID)
		assert.Len(t, item.Tags, 1)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign-owned task reads as not found", func(t *testing.T) {
		svc, mock := newTestService(t)

		// Ownership is part of the predicate, so the row simply is not there.
		mock.ExpectQuery(`SELECT t\.id, .* FROM tasks t`).
			WithArgs(int64(42), userID).
			WillReturnError(sql.ErrNoRows)

		item, err := svc.Get(context.Background(), userID, 42)
		assert.Nil(t, item)
		assert.True(t, store.IsNotFound(err))

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
