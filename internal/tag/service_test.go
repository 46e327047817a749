package tag

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CamiloBarros/todolist/internal/model"
	"github.com/CamiloBarros/todolist/internal/store"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewService(sqlx.NewDb(db, "postgres")), mock
}

func TestTagList(t *testing.T) {
	svc, mock := newTestService(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT g\.id, .* COUNT\(tt\.task_id\) AS usage_count FROM tags g LEFT JOIN task_tags tt`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "color", "created_at", "updated_at", "usage_count"}).
			AddRow(5, 7, "home", "#0000ff", now, now, 3).
			AddRow(6, 7, "urgent", "#00ff00", now, now, 0))

	tags, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, int64(3), tags[0].UsageCount)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagDelete(t *testing.T) {
	userID := int64(7)
	tagID := int64(5)

	t.Run("rejected while associations exist", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM task_tags tt`).
			WithArgs(tagID, userID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectRollback()

		err := svc.Delete(context.Background(), userID, tagID, false)
		assert.True(t, store.IsConflict(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("force delete removes join rows first", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM task_tags tt`).
			WithArgs(tagID, userID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectExec(`DELETE FROM task_tags WHERE tag_id = \$1`).
			WithArgs(tagID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM tags WHERE id = \$1 AND user_id = \$2`).
			WithArgs(tagID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, svc.Delete(context.Background(), userID, tagID, true))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreferenced tag deletes without force", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM task_tags tt`).
			WithArgs(tagID, userID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(`DELETE FROM tags WHERE id = \$1 AND user_id = \$2`).
			WithArgs(tagID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, svc.Delete(context.Background(), userID, tagID, false))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTagValidation(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.Create(context.Background(), 7, model.TagDraft{Name: ""})
	assert.True(t, store.IsValidation(err))

	_, err = svc.Create(context.Background(), 7, model.TagDraft{Name: "home", Color: "blue"})
	assert.True(t, store.IsValidation(err))

	require.NoError(t, mock.ExpectationsWereMet())
}
