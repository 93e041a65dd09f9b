package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ecotrash/todo-backend/internal/models"
)

// newMockRepo wires the repository to a mocked SQL connection so driver-level
// failures can be simulated.
func newMockRepo(t *testing.T) (TodoRepository, sqlmock.Sqlmock) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewTodoRepository(db), mock
}

func TestList_CountFailurePropagates(t *testing.T) {
	repo, mock := newMockRepo(t)
	dbErr := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `todos`")).
		WillReturnError(dbErr)

	_, _, err := repo.List(TodoFilter{}, time.Now())
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountOverdue_AppliesDueDateAndStatusRestriction(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `todos` WHERE due_date < \\? AND status IN \\(\\?,\\?\\)").
		WithArgs(now, models.StatusPending, models.StatusInProgress).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))

	count, err := repo.CountOverdue(TodoFilter{}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_RollsBackWhenAttachmentCleanupFails(t *testing.T) {
	repo, mock := newMockRepo(t)
	dbErr := errors.New("lock wait timeout")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `attachments` WHERE todo_id = ?")).
		WithArgs(uint64(7)).
		WillReturnError(dbErr)
	mock.ExpectRollback()

	err := repo.Delete(7)
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
