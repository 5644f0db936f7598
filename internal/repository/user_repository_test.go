package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 返回一个由 sqlmock 驱动的 gorm 连接。
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

func TestConsumeQuestion_Consumed(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET `questions_asked`=questions_asked \\+ 1 WHERE id = \\? AND questions_asked < questions_limit").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.ConsumeQuestion(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeQuestion_QuotaFull(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewUserRepository(gdb)

	// 配额已满：WHERE 条件不再匹配，受影响行数为 0
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET `questions_asked`=questions_asked \\+ 1 WHERE id = \\? AND questions_asked < questions_limit").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := repo.ConsumeQuestion(1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementQuestions_UserMissing(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET `questions_asked`=questions_asked \\+ 1 WHERE id = \\?").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := repo.IncrementQuestions(99)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetQuestions(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET `questions_asked`=\\? WHERE id = \\?").
		WithArgs(0, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ResetQuestions(1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
