package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteByUser_SingleUser(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewConversationRepository(gdb)

	uid := uint(1)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `conversations` WHERE user_id = \\?").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	deleted, err := repo.DeleteByUser(&uid)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByUser_AllUsers(t *testing.T) {
	gdb, mock := newTestDB(t)
	repo := NewConversationRepository(gdb)

	// 全量清空以单条 DELETE 语句执行
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `conversations` WHERE 1 = 1").
		WillReturnResult(sqlmock.NewResult(0, 42))
	mock.ExpectCommit()

	deleted, err := repo.DeleteByUser(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
