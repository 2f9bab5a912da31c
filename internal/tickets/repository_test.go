package tickets

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	return NewRepository(db), mock
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tickets" WHERE id = $1`)).
		WithArgs("B-missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "B-missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateStatusChecksCurrentState(t *testing.T) {
	repo, mock := newMockDB(t)

	// No row matches when the ticket is not in the expected state
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "tickets" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := repo.UpdateStatus(context.Background(), "BTEST12345", StatusActive, StatusUsed)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateStatusTransitions(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "tickets" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.UpdateStatus(context.Background(), "BTEST12345", StatusActive, StatusUsed)
	require.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
