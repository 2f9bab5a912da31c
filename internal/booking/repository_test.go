package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
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

// The confirmation transaction must take row locks on the reservation before
// reading it, otherwise two concurrent confirmations can both see the seats
// as free. The expectation regexes end in FOR UPDATE so a lockless SELECT
// fails to match.
func TestConfirmReservationLocksReservationRow(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "pending_reservations" WHERE payment_id = \$1 AND expires_at > \$2 ORDER BY .+ FOR UPDATE`).
		WithArgs("P123", sqlmock.AnyArg(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"payment_id"}))
	mock.ExpectRollback()

	_, err := repo.ConfirmReservation(context.Background(), "P123", time.Now())
	assert.ErrorIs(t, err, ErrNotFoundOrExpired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmReservationLocksSeatRows(t *testing.T) {
	repo, mock := newMockDB(t)
	eventID := uuid.New()
	expiresAt := time.Now().Add(10 * time.Minute)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "pending_reservations" WHERE payment_id = \$1 AND expires_at > \$2 ORDER BY .+ FOR UPDATE`).
		WithArgs("P123", sqlmock.AnyArg(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"payment_id", "booking_ref", "event_id", "seat_labels", "total_amount", "expires_at"}).
			AddRow("P123", "B9KX42TQA", eventID.String(), "A1,A2", 5000, expiresAt))
	mock.ExpectQuery(`SELECT \* FROM "seats" WHERE event_id = \$1 AND seat_label IN \(\$2,\$3\) FOR UPDATE`).
		WithArgs(eventID.String(), "A1", "A2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "seat_label", "price", "status"}).
			AddRow(uuid.NewString(), eventID.String(), "A1", 2500, "occupied").
			AddRow(uuid.NewString(), eventID.String(), "A2", 2500, "free"))
	mock.ExpectRollback()

	_, err := repo.ConfirmReservation(context.Background(), "P123", time.Now())

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"A1"}, conflict.Labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}
