package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasetlink/drone-spray-booking/internal/model"
)

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM bookings WHERE id=? FOR UPDATE")).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.BookingCompleted))
	mock.ExpectRollback()

	repo := NewBookingRepo(db)
	_, err = repo.UpdateStatus(context.Background(), 4, model.BookingCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Assignment must fail atomically when the drone is already working:
// the pilot and booking rows stay untouched.
func TestAssignCrewConflictWhenDroneBusy(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM bookings WHERE id=? FOR UPDATE")).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.BookingPaid))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE drones SET status=? WHERE id=? AND status=?")).
		WithArgs(model.FleetWorking, uint64(2), model.FleetAvailable).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewBookingRepo(db)
	_, err = repo.AssignCrew(context.Background(), 4, 2, 9)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
