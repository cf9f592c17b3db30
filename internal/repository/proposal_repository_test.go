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

const acceptLockQuery = `SELECT p.job_id, p.status, j.farmer_id, j.status
	   FROM proposals p JOIN job_postings j ON j.id = p.job_id
	  WHERE p.id=? FOR UPDATE`

// Accepting a proposal must reject the pending siblings and move the job
// to in_progress in the same transaction.
func TestAcceptCascade(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(acceptLockQuery)).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "status", "farmer_id", "status"}).
			AddRow(7, model.ProposalPending, 3, model.JobOpen))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE proposals SET status=? WHERE id=?")).
		WithArgs(model.ProposalAccepted, uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE proposals SET status=? WHERE job_id=? AND id<>? AND status=?")).
		WithArgs(model.ProposalRejected, uint64(7), uint64(10), model.ProposalPending).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE job_postings SET status=? WHERE id=?")).
		WithArgs(model.JobInProgress, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewProposalRepo(db)
	require.NoError(t, repo.Accept(context.Background(), 10, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptForbiddenForOtherFarmer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(acceptLockQuery)).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "status", "farmer_id", "status"}).
			AddRow(7, model.ProposalPending, 99, model.JobOpen))
	mock.ExpectRollback()

	repo := NewProposalRepo(db)
	assert.ErrorIs(t, repo.Accept(context.Background(), 10, 3), ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptConflictWhenJobClosed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(acceptLockQuery)).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "status", "farmer_id", "status"}).
			AddRow(7, model.ProposalPending, 3, model.JobCancelled))
	mock.ExpectRollback()

	repo := NewProposalRepo(db)
	assert.ErrorIs(t, repo.Accept(context.Background(), 10, 3), ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectRequiresPendingProposal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT j.farmer_id, p.status")).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"farmer_id", "status"}).
			AddRow(3, model.ProposalAccepted))

	repo := NewProposalRepo(db)
	assert.ErrorIs(t, repo.Reject(context.Background(), 10, 3), ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsDuplicateProposal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM proposals WHERE job_id=? AND provider_id=?")).
		WithArgs(uint64(7), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := NewProposalRepo(db)
	p := model.Proposal{JobID: 7, ProviderID: 5, Price: 1500, DurationDays: 2}
	assert.ErrorIs(t, repo.Create(context.Background(), &p), ErrDuplicateProposal)
	assert.NoError(t, mock.ExpectationsWereMet())
}
