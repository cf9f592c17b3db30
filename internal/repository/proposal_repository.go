package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kasetlink/drone-spray-booking/internal/model"
)

// ProposalRepo persists provider bids against job postings.
type ProposalRepo struct{ DB *sql.DB }

func NewProposalRepo(db *sql.DB) *ProposalRepo { return &ProposalRepo{DB: db} }

// ErrDuplicateProposal is returned when a provider already has a
// proposal on the job.
var ErrDuplicateProposal = errors.New("proposal already submitted for this job")

const proposalCols = "id,job_id,provider_id,price,duration_days,description,status,created_at,updated_at"

func scanProposal(row rowScanner) (model.Proposal, error) {
	var p model.Proposal
	err := row.Scan(&p.ID, &p.JobID, &p.ProviderID, &p.Price, &p.DurationDays,
		&p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a pending proposal after a read-then-insert duplicate
// check. The check is not atomic under concurrent submissions; this
// mirrors the production behavior and is documented rather than fixed
// with a unique index.
func (r *ProposalRepo) Create(ctx context.Context, p *model.Proposal) error {
	var existing int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM proposals WHERE job_id=? AND provider_id=?",
		p.JobID, p.ProviderID).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return ErrDuplicateProposal
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO proposals (job_id, provider_id, price, duration_days, description, status)
		 VALUES (?,?,?,?,?,?)`,
		p.JobID, p.ProviderID, p.Price, p.DurationDays, p.Description, model.ProposalPending)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	p.Status = model.ProposalPending
	return nil
}

// GetByID returns one proposal.
func (r *ProposalRepo) GetByID(ctx context.Context, id uint64) (model.Proposal, error) {
	return scanProposal(r.DB.QueryRowContext(ctx, "SELECT "+proposalCols+" FROM proposals WHERE id=?", id))
}

// ListByJob returns all proposals on a job, newest first.
func (r *ProposalRepo) ListByJob(ctx context.Context, jobID uint64) ([]model.Proposal, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+proposalCols+" FROM proposals WHERE job_id=? ORDER BY created_at DESC", jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Proposal, 0)
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListByProvider returns a provider's own proposals, newest first.
func (r *ProposalRepo) ListByProvider(ctx context.Context, providerID uint64) ([]model.Proposal, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+proposalCols+" FROM proposals WHERE provider_id=? ORDER BY created_at DESC", providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Proposal, 0)
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Accept marks a proposal accepted on behalf of the farmer who owns the
// job. In the same transaction the pending sibling proposals are
// rejected and the job moves to in_progress, so the cascade is all or
// nothing. Returns ErrForbidden when the job belongs to another farmer
// and ErrConflict when the job is no longer open or the proposal is not
// pending.
func (r *ProposalRepo) Accept(ctx context.Context, proposalID, farmerID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var (
		jobID       uint64
		propStatus  string
		jobFarmerID uint64
		jobStatus   string
	)
	if err := tx.QueryRowContext(ctx,
		`SELECT p.job_id, p.status, j.farmer_id, j.status
		   FROM proposals p JOIN job_postings j ON j.id = p.job_id
		  WHERE p.id=? FOR UPDATE`,
		proposalID).Scan(&jobID, &propStatus, &jobFarmerID, &jobStatus); err != nil {
		return err
	}
	if jobFarmerID != farmerID {
		return ErrForbidden
	}
	if propStatus != model.ProposalPending || jobStatus != model.JobOpen {
		return ErrConflict
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE proposals SET status=? WHERE id=?",
		model.ProposalAccepted, proposalID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE proposals SET status=? WHERE job_id=? AND id<>? AND status=?",
		model.ProposalRejected, jobID, proposalID, model.ProposalPending); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE job_postings SET status=? WHERE id=?",
		model.JobInProgress, jobID); err != nil {
		return err
	}
	return tx.Commit()
}

// Reject marks a single pending proposal rejected, verifying job
// ownership the same way Accept does.
func (r *ProposalRepo) Reject(ctx context.Context, proposalID, farmerID uint64) error {
	var jobFarmerID uint64
	var propStatus string
	if err := r.DB.QueryRowContext(ctx,
		`SELECT j.farmer_id, p.status
		   FROM proposals p JOIN job_postings j ON j.id = p.job_id
		  WHERE p.id=?`,
		proposalID).Scan(&jobFarmerID, &propStatus); err != nil {
		return err
	}
	if jobFarmerID != farmerID {
		return ErrForbidden
	}
	if propStatus != model.ProposalPending {
		return ErrConflict
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE proposals SET status=? WHERE id=?", model.ProposalRejected, proposalID)
	return err
}
