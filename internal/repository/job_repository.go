package repository

import (
	"context"
	"database/sql"

	"github.com/kasetlink/drone-spray-booking/internal/model"
)

// JobRepo persists farmer job postings.
type JobRepo struct{ DB *sql.DB }

func NewJobRepo(db *sql.DB) *JobRepo { return &JobRepo{DB: db} }

const jobCols = "id,farmer_id,title,description,area_rai,budget_min,budget_max,status,created_at,updated_at"

func scanJob(row rowScanner) (model.JobPosting, error) {
	var j model.JobPosting
	err := row.Scan(&j.ID, &j.FarmerID, &j.Title, &j.Description, &j.AreaRai,
		&j.BudgetMin, &j.BudgetMax, &j.Status, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}

// Create inserts an open job posting and populates its ID.
func (r *JobRepo) Create(ctx context.Context, j *model.JobPosting) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO job_postings (farmer_id, title, description, area_rai, budget_min, budget_max, status)
		 VALUES (?,?,?,?,?,?,?)`,
		j.FarmerID, j.Title, j.Description, j.AreaRai, j.BudgetMin, j.BudgetMax, model.JobOpen)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	j.ID = uint64(id)
	j.Status = model.JobOpen
	return nil
}

// GetByID returns one job posting.
func (r *JobRepo) GetByID(ctx context.Context, id uint64) (model.JobPosting, error) {
	return scanJob(r.DB.QueryRowContext(ctx, "SELECT "+jobCols+" FROM job_postings WHERE id=?", id))
}

// ListOpen returns open postings for providers to browse, newest first.
func (r *JobRepo) ListOpen(ctx context.Context) ([]model.JobPosting, error) {
	return r.list(ctx, " WHERE status=? ORDER BY created_at DESC", model.JobOpen)
}

// ListByFarmer returns a farmer's own postings, newest first.
func (r *JobRepo) ListByFarmer(ctx context.Context, farmerID uint64) ([]model.JobPosting, error) {
	return r.list(ctx, " WHERE farmer_id=? ORDER BY created_at DESC", farmerID)
}

func (r *JobRepo) list(ctx context.Context, tail string, args ...interface{}) ([]model.JobPosting, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+jobCols+" FROM job_postings"+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.JobPosting, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// UpdateStatusForFarmer moves a job to a new status after verifying
// ownership. ErrForbidden when the job belongs to another farmer.
func (r *JobRepo) UpdateStatusForFarmer(ctx context.Context, jobID, farmerID uint64, status string) error {
	var owner uint64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT farmer_id FROM job_postings WHERE id=?", jobID).Scan(&owner); err != nil {
		return err
	}
	if owner != farmerID {
		return ErrForbidden
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE job_postings SET status=? WHERE id=?", status, jobID)
	return err
}
