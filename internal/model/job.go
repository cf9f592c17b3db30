package model

import "time"

// Job posting statuses.
const (
	JobOpen       = "open"
	JobInProgress = "in_progress"
	JobCompleted  = "completed"
	JobCancelled  = "cancelled"
)

// Proposal statuses.
const (
	ProposalPending  = "pending"
	ProposalAccepted = "accepted"
	ProposalRejected = "rejected"
)

// JobPosting is a farmer-posted job that service providers bid on.
//
// Fields:
//  FarmerID   – user who posted the job.
//  AreaRai    – field area the work covers.
//  BudgetMin/ – the farmer's acceptable price range; proposals outside the
//  BudgetMax    range are allowed but flagged to the farmer in the UI.
//  Status     – one of the Job* constants.
type JobPosting struct {
	ID          uint64    `json:"id"`
	FarmerID    uint64    `json:"farmer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AreaRai     float64   `json:"area_rai"`
	BudgetMin   float64   `json:"budget_min"`
	BudgetMax   float64   `json:"budget_max"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Proposal is a provider's bid against an open job posting. Accepting one
// proposal rejects its pending siblings and moves the job to in_progress
// in the same transaction.
type Proposal struct {
	ID           uint64    `json:"id"`
	JobID        uint64    `json:"job_id"`
	ProviderID   uint64    `json:"provider_id"`
	Price        float64   `json:"price"`
	DurationDays uint32    `json:"duration_days"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
