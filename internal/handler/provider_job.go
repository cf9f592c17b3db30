package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kasetlink/drone-spray-booking/internal/model"
	"github.com/kasetlink/drone-spray-booking/internal/repository"
)

// ProviderJobHandler covers the provider side of the job board: browsing
// open jobs and bidding on them.
type ProviderJobHandler struct {
	Jobs      *repository.JobRepo
	Proposals *repository.ProposalRepo
}

func NewProviderJobHandler(j *repository.JobRepo, p *repository.ProposalRepo) *ProviderJobHandler {
	return &ProviderJobHandler{Jobs: j, Proposals: p}
}

// OpenJobs lists open postings for providers to browse.
func (h *ProviderJobHandler) OpenJobs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Jobs.ListOpen(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, list)
}

type proposalReq struct {
	Price        float64 `json:"price"`
	DurationDays uint32  `json:"duration_days"`
	Description  string  `json:"description"`
}

// SubmitProposal places a bid on an open job. One proposal per provider
// per job.
func (h *ProviderJobHandler) SubmitProposal(c echo.Context) error {
	jobID := idParam(c)
	if jobID == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req proposalReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.Price <= 0 {
		return fail(c, http.StatusBadRequest, "price must be a positive number")
	}
	if req.DurationDays == 0 {
		return fail(c, http.StatusBadRequest, "duration_days must be at least 1")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	job, err := h.Jobs.GetByID(ctx, jobID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "job not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	if job.Status != model.JobOpen {
		return fail(c, http.StatusConflict, "job is not open")
	}

	p := model.Proposal{
		JobID:        jobID,
		ProviderID:   currentUser(c),
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Description:  strings.TrimSpace(req.Description),
	}
	if err := h.Proposals.Create(ctx, &p); err != nil {
		if err == repository.ErrDuplicateProposal {
			return fail(c, http.StatusConflict, "proposal already submitted for this job")
		}
		return fail(c, http.StatusInternalServerError, "create failed")
	}
	return ok(c, http.StatusCreated, p)
}

// MyProposals lists the provider's own bids, newest first.
func (h *ProviderJobHandler) MyProposals(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Proposals.ListByProvider(ctx, currentUser(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, list)
}
