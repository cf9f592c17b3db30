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

// FarmerJobHandler covers the farmer side of the job board: posting jobs,
// reviewing proposals and accepting or rejecting them.
type FarmerJobHandler struct {
	Jobs      *repository.JobRepo
	Proposals *repository.ProposalRepo
}

func NewFarmerJobHandler(j *repository.JobRepo, p *repository.ProposalRepo) *FarmerJobHandler {
	return &FarmerJobHandler{Jobs: j, Proposals: p}
}

type createJobReq struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	AreaRai     float64 `json:"area_rai"`
	BudgetMin   float64 `json:"budget_min"`
	BudgetMax   float64 `json:"budget_max"`
}

// CreateJob posts a new open job under the authenticated farmer.
func (h *FarmerJobHandler) CreateJob(c echo.Context) error {
	var req createJobReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return fail(c, http.StatusBadRequest, "title required")
	}
	if req.AreaRai <= 0 {
		return fail(c, http.StatusBadRequest, "area_rai must be a positive number")
	}
	if req.BudgetMin < 0 || req.BudgetMax < req.BudgetMin {
		return fail(c, http.StatusBadRequest, "budget range invalid")
	}

	job := model.JobPosting{
		FarmerID:    currentUser(c),
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		AreaRai:     req.AreaRai,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Jobs.Create(ctx, &job); err != nil {
		return fail(c, http.StatusInternalServerError, "create failed")
	}
	return ok(c, http.StatusCreated, job)
}

// MyJobs lists the farmer's own postings, newest first.
func (h *FarmerJobHandler) MyJobs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Jobs.ListByFarmer(ctx, currentUser(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, list)
}

// CancelJob closes an open posting. Only the owner may cancel.
func (h *FarmerJobHandler) CancelJob(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	switch err := h.Jobs.UpdateStatusForFarmer(ctx, id, currentUser(c), model.JobCancelled); err {
	case nil:
		return ok(c, http.StatusOK, echo.Map{"id": id, "status": model.JobCancelled})
	case sql.ErrNoRows:
		return fail(c, http.StatusNotFound, "job not found")
	case repository.ErrForbidden:
		return fail(c, http.StatusForbidden, "not your job")
	default:
		return fail(c, http.StatusInternalServerError, "update failed")
	}
}

// JobProposals lists all proposals on one of the farmer's jobs.
func (h *FarmerJobHandler) JobProposals(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	job, err := h.Jobs.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "job not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	if job.FarmerID != currentUser(c) {
		return fail(c, http.StatusForbidden, "not your job")
	}

	list, err := h.Proposals.ListByJob(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, list)
}

// AcceptProposal accepts one proposal: its pending siblings are rejected
// and the job moves to in_progress, all in one transaction.
func (h *FarmerJobHandler) AcceptProposal(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	switch err := h.Proposals.Accept(ctx, id, currentUser(c)); err {
	case nil:
	case sql.ErrNoRows:
		return fail(c, http.StatusNotFound, "proposal not found")
	case repository.ErrForbidden:
		return fail(c, http.StatusForbidden, "not your job")
	case repository.ErrConflict:
		return fail(c, http.StatusConflict, "proposal or job is no longer open")
	default:
		return fail(c, http.StatusInternalServerError, "accept failed")
	}
	p, err := h.Proposals.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "load proposal failed")
	}
	return ok(c, http.StatusOK, p)
}

// RejectProposal rejects a single pending proposal.
func (h *FarmerJobHandler) RejectProposal(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	switch err := h.Proposals.Reject(ctx, id, currentUser(c)); err {
	case nil:
		return ok(c, http.StatusOK, echo.Map{"id": id, "status": model.ProposalRejected})
	case sql.ErrNoRows:
		return fail(c, http.StatusNotFound, "proposal not found")
	case repository.ErrForbidden:
		return fail(c, http.StatusForbidden, "not your job")
	case repository.ErrConflict:
		return fail(c, http.StatusConflict, "proposal is not pending")
	default:
		return fail(c, http.StatusInternalServerError, "reject failed")
	}
}
