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

// PricingHandler serves the public price board and the admin pricing CRUD.
// Public reads go through the Redis-backed cache; admin reads bypass it so
// inactive rows stay visible on the management page.
type PricingHandler struct {
	Repo  *repository.PricingRepo
	Cache *repository.CachedPricing
}

func NewPricingHandler(repo *repository.PricingRepo, cache *repository.CachedPricing) *PricingHandler {
	return &PricingHandler{Repo: repo, Cache: cache}
}

// PublicList returns the active crop and spray rates shown on the booking
// form and in the chatbot price card.
func (h *PricingHandler) PublicList(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	crops, err := h.Cache.ListActiveCrops(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	sprays, err := h.Cache.ListActiveSprays(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, echo.Map{"crops": crops, "sprays": sprays})
}

type priceRowReq struct {
	Name        string   `json:"name"`
	PricePerRai *float64 `json:"price_per_rai"`
	IsActive    *bool    `json:"is_active"`
}

func (r *priceRowReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return "name required"
	}
	if r.PricePerRai == nil || *r.PricePerRai < 0 {
		return "price_per_rai must be zero or positive"
	}
	return ""
}

// ----- crops -----

func (h *PricingHandler) ListCrops(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Repo.ListCrops(ctx, true)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, list)
}

func (h *PricingHandler) CreateCrop(c echo.Context) error {
	var req priceRowReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	row := model.CropType{Name: req.Name, PricePerRai: *req.PricePerRai, IsActive: active}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Repo.CreateCrop(ctx, &row); err != nil {
		return fail(c, http.StatusInternalServerError, "create failed")
	}
	h.Cache.Invalidate(ctx)
	return ok(c, http.StatusCreated, row)
}

func (h *PricingHandler) UpdateCrop(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req priceRowReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	row, err := h.Repo.GetCrop(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "crop type not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	row.Name = req.Name
	row.PricePerRai = *req.PricePerRai
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}
	if err := h.Repo.UpdateCrop(ctx, row); err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	h.Cache.Invalidate(ctx)
	return ok(c, http.StatusOK, row)
}

// ----- sprays -----

func (h *PricingHandler) ListSprays(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Repo.ListSprays(ctx, true)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, list)
}

func (h *PricingHandler) CreateSpray(c echo.Context) error {
	var req priceRowReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	row := model.SprayType{Name: req.Name, PricePerRai: *req.PricePerRai, IsActive: active}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Repo.CreateSpray(ctx, &row); err != nil {
		return fail(c, http.StatusInternalServerError, "create failed")
	}
	h.Cache.Invalidate(ctx)
	return ok(c, http.StatusCreated, row)
}

func (h *PricingHandler) UpdateSpray(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req priceRowReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	row, err := h.Repo.GetSpray(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "spray type not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	row.Name = req.Name
	row.PricePerRai = *req.PricePerRai
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}
	if err := h.Repo.UpdateSpray(ctx, row); err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	h.Cache.Invalidate(ctx)
	return ok(c, http.StatusOK, row)
}
