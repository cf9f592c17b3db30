package handler

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kasetlink/drone-spray-booking/internal/model"
	"github.com/kasetlink/drone-spray-booking/internal/pricing"
	"github.com/kasetlink/drone-spray-booking/internal/repository"
)

// BookingHandler serves the booking flow: quoting, creation from the LIFF
// form, slip upload and the customer's own booking lists. Creation and
// slip upload are deliberately unauthenticated because LIFF guests only
// carry a LINE user id, not an account.
type BookingHandler struct {
	Bookings  *repository.BookingRepo
	Pricing   *repository.PricingRepo
	UploadDir string
}

func NewBookingHandler(b *repository.BookingRepo, p *repository.PricingRepo, uploadDir string) *BookingHandler {
	return &BookingHandler{Bookings: b, Pricing: p, UploadDir: uploadDir}
}

type createBookingReq struct {
	LineUserID    string  `json:"line_user_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	AreaRai       float64 `json:"area_rai"`
	CropTypeID    uint64  `json:"crop_type_id"`
	SprayTypeID   uint64  `json:"spray_type_id"`
	ScheduledAt   *string `json:"scheduled_at"` // RFC 3339, optional
}

// Quote prices an area against the active rates without creating
// anything. GET /v1/pricing/quote?area_rai=&crop_type_id=&spray_type_id=
func (h *BookingHandler) Quote(c echo.Context) error {
	area, err := strconv.ParseFloat(c.QueryParam("area_rai"), 64)
	if err != nil || area <= 0 {
		return fail(c, http.StatusBadRequest, "area_rai must be a positive number")
	}
	cropID, err1 := strconv.ParseUint(c.QueryParam("crop_type_id"), 10, 64)
	sprayID, err2 := strconv.ParseUint(c.QueryParam("spray_type_id"), 10, 64)
	if err1 != nil || err2 != nil || cropID == 0 || sprayID == 0 {
		return fail(c, http.StatusBadRequest, "crop_type_id and spray_type_id required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cropRate, sprayRate, err := h.Pricing.ActiveRates(ctx, cropID, sprayID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "crop or spray type not found or inactive")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, pricing.Calculate(area, cropRate, sprayRate))
}

// Create inserts a booking in pending_payment. The price is always
// recomputed server side from the active rates; client totals are ignored.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	if req.CustomerName == "" || req.CustomerPhone == "" {
		return fail(c, http.StatusBadRequest, "customer_name and customer_phone required")
	}
	if req.AreaRai <= 0 {
		return fail(c, http.StatusBadRequest, "area_rai must be a positive number")
	}
	if req.CropTypeID == 0 || req.SprayTypeID == 0 {
		return fail(c, http.StatusBadRequest, "crop_type_id and spray_type_id required")
	}
	var scheduledAt *time.Time
	if req.ScheduledAt != nil && *req.ScheduledAt != "" {
		t, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			return fail(c, http.StatusBadRequest, "scheduled_at must be RFC 3339")
		}
		scheduledAt = &t
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cropRate, sprayRate, err := h.Pricing.ActiveRates(ctx, req.CropTypeID, req.SprayTypeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "crop or spray type not found or inactive")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	quote := pricing.Calculate(req.AreaRai, cropRate, sprayRate)

	bk := model.Booking{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		AreaRai:       req.AreaRai,
		CropTypeID:    req.CropTypeID,
		SprayTypeID:   req.SprayTypeID,
		TotalPrice:    quote.TotalPrice,
		Deposit:       quote.Deposit,
		ScheduledAt:   scheduledAt,
	}
	if uid := currentUser(c); uid != 0 {
		bk.UserID = &uid
	}
	if lid := strings.TrimSpace(req.LineUserID); lid != "" {
		bk.LineUserID = &lid
	}

	if err := h.Bookings.Create(ctx, &bk); err != nil {
		return fail(c, http.StatusInternalServerError, "create booking failed")
	}
	created, err := h.Bookings.GetByID(ctx, bk.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "load booking failed")
	}
	return ok(c, http.StatusCreated, created)
}

// Get returns one booking. Customers only see their own; admins see all.
func (h *BookingHandler) Get(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bk, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "booking not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	role, _ := c.Get("role").(string)
	if role != model.RoleAdmin {
		uid := currentUser(c)
		if bk.UserID == nil || *bk.UserID != uid {
			return fail(c, http.StatusForbidden, "forbidden")
		}
	}
	return ok(c, http.StatusOK, bk)
}

// MyBookings lists the authenticated user's bookings, newest first.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	uid := currentUser(c)
	if uid == 0 {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, list)
}

// UploadSlip stores a payment-slip image for a booking and records its
// reference. The booking status is not advanced here; an admin verifies
// the slip and confirms payment through the order board.
func (h *BookingHandler) UploadSlip(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	fh, err := c.FormFile("slip")
	if err != nil {
		return fail(c, http.StatusBadRequest, "slip file required")
	}

	src, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "cannot read upload")
	}
	defer src.Close()

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return fail(c, http.StatusInternalServerError, "storage unavailable")
	}
	// The stored name is server generated; the client filename is only
	// trusted for its extension.
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := fmt.Sprintf("slip_%d_%d%s", id, time.Now().UnixNano(), ext)
	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "storage unavailable")
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return fail(c, http.StatusInternalServerError, "write failed")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Bookings.SetSlipRef(ctx, id, name); err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "booking not found")
		}
		return fail(c, http.StatusInternalServerError, "save slip failed")
	}
	return ok(c, http.StatusOK, echo.Map{"slip_ref": name})
}
