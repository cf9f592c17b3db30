package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kasetlink/drone-spray-booking/internal/model"
	"github.com/kasetlink/drone-spray-booking/internal/queue"
	"github.com/kasetlink/drone-spray-booking/internal/repository"
	queuepub "github.com/kasetlink/drone-spray-booking/internal/service"
)

// AdminBookingHandler is the order board: list every booking, move them
// through the status machine and assign fleet resources. Status changes
// are published to the notification queue so linked LINE users hear about
// them; publish failures are logged and never fail the request.
type AdminBookingHandler struct {
	Bookings *repository.BookingRepo
}

func NewAdminBookingHandler(b *repository.BookingRepo) *AdminBookingHandler {
	return &AdminBookingHandler{Bookings: b}
}

// List returns all bookings, optionally filtered by ?status=.
func (h *AdminBookingHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !model.ValidBookingStatus(status) {
		return fail(c, http.StatusBadRequest, "unknown status")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Bookings.ListAll(ctx, status)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, list)
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateStatus moves a booking to a new status. Illegal transitions are
// rejected with 422 and leave the row untouched.
func (h *AdminBookingHandler) UpdateStatus(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req statusReq
	if err := c.Bind(&req); err != nil || !model.ValidBookingStatus(req.Status) {
		return fail(c, http.StatusBadRequest, "status must be a known booking status")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bk, err := h.Bookings.UpdateStatus(ctx, id, req.Status)
	switch err {
	case nil:
	case sql.ErrNoRows:
		return fail(c, http.StatusNotFound, "booking not found")
	case repository.ErrInvalidTransition:
		return fail(c, http.StatusUnprocessableEntity, "invalid status transition")
	default:
		return fail(c, http.StatusInternalServerError, "update failed")
	}

	h.publishStatus(bk)
	return ok(c, http.StatusOK, bk)
}

type assignReq struct {
	DroneID uint64 `json:"drone_id"`
	PilotID uint64 `json:"pilot_id"`
}

// Assign sets the drone and pilot on a paid booking. Both must be
// available; a resource already working yields 409.
func (h *AdminBookingHandler) Assign(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req assignReq
	if err := c.Bind(&req); err != nil || req.DroneID == 0 || req.PilotID == 0 {
		return fail(c, http.StatusBadRequest, "drone_id and pilot_id required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bk, err := h.Bookings.AssignCrew(ctx, id, req.DroneID, req.PilotID)
	switch err {
	case nil:
	case sql.ErrNoRows:
		return fail(c, http.StatusNotFound, "booking not found")
	case repository.ErrInvalidTransition:
		return fail(c, http.StatusUnprocessableEntity, "booking is not ready for assignment")
	case repository.ErrConflict:
		return fail(c, http.StatusConflict, "drone or pilot not available")
	default:
		return fail(c, http.StatusInternalServerError, "assign failed")
	}

	h.publishStatus(bk)
	return ok(c, http.StatusOK, bk)
}

// publishStatus fires a notification event for a booking that just
// changed status. Detached from the request so a slow broker cannot
// stall the admin UI.
func (h *AdminBookingHandler) publishStatus(bk model.Booking) {
	ev := queue.BookingStatusEvent{
		BookingID:    bk.ID,
		CustomerName: bk.CustomerName,
		CropName:     bk.CropName,
		SprayName:    bk.SprayName,
		AreaRai:      bk.AreaRai,
		TotalPrice:   bk.TotalPrice,
		Status:       bk.Status,
		ChangedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if bk.LineUserID != nil {
		ev.LineUserID = *bk.LineUserID
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := queuepub.PublishBookingStatus(ctx, ev); err != nil {
			log.Printf("booking %d: status event not published: %v", bk.ID, err)
		}
	}()
}
