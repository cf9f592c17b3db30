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

// FleetHandler manages the spraying fleet: drones, pilots and rentable
// ground equipment. All mutations are admin-only; the equipment list has
// a public read for the rental page the chatbot links to.
type FleetHandler struct {
	Drones    *repository.DroneRepo
	Pilots    *repository.PilotRepo
	Equipment *repository.EquipmentRepo
}

func NewFleetHandler(d *repository.DroneRepo, p *repository.PilotRepo, e *repository.EquipmentRepo) *FleetHandler {
	return &FleetHandler{Drones: d, Pilots: p, Equipment: e}
}

func statusFilter(c echo.Context) (string, bool) {
	s := c.QueryParam("status")
	if s != "" && !model.ValidFleetStatus(s) {
		return "", false
	}
	return s, true
}

// ----- drones -----

type droneReq struct {
	Name       string   `json:"name"`
	Model      string   `json:"model"`
	TankLiters *float64 `json:"tank_liters"`
	Status     string   `json:"status"`
	Notes      *string  `json:"notes"`
}

func (h *FleetHandler) ListDrones(c echo.Context) error {
	status, valid := statusFilter(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "unknown status")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Drones.List(ctx, status)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, list)
}

func (h *FleetHandler) CreateDrone(c echo.Context) error {
	var req droneReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fail(c, http.StatusBadRequest, "name required")
	}
	d := model.Drone{Name: req.Name, Model: strings.TrimSpace(req.Model), Status: model.FleetAvailable, Notes: req.Notes}
	if req.TankLiters != nil {
		d.TankLiters = *req.TankLiters
	}
	if req.Status != "" {
		if !model.ValidFleetStatus(req.Status) {
			return fail(c, http.StatusBadRequest, "unknown status")
		}
		d.Status = req.Status
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Drones.Create(ctx, &d); err != nil {
		return fail(c, http.StatusInternalServerError, "create failed")
	}
	return ok(c, http.StatusCreated, d)
}

func (h *FleetHandler) UpdateDrone(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req droneReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	d, err := h.Drones.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "drone not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		d.Name = name
	}
	if m := strings.TrimSpace(req.Model); m != "" {
		d.Model = m
	}
	if req.TankLiters != nil {
		d.TankLiters = *req.TankLiters
	}
	if req.Status != "" {
		if !model.ValidFleetStatus(req.Status) {
			return fail(c, http.StatusBadRequest, "unknown status")
		}
		d.Status = req.Status
	}
	if req.Notes != nil {
		d.Notes = req.Notes
	}
	if err := h.Drones.Update(ctx, d); err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return ok(c, http.StatusOK, d)
}

func (h *FleetHandler) DeleteDrone(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	switch err := h.Drones.Delete(ctx, id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case sql.ErrNoRows:
		return fail(c, http.StatusNotFound, "drone not found")
	case repository.ErrConflict:
		return fail(c, http.StatusConflict, "drone is referenced by bookings")
	default:
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
}

// ----- pilots -----

type pilotReq struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	LicenseNo string  `json:"license_no"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes"`
}

func (h *FleetHandler) ListPilots(c echo.Context) error {
	status, valid := statusFilter(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "unknown status")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Pilots.List(ctx, status)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, list)
}

func (h *FleetHandler) CreatePilot(c echo.Context) error {
	var req pilotReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fail(c, http.StatusBadRequest, "name required")
	}
	p := model.Pilot{
		Name:      req.Name,
		Phone:     strings.TrimSpace(req.Phone),
		LicenseNo: strings.TrimSpace(req.LicenseNo),
		Status:    model.FleetAvailable,
		Notes:     req.Notes,
	}
	if req.Status != "" {
		if !model.ValidFleetStatus(req.Status) {
			return fail(c, http.StatusBadRequest, "unknown status")
		}
		p.Status = req.Status
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Pilots.Create(ctx, &p); err != nil {
		return fail(c, http.StatusInternalServerError, "create failed")
	}
	return ok(c, http.StatusCreated, p)
}

func (h *FleetHandler) UpdatePilot(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req pilotReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	p, err := h.Pilots.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "pilot not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		p.Name = name
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		p.Phone = phone
	}
	if lic := strings.TrimSpace(req.LicenseNo); lic != "" {
		p.LicenseNo = lic
	}
	if req.Status != "" {
		if !model.ValidFleetStatus(req.Status) {
			return fail(c, http.StatusBadRequest, "unknown status")
		}
		p.Status = req.Status
	}
	if req.Notes != nil {
		p.Notes = req.Notes
	}
	if err := h.Pilots.Update(ctx, p); err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return ok(c, http.StatusOK, p)
}

func (h *FleetHandler) DeletePilot(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	switch err := h.Pilots.Delete(ctx, id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case sql.ErrNoRows:
		return fail(c, http.StatusNotFound, "pilot not found")
	case repository.ErrConflict:
		return fail(c, http.StatusConflict, "pilot is referenced by bookings")
	default:
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
}

// ----- equipment -----

type equipmentReq struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	DailyRate   *float64 `json:"daily_rate"`
	Status      string   `json:"status"`
}

// PublicEquipment lists available rental items for the rental page.
func (h *FleetHandler) PublicEquipment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Equipment.List(ctx, model.FleetAvailable)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, list)
}

func (h *FleetHandler) ListEquipment(c echo.Context) error {
	status, valid := statusFilter(c)
	if !valid {
		return fail(c, http.StatusBadRequest, "unknown status")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	list, err := h.Equipment.List(ctx, status)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, list)
}

func (h *FleetHandler) CreateEquipment(c echo.Context) error {
	var req equipmentReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fail(c, http.StatusBadRequest, "name required")
	}
	if req.DailyRate == nil || *req.DailyRate < 0 {
		return fail(c, http.StatusBadRequest, "daily_rate must be zero or positive")
	}
	e := model.Equipment{
		Name:        req.Name,
		Description: req.Description,
		DailyRate:   *req.DailyRate,
		Status:      model.FleetAvailable,
	}
	if req.Status != "" {
		if !model.ValidFleetStatus(req.Status) {
			return fail(c, http.StatusBadRequest, "unknown status")
		}
		e.Status = req.Status
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Equipment.Create(ctx, &e); err != nil {
		return fail(c, http.StatusInternalServerError, "create failed")
	}
	return ok(c, http.StatusCreated, e)
}

func (h *FleetHandler) UpdateEquipment(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req equipmentReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	e, err := h.Equipment.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "equipment not found")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		e.Name = name
	}
	if req.Description != nil {
		e.Description = req.Description
	}
	if req.DailyRate != nil {
		if *req.DailyRate < 0 {
			return fail(c, http.StatusBadRequest, "daily_rate must be zero or positive")
		}
		e.DailyRate = *req.DailyRate
	}
	if req.Status != "" {
		if !model.ValidFleetStatus(req.Status) {
			return fail(c, http.StatusBadRequest, "unknown status")
		}
		e.Status = req.Status
	}
	if err := h.Equipment.Update(ctx, e); err != nil {
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return ok(c, http.StatusOK, e)
}

func (h *FleetHandler) DeleteEquipment(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	switch err := h.Equipment.Delete(ctx, id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case sql.ErrNoRows:
		return fail(c, http.StatusNotFound, "equipment not found")
	default:
		return fail(c, http.StatusInternalServerError, "delete failed")
	}
}
