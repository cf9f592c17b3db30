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

// UserAdminHandler lists accounts and toggles their active flag.
type UserAdminHandler struct {
	Users *repository.UserRepo
}

func NewUserAdminHandler(u *repository.UserRepo) *UserAdminHandler {
	return &UserAdminHandler{Users: u}
}

// List returns users, optionally filtered by ?role=.
func (h *UserAdminHandler) List(c echo.Context) error {
	role := strings.ToUpper(strings.TrimSpace(c.QueryParam("role")))
	switch role {
	case "", model.RoleAdmin, model.RoleFarmer, model.RoleProvider:
	default:
		return fail(c, http.StatusBadRequest, "unknown role")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Users.List(ctx, role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	return ok(c, http.StatusOK, list)
}

type setActiveReq struct {
	IsActive *bool `json:"is_active"`
}

// SetActive enables or disables an account. Disabled accounts cannot log
// in; their existing access tokens expire naturally.
func (h *UserAdminHandler) SetActive(c echo.Context) error {
	id := idParam(c)
	if id == 0 {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req setActiveReq
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return fail(c, http.StatusBadRequest, "is_active required")
	}
	if id == currentUser(c) && !*req.IsActive {
		return fail(c, http.StatusBadRequest, "cannot disable your own account")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Users.SetActive(ctx, id, *req.IsActive); err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "user not found")
		}
		return fail(c, http.StatusInternalServerError, "update failed")
	}
	return ok(c, http.StatusOK, echo.Map{"id": id, "is_active": *req.IsActive})
}
