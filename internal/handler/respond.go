package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// All JSON endpoints share one envelope: {"success":true,"data":...} on
// success and {"success":false,"error":"..."} on failure. The LINE webhook
// is the only exception; it answers {"status":"ok"} because that is what
// the platform retry logic is keyed on.

func ok(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, echo.Map{"success": true, "data": data})
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"success": false, "error": msg})
}

// idParam parses the :id route parameter. Zero means invalid.
func idParam(c echo.Context) uint64 {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// currentUser returns the authenticated user's id, or zero when the JWT
// middleware did not run.
func currentUser(c echo.Context) uint64 {
	uid, _ := c.Get("user_id").(uint64)
	return uid
}
