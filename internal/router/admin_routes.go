package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kasetlink/drone-spray-booking/internal/handler"
	"github.com/kasetlink/drone-spray-booking/internal/middleware"
	"github.com/kasetlink/drone-spray-booking/internal/model"
)

// RegisterAdmin mounts the management surface under /v1/admin: the order
// board, fleet inventory, pricing tables and account toggles. Every route
// requires a valid token with the ADMIN role.
func RegisterAdmin(e *echo.Echo, jwtSecret string,
	bookings *handler.AdminBookingHandler,
	fleet *handler.FleetHandler,
	pricing *handler.PricingHandler,
	users *handler.UserAdminHandler,
) {
	g := e.Group("/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// Order board.
	g.GET("/bookings", bookings.List)
	g.PUT("/bookings/:id/status", bookings.UpdateStatus)
	g.PUT("/bookings/:id/assign", bookings.Assign)

	// Fleet inventory.
	g.GET("/drones", fleet.ListDrones)
	g.POST("/drones", fleet.CreateDrone)
	g.PUT("/drones/:id", fleet.UpdateDrone)
	g.DELETE("/drones/:id", fleet.DeleteDrone)

	g.GET("/pilots", fleet.ListPilots)
	g.POST("/pilots", fleet.CreatePilot)
	g.PUT("/pilots/:id", fleet.UpdatePilot)
	g.DELETE("/pilots/:id", fleet.DeletePilot)

	g.GET("/equipment", fleet.ListEquipment)
	g.POST("/equipment", fleet.CreateEquipment)
	g.PUT("/equipment/:id", fleet.UpdateEquipment)
	g.DELETE("/equipment/:id", fleet.DeleteEquipment)

	// Pricing tables. Rows are deactivated, never deleted, so historical
	// bookings keep their name joins.
	g.GET("/crop-types", pricing.ListCrops)
	g.POST("/crop-types", pricing.CreateCrop)
	g.PUT("/crop-types/:id", pricing.UpdateCrop)

	g.GET("/spray-types", pricing.ListSprays)
	g.POST("/spray-types", pricing.CreateSpray)
	g.PUT("/spray-types/:id", pricing.UpdateSpray)

	// Accounts.
	g.GET("/users", users.List)
	g.PUT("/users/:id/active", users.SetActive)
}
