package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kasetlink/drone-spray-booking/internal/handler"
	"github.com/kasetlink/drone-spray-booking/internal/middleware"
	"github.com/kasetlink/drone-spray-booking/internal/model"
)

// RegisterMarketplace mounts the authenticated customer surface: the
// user's own bookings plus the two sides of the job board. Farmers post
// jobs and decide on proposals; providers browse and bid.
func RegisterMarketplace(e *echo.Echo, jwtSecret string,
	bookings *handler.BookingHandler,
	farmer *handler.FarmerJobHandler,
	provider *handler.ProviderJobHandler,
) {
	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	// Any signed-in user can inspect their own bookings. Admins can open
	// any booking through the same read endpoint.
	auth.GET("/my-bookings", bookings.MyBookings)
	auth.GET("/bookings/:id", bookings.Get)

	// Farmer side of the job board.
	f := auth.Group("", middleware.RequireRole(model.RoleFarmer, model.RoleAdmin))
	f.POST("/jobs", farmer.CreateJob)
	f.GET("/my-jobs", farmer.MyJobs)
	f.PUT("/jobs/:id/cancel", farmer.CancelJob)
	f.GET("/jobs/:id/proposals", farmer.JobProposals)
	f.PUT("/proposals/:id/accept", farmer.AcceptProposal)
	f.PUT("/proposals/:id/reject", farmer.RejectProposal)

	// Provider side.
	p := auth.Group("", middleware.RequireRole(model.RoleProvider, model.RoleAdmin))
	p.GET("/jobs", provider.OpenJobs)
	p.POST("/jobs/:id/proposals", provider.SubmitProposal)
	p.GET("/my-proposals", provider.MyProposals)
}
