package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/kasetlink/drone-spray-booking/internal/handler"
	"github.com/kasetlink/drone-spray-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication:
// the health check, the LINE webhook and the public browse endpoints the
// LIFF pages and the chatbot deep links rely on.
func RegisterRoutes(e *echo.Echo, w *handler.WebhookHandler, p *handler.PricingHandler, b *handler.BookingHandler, f *handler.FleetHandler) {
	e.GET("/healthz", handler.Health)

	// LINE platform callback. Signature verification happens inside the
	// handler because it needs the raw body bytes.
	e.POST("/webhook", w.Receive)

	// Public data for the booking and rental pages.
	e.GET("/v1/pricing", p.PublicList)
	e.GET("/v1/pricing/quote", b.Quote)
	e.GET("/v1/equipment", f.PublicEquipment)

	// LIFF guests book and upload slips without an account; they are
	// identified by the LINE user id carried in the body.
	e.POST("/v1/bookings", b.Create)
	e.POST("/v1/bookings/:id/slip", b.UploadSlip)
}

// RegisterAuth registers authentication routes. Unauthenticated
// operations live under /v1/auth; the token-protected session endpoints
// live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/auth/logout-all", a.LogoutAll)
	auth.POST("/auth/line-link", a.LinkLine)
}
