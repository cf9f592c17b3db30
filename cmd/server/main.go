package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/kasetlink/drone-spray-booking/internal/ai"
	"github.com/kasetlink/drone-spray-booking/internal/config"
	"github.com/kasetlink/drone-spray-booking/internal/database"
	"github.com/kasetlink/drone-spray-booking/internal/handler"
	"github.com/kasetlink/drone-spray-booking/internal/line"
	"github.com/kasetlink/drone-spray-booking/internal/middleware"
	"github.com/kasetlink/drone-spray-booking/internal/queue"
	"github.com/kasetlink/drone-spray-booking/internal/repository"
	"github.com/kasetlink/drone-spray-booking/internal/router"
)

func main() {
	// .env is optional; in containers the environment is set directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional. With a nil client rate limiting and the price
	// cache silently disable themselves.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and price cache disabled")
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	bookings := repository.NewBookingRepo(db)
	pricingRepo := repository.NewPricingRepo(db)
	cachedPricing := repository.NewCachedPricing(pricingRepo, rdb, 5*time.Minute)
	drones := repository.NewDroneRepo(db)
	pilots := repository.NewPilotRepo(db)
	equipment := repository.NewEquipmentRepo(db)
	jobs := repository.NewJobRepo(db)
	proposals := repository.NewProposalRepo(db)

	// LINE messaging pieces. Each degrades on its own: a missing secret
	// rejects webhooks, a missing token makes pushes no-ops.
	verifier := line.NewVerifier(cfg.LineChannelSecret)
	sender := line.NewSender(cfg.LineChannelToken)
	var aiClient ai.Client
	if cfg.OpenAIKey != "" {
		aiClient = ai.NewOpenAI(cfg.OpenAIEndpoint, cfg.OpenAIKey, cfg.OpenAIModel)
	} else {
		log.Println("no OpenAI key; chatbot free-text answers use the canned reply")
		aiClient = ai.NewMock()
	}
	bot := line.NewBot(cachedPricing, bookings, aiClient, cfg.PublicBaseURL)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	bookingH := handler.NewBookingHandler(bookings, pricingRepo, cfg.UploadDir)
	pricingH := handler.NewPricingHandler(pricingRepo, cachedPricing)
	fleetH := handler.NewFleetHandler(drones, pilots, equipment)
	adminBookingH := handler.NewAdminBookingHandler(bookings)
	usersH := handler.NewUserAdminHandler(users)
	farmerH := handler.NewFarmerJobHandler(jobs, proposals)
	providerH := handler.NewProviderJobHandler(jobs, proposals)
	webhookH := handler.NewWebhookHandler(verifier, bot, sender)

	e := echo.New()
	e.HideBanner = true
	if rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}

	router.RegisterRoutes(e, webhookH, pricingH, bookingH, fleetH)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterMarketplace(e, cfg.JWTSecret, bookingH, farmerH, providerH)
	router.RegisterAdmin(e, cfg.JWTSecret, adminBookingH, fleetH, pricingH, usersH)

	// Background consumer turning booking status events into LINE pushes.
	go queue.StartStatusConsumer(sender)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
