package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"go.uber.org/zap"

	"github.com/mtl/myhackx-api/internal/config"
	"github.com/mtl/myhackx-api/internal/database"
	"github.com/mtl/myhackx-api/internal/handlers"
	"github.com/mtl/myhackx-api/internal/metrics"
	authmw "github.com/mtl/myhackx-api/internal/middleware"
	"github.com/mtl/myhackx-api/internal/services"
	"github.com/mtl/myhackx-api/internal/sse"
	"github.com/mtl/myhackx-api/internal/store"
	"github.com/mtl/myhackx-api/internal/store/memory"
	"github.com/mtl/myhackx-api/internal/store/mongodb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	var stores store.Stores
	if cfg.UseMemoryBackend() {
		logger.Warn("using in-memory backend, data will not survive restarts")
		stores = memory.NewStores()
	} else {
		db, err := database.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			logger.Fatal("failed to connect to mongodb", zap.Error(err))
		}
		defer db.Close(ctx)

		if err := db.EnsureIndexes(ctx); err != nil {
			logger.Fatal("failed to ensure indexes", zap.Error(err))
		}
		stores = mongodb.NewStores(db.Database)
	}

	m := metrics.New()

	hub := sse.NewHub()
	go hub.Run()

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	tokenService := services.NewTokenService(stores.Tokens, logger)
	emailService := services.NewEmailService(cfg.SMTP)
	userService := services.NewUserService(stores.Users)
	eventService := services.NewEventService(stores.Events, stores.Teams, logger)
	notificationService := services.NewNotificationService(stores.Notifications, stores.Users, hub, logger)
	registrationService := services.NewRegistrationService(
		stores.Events, stores.Teams, stores.Invitations, stores.Users,
		notificationService, emailService, logger,
	)

	authHandler := handlers.NewAuthHandler(cfg, userService, tokenService, jwtService, emailService, m)
	userHandler := handlers.NewUserHandler(userService)
	eventHandler := handlers.NewEventHandler(eventService)
	teamHandler := handlers.NewTeamHandler(registrationService, m)
	invitationHandler := handlers.NewInvitationHandler(registrationService, m)
	notificationHandler := handlers.NewNotificationHandler(notificationService, hub, m)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(driftmw.Recovery())
	app.Use(driftmw.CORSWithConfig(driftmw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(driftmw.BodyParser())
	app.Use(m.Middleware())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Get("/:provider/consent", authHandler.GetConsentURL)
	auth.Get("/:provider/callback", authHandler.Callback)
	auth.Post("/exchange", authHandler.ExchangeCode)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)
	protected.Get("/users/:id", userHandler.GetUser)

	protected.Get("/events", eventHandler.ListEvents)
	protected.Get("/events/:id", eventHandler.GetEvent)
	protected.Get("/events/:id/teams", teamHandler.ListEventTeams)
	protected.Post("/events/:id/unregister", teamHandler.UnregisterFromEvent)

	protected.Post("/registrations/individual", teamHandler.RegisterIndividual)
	protected.Post("/registrations/team", teamHandler.RegisterTeam)

	protected.Get("/teams/:id", teamHandler.GetTeam)
	protected.Post("/teams/:id/join", teamHandler.JoinTeam)
	protected.Post("/teams/:id/leave", teamHandler.LeaveTeam)
	protected.Delete("/teams/:id/members", teamHandler.RemoveMember)

	protected.Get("/invitations", invitationHandler.ListMine)
	protected.Post("/invitations/:id/accept", invitationHandler.Accept)
	protected.Post("/invitations/:id/decline", invitationHandler.Decline)

	protected.Get("/notifications", notificationHandler.ListMine)
	protected.Post("/notifications/:id/read", notificationHandler.MarkRead)
	protected.Get("/notifications/stream", notificationHandler.Stream)

	admin := api.Group("/admin")
	admin.Use(authmw.Auth(jwtService))
	admin.Use(authmw.RequireAdmin())

	admin.Get("/users", userHandler.ListUsers)
	admin.Patch("/users/:id/admin", userHandler.SetAdmin)
	admin.Delete("/users/:id", userHandler.DeleteUser)
	admin.Post("/events", eventHandler.CreateEvent)
	admin.Patch("/events/:id", eventHandler.UpdateEvent)
	admin.Delete("/events/:id", eventHandler.DeleteEvent)
	admin.Post("/notifications/broadcast", notificationHandler.Broadcast)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	app.Get("/metrics", func(c *drift.Context) {
		m.Handler().ServeHTTP(c.Response, c.Request)
	})

	cleanupCtx, cancelCleanup := context.WithCancel(ctx)
	defer cancelCleanup()
	tokenService.StartCleanup(cleanupCtx, 1*time.Hour)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		logger.Info("server starting", zap.String("addr", addr))
		if err := app.Run(addr); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
}
