package app

import (
	"log/slog"
	"time"

	"github.com/clutchplay/platform/internal/auth"
	"github.com/clutchplay/platform/internal/guard"
	"github.com/clutchplay/platform/internal/handler"
	adminhandler "github.com/clutchplay/platform/internal/handler/admin"
	"github.com/clutchplay/platform/internal/ledger"
	"github.com/clutchplay/platform/internal/provider"
	"github.com/clutchplay/platform/internal/repository"
	"github.com/clutchplay/platform/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool               *pgxpool.Pool
	JWTMgr             *auth.JWTManager
	Logger             *slog.Logger
	CORSAllowedOrigins string
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	// Repositories
	userRepo := repository.NewUserRepository()
	tournamentRepo := repository.NewTournamentRepository()
	participantRepo := repository.NewParticipantRepository()
	redemptionRepo := repository.NewRedemptionRepository()
	notificationRepo := repository.NewNotificationRepository()
	ledgerRepo := repository.NewLedgerRepository()
	outboxRepo := repository.NewOutboxRepository()
	reportsRepo := repository.NewReportsRepository()

	// Ledger engine
	walletEngine := ledger.NewEngine(userRepo, redemptionRepo, ledgerRepo, outboxRepo)

	// Guards and providers
	authLimiter := guard.NewRateLimiter(20, time.Minute)
	idempotency := guard.NewIdempotencyGuard()
	verifier := provider.NewLogVerificationSender(logger)

	// Services
	authSvc := service.NewAuthService(pool, userRepo, outboxRepo, jwtMgr, verifier, logger)
	tournamentSvc := service.NewTournamentService(pool, tournamentRepo, logger)
	participationSvc := service.NewParticipationService(pool, tournamentRepo, participantRepo, logger)
	walletSvc := service.NewWalletService(pool, walletEngine, userRepo, redemptionRepo, ledgerRepo, logger)
	notificationSvc := service.NewNotificationService(pool, notificationRepo, outboxRepo, logger)
	userSvc := service.NewUserService(pool, userRepo, logger)
	reportsSvc := service.NewReportsService(pool, reportsRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(authSvc, participationSvc)
	tournamentHandler := handler.NewTournamentHandler(tournamentSvc, participationSvc)
	walletHandler := handler.NewWalletHandler(walletSvc, idempotency)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)

	// Admin handlers
	tournamentAdmin := adminhandler.NewTournamentAdminHandler(tournamentSvc, participationSvc)
	participantAdmin := adminhandler.NewParticipantAdminHandler(participationSvc)
	redemptionAdmin := adminhandler.NewRedemptionAdminHandler(walletSvc)
	userAdmin := adminhandler.NewUserAdminHandler(userSvc, walletSvc)
	notificationAdmin := adminhandler.NewNotificationAdminHandler(notificationSvc)
	reportsAdmin := adminhandler.NewReportsHandler(reportsSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORSWithOrigins(deps.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Auth routes (no auth, rate limited)
	r.Route("/auth", func(r chi.Router) {
		r.Use(handler.RateLimit(authLimiter))
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/admin/login", authHandler.AdminLogin)
	})

	// Public reads (no auth)
	r.Get("/tournaments", tournamentHandler.List)
	r.Get("/tournaments/{id}", tournamentHandler.Get)
	r.Get("/notifications", notificationHandler.List)

	// Player-authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthenticatePlayer(jwtMgr))

		r.Get("/users/me", userHandler.GetMe)
		r.Get("/users/me/participations", userHandler.MyParticipations)

		r.Post("/tournaments/{id}/join", tournamentHandler.Join)

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/balance", walletHandler.GetBalance)
			r.Get("/history", walletHandler.GetHistory)
			r.Get("/redemptions", walletHandler.MyRedemptions)
			r.Post("/redemptions", walletHandler.RequestRedemption)
		})
	})

	// Admin-authenticated routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.AuthenticateAdmin(jwtMgr))

		r.Route("/tournaments", func(r chi.Router) {
			r.Post("/", tournamentAdmin.Create)
			r.Patch("/{id}", tournamentAdmin.Update)
			r.Patch("/{id}/status", tournamentAdmin.Transition)
			r.Delete("/{id}", tournamentAdmin.Delete)
			r.Get("/{id}/participants", tournamentAdmin.Participants)
		})

		r.Route("/participants", func(r chi.Router) {
			r.Get("/pending", participantAdmin.ListPending)
			r.Post("/{id}/approve", participantAdmin.Approve)
			r.Post("/{id}/reject", participantAdmin.Reject)
		})

		r.Route("/redemptions", func(r chi.Router) {
			r.Get("/", redemptionAdmin.List)
			r.Post("/{id}/approve", redemptionAdmin.Approve)
			r.Post("/{id}/reject", redemptionAdmin.Reject)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userAdmin.Search)
			r.Get("/{id}", userAdmin.Detail)
			r.Patch("/{id}/ban", userAdmin.SetBanned)
			r.Post("/{id}/grant", userAdmin.Grant)
		})

		r.Post("/notifications", notificationAdmin.Broadcast)
		r.Get("/reports/dashboard", reportsAdmin.Dashboard)
	})

	return r
}
