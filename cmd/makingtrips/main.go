package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/makingtrips/makingtrips/internal/app"
	"github.com/makingtrips/makingtrips/internal/audit"
	"github.com/makingtrips/makingtrips/internal/auth"
	"github.com/makingtrips/makingtrips/internal/bookings"
	"github.com/makingtrips/makingtrips/internal/catalog"
	"github.com/makingtrips/makingtrips/internal/clients"
	"github.com/makingtrips/makingtrips/internal/dashboard"
	"github.com/makingtrips/makingtrips/internal/platform/cache"
	"github.com/makingtrips/makingtrips/internal/platform/db"
	"github.com/makingtrips/makingtrips/internal/quotes"
	"github.com/makingtrips/makingtrips/internal/shared"
	"github.com/makingtrips/makingtrips/internal/users"
	"github.com/makingtrips/makingtrips/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, login throttling disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	mailClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := mailClient.Close(); err != nil {
			logger.Warn("asynq close", slog.Any("error", err))
		}
	}()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authMiddleware := auth.Middleware{Tokens: tokens, Logger: logger}
	requireAdmin := authMiddleware.RequireRole(shared.RoleAdmin)

	authService := auth.NewService(auth.NewRepository(pool), tokens, mailClient, logger, auth.ServiceConfig{
		MailEnabled:   cfg.MailEnabled,
		FrontendURL:   cfg.FrontendURL,
		ResetTokenTTL: cfg.ResetTokenTTL,
	})
	loginLimiter := auth.NewLoginLimiter(redisClient, 5, 15*time.Minute)
	authHandler := auth.NewHandler(logger, authService, loginLimiter)

	recorder := audit.NewRecorder(audit.NewRepository(pool), logger)

	usersService := users.NewService(users.NewRepository(pool))
	usersHandler := users.NewHandler(logger, usersService, requireAdmin)

	clientsRepo := clients.NewRepository(pool)
	clientsService := clients.NewService(clientsRepo)
	clientsHandler := clients.NewHandler(logger, clientsService)

	catalogRepo := catalog.NewRepository(pool)
	catalogManager := catalog.NewManager(catalogRepo)
	catalogHandler := catalog.NewHandler(logger, catalogManager)

	quotesRepo := quotes.NewRepository(pool)
	quotesService := quotes.NewService(quotesRepo, clientsRepo, catalogRepo, recorder)
	quotesHandler := quotes.NewHandler(logger, quotesService)

	bookingsService := bookings.NewService(bookings.NewRepository(pool), quotesRepo, recorder)
	bookingsHandler := bookings.NewHandler(logger, bookingsService, requireAdmin)

	auditHandler := audit.NewHandler(logger, audit.NewService(audit.NewRepository(pool)), requireAdmin)

	dashboardService := dashboard.NewService(dashboard.NewRepository(pool))
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthMiddleware:   authMiddleware,
		AuthHandler:      authHandler,
		UsersHandler:     usersHandler,
		ClientsHandler:   clientsHandler,
		CatalogHandler:   catalogHandler,
		QuotesHandler:    quotesHandler,
		BookingsHandler:  bookingsHandler,
		AuditHandler:     auditHandler,
		DashboardHandler: dashboardHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
