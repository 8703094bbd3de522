// Cemas - Ikigai and personality assessment server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/ashureev/cemas/internal/agent"
	"github.com/ashureev/cemas/internal/api"
	"github.com/ashureev/cemas/internal/assessment"
	"github.com/ashureev/cemas/internal/chatws"
	"github.com/ashureev/cemas/internal/config"
	"github.com/ashureev/cemas/internal/identity"
	"github.com/ashureev/cemas/internal/middleware"
	"github.com/ashureev/cemas/internal/sessions"
	"github.com/ashureev/cemas/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment(), "store", cfg.StoreEngine)

	// Initialize dependencies.
	repo, err := store.NewByEngine(cfg.StoreEngine, cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Store health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Store connected")

	// Initialize services.
	mgr := sessions.NewManager(repo, cfg.Session.IdleTTL)

	replyCfg := agent.DefaultConfig()
	replyCfg.Backend = cfg.Reply.Backend
	replyCfg.ReplyDelay = cfg.Reply.Delay
	replyCfg.APIKey = cfg.Reply.APIKey
	replyCfg.BaseURL = cfg.Reply.BaseURL
	replyCfg.Model = cfg.Reply.Model
	replyCfg.Timeout = cfg.Reply.Timeout

	replier, err := agent.NewReplier(replyCfg)
	if err != nil {
		slog.Error("Failed to initialize reply backend", "error", err)
		os.Exit(1)
	}
	slog.Info("Reply backend ready", "backend", cfg.Reply.Backend)

	conversationLogger, err := agent.NewConversationLogger(agent.ConversationLogConfig{
		Enabled:   cfg.ConversationLog.Enabled,
		Dir:       cfg.ConversationLog.Dir,
		QueueSize: cfg.ConversationLog.QueueSize,
	}, logger)
	if err != nil {
		slog.Error("Failed to initialize conversation logger", "error", err)
		os.Exit(1)
	}

	limiter := agent.NewRateLimiter(cfg.ChatRateLimit.PerMinute, cfg.ChatRateLimit.Burst)
	chat := agent.NewService(replier, limiter, conversationLogger)
	defer func() {
		if closeErr := chat.Close(); closeErr != nil {
			slog.Error("Failed to close chat service", "error", closeErr)
		}
	}()

	// Initialize handlers.
	baseHandler := api.NewHandler(repo, mgr, assessment.StaticSynthesizer{}, chat, cfg.CatalogDelay)
	wsHandler := chatws.NewHandler(mgr, chat, cfg.AllowedOrigins(), cfg.IsDevelopment())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(identity.Middleware(repo, cfg.IsDevelopment()))

	// All routes use identity middleware (no auth needed).
	baseHandler.RegisterRoutes(r)

	// WebSocket endpoint.
	r.Get("/ws/chat", wsHandler.ServeHTTP)

	// Create server.
	// WriteTimeout stays above the slowest reply backend.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Reply.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start session worker.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions.StartWorker(ctx, mgr, repo, sessions.WorkerConfig{
		Interval:  cfg.Session.SweepInterval,
		Retention: cfg.Session.Retention,
	})

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
