// BookFinder - browser page server
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

	"bookfinder/config"
	"bookfinder/llm/agent"
	"bookfinder/llm/trace"
	"bookfinder/page"
	"bookfinder/session"
	"bookfinder/web"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	closeTrace, err := trace.Setup(ctx, trace.SettingsFromEnv())
	if err != nil {
		slog.Error("Failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer closeTrace(context.Background())

	rt, err := agent.Setup(ctx, cfg, logger)
	if err != nil {
		slog.Error("Failed to initialize agent", "error", err)
		os.Exit(1)
	}
	defer rt.Close()
	slog.Info("Agent ready", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model, "fetch_tool", cfg.FetchTool)

	var store session.Store = session.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		redisStore, err := session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.SessionTTL,
		})
		if err != nil {
			slog.Error("Failed to connect session store", "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
		slog.Info("Session store connected", "backend", "redis", "addr", cfg.Redis.Addr)
	}

	handler := web.NewHandler(page.NewController(rt, store), logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(web.SessionMiddleware(cfg.SessionTTL, !cfg.DevMode))

	handler.RegisterRoutes(r)

	// No WriteTimeout: a request lasts as long as the agent run.
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

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
