package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"bookfinder/config"
	"bookfinder/llm/agent"
	"bookfinder/llm/trace"
	"bookfinder/page"
	"bookfinder/session"
	"bookfinder/tui/finder"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if exists
	_ = godotenv.Load()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "bookfinder:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	closeTrace, err := trace.Setup(ctx, trace.SettingsFromEnv())
	if err != nil {
		return err
	}
	defer closeTrace(context.Background())

	rt, err := agent.Setup(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	var store session.Store = session.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		redisStore, err := session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.SessionTTL,
		})
		if err != nil {
			return err
		}
		defer redisStore.Close()
		store = redisStore
	}

	// 初始化UI界面
	model := finder.New(ctx, page.NewController(rt, store), sessionID(), rt.Broker())
	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = program.Run()
	return err
}

// newLogger writes logs to path, or discards them; stdout belongs to the UI.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return logger, func() { _ = f.Close() }, nil
}

// sessionID scopes the stored query to the local user.
func sessionID() string {
	if u := os.Getenv("USER"); u != "" {
		return "tui-" + u
	}
	return page.DefaultSession
}
