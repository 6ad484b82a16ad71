package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	supa "github.com/supabase-community/supabase-go"

	"github.com/mizutani/innervoice/internal/config"
	"github.com/mizutani/innervoice/internal/domain"
	"github.com/mizutani/innervoice/internal/realtime"
	"github.com/mizutani/innervoice/internal/sessiondb"
	"github.com/mizutani/innervoice/internal/supabase"
	"github.com/mizutani/innervoice/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(logWriter(), &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, nil)
	if err != nil {
		return fmt.Errorf("create supabase client: %w", err)
	}

	cache, err := sessiondb.Open(cfg.SessionDBPath)
	if err != nil {
		return fmt.Errorf("open session cache: %w", err)
	}
	defer cache.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Resume the device-persisted session or sign in anonymously; the
	// resulting identity is fixed for the rest of the process.
	identity := supabase.NewIdentity(client, cfg.SupabaseURL, cfg.SupabaseAnonKey, cache, logger)
	session, err := identity.Bootstrap(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap session: %w", err)
	}
	logger.Info("session ready", "user_id", session.UserID)

	engine := domain.NewEngine(supabase.NewStore(client), session, logger)
	program := tea.NewProgram(ui.NewModel(engine), tea.WithAltScreen())

	if cfg.RealtimeEnabled {
		subscriber := realtime.NewSubscriber(cfg.RealtimeURL(), cfg.SupabaseAnonKey, func(string) {
			program.Send(ui.FeedChangedMsg{})
		}, logger)
		go func() {
			if err := subscriber.Start(ctx); err != nil && ctx.Err() == nil {
				logger.Error("realtime subscriber exited with error", "error", err)
			}
		}()
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// logWriter sends logs to the file named by INNERVOICE_LOG; the terminal
// belongs to the UI, so without it logs are dropped.
func logWriter() io.Writer {
	path := os.Getenv("INNERVOICE_LOG")
	if path == "" {
		return io.Discard
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return io.Discard
	}
	return f
}
