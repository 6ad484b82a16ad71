package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	supa "github.com/supabase-community/supabase-go"

	"github.com/mizutani/innervoice/internal/config"
	"github.com/mizutani/innervoice/internal/domain"
	"github.com/mizutani/innervoice/internal/sessiondb"
	"github.com/mizutani/innervoice/internal/supabase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		text       string
		visibility string
	)

	flag.StringVar(&text, "text", "", "Entry text to post")
	flag.StringVar(&visibility, "visibility", "public", "Entry visibility: public or self")
	flag.Parse()

	if text == "" {
		return fmt.Errorf("--text is required")
	}

	var vis domain.Visibility
	switch visibility {
	case "public":
		vis = domain.VisibilityPublic
	case "self":
		vis = domain.VisibilitySelfOnly
	default:
		return fmt.Errorf("--visibility must be public or self, got %q", visibility)
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

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

	ctx := context.Background()

	session, err := supabase.NewIdentity(client, cfg.SupabaseURL, cfg.SupabaseAnonKey, cache, logger).Bootstrap(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap session: %w", err)
	}

	engine := domain.NewEngine(supabase.NewStore(client), session, logger)
	if err := engine.CreatePost(ctx, text, vis); err != nil {
		return err
	}

	stats := engine.Stats()
	fmt.Printf("Posted as %s.\n", session.UserID)
	fmt.Printf("This week: %d · this month: %d · total: %d\n", stats.Week, stats.Month, stats.Total)

	return nil
}
