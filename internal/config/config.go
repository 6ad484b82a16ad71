package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the client.
type Config struct {
	// SupabaseURL is the project base URL (https://<ref>.supabase.co).
	SupabaseURL string

	// SupabaseAnonKey is the project's anon API key.
	SupabaseAnonKey string

	// SessionDBPath is where the device-persisted auth session lives.
	SessionDBPath string

	// RealtimeEnabled turns the live feed-change subscription on or off.
	RealtimeEnabled bool
}

// RealtimeURL returns the websocket endpoint derived from the project URL.
func (c *Config) RealtimeURL() string {
	u := strings.TrimSuffix(c.SupabaseURL, "/")
	u = strings.Replace(u, "https://", "wss://", 1)
	u = strings.Replace(u, "http://", "ws://", 1)
	return u + "/realtime/v1/websocket"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	supabaseURL := os.Getenv("INNERVOICE_SUPABASE_URL")
	if supabaseURL == "" {
		return nil, fmt.Errorf("INNERVOICE_SUPABASE_URL is required")
	}

	anonKey := os.Getenv("INNERVOICE_SUPABASE_ANON_KEY")
	if anonKey == "" {
		return nil, fmt.Errorf("INNERVOICE_SUPABASE_ANON_KEY is required")
	}

	dbPath := os.Getenv("INNERVOICE_SESSION_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".innervoice", "session.db")
	}

	realtime := true
	if v := os.Getenv("INNERVOICE_REALTIME"); v == "0" || strings.EqualFold(v, "false") {
		realtime = false
	}

	return &Config{
		SupabaseURL:     supabaseURL,
		SupabaseAnonKey: anonKey,
		SessionDBPath:   dbPath,
		RealtimeEnabled: realtime,
	}, nil
}
