package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresProjectSettings(t *testing.T) {
	t.Setenv("INNERVOICE_SUPABASE_URL", "")
	t.Setenv("INNERVOICE_SUPABASE_ANON_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("INNERVOICE_SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("INNERVOICE_SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("INNERVOICE_SESSION_DB", "/tmp/session.db")
	t.Setenv("INNERVOICE_REALTIME", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/session.db", cfg.SessionDBPath)
	assert.True(t, cfg.RealtimeEnabled)
}

func TestLoadRealtimeDisabled(t *testing.T) {
	t.Setenv("INNERVOICE_SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("INNERVOICE_SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("INNERVOICE_REALTIME", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.RealtimeEnabled)
}

func TestRealtimeURL(t *testing.T) {
	cfg := &Config{SupabaseURL: "https://example.supabase.co/"}
	assert.Equal(t, "wss://example.supabase.co/realtime/v1/websocket", cfg.RealtimeURL())

	cfg = &Config{SupabaseURL: "http://localhost:54321"}
	assert.Equal(t, "ws://localhost:54321/realtime/v1/websocket", cfg.RealtimeURL())
}
