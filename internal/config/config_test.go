package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":3000", cfg.Server.Addr)
	require.Equal(t, "chat.db", cfg.Store.Path)
}

func TestLoadServerPortVariants(t *testing.T) {
	cases := map[string]string{
		"8080":           ":8080",
		":9090":          ":9090",
		"127.0.0.1:9090": "127.0.0.1:9090",
	}
	for raw, want := range cases {
		t.Setenv("PORT", raw)
		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, want, cfg.Server.Addr)
	}
}

func TestLoadServerRejectsGarbagePort(t *testing.T) {
	t.Setenv("PORT", "80 80")

	_, err := Load()
	require.Error(t, err)
}

func TestAIConfigEnabled(t *testing.T) {
	require.False(t, AIConfig{}.Enabled())
	require.False(t, AIConfig{APIKey: "key"}.Enabled())
	require.False(t, AIConfig{Model: "m"}.Enabled())
	require.True(t, AIConfig{Model: "m", APIKey: "key"}.Enabled())
	require.True(t, AIConfig{Model: "m", AccessKey: "ak", SecretKey: "sk"}.Enabled())
}

func TestLoadAIDefaults(t *testing.T) {
	t.Setenv("ARK_MAX_TOKENS", "")
	t.Setenv("AI_HISTORY_LIMIT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 500, cfg.AI.MaxTokens)
	require.Equal(t, 0, cfg.AI.HistoryLimit)
}

func TestLoadAIOverrides(t *testing.T) {
	t.Setenv("ARK_MAX_TOKENS", "1024")
	t.Setenv("AI_HISTORY_LIMIT", "20")
	t.Setenv("ARK_TEMPERATURE", "0.7")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 1024, cfg.AI.MaxTokens)
	require.Equal(t, 20, cfg.AI.HistoryLimit)
	require.NotNil(t, cfg.AI.Temperature)
	require.InDelta(t, 0.7, *cfg.AI.Temperature, 1e-9)
}

func TestLoadAIRejectsBadNumbers(t *testing.T) {
	t.Setenv("ARK_MAX_TOKENS", "lots")

	_, err := Load()
	require.Error(t, err)
}
