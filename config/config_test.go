package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("KEYBOT_CONFIG", "/nonexistent/keybot.toml")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "keyboard", c.Bot.Trigger)
	assert.Equal(t, "http://localhost:8000", c.Suggest.BaseURL)
	assert.Equal(t, 5, c.Suggest.K)
	assert.Equal(t, 5*time.Second, c.Suggest.Timeout)
	assert.Equal(t, 10*time.Second, c.Delivery.Timeout)
	assert.Equal(t, ":9090", c.Metrics.Addr)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KEYBOT_CONFIG", "/nonexistent/keybot.toml")
	t.Setenv("KEYBOT_SUGGEST_BASE_URL", "http://suggest.internal:8000")
	t.Setenv("KEYBOT_SUGGEST_API_KEY", "dev-key-123")
	t.Setenv("KEYBOT_BOT_ID", "bot-42")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://suggest.internal:8000", c.Suggest.BaseURL)
	assert.Equal(t, "dev-key-123", c.Suggest.APIKey)
	assert.Equal(t, "bot-42", c.Bot.ID)
}
