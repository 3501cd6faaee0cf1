package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("MAX_HISTORY", "")
	t.Setenv("CARD_STAGGER_MS", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.Equal(t, 5, cfg.MaxHistory)
	assert.Equal(t, 200, cfg.CardStaggerMS)
	assert.Equal(t, 0, cfg.MaxDelayMS)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("MAX_HISTORY", "12")
	t.Setenv("MAX_DELAY_MS", "50")
	t.Setenv("INVENTORY_FILE", "custom.yaml")

	cfg := Load()
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 12, cfg.MaxHistory)
	assert.Equal(t, 50, cfg.MaxDelayMS)
	assert.Equal(t, "custom.yaml", cfg.InventoryFile)
}

func TestGetEnvIntDefaultIgnoresGarbage(t *testing.T) {
	t.Setenv("MAX_HISTORY", "not-a-number")
	cfg := Load()
	assert.Equal(t, 5, cfg.MaxHistory)
}
