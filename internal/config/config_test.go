package config

import (
	"testing"
	"time"

	"order_entry/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "REFERENCE_SOURCE", "SESSION_STORE", "SESSION_TIMEOUT", "SEPARATOR", "GATEWAY_URL", "ARTICLE_FILE", "CLIENT_FILE", "STOCK_FILE", "SHADE_DIR"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, SourceFiles, cfg.ReferenceSource)
	assert.Equal(t, StoreMemory, cfg.SessionStore)
	assert.Equal(t, ";", cfg.Separator)
	assert.Equal(t, 8*time.Hour, cfg.SessionTTL())
	assert.Empty(t, cfg.GatewayURL)
	assert.Equal(t, catalog.DefaultFiles(), cfg.Files())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REFERENCE_SOURCE", SourceHTTP)
	t.Setenv("REFERENCE_URL", "https://files.example.com/export")
	t.Setenv("SESSION_TIMEOUT", "60")
	t.Setenv("LOAD_TIMEOUT", "not-a-number")
	t.Setenv("STOCK_FILE", "export/stock.csv")

	cfg := Load()

	assert.Equal(t, SourceHTTP, cfg.ReferenceSource)
	assert.Equal(t, "https://files.example.com/export", cfg.ReferenceURL)
	assert.Equal(t, time.Minute, cfg.SessionTTL())
	assert.Equal(t, 30*time.Second, cfg.LoadTimeoutDuration())
	assert.Equal(t, "export/stock.csv", cfg.Files().Stock)
}
