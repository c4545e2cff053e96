package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		t.Setenv("OTEL_SERVICE_NAME", "")
		t.Setenv("OTEL_ENABLED", "")
		t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "")

		cfg := ConfigFromEnv()

		assert.Equal(t, "pokedex-hub", cfg.ServiceName)
		assert.True(t, cfg.Enabled)
		assert.Equal(t, 0.1, cfg.SampleRatio)
		assert.Equal(t, "http://localhost:4318", cfg.OTLPEndpoint)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("OTEL_SERVICE_NAME", "pokedex-hub-canary")
		t.Setenv("OTEL_ENABLED", "false")
		t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "1")

		cfg := ConfigFromEnv()

		assert.Equal(t, "pokedex-hub-canary", cfg.ServiceName)
		assert.False(t, cfg.Enabled)
		assert.Equal(t, 1.0, cfg.SampleRatio)
	})

	t.Run("out of range ratio falls back", func(t *testing.T) {
		t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "7")

		assert.Equal(t, 0.1, ConfigFromEnv().SampleRatio)
	})

	t.Run("malformed value falls back to defaults", func(t *testing.T) {
		t.Setenv("OTEL_ENABLED", "sometimes")

		cfg := ConfigFromEnv()
		assert.True(t, cfg.Enabled)
		assert.Equal(t, "pokedex-hub", cfg.ServiceName)
	})
}

func TestInitProvider_Disabled(t *testing.T) {
	cfg := Config{
		ServiceName:  "test",
		Enabled:      false,
		OTLPEndpoint: "http://localhost:4318",
	}

	shutdown, err := InitProvider(context.Background(), cfg)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSignalURL(t *testing.T) {
	assert.Equal(t, "http://collector:4318/v1/traces", signalURL("http://collector:4318", "traces"))
	assert.Equal(t, "http://collector:4318/v1/logs", signalURL("http://collector:4318/", "logs"))
}
