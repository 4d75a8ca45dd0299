package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("astro_app", &Config{Encoding: "json", Level: "debug"}, &buf)

	log.Debug("resolved timezone", "zone", "Europe/Paris")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "astro_app", record["app"])
	assert.Equal(t, "Europe/Paris", record["zone"])
	assert.Equal(t, "DEBUG", record["level"])
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("astro_app", &Config{Encoding: "console", Level: "warn"}, &buf)

	log.Info("skipped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, (&Config{Encoding: "json", Level: "info"}).Validate())
	assert.NoError(t, (&Config{}).Validate())
	assert.Error(t, (&Config{Encoding: "xml"}).Validate())
	assert.Error(t, (&Config{Level: "verbose"}).Validate())
}

func TestNew_InvalidLevelPanics(t *testing.T) {
	assert.Panics(t, func() {
		New("astro_app", &Config{Level: "trace"})
	})
}

func TestFromContext(t *testing.T) {
	fallback := Discard()
	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	scoped := Discard().With("request_id", "abc")
	ctx := WithContext(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx, fallback))
}
