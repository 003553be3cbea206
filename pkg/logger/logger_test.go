package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	Initialize(Config{Level: "debug", Format: "json", Output: &buf})

	WithContext(Fields{"request_id": "abc"}).Info("cart updated", Fields{"cart_key": "guest:1", "items": 2})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "cart updated", line["message"])
	assert.Equal(t, "abc", line["request_id"])
	assert.Equal(t, "guest:1", line["cart_key"])
	assert.Contains(t, line["caller"], "logger_test.go")
}

func TestLoggerErrorIncludesErr(t *testing.T) {
	var buf bytes.Buffer
	Initialize(Config{Level: "info", Output: &buf})

	Error("persist failed", errors.New("boom"))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["error"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	Initialize(Config{Level: "warn", Output: &buf})

	Debug("hidden")
	Info("hidden")
	assert.Zero(t, buf.Len())

	Warn("shown")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}
