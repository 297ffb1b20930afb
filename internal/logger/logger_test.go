package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestInitializeWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "info", "json")
	defer Initialize("info", "text")

	Debug("hidden")
	WithComponent("registry").Info("equipment rented", "equipment_id", "EQX1001")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "equipment rented", entry["msg"])
	assert.Equal(t, "registry", entry["component"])
	assert.Equal(t, "EQX1001", entry["equipment_id"])
}

func TestDatabaseResult_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "error", "text")
	defer Initialize("info", "text")

	DatabaseResult("UPDATE", 0, nil)
	assert.Empty(t, buf.String())

	DatabaseResult("UPDATE", 0, assert.AnError)
	assert.Contains(t, buf.String(), "Database call failed")
}
