package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogger_InfoEntryShape(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter("orders-api", &buf)

	lg.Info("service_started", map[string]any{"port": 3000})

	entry := decode(t, &buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "orders-api", entry["service"])
	assert.Equal(t, "service_started", entry["action"])
	assert.Equal(t, "service_started", entry["message"])
	assert.Equal(t, float64(3000), entry["port"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "hostname")
	assert.Equal(t, "", entry["request_id"])
}

func TestLogger_ErrorCarriesCause(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter("orders-api", &buf).WithRequestID("req-1")

	lg.Error("db_query_failed", errors.New("connection refused"), nil)

	entry := decode(t, &buf)
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "req-1", entry["request_id"])
	cause, ok := entry["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "connection refused", cause["msg"])
}

func TestLogger_WithRequestIDDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithWriter("orders-api", &buf)
	_ = parent.WithRequestID("child")

	parent.Debug("probe", nil)

	assert.Equal(t, "", decode(t, &buf)["request_id"])
}

func TestSetup_LevelFilters(t *testing.T) {
	closer := Setup(Options{Level: "error"})
	defer func() {
		_ = closer.Close()
		Setup(Options{Level: "info"})
	}()

	lg := New("orders-api")
	assert.NotPanics(t, func() { lg.Debug("dropped", nil) })
}
