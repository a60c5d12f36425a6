package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogError_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", &buf)

	LogError(log, "staffrecord", "CreateRecord", "insert record", map[string]string{"staff_id": "s-1"}, errors.New("boom"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["msg"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "staffrecord", entry["module"])
	assert.Equal(t, "CreateRecord", entry["funcName"])
	assert.Equal(t, "insert record", entry["context"])
	assert.NotNil(t, entry["data"])
}

func TestLogError_NilSafe(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("info", &buf)

	LogError(nil, "m", "f", "c", nil, errors.New("ignored"))
	LogError(log, "m", "f", "c", nil, nil)
	assert.Zero(t, buf.Len())
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	log := NewWithOutput("loud", &bytes.Buffer{})
	assert.Equal(t, "info", log.GetLevel().String())
}
