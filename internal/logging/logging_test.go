package logging

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safety-worker-go/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":  zerolog.DebugLevel,
		" WARN ": zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
	}
	for in, want := range cases {
		got, ok := ParseLevel(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	got, ok := ParseLevel("loud")
	assert.False(t, ok)
	assert.Equal(t, zerolog.InfoLevel, got)
}

func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestGinContextFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureGlobal(t)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	SetRequestID(c, "req-42")
	SetStartTime(c, time.Now().Add(-time.Second))
	Info(c).Msg("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-42", line["request_id"])
	assert.Contains(t, line, "duration")
	assert.Equal(t, "req-42", RequestID(c))
	assert.Empty(t, RequestID(nil))
}

func TestServiceLoggerFields(t *testing.T) {
	buf := captureGlobal(t)

	logger := WithCamera(NewServiceLogger(&config.Config{WorkerID: "w-1"}, "camera"), "cam1")
	logger.Info().Msg("started")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "w-1", line["worker_id"])
	assert.Equal(t, "camera", line["service"])
	assert.Equal(t, "cam1", line["camera_id"])
}
