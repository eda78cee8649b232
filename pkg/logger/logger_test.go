package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := newLogger()

	require.NotNil(t, logger)
	formatter, ok := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok, "default format should be text")

	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	entry := logrus.NewEntry(logrus.New()).WithField("request_id", "123")

	retrieved := G(WithLogger(ctx, entry))

	require.NotNil(t, retrieved)
	assert.Equal(t, "123", retrieved.Data["request_id"])
}

func TestGetLoggerWithoutContextLogger(t *testing.T) {
	retrieved := G(context.Background())

	require.NotNil(t, retrieved)
	assert.Equal(t, L.Logger, retrieved.Logger)
}

func TestLoggerChaining(t *testing.T) {
	ctx := WithLogger(context.Background(), logrus.NewEntry(logrus.New()).WithField("service", "test"))
	ctx = WithLogger(ctx, G(ctx).WithField("operation", "testing"))

	final := G(ctx)
	assert.Equal(t, "test", final.Data["service"])
	assert.Equal(t, "testing", final.Data["operation"])
}

func TestSetLogLevel(t *testing.T) {
	previous := L.Logger.GetLevel()
	defer L.Logger.SetLevel(previous)

	t.Run("valid level", func(t *testing.T) {
		require.NoError(t, SetLogLevel("debug"))
		assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())
	})

	t.Run("invalid level", func(t *testing.T) {
		assert.Error(t, SetLogLevel("extremely-loud"))
	})
}

func TestSetLogFormat(t *testing.T) {
	defer SetLogFormat("text")

	t.Run("json", func(t *testing.T) {
		SetLogFormat("json")
		formatter, ok := L.Logger.Formatter.(*logrus.JSONFormatter)
		require.True(t, ok)
		assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	})

	t.Run("unknown formats fall back to text", func(t *testing.T) {
		SetLogFormat("yaml")
		_, ok := L.Logger.Formatter.(*logrus.TextFormatter)
		assert.True(t, ok)
	})
}

func TestSetLogOutput(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(os.Stderr)
	SetLogFormat("json")
	defer SetLogFormat("text")

	G(context.Background()).WithField("skill", "my-tool").Warn("validation finished")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "validation finished", entry["msg"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "my-tool", entry["skill"])
}
