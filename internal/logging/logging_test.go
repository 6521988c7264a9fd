package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := New("warn", &buf)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Info("dropped")
	logger.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")

	assert.Equal(t, logrus.InfoLevel, New("nonsense", &buf).GetLevel())
}

func TestNewZap(t *testing.T) {
	var buf bytes.Buffer

	logger := NewZap("error", zapcore.AddSync(&buf))
	logger.Info("dropped")
	logger.Error("kept")
	_ = logger.Sync()

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), "kept")
}
