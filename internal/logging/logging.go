package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logrus logger writing text lines to out at the given level.
// Unknown levels fall back to info.
func New(level string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stdout
	}

	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lv)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// NewZap builds the console zap logger used by the HTTP router.
func NewZap(level string, out zapcore.WriteSyncer) *zap.Logger {
	if out == nil {
		out = zapcore.AddSync(os.Stdout)
	}

	lv := zap.NewAtomicLevel()
	switch strings.ToLower(level) {
	case "debug":
		lv.SetLevel(zap.DebugLevel)
	case "warn", "warning":
		lv.SetLevel(zap.WarnLevel)
	case "error":
		lv.SetLevel(zap.ErrorLevel)
	case "fatal":
		lv.SetLevel(zap.FatalLevel)
	default:
		lv.SetLevel(zap.InfoLevel)
	}

	timeEncoder := func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Local().Format("2006-01-02 15:04:05"))
	}

	encoderCfg := zapcore.EncoderConfig{
		NameKey:        "Name",
		StacktraceKey:  "Stack",
		MessageKey:     "Message",
		LevelKey:       "Level",
		TimeKey:        "TimeStamp",
		CallerKey:      "Caller",
		EncodeTime:     timeEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), out, lv), zap.AddCaller())
}
