package xlog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestAntsXLogger_ParentLogLevelChanged(t *testing.T) {
	var logger *AntsXLogger
	logger.Printf("test %d", 123)
	require.Nil(t, NewAntsXLogger(nil))

	buf := &bytes.Buffer{}
	parentLogger := NewXLogger(
		WithXLoggerLevel(LogLevelDebug),
		WithXLoggerEncoder(JSON),
		WithXLoggerWriteSyncer(zapcore.AddSync(buf)),
		WithXLoggerTimeEncoder(zapcore.ISO8601TimeEncoder),
		WithXLoggerLevelEncoder(zapcore.CapitalLevelEncoder),
	)
	logger = NewAntsXLogger(parentLogger)
	parentLogger.SetLogLevel(zapcore.InfoLevel)
	logger.Printf("test %d", 123)
	require.Empty(t, buf.String())

	parentLogger.SetLogLevel(zapcore.DebugLevel)
	logger.Printf("test %d", 456)
	require.Contains(t, buf.String(), `"msg":"test 456"`)
	require.Contains(t, buf.String(), `"component":"Ants"`)
	require.NotContains(t, buf.String(), "callAt")
}
