package xlog

import (
	"fmt"

	"go.uber.org/zap"
)

// AntsXLogger serves as the ants.Logger of the worker pools.
type AntsXLogger struct {
	logger *zap.Logger
}

func (l *AntsXLogger) Printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func NewAntsXLogger(logger XLogger) *AntsXLogger {
	if logger == nil {
		return nil
	}
	return &AntsXLogger{
		logger: logger.component("Ants"),
	}
}
