package xlog

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/ordtree/lib/infra"
)

var _ XLogger = (*xLogger)(nil)

type xLogger struct {
	logger atomic.Pointer[zap.Logger]
	level  zap.AtomicLevel
	ws     zapcore.WriteSyncer
	enc    func(cfg zapcore.EncoderConfig) zapcore.Encoder
	lvlEnc zapcore.LevelEncoder
	tsEnc  zapcore.TimeEncoder
}

func (l *xLogger) SetLogLevel(level zapcore.Level) {
	l.level.SetLevel(level)
}

func (l *xLogger) Sync() error {
	return l.logger.Load().Sync()
}

func (l *xLogger) Debug(msg string, fields ...zap.Field) {
	l.logger.Load().Debug(msg, fields...)
}

func (l *xLogger) Info(msg string, fields ...zap.Field) {
	l.logger.Load().Info(msg, fields...)
}

func (l *xLogger) Warn(msg string, fields ...zap.Field) {
	l.logger.Load().Warn(msg, fields...)
}

func (l *xLogger) Error(err error, msg string, fields ...zap.Field) {
	newFields := make([]zap.Field, 0, len(fields)+1)
	if err != nil {
		newFields = append(newFields, zap.String("error", err.Error()))
	}
	newFields = append(newFields, fields...)
	l.logger.Load().Error(msg, newFields...)
}

func (l *xLogger) ErrorStack(err error, msg string, fields ...zap.Field) {
	var (
		es        infra.ErrorStack
		newFields []zap.Field
	)
	if errors.As(err, &es) {
		newFields = append(newFields, zap.Inline(es))
	} else if err != nil {
		newFields = append(newFields, zap.String("error", err.Error()))
	}
	newFields = append(newFields, fields...)
	l.logger.Load().Error(msg, newFields...)
}

func (l *xLogger) Logf(lvl zapcore.Level, format string, args ...any) {
	l.logger.Load().Log(lvl, fmt.Sprintf(format, args...))
}

func (l *xLogger) component(name string) *zap.Logger {
	return l.logger.Load().
		Named(name).
		WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return (&componentCore{}).build(l.level, l.enc, l.ws, l.lvlEnc, l.tsEnc)
		}))
}

type loggerCfg struct {
	writerType  *LogOutWriterType
	ws          zapcore.WriteSyncer
	encoderType *LogEncoderType
	lvlEncoder  zapcore.LevelEncoder
	tsEncoder   zapcore.TimeEncoder
	level       *zapcore.Level
	core        xLogCore
}

type XLoggerOption func(*loggerCfg) error

func NewXLogger(opts ...XLoggerOption) XLogger {
	cfg := &loggerCfg{}
	for _, o := range opts {
		if err := o(cfg); err != nil {
			panic(err)
		}
	}

	xl := &xLogger{}
	if cfg.level != nil {
		xl.level = zap.NewAtomicLevelAt(*cfg.level)
	} else {
		xl.level = zap.NewAtomicLevelAt(LogLevel(os.Getenv("XLOG_LVL")).zapLevel())
	}
	if cfg.encoderType != nil {
		xl.enc = getEncoderByType(*cfg.encoderType)
	} else {
		xl.enc = getEncoderByType(JSON)
	}
	xl.lvlEnc = cfg.lvlEncoder
	if xl.lvlEnc == nil {
		xl.lvlEnc = zapcore.CapitalLevelEncoder
	}
	xl.tsEnc = cfg.tsEncoder
	if xl.tsEnc == nil {
		xl.tsEnc = zapcore.ISO8601TimeEncoder
	}
	if cfg.core == nil {
		cfg.core = &consoleCore{}
	}

	var stop func() error
	if cfg.ws != nil {
		xl.ws = cfg.ws
	} else if cfg.writerType != nil {
		xl.ws, stop = getOutWriterByType(*cfg.writerType)
	} else {
		xl.ws, stop = getOutWriterByType(StdOut)
	}
	if stop != nil {
		runtime.SetFinalizer(xl, func(xl *xLogger) {
			_ = stop()
		})
	}

	// Disable zap logger error stack.
	l := zap.New(
		cfg.core.build(xl.level, xl.enc, xl.ws, xl.lvlEnc, xl.tsEnc),
		zap.AddCallerSkip(1), // Use caller filename as service
		zap.AddCaller(),
	)
	xl.logger.Store(l)
	return xl
}

func WithXLoggerWriter(w LogOutWriterType) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if w >= _writerMax {
			return infra.NewErrorStack("unknown xlogger writer")
		}
		cfg.writerType = &w
		return nil
	}
}

// WithXLoggerWriteSyncer overrides the writer type.
func WithXLoggerWriteSyncer(ws zapcore.WriteSyncer) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if ws == nil {
			return infra.NewErrorStack("nil xlogger write syncer")
		}
		cfg.ws = ws
		return nil
	}
}

func WithXLoggerEncoder(logEnc LogEncoderType) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if logEnc >= _encMax {
			return infra.NewErrorStack("unknown xlogger encoder")
		}
		cfg.encoderType = &logEnc
		return nil
	}
}

func WithXLoggerLevel(lvl LogLevel) XLoggerOption {
	return func(cfg *loggerCfg) error {
		_lvl := lvl.zapLevel()
		cfg.level = &_lvl
		return nil
	}
}

func WithXLoggerLevelEncoder(lvlEnc zapcore.LevelEncoder) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if lvlEnc == nil {
			lvlEnc = zapcore.CapitalColorLevelEncoder
		}
		cfg.lvlEncoder = lvlEnc
		return nil
	}
}

func WithXLoggerTimeEncoder(tsEnc zapcore.TimeEncoder) XLoggerOption {
	return func(cfg *loggerCfg) error {
		if tsEnc == nil {
			tsEnc = zapcore.ISO8601TimeEncoder
		}
		cfg.tsEncoder = tsEnc
		return nil
	}
}

func WithXLoggerConsoleCore() XLoggerOption {
	return func(cfg *loggerCfg) error {
		cfg.core = &consoleCore{}
		return nil
	}
}
