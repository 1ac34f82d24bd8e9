package logging

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var zapLevels = map[LogLevel]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
}

var (
	currentLevel int32 = int32(LevelInfo)
	atomicLevel        = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	mu         sync.RWMutex
	baseLogger = newConsoleLogger()
)

func newConsoleLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = atomicLevel
	cfg.Development = false
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000000")
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.EncodeCaller = nil
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// SetLogLevel parses and sets global log level.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	atomic.StoreInt32(&currentLevel, int32(l))
	atomicLevel.SetLevel(zapLevels[l])
}

func getLevel() LogLevel { return LogLevel(atomic.LoadInt32(&currentLevel)) }

// GetLogLevel returns current global log level.
func GetLogLevel() LogLevel { return getLevel() }

// L returns the structured logger used by the facade.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return baseLogger
}

// SetLogger swaps the underlying logger and returns a func restoring the previous one.
func SetLogger(l *zap.Logger) (restore func()) {
	mu.Lock()
	prev := baseLogger
	baseLogger = l
	mu.Unlock()
	return func() {
		mu.Lock()
		baseLogger = prev
		mu.Unlock()
	}
}

// Sync flushes buffered entries.
func Sync() { _ = L().Sync() }

func logf(l LogLevel, format string, args ...interface{}) {
	if getLevel() > l {
		return
	}
	s := L().Sugar()
	// Plain messages are passed through untouched so a literal % never turns into %!x(MISSING).
	if len(args) == 0 {
		switch l {
		case LevelDebug:
			s.Debug(format)
		case LevelWarn:
			s.Warn(format)
		case LevelError:
			s.Error(format)
		default:
			s.Info(format)
		}
		return
	}
	switch l {
	case LevelDebug:
		s.Debugf(format, args...)
	case LevelWarn:
		s.Warnf(format, args...)
	case LevelError:
		s.Errorf(format, args...)
	default:
		s.Infof(format, args...)
	}
}

// Public helpers
func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// Timing helper for phases.
func TimeTrack(start time.Time, label string) {
	L().Debug("phase timing", zap.String("phase", label), zap.Duration("took", time.Since(start)))
}
