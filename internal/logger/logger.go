package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	sugar  *zap.SugaredLogger
	once   sync.Once
)

// Init sets up the global logger. Only the first call has any effect.
// Valid levels: debug, info, warn, error
func Init(level string, w io.Writer) {
	once.Do(func() {
		var zapLevel zapcore.Level
		if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
			zapLevel = zap.InfoLevel
		}
		if w == nil {
			w = os.Stderr
		}

		encoderConfig := zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}

		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(w),
			zapLevel,
		)

		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
		sugar = logger.Sugar()
	})
}

var nop = zap.NewNop().Sugar()

// Sugar returns the global sugared logger. Before Init it discards
// everything, so early calls don't pin the level.
func Sugar() *zap.SugaredLogger {
	if sugar == nil {
		return nop
	}
	return sugar
}

// Sync flushes buffered entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func Debugf(template string, args ...interface{}) {
	Sugar().Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	Sugar().Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	Sugar().Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	Sugar().Errorf(template, args...)
}

// Leveled adapts the global logger to key/value style callers such as
// retryablehttp
type Leveled struct{}

func (Leveled) Error(msg string, keysAndValues ...interface{}) {
	Sugar().Errorw(msg, keysAndValues...)
}

func (Leveled) Info(msg string, keysAndValues ...interface{}) {
	Sugar().Infow(msg, keysAndValues...)
}

func (Leveled) Debug(msg string, keysAndValues ...interface{}) {
	Sugar().Debugw(msg, keysAndValues...)
}

func (Leveled) Warn(msg string, keysAndValues ...interface{}) {
	Sugar().Warnw(msg, keysAndValues...)
}
