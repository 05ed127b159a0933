// Package logger is the shared levelled logger for the server and CLI.
// Debug output only appears in verbose mode; Info, Warn and Error always do.
package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar = newSugar(os.Stderr)
)

func newSugar(w io.Writer) *zap.SugaredLogger {
	encCfg := zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.RFC3339TimeEncoder,
		EncodeLevel:      bracketLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

func bracketLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	if v {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}
}

func IsVerbose() bool {
	return level.Enabled(zapcore.DebugLevel)
}

// SetOutput sets the destination writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	s := newSugar(w)
	mu.Lock()
	defer mu.Unlock()
	sugar = s
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Debug(format string, args ...any) { current().Debugf(format, args...) }
func Info(format string, args ...any)  { current().Infof(format, args...) }
func Warn(format string, args ...any)  { current().Warnf(format, args...) }
func Error(format string, args ...any) { current().Errorf(format, args...) }
