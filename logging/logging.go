// Package logging provides structured loggers for the planner, backed by zap cores that
// write through Appenders.
package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level describes the level of a logger.
type Level = zapcore.Level

// Logger levels.
const (
	DEBUG = zapcore.DebugLevel
	INFO  = zapcore.InfoLevel
	WARN  = zapcore.WarnLevel
	ERROR = zapcore.ErrorLevel
)

// Logger interface for logging to. The `C` variants accept a context whose metadata may be
// attached to the entry by future cores; they otherwise behave like their context-free twins.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Fatal(args ...interface{})
	Fatalf(template string, args ...interface{})

	CDebug(ctx context.Context, args ...interface{})
	CDebugf(ctx context.Context, template string, args ...interface{})
	CInfo(ctx context.Context, args ...interface{})
	CInfof(ctx context.Context, template string, args ...interface{})
	CWarnf(ctx context.Context, template string, args ...interface{})
	CErrorf(ctx context.Context, template string, args ...interface{})

	SetLevel(level Level)
	Sublogger(subname string) Logger
	AddAppender(appender Appender)
	AsZap() *zap.SugaredLogger
	Sync() error
}

type impl struct {
	name      string
	level     zap.AtomicLevel
	appenders []Appender
	sugar     *zap.SugaredLogger
}

// NewLogger returns a new logger named `name` that outputs Info+ logs to stdout.
func NewLogger(name string) Logger {
	return newWithAppenders(name, zap.NewAtomicLevelAt(INFO), NewStdoutAppender())
}

// NewDebugLogger returns a new logger named `name` that outputs Debug+ logs to stdout.
func NewDebugLogger(name string) Logger {
	return newWithAppenders(name, zap.NewAtomicLevelAt(DEBUG), NewStdoutAppender())
}

func newWithAppenders(name string, level zap.AtomicLevel, appenders ...Appender) *impl {
	logger := &impl{
		name:      name,
		level:     level,
		appenders: appenders,
	}
	logger.rebuild()
	return logger
}

// rebuild recreates the underlying zap logger after the appender set changes.
func (l *impl) rebuild() {
	cores := make([]zapcore.Core, 0, len(l.appenders))
	for _, appender := range l.appenders {
		cores = append(cores, &appenderCore{level: l.level, appender: appender})
	}
	zl := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	l.sugar = zl.Sugar().Named(l.name)
}

func (l *impl) Debug(args ...interface{}) { l.sugar.Debug(args...) }
func (l *impl) Debugf(template string, args ...interface{}) { l.sugar.Debugf(template, args...) }
func (l *impl) Debugw(msg string, kv ...interface{}) { l.sugar.Debugw(msg, kv...) }
func (l *impl) Info(args ...interface{}) { l.sugar.Info(args...) }
func (l *impl) Infof(template string, args ...interface{}) { l.sugar.Infof(template, args...) }
func (l *impl) Infow(msg string, kv ...interface{}) { l.sugar.Infow(msg, kv...) }
func (l *impl) Warn(args ...interface{}) { l.sugar.Warn(args...) }
func (l *impl) Warnf(template string, args ...interface{}) { l.sugar.Warnf(template, args...) }
func (l *impl) Warnw(msg string, kv ...interface{}) { l.sugar.Warnw(msg, kv...) }
func (l *impl) Error(args ...interface{}) { l.sugar.Error(args...) }
func (l *impl) Errorf(template string, args ...interface{}) { l.sugar.Errorf(template, args...) }
func (l *impl) Errorw(msg string, kv ...interface{}) { l.sugar.Errorw(msg, kv...) }
func (l *impl) Fatal(args ...interface{}) { l.sugar.Fatal(args...) }
func (l *impl) Fatalf(template string, args ...interface{}) { l.sugar.Fatalf(template, args...) }

func (l *impl) CDebug(ctx context.Context, args ...interface{}) { l.Debug(args...) }
func (l *impl) CDebugf(ctx context.Context, template string, args ...interface{}) {
	l.Debugf(template, args...)
}
func (l *impl) CInfo(ctx context.Context, args ...interface{}) { l.Info(args...) }
func (l *impl) CInfof(ctx context.Context, template string, args ...interface{}) {
	l.Infof(template, args...)
}
func (l *impl) CWarnf(ctx context.Context, template string, args ...interface{}) {
	l.Warnf(template, args...)
}
func (l *impl) CErrorf(ctx context.Context, template string, args ...interface{}) {
	l.Errorf(template, args...)
}

// SetLevel changes the level this logger (and its subloggers) emits at.
func (l *impl) SetLevel(level Level) {
	l.level.SetLevel(level)
}

// Sublogger returns a logger with `subname` appended to the logger name.
func (l *impl) Sublogger(subname string) Logger {
	sub := &impl{
		name:      l.name + "." + subname,
		level:     l.level,
		appenders: l.appenders,
	}
	sub.rebuild()
	return sub
}

// AddAppender adds an additional output for log entries.
func (l *impl) AddAppender(appender Appender) {
	l.appenders = append(l.appenders, appender)
	l.rebuild()
}

// AsZap exposes the underlying sugared zap logger for APIs that require one.
func (l *impl) AsZap() *zap.SugaredLogger {
	return l.sugar
}

// Sync flushes all appenders.
func (l *impl) Sync() error {
	var err error
	for _, appender := range l.appenders {
		if serr := appender.Sync(); serr != nil {
			err = serr
		}
	}
	return err
}

// appenderCore adapts an Appender to the zapcore.Core interface.
type appenderCore struct {
	level    zap.AtomicLevel
	appender Appender
	fields   []zapcore.Field
}

func (c *appenderCore) Enabled(level zapcore.Level) bool {
	return c.level.Enabled(level)
}

func (c *appenderCore) With(fields []zapcore.Field) zapcore.Core {
	combined := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	combined = append(combined, c.fields...)
	combined = append(combined, fields...)
	return &appenderCore{level: c.level, appender: c.appender, fields: combined}
}

func (c *appenderCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *appenderCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	combined := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	combined = append(combined, c.fields...)
	combined = append(combined, fields...)
	return c.appender.Write(entry, combined)
}

func (c *appenderCore) Sync() error {
	return c.appender.Sync()
}
