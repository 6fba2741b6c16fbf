package utils

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogLevel enumerates severity tiers.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l LogLevel) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ParseLogLevel maps a config/flag string to a LogLevel, defaulting to INFO.
func ParseLogLevel(s string) LogLevel {
	for i, n := range levelNames {
		if n == s {
			return LogLevel(i)
		}
	}
	return INFO
}

func (l LogLevel) toLogrus() logrus.Level {
	switch l {
	case DEBUG:
		return logrus.DebugLevel
	case WARN:
		return logrus.WarnLevel
	case ERROR:
		return logrus.ErrorLevel
	case FATAL:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// Logger is the levelled logger shared by every stage of the tool.
type Logger struct {
	mu    sync.Mutex
	inner *logrus.Logger
	file  *os.File
}

var (
	globalLogger *Logger
	logOnce      sync.Once
)

// InitLogger creates the singleton logger. Call once at startup.
func InitLogger(minLevel LogLevel, logFilePath string) *Logger {
	logOnce.Do(func() {
		writers := []io.Writer{os.Stdout}

		var f *os.File
		if logFilePath != "" {
			var err error
			f, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				writers = append(writers, f)
			} else {
				logrus.Warnf("could not open log file %s: %v", logFilePath, err)
			}
		}

		globalLogger = newLogger(minLevel, io.MultiWriter(writers...))
		globalLogger.file = f
	})
	return globalLogger
}

func newLogger(minLevel LogLevel, out io.Writer) *Logger {
	inner := logrus.New()
	inner.SetOutput(out)
	inner.SetLevel(minLevel.toLogrus())
	inner.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
		DisableColors:   true,
	})
	return &Logger{inner: inner}
}

// L returns the global logger, initialising a stdout-only DEBUG logger on
// first use if InitLogger was never called.
func L() *Logger {
	if globalLogger == nil {
		return InitLogger(DEBUG, "")
	}
	return globalLogger
}

// Close closes the log file, if any.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}

func (l *Logger) Debug(f string, a ...any) { l.inner.Debugf(f, a...) }
func (l *Logger) Info(f string, a ...any)  { l.inner.Infof(f, a...) }
func (l *Logger) Warn(f string, a ...any)  { l.inner.Warnf(f, a...) }
func (l *Logger) Error(f string, a ...any) { l.inner.Errorf(f, a...) }
func (l *Logger) Fatal(f string, a ...any) { l.inner.Fatalf(f, a...) }
