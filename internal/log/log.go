// Package log provides the process-wide structured logger.
package log

import (
	"sync"
)

type Logger interface {
	Trace(args ...interface{})
	Tracef(format string, args ...interface{})

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Warn(args ...interface{})
	Warnf(format string, args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})

	WithField(field string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger

	IsTraceEnabled() bool
	IsDebugEnabled() bool
}

// Config controls level, line pattern and optional file output.
type Config struct {
	Level   string      `mapstructure:"level"`
	Pattern string      `mapstructure:"pattern"`
	Time    string      `mapstructure:"time"`
	File    *FileConfig `mapstructure:"file"`
}

// FileConfig enables a rotating file appender alongside stdout.
type FileConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig logs info and above to stdout only.
func DefaultConfig() *Config {
	return &Config{
		Level:   "info",
		Pattern: "%time [%level] %field%msg\n",
		Time:    "2006-01-02 15:04:05.000",
	}
}

var (
	mu     sync.Mutex
	logger Logger
)

// Init builds the global logger from cfg. Later calls replace the
// logger, so commands can re-init once the config file is loaded.
func Init(cfg *Config) error {
	l, err := newLogrusAdapter(cfg)
	if err != nil {
		return err
	}
	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

// GetLogger returns the global logger, initializing it with defaults if
// Init was never called (tests, early startup).
func GetLogger() Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		l, err := newLogrusAdapter(DefaultConfig())
		if err != nil {
			panic(err)
		}
		logger = l
	}
	return logger
}
