package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"alcyxob/training-tracker/internal/config"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSizeMB  = 50
	defaultMaxBackups = 10
)

// Setup configures the global logrus logger from the logging section of the
// config. The returned closer releases the log file, if one is open.
func Setup(cfg config.LoggingConfig) io.Closer {
	if cfg.JSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	log.SetLevel(GetLevel(cfg.Level))

	rotator := newRotator(cfg)
	switch {
	case rotator == nil:
		log.SetOutput(os.Stdout)
		return nopCloser{}
	case cfg.ToStdout:
		log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	default:
		log.SetOutput(rotator)
	}
	log.WithFields(log.Fields{
		"file":        rotator.Filename,
		"max_size_mb": rotator.MaxSize,
		"max_backups": rotator.MaxBackups,
		"stdout":      cfg.ToStdout,
	}).Info("logging to file")
	return rotator
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newRotator returns nil when no log file is configured.
func newRotator(cfg config.LoggingConfig) *lumberjack.Logger {
	if cfg.File == "" {
		return nil
	}
	fileName := cfg.File
	if filepath.Ext(fileName) == "" {
		fileName += ".log"
	}

	rotator := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	if rotator.MaxSize <= 0 {
		rotator.MaxSize = defaultMaxSizeMB
	}
	if rotator.MaxBackups <= 0 {
		rotator.MaxBackups = defaultMaxBackups
	}
	return rotator
}

func GetLevel(level string) log.Level {
	parsed, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil || parsed == log.PanicLevel {
		return log.InfoLevel
	}
	return parsed
}
