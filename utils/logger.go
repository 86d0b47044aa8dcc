package utils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger configures the standard logrus logger: JSON lines to stdout and,
// when cfg.File is set, to a rotating file.
func InitLogger(cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	writers := []io.Writer{os.Stdout}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			logrus.WithError(err).Warn("cannot create log directory")
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize, // MB
			MaxAge:     cfg.MaxAge,  // days
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
			Compress:   true,
		})
	}
	logrus.SetOutput(io.MultiWriter(writers...))

	logrus.WithField("level", level.String()).Info("logger initialized")
}

// Logger returns an entry tagged with component, e.g. Logger("auth")
func Logger(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
