package logging

import (
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"

	"github.com/Harshhrajj/Logfile-analyzer/internal/config"
)

// NewLogger creates the logger for the CLI from explicit settings.
func NewLogger(cfg config.LogSettings) *log.Logger {
	logger := log.New()
	logger.Formatter = new(log.TextFormatter)

	switch cfg.Level {
	case 3:
		logger.Level = log.DebugLevel
	case 2:
		logger.Level = log.InfoLevel
	case 1:
		logger.Level = log.WarnLevel
	default:
		logger.Level = log.ErrorLevel
	}

	if cfg.LogToFile && cfg.Path != "" {
		logger.Hooks.Add(lfshook.NewHook(lfshook.PathMap{
			log.DebugLevel: cfg.Path,
			log.InfoLevel:  cfg.Path,
			log.WarnLevel:  cfg.Path,
			log.ErrorLevel: cfg.Path,
			log.FatalLevel: cfg.Path,
			log.PanicLevel: cfg.Path,
		}, nil))
	}

	return logger
}
