package app

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/sweeper/internal/config"
)

// SetupLogging applies the configured level and formatter to logger and, when
// a log file is configured, tees entries into a rotating JSON log.
func SetupLogging(logger *logrus.Logger, c config.Config) error {
	level, err := c.Level()
	if err != nil {
		return fmt.Errorf("unable to parse log level: %w", err)
	}
	logger.SetLevel(level)

	if c.Development() {
		logger.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	if c.LogFile == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   c.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	logger.AddHook(hook)
	return nil
}
