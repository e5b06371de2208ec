package config

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// SetupLogger configures the global logrus logger. An unknown level falls
// back to info.
func SetupLogger(level string, out io.Writer) {
	loggerLevel, err := log.ParseLevel(level)
	log.SetReportCaller(true)
	log.SetOutput(out)

	log.SetFormatter(&log.JSONFormatter{
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			return "", fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
		},
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err != nil {
		log.Infof("Level setup default INFO, err: %v", err)
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(loggerLevel)
	}
}

// OpenLogFile opens the console log for appending. The TUI owns the
// terminal, so everything it logs goes here.
func OpenLogFile(cfg *Config) (*os.File, error) {
	p := cfg.Log.File
	if p == "" {
		var err error
		p, err = DefaultLogFile()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", p, err)
	}
	return f, nil
}
