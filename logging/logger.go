// Package logging builds the leveled logger the monitor components
// share, honoring the output section of the config.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/liops/vigil/config"
)

// DefaultLogPath is where the rotating file log lands when enabled.
const DefaultLogPath = "vigil.log"

// New creates a logger from the output config. With log_file enabled the
// logger writes to stderr and to a size-rotated file; rotation follows
// log_max_size_mb and log_backups. Colors are dropped as soon as a file
// sink is attached so the log stays grep-able.
func New(out config.Output, forceFile bool) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(level(out.LogLevel))

	toFile := out.LogFile || forceFile
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   out.ConsoleColors && !toFile,
		DisableColors: !out.ConsoleColors || toFile,
	})

	if toFile {
		rotator := &lumberjack.Logger{
			Filename:   DefaultLogPath,
			MaxSize:    out.LogMaxSizeMB,
			MaxBackups: out.LogBackups,
		}
		log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	} else {
		log.SetOutput(os.Stderr)
	}
	return log
}

func level(name string) logrus.Level {
	switch name {
	case "DEBUG":
		return logrus.DebugLevel
	case "WARNING":
		return logrus.WarnLevel
	case "ERROR":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
