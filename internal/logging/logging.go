// Package logging configures the shared logrus logger for the application.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the application logger. The level is a logrus level name; unknown
// names fall back to info. When logDir is non-empty, output is duplicated to a
// rotating file in that directory.
func New(level, logDir string) *logrus.Logger {
	logger := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	logger.SetFormatter(&formatter.Formatter{
		TimestampFormat: "15:04:05",
		HideKeys:        false,
	})

	writers := []io.Writer{os.Stderr}
	if logDir != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   fmt.Sprintf("%s/sentrycam-%s.log", logDir, time.Now().Format("2006-01-02")),
			LocalTime:  true,
			MaxSize:    50,
			MaxAge:     7,
			MaxBackups: 3,
		})
	}
	logger.SetOutput(io.MultiWriter(writers...))

	return logger
}
