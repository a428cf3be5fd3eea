package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Init configures the process logger. LOG_LEVEL defaults to info.
func Init() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}
}

// L returns the shared logger.
func L() *logrus.Logger {
	return log
}

// WithGame tags entries with the game id.
func WithGame(gameId string) *logrus.Entry {
	return log.WithField("game_id", gameId)
}
