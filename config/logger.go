package config

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

func NewLogger(c *Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if c.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", c.LogLevel)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
