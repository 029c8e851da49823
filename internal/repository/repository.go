package repository

import (
	"errors"

	"github.com/sirupsen/logrus"
)

var (
	ErrAlreadyExists = errors.New("record already exists")
	ErrRecordMissing = errors.New("record missing")
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.GetLevel())
	return logger
}
