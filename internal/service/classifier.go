package service

import (
	"github.com/sirupsen/logrus"
)

// Classifier evaluates the risk and stage cascades for one patient snapshot
// per call. It holds no per-patient state; every method is a pure function
// of its inputs apart from logging.
type Classifier struct {
	logger *logrus.Logger
}

// NewClassifier creates a classifier service.
func NewClassifier(logger *logrus.Logger) *Classifier {
	return &Classifier{logger: logger}
}
