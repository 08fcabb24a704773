package logger

import "go.uber.org/zap"

// New creates a namespaced sugared logger. The sync func should be deferred
// by the owner of the logger.
func New(ns string) (*zap.SugaredLogger, func() error) {
	l, _ := zap.NewDevelopment(zap.Fields(zap.String("ns", ns)))
	return l.Sugar(), l.Sync
}

// ForUser logs a warning tied to one user's processing.
func ForUser(l *zap.SugaredLogger, user string, msg string, err error) {
	l.Warnw(msg, "user", user, "err", err)
}
