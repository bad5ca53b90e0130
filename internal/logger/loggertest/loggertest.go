// Package loggertest provides loggers for tests. It is kept apart from
// package logger so production binaries do not link the testing package.
package loggertest

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/Skufu/symptomchat/internal/logger"
)

// New returns a Logger that writes through t.Log.
func New(t testing.TB) logger.Logger {
	return logger.Wrap(zaptest.NewLogger(t))
}
