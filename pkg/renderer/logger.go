package renderer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/df07/go-plane-raytracer/pkg/core"
)

// zapLogger implements core.Logger on top of a sugared zap logger
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger adapts a zap logger to core.Logger. Printf lines are logged at info level.
func NewZapLogger(sugar *zap.SugaredLogger) core.Logger {
	return &zapLogger{sugar: sugar}
}

func (l *zapLogger) Printf(format string, args ...interface{}) {
	l.sugar.Infof(strings.TrimRight(format, "\n"), args...)
}

// NewDefaultLogger creates a production zap logger, or a no-op one if zap
// cannot open its sinks
func NewDefaultLogger() core.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	return NewZapLogger(logger.Sugar())
}
