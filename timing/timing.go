// Package timing reports how long solver entry points take.
//
// The wrappers only observe: results and errors pass through unchanged.
package timing

import (
	"time"

	"go.uber.org/zap"
)

// Track runs fn and logs its wall-clock duration under name at Info level,
// or at Warn level with the error when fn fails. A nil logger disables logging.
func Track[T any](log *zap.Logger, name string, fn func() (T, error)) (T, error) {
	start := time.Now()
	res, err := fn()
	elapsed := time.Since(start)

	if log == nil {
		return res, err
	}
	if err != nil {
		log.Warn("function failed",
			zap.String("func", name),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))

		return res, err
	}
	log.Info("function finished",
		zap.String("func", name),
		zap.Duration("elapsed", elapsed))

	return res, nil
}

// Stopwatch logs the duration since its creation when Stop is called.
//
//	sw := timing.Start(log, "assemble")
//	defer sw.Stop()
type Stopwatch struct {
	log   *zap.Logger
	name  string
	start time.Time
}

// Start returns a running Stopwatch.
func Start(log *zap.Logger, name string) *Stopwatch {
	return &Stopwatch{log: log, name: name, start: time.Now()}
}

// Stop logs the elapsed time at Debug level and returns it.
func (s *Stopwatch) Stop() time.Duration {
	elapsed := time.Since(s.start)
	if s.log != nil {
		s.log.Debug("stage finished",
			zap.String("stage", s.name),
			zap.Duration("elapsed", elapsed))
	}

	return elapsed
}
