package database

import (
	"context"
	"errors"
	"fmt"

	"linewar-tracker/internal/config"
	"linewar-tracker/internal/constants"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

var ErrRunInProgress = errors.New("another run is using the database")

// RunLock serializes batch runs against one database file. A search session
// belongs to a single run, so two runs never share one.
type RunLock struct {
	lock   *flock.Flock
	path   string
	logger zerolog.Logger
}

// NewRunLock is held from app start to app stop.
func NewRunLock(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) *RunLock {
	l := newRunLock(cfg, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return l.Acquire()
		},
		OnStop: func(ctx context.Context) error {
			return l.Release()
		},
	})
	return l
}

func newRunLock(cfg *config.Config, logger zerolog.Logger) *RunLock {
	path := cfg.DBPath + constants.LockFileSuffix
	return &RunLock{lock: flock.New(path), path: path, logger: logger}
}

func (l *RunLock) Acquire() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrRunInProgress, l.path)
	}
	l.logger.Debug().Str("lock", l.path).Msg("run lock acquired")
	return nil
}

func (l *RunLock) Release() error {
	if err := l.lock.Unlock(); err != nil {
		l.logger.Warn().Err(err).Str("lock", l.path).Msg("failed to release run lock")
		return err
	}
	return nil
}
