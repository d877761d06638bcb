package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PollScheduler blocks the poll loop until the next tick of a cron schedule.
// It runs on the caller's goroutine; there is no cron engine behind it.
type PollScheduler struct {
	schedule cron.Schedule
	logger   logrus.FieldLogger
	now      func() time.Time
}

// NewPollScheduler uses spec when it is set ("@every 5m", "*/5 * * * *"),
// and a constant interval otherwise.
func NewPollScheduler(spec string, interval time.Duration, logger logrus.FieldLogger) (*PollScheduler, error) {
	var schedule cron.Schedule
	if spec != "" {
		parsed, err := cron.ParseStandard(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid poll schedule %q: %w", spec, err)
		}
		schedule = parsed
	} else {
		schedule = cron.Every(interval)
	}

	return &PollScheduler{
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// NextDelay returns how long Wait would block from now.
func (s *PollScheduler) NextDelay() time.Duration {
	now := s.now()
	return s.schedule.Next(now).Sub(now)
}

// Wait sleeps until the next tick or until ctx is done.
func (s *PollScheduler) Wait(ctx context.Context) error {
	delay := s.NextDelay()
	s.logger.Debugf("Next poll in %s", delay)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
