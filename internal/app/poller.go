package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StatusFetcher returns homework statuses changed since the cursor.
type StatusFetcher interface {
	GetAPIAnswer(ctx context.Context, fromDate homework.Cursor) (*homework.Response, error)
}

// Waiter blocks between cycles.
type Waiter interface {
	Wait(ctx context.Context) error
}

// CycleResult describes one poll cycle.
type CycleResult struct {
	ID       string
	Sent     int
	Err      error
	Cursor   homework.Cursor
	Duration time.Duration
}

// Result is "ok" or "failed".
func (r CycleResult) Result() string {
	if r.Err != nil {
		return "failed"
	}
	return "ok"
}

// Observer is told about every finished cycle.
type Observer interface {
	CycleFinished(res CycleResult)
}

// Poller runs fetch, validate, format and notify on a fixed schedule.
// All work happens on the goroutine that calls Run.
type Poller struct {
	fetcher   StatusFetcher
	notifier  Notifier
	bot       domainTelegram.Client // Failure reports bypass the Notifier
	chatID    int64
	waiter    Waiter
	mode      homework.ValidationMode
	logger    logrus.FieldLogger
	observers []Observer

	now    func() time.Time
	cursor homework.Cursor
}

func NewPoller(
	fetcher StatusFetcher,
	notifier Notifier,
	bot domainTelegram.Client,
	chatID int64,
	waiter Waiter,
	mode homework.ValidationMode,
	logger logrus.FieldLogger,
	observers ...Observer,
) *Poller {
	p := &Poller{
		fetcher:   fetcher,
		notifier:  notifier,
		bot:       bot,
		chatID:    chatID,
		waiter:    waiter,
		mode:      mode,
		logger:    logger,
		observers: observers,
		now:       time.Now,
	}
	p.cursor = homework.NewCursor(p.now())
	return p
}

// Cursor returns the from_date used by the next fetch.
func (p *Poller) Cursor() homework.Cursor {
	return p.cursor
}

// Run polls until ctx is cancelled. A failed cycle is logged and reported to
// the chat, and the next cycle retries from the same cursor.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.WithFields(logrus.Fields{
		"cursor":     p.cursor,
		"validation": p.mode.String(),
	}).Info("Homework poller started")

	for {
		res := p.RunOnce(ctx)
		if ctx.Err() != nil {
			p.logger.Info("Homework poller stopped")
			return ctx.Err()
		}

		if res.Err != nil {
			p.reportFailure(res)
		}
		for _, o := range p.observers {
			o.CycleFinished(res)
		}

		if err := p.waiter.Wait(ctx); err != nil {
			p.logger.Info("Homework poller stopped")
			return err
		}
	}
}

// RunOnce performs a single cycle. The cursor advances only when every
// record was delivered.
func (p *Poller) RunOnce(ctx context.Context) CycleResult {
	start := p.now()
	res := CycleResult{ID: uuid.NewString()}
	log := p.logger.WithField("cycle_id", res.ID)

	res.Sent, res.Err = p.poll(ctx, log)
	res.Cursor = p.cursor
	res.Duration = p.now().Sub(start)

	if res.Err == nil {
		log.WithFields(logrus.Fields{"sent": res.Sent, "cursor": res.Cursor}).Info("Poll cycle completed")
	}
	return res
}

func (p *Poller) poll(ctx context.Context, log logrus.FieldLogger) (int, error) {
	resp, err := p.fetcher.GetAPIAnswer(ctx, p.cursor)
	if err != nil {
		return 0, err
	}

	homeworks, err := homework.CheckResponse(resp, p.mode)
	if err != nil {
		var vErr *homework.ValidationError
		if errors.As(err, &vErr) && errors.Is(err, homework.ErrNoStatus) {
			log.WithField("status", vErr.Status).Error("No status")
		}
		return 0, err
	}

	sent := 0
	for _, hw := range homeworks {
		if _, err := p.notifier.SendMessage(ctx, homework.ParseStatus(hw)); err != nil {
			return sent, err
		}
		sent++
	}

	p.cursor = homework.NewCursor(p.now())
	return sent, nil
}

func (p *Poller) reportFailure(res CycleResult) {
	log := p.logger.WithFields(logrus.Fields{
		"cycle_id": res.ID,
		"kind":     homework.Kind(res.Err),
		"cursor":   p.cursor,
	})
	log.WithError(res.Err).Error("Poll cycle failed")

	text := fmt.Sprintf("Something went wrong: %v", res.Err)
	if _, err := p.bot.SendMessage(p.chatID, text, nil); err != nil {
		log.WithError(err).Error("Failed to send failure report")
	}
}
