package frame

import (
	"context"
	"errors"
	"time"
)

// ErrExhausted is returned by Scheduler.Next when no further frames will be
// delivered.
var ErrExhausted = errors.New("frame: scheduler exhausted")

// Scheduler is the host's per-refresh facility. Next blocks until the next
// frame is due.
type Scheduler interface {
	Next(ctx context.Context) error
	Stop()
}

// TickerScheduler delivers frames at a fixed rate until its context ends.
type TickerScheduler struct {
	ticker *time.Ticker
	limit  int
	sent   int
}

// NewTickerScheduler paces frames at fps. A positive limit ends the run after
// that many frames.
func NewTickerScheduler(fps, limit int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TickerScheduler{
		ticker: time.NewTicker(time.Second / time.Duration(fps)),
		limit:  limit,
	}
}

func (t *TickerScheduler) Next(ctx context.Context) error {
	if t.limit > 0 && t.sent >= t.limit {
		return ErrExhausted
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ticker.C:
		t.sent++
		return nil
	}
}

func (t *TickerScheduler) Stop() { t.ticker.Stop() }

// CountScheduler delivers exactly n frames as fast as the caller consumes
// them.
type CountScheduler struct {
	remaining int
}

func NewCountScheduler(n int) *CountScheduler {
	return &CountScheduler{remaining: n}
}

func (c *CountScheduler) Next(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.remaining <= 0 {
		return ErrExhausted
	}
	c.remaining--
	return nil
}

func (c *CountScheduler) Stop() {}
