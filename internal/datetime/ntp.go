package datetime

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/beevik/ntp"
	"go.uber.org/zap"
)

// QueryFunc asks server for the clock offset.
type QueryFunc func(server string) (time.Duration, error)

// QueryNTP queries server and rejects unusable responses.
func QueryNTP(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", server, err)
	}
	if err := resp.Validate(); err != nil {
		return 0, fmt.Errorf("validate %s: %w", server, err)
	}
	return resp.ClockOffset, nil
}

// NTPClock corrects the host clock by an NTP offset. It reports no time at
// all until the first successful sync, so traces before then carry no stamp.
type NTPClock struct {
	server   string
	interval time.Duration
	query    QueryFunc
	now      func() time.Time
	logger   *zap.Logger

	backoffInitial time.Duration

	offset atomic.Int64
	synced atomic.Bool
}

// NewNTPClock creates a clock that re-syncs against server every interval.
func NewNTPClock(server string, interval time.Duration, logger *zap.Logger) *NTPClock {
	return &NTPClock{
		server:         server,
		interval:       interval,
		query:          QueryNTP,
		now:            time.Now,
		logger:         logger,
		backoffInitial: 5 * time.Second,
	}
}

// DateTime returns the corrected time, or false before the first sync.
func (c *NTPClock) DateTime() (string, bool) {
	if !c.synced.Load() {
		return "", false
	}
	return c.now().Add(time.Duration(c.offset.Load())).Format(Layout), true
}

// Synced reports whether at least one sync has succeeded.
func (c *NTPClock) Synced() bool {
	return c.synced.Load()
}

// Sync queries the server once and stores the offset.
func (c *NTPClock) Sync() error {
	offset, err := c.query(c.server)
	if err != nil {
		return err
	}
	c.offset.Store(int64(offset))
	c.synced.Store(true)
	return nil
}

// Run syncs immediately and then every interval until ctx is done. Failed
// syncs retry with a doubling backoff capped at the interval. A clock that
// was synced keeps its last offset while the server is unreachable.
func (c *NTPClock) Run(ctx context.Context) {
	var backoff time.Duration
	for {
		wait := c.interval
		if err := c.Sync(); err != nil {
			if backoff == 0 {
				backoff = c.backoffInitial
			} else {
				backoff *= 2
			}
			if backoff > c.interval {
				backoff = c.interval
			}
			wait = backoff
			c.logger.Warn("ntp sync failed", zap.String("server", c.server), zap.Duration("retry_in", wait), zap.Error(err))
		} else {
			if backoff != 0 {
				c.logger.Info("ntp sync recovered", zap.String("server", c.server))
			}
			backoff = 0
			c.logger.Debug("ntp synced", zap.String("server", c.server), zap.Duration("offset", time.Duration(c.offset.Load())))
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}
