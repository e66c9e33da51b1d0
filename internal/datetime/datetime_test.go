package datetime

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var base = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestSystemDateTime(t *testing.T) {
	s := &System{now: func() time.Time { return base }}

	got, ok := s.DateTime()
	require.True(t, ok)
	assert.Equal(t, "2026-01-01 12:00:00", got)
	assert.Len(t, got, 19)
}

func newTestClock(query QueryFunc) *NTPClock {
	c := NewNTPClock("pool.ntp.org", time.Minute, zap.NewNop())
	c.query = query
	c.now = func() time.Time { return base }
	return c
}

func TestNTPClockUnavailableBeforeSync(t *testing.T) {
	c := newTestClock(func(string) (time.Duration, error) { return 0, errors.New("unreachable") })

	_, ok := c.DateTime()
	assert.False(t, ok)

	assert.Error(t, c.Sync())
	_, ok = c.DateTime()
	assert.False(t, ok)
	assert.False(t, c.Synced())
}

func TestNTPClockAppliesOffset(t *testing.T) {
	c := newTestClock(func(server string) (time.Duration, error) {
		assert.Equal(t, "pool.ntp.org", server)
		return 90 * time.Second, nil
	})

	require.NoError(t, c.Sync())
	got, ok := c.DateTime()
	require.True(t, ok)
	assert.Equal(t, "2026-01-01 12:01:30", got)
}

func TestNTPClockKeepsOffsetAfterFailure(t *testing.T) {
	fail := false
	c := newTestClock(func(string) (time.Duration, error) {
		if fail {
			return 0, errors.New("timeout")
		}
		return -time.Hour, nil
	})

	require.NoError(t, c.Sync())
	fail = true
	assert.Error(t, c.Sync())

	got, ok := c.DateTime()
	require.True(t, ok)
	assert.Equal(t, "2026-01-01 11:00:00", got)
}

func TestNTPClockRunRetriesUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	c := newTestClock(func(string) (time.Duration, error) {
		if calls.Add(1) < 3 {
			return 0, errors.New("no route")
		}
		return time.Second, nil
	})
	c.backoffInitial = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	require.Eventually(t, c.Synced, 2*time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestFakeSource(t *testing.T) {
	f := &FakeSource{Text: "2026-01-01 00:00:00"}
	_, ok := f.DateTime()
	assert.False(t, ok)

	f.Available = true
	got, ok := f.DateTime()
	assert.True(t, ok)
	assert.Equal(t, "2026-01-01 00:00:00", got)
}
