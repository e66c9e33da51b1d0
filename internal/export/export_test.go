package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sweeney/psu-debug/internal/debug"
	"github.com/sweeney/psu-debug/internal/status"
)

func newFixture(t *testing.T) (*debug.Registry, *status.Tracker, *debug.Value, *debug.Duration, *debug.Counter) {
	t.Helper()
	v := debug.NewValue("CH1 U_MON")
	d := debug.NewDuration("MAIN_LOOP_DURATION", nil)
	c := debug.NewCounter("ADC_COUNTER", nil)
	reg := debug.NewRegistry(v, d, c)
	return reg, status.NewTracker(time.Now()), v, d, c
}

func TestCollectorValuesAndCounters(t *testing.T) {
	reg, tr, v, _, c := newFixture(t)

	v.Set(4995)
	c.Inc()
	c.Inc()
	reg.Tick1secPeriod()
	tr.Update(reg, debug.Window1s)

	expected := `
# HELP psu_debug_value Last value written to a debug value variable
# TYPE psu_debug_value gauge
psu_debug_value{variable="CH1 U_MON"} 4995
# HELP psu_debug_events Counter variable events in the last closed window
# TYPE psu_debug_events gauge
psu_debug_events{variable="ADC_COUNTER",window="10s"} 0
psu_debug_events{variable="ADC_COUNTER",window="1s"} 2
# HELP psu_debug_events_total Counter variable events since startup
# TYPE psu_debug_events_total counter
psu_debug_events_total{variable="ADC_COUNTER"} 2
# HELP psu_debug_windows_closed_total Number of windows closed by the tick dispatcher
# TYPE psu_debug_windows_closed_total counter
psu_debug_windows_closed_total{window="10s"} 0
psu_debug_windows_closed_total{window="1s"} 1
`
	err := testutil.CollectAndCompare(NewCollector(tr), strings.NewReader(expected),
		"psu_debug_value", "psu_debug_events", "psu_debug_events_total", "psu_debug_windows_closed_total")
	require.NoError(t, err)
}

func TestCollectorDurationSkipsUnsetLifetimeMin(t *testing.T) {
	reg, tr, _, _, _ := newFixture(t)
	tr.Update(reg, 0)

	// 1s and 10s min/avg/max plus lifetime max only.
	assert.Equal(t, 7, testutil.CollectAndCount(NewCollector(tr), "psu_debug_duration_microseconds"))
}

func TestCollectorDurationStats(t *testing.T) {
	reg, tr, _, d, _ := newFixture(t)
	d.Tick(0)
	d.Tick(300)
	d.Tick(400)
	reg.Tick1secPeriod()
	tr.Update(reg, debug.Window1s)

	assert.Equal(t, 8, testutil.CollectAndCount(NewCollector(tr), "psu_debug_duration_microseconds"))

	expected := `
# HELP psu_debug_duration_microseconds Duration variable statistics for the last closed window or the whole run
# TYPE psu_debug_duration_microseconds gauge
psu_debug_duration_microseconds{stat="avg",variable="MAIN_LOOP_DURATION",window="10s"} 0
psu_debug_duration_microseconds{stat="avg",variable="MAIN_LOOP_DURATION",window="1s"} 200
psu_debug_duration_microseconds{stat="max",variable="MAIN_LOOP_DURATION",window="10s"} 0
psu_debug_duration_microseconds{stat="max",variable="MAIN_LOOP_DURATION",window="1s"} 300
psu_debug_duration_microseconds{stat="max",variable="MAIN_LOOP_DURATION",window="lifetime"} 300
psu_debug_duration_microseconds{stat="min",variable="MAIN_LOOP_DURATION",window="10s"} 0
psu_debug_duration_microseconds{stat="min",variable="MAIN_LOOP_DURATION",window="1s"} 100
psu_debug_duration_microseconds{stat="min",variable="MAIN_LOOP_DURATION",window="lifetime"} 100
`
	err := testutil.CollectAndCompare(NewCollector(tr), strings.NewReader(expected), "psu_debug_duration_microseconds")
	require.NoError(t, err)
}

func TestTextfileWrite(t *testing.T) {
	reg, tr, v, _, _ := newFixture(t)
	v.Set(-12)
	tr.Update(reg, 0)

	path := filepath.Join(t.TempDir(), "psu_debug.prom")
	require.NoError(t, NewTextfile(path, tr, zap.NewNop()).Write())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `psu_debug_value{variable="CH1 U_MON"} -12`)
}

func TestTextfileWriteBadPath(t *testing.T) {
	_, tr, _, _, _ := newFixture(t)
	path := filepath.Join(t.TempDir(), "missing", "dir", "x.prom")

	err := NewTextfile(path, tr, zap.NewNop()).Write()
	assert.Error(t, err)
}

func TestTextfileRun(t *testing.T) {
	reg, tr, _, _, _ := newFixture(t)
	tr.Update(reg, 0)
	path := filepath.Join(t.TempDir(), "psu_debug.prom")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notify := make(chan struct{}, 1)
	go NewTextfile(path, tr, zap.NewNop()).Run(ctx, notify)

	notify <- struct{}{}
	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 2*time.Second, 5*time.Millisecond)
}
