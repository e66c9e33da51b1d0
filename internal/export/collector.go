// Package export writes the debug variables as a Prometheus textfile, for a
// node exporter's textfile collector to pick up. Nothing here listens on the
// network.
package export

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sweeney/psu-debug/internal/debug"
	"github.com/sweeney/psu-debug/internal/status"
)

// Collector implements prometheus.Collector over the latest status snapshot.
type Collector struct {
	tracker *status.Tracker

	value         *prometheus.Desc
	duration      *prometheus.Desc
	events        *prometheus.Desc
	eventsTotal   *prometheus.Desc
	windowsClosed *prometheus.Desc
	uptime        *prometheus.Desc
}

// NewCollector creates a Collector reading from tracker.
func NewCollector(tracker *status.Tracker) *Collector {
	return &Collector{
		tracker: tracker,
		value: prometheus.NewDesc("psu_debug_value",
			"Last value written to a debug value variable",
			[]string{"variable"}, nil),
		duration: prometheus.NewDesc("psu_debug_duration_microseconds",
			"Duration variable statistics for the last closed window or the whole run",
			[]string{"variable", "window", "stat"}, nil),
		events: prometheus.NewDesc("psu_debug_events",
			"Counter variable events in the last closed window",
			[]string{"variable", "window"}, nil),
		eventsTotal: prometheus.NewDesc("psu_debug_events_total",
			"Counter variable events since startup",
			[]string{"variable"}, nil),
		windowsClosed: prometheus.NewDesc("psu_debug_windows_closed_total",
			"Number of windows closed by the tick dispatcher",
			[]string{"window"}, nil),
		uptime: prometheus.NewDesc("psu_debug_uptime_seconds",
			"Seconds since the daemon started",
			nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.value
	ch <- c.duration
	ch <- c.events
	ch <- c.eventsTotal
	ch <- c.windowsClosed
	ch <- c.uptime
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.tracker.Snapshot()

	for _, r := range snap.Readings {
		switch r.Kind {
		case debug.KindValue:
			ch <- prometheus.MustNewConstMetric(c.value, prometheus.GaugeValue, float64(r.Value), r.Name)
		case debug.KindDuration:
			c.collectStats(ch, r.Name, "1s", r.Duration1s)
			c.collectStats(ch, r.Name, "10s", r.Duration10s)
			// Lifetime min is MaxUint32 until the first sample; leave it out.
			if r.MinTotal != math.MaxUint32 {
				ch <- prometheus.MustNewConstMetric(c.duration, prometheus.GaugeValue, float64(r.MinTotal), r.Name, "lifetime", "min")
			}
			ch <- prometheus.MustNewConstMetric(c.duration, prometheus.GaugeValue, float64(r.MaxTotal), r.Name, "lifetime", "max")
		case debug.KindCounter:
			ch <- prometheus.MustNewConstMetric(c.events, prometheus.GaugeValue, float64(r.Count1s), r.Name, "1s")
			ch <- prometheus.MustNewConstMetric(c.events, prometheus.GaugeValue, float64(r.Count10s), r.Name, "10s")
			ch <- prometheus.MustNewConstMetric(c.eventsTotal, prometheus.CounterValue, float64(r.Total), r.Name)
		}
	}

	ch <- prometheus.MustNewConstMetric(c.windowsClosed, prometheus.CounterValue, float64(snap.Windows1s), "1s")
	ch <- prometheus.MustNewConstMetric(c.windowsClosed, prometheus.CounterValue, float64(snap.Windows10s), "10s")
	ch <- prometheus.MustNewConstMetric(c.uptime, prometheus.GaugeValue, snap.Uptime().Seconds())
}

func (c *Collector) collectStats(ch chan<- prometheus.Metric, name, window string, s debug.Stats) {
	ch <- prometheus.MustNewConstMetric(c.duration, prometheus.GaugeValue, float64(s.Min), name, window, "min")
	ch <- prometheus.MustNewConstMetric(c.duration, prometheus.GaugeValue, float64(s.Avg), name, window, "avg")
	ch <- prometheus.MustNewConstMetric(c.duration, prometheus.GaugeValue, float64(s.Max), name, window, "max")
}
