// Package metrics provides observability for the zoo simulation.
// Counters are cheap enough to record from the hot tick loop.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers performance and domain metrics.
type Collector struct {
	// Tick metrics
	TickCount      int64
	TickLatencySum int64 // nanoseconds
	TickLatencyMax int64
	LastTickTime   time.Time

	// Scheduling metrics
	WorkersStarted  int64
	WorkersReleased int64
	ToursAdmitted   int64
	ToursSkipped    int64
	EarningsTotal   int64

	// Event persistence metrics
	EventsWritten    int64
	EventWriteLatSum int64
	EventWriteLatMax int64
	EventWriteErrors int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesOut       int64
	WSErrors            int64

	StartTime time.Time
	mu        sync.RWMutex
}

// Global collector instance
var collector = &Collector{
	StartTime: time.Now(),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordTick records a tick cycle completion.
func (c *Collector) RecordTick(latency time.Duration) {
	atomic.AddInt64(&c.TickCount, 1)
	atomic.AddInt64(&c.TickLatencySum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.TickLatencyMax) {
		atomic.StoreInt64(&c.TickLatencyMax, int64(latency))
	}

	c.mu.Lock()
	c.LastTickTime = time.Now()
	c.mu.Unlock()
}

// RecordWorkerStart records an Idle -> Busy transition.
func (c *Collector) RecordWorkerStart() {
	atomic.AddInt64(&c.WorkersStarted, 1)
}

// RecordWorkerRelease records a Busy -> Idle transition.
func (c *Collector) RecordWorkerRelease() {
	atomic.AddInt64(&c.WorkersReleased, 1)
}

// RecordTourAdmitted records an admitted tour and its revenue.
func (c *Collector) RecordTourAdmitted(revenue int) {
	atomic.AddInt64(&c.ToursAdmitted, 1)
	atomic.AddInt64(&c.EarningsTotal, int64(revenue))
}

// RecordTourSkipped records a conflict rejection.
func (c *Collector) RecordTourSkipped() {
	atomic.AddInt64(&c.ToursSkipped, 1)
}

// RecordEventWrite records an event write to the database.
func (c *Collector) RecordEventWrite(latency time.Duration, err error) {
	atomic.AddInt64(&c.EventsWritten, 1)
	atomic.AddInt64(&c.EventWriteLatSum, int64(latency))

	if int64(latency) > atomic.LoadInt64(&c.EventWriteLatMax) {
		atomic.StoreInt64(&c.EventWriteLatMax, int64(latency))
	}

	if err != nil {
		atomic.AddInt64(&c.EventWriteErrors, 1)
	}
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records an outgoing WebSocket broadcast.
func (c *Collector) RecordWSMessage() {
	atomic.AddInt64(&c.WSMessagesOut, 1)
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tickCount := atomic.LoadInt64(&c.TickCount)
	eventsWritten := atomic.LoadInt64(&c.EventsWritten)

	var tickAvg, eventAvg float64
	if tickCount > 0 {
		tickAvg = float64(atomic.LoadInt64(&c.TickLatencySum)) / float64(tickCount) / 1e6 // ms
	}
	if eventsWritten > 0 {
		eventAvg = float64(atomic.LoadInt64(&c.EventWriteLatSum)) / float64(eventsWritten) / 1e6
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"tick": map[string]interface{}{
			"count":          tickCount,
			"avg_latency_ms": tickAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.TickLatencyMax)) / 1e6,
			"last_tick":      c.LastTickTime.Format(time.RFC3339),
		},

		"scheduling": map[string]interface{}{
			"workers_started":  atomic.LoadInt64(&c.WorkersStarted),
			"workers_released": atomic.LoadInt64(&c.WorkersReleased),
			"tours_admitted":   atomic.LoadInt64(&c.ToursAdmitted),
			"tours_skipped":    atomic.LoadInt64(&c.ToursSkipped),
			"earnings_total":   atomic.LoadInt64(&c.EarningsTotal),
		},

		"events": map[string]interface{}{
			"written":          eventsWritten,
			"avg_write_lat_ms": eventAvg,
			"max_write_lat_ms": float64(atomic.LoadInt64(&c.EventWriteLatMax)) / 1e6,
			"errors":           atomic.LoadInt64(&c.EventWriteErrors),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		snapshot := collector.Snapshot()
		json.NewEncoder(w).Encode(snapshot)
	}
}

// PrometheusHandler returns metrics in Prometheus format.
func PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		c := collector

		fmt.Fprintf(w, "# HELP zoodia_tick_count Total tick cycles\n")
		fmt.Fprintf(w, "# TYPE zoodia_tick_count counter\n")
		fmt.Fprintf(w, "zoodia_tick_count %d\n\n", atomic.LoadInt64(&c.TickCount))

		fmt.Fprintf(w, "# HELP zoodia_tick_latency_max_ms Maximum tick latency\n")
		fmt.Fprintf(w, "# TYPE zoodia_tick_latency_max_ms gauge\n")
		fmt.Fprintf(w, "zoodia_tick_latency_max_ms %.2f\n\n", float64(atomic.LoadInt64(&c.TickLatencyMax))/1e6)

		fmt.Fprintf(w, "# HELP zoodia_tours_total Tours by admission outcome\n")
		fmt.Fprintf(w, "# TYPE zoodia_tours_total counter\n")
		fmt.Fprintf(w, "zoodia_tours_total{outcome=\"admitted\"} %d\n", atomic.LoadInt64(&c.ToursAdmitted))
		fmt.Fprintf(w, "zoodia_tours_total{outcome=\"skipped\"} %d\n\n", atomic.LoadInt64(&c.ToursSkipped))

		fmt.Fprintf(w, "# HELP zoodia_workers_started Total Idle to Busy transitions\n")
		fmt.Fprintf(w, "# TYPE zoodia_workers_started counter\n")
		fmt.Fprintf(w, "zoodia_workers_started %d\n\n", atomic.LoadInt64(&c.WorkersStarted))

		fmt.Fprintf(w, "# HELP zoodia_earnings_total Accumulated ticket revenue\n")
		fmt.Fprintf(w, "# TYPE zoodia_earnings_total counter\n")
		fmt.Fprintf(w, "zoodia_earnings_total %d\n\n", atomic.LoadInt64(&c.EarningsTotal))

		fmt.Fprintf(w, "# HELP zoodia_events_written Total events written\n")
		fmt.Fprintf(w, "# TYPE zoodia_events_written counter\n")
		fmt.Fprintf(w, "zoodia_events_written %d\n\n", atomic.LoadInt64(&c.EventsWritten))

		fmt.Fprintf(w, "# HELP zoodia_event_write_errors Total event write errors\n")
		fmt.Fprintf(w, "# TYPE zoodia_event_write_errors counter\n")
		fmt.Fprintf(w, "zoodia_event_write_errors %d\n\n", atomic.LoadInt64(&c.EventWriteErrors))

		fmt.Fprintf(w, "# HELP zoodia_ws_connections Active WebSocket connections\n")
		fmt.Fprintf(w, "# TYPE zoodia_ws_connections gauge\n")
		fmt.Fprintf(w, "zoodia_ws_connections %d\n", atomic.LoadInt64(&c.WSConnectionsActive))
	}
}
