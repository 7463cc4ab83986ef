// Package metrics exports fx.System counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"emberfx/internal/fx"
)

// Bounded label values only: kind and pool come from fixed enums.
var (
	liveDesc = prometheus.NewDesc("emberfx_particles_live",
		"Live particles per arena", []string{"kind"}, nil)
	capacityDesc = prometheus.NewDesc("emberfx_particles_capacity",
		"Fixed arena capacity", []string{"kind"}, nil)
	emittedDesc = prometheus.NewDesc("emberfx_particles_emitted_total",
		"Particles accepted by the arena", []string{"kind"}, nil)
	droppedDesc = prometheus.NewDesc("emberfx_particles_dropped_total",
		"Emits refused because the arena was full", []string{"kind"}, nil)
	objectsDesc = prometheus.NewDesc("emberfx_objects_active",
		"Active pooled objects", []string{"pool"}, nil)
	saturatedDesc = prometheus.NewDesc("emberfx_objects_saturated_total",
		"Acquires that found no free object", []string{"pool"}, nil)
	lightsDesc = prometheus.NewDesc("emberfx_lights_active",
		"Active transient lights", nil, nil)
	recycledDesc = prometheus.NewDesc("emberfx_lights_recycled_total",
		"Light spawns that replaced the oldest light", nil, nil)
	qualityDesc = prometheus.NewDesc("emberfx_quality_level",
		"Current quality level (0 low, 1 medium, 2 high)", nil, nil)
)

// Collector serves the last fx.Stats published by the frame loop. Scrapes
// never touch the System itself; it belongs to the frame loop goroutine.
type Collector struct {
	mu sync.Mutex
	st fx.Stats
}

func NewCollector(initial fx.Stats) *Collector {
	return &Collector{st: initial}
}

// Publish replaces the snapshot scrapes report.
func (c *Collector) Publish(st fx.Stats) {
	c.mu.Lock()
	c.st = st
	c.mu.Unlock()
}

func (c *Collector) snapshot() fx.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{liveDesc, capacityDesc, emittedDesc, droppedDesc,
		objectsDesc, saturatedDesc, lightsDesc, recycledDesc, qualityDesc} {
		ch <- d
	}
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.snapshot()
	for _, a := range st.Arenas {
		kind := a.Kind.String()
		ch <- prometheus.MustNewConstMetric(liveDesc, prometheus.GaugeValue, float64(a.Live), kind)
		ch <- prometheus.MustNewConstMetric(capacityDesc, prometheus.GaugeValue, float64(a.Capacity), kind)
		ch <- prometheus.MustNewConstMetric(emittedDesc, prometheus.CounterValue, float64(a.Emitted), kind)
		ch <- prometheus.MustNewConstMetric(droppedDesc, prometheus.CounterValue, float64(a.Dropped), kind)
	}
	for _, p := range st.Pools {
		pool := p.Kind.String()
		ch <- prometheus.MustNewConstMetric(objectsDesc, prometheus.GaugeValue, float64(p.Active), pool)
		ch <- prometheus.MustNewConstMetric(saturatedDesc, prometheus.CounterValue, float64(p.Saturated), pool)
	}
	ch <- prometheus.MustNewConstMetric(lightsDesc, prometheus.GaugeValue, float64(st.Lights.Active))
	ch <- prometheus.MustNewConstMetric(recycledDesc, prometheus.CounterValue, float64(st.Lights.Recycled))
	ch <- prometheus.MustNewConstMetric(qualityDesc, prometheus.GaugeValue, float64(st.Quality))
}

// Recorder owns a registry with the collector and frame timing histograms.
type Recorder struct {
	reg        *prometheus.Registry
	stats      *Collector
	updateTime prometheus.Histogram
	syncTime   prometheus.Histogram
	frames     prometheus.Counter
}

var frameBuckets = []float64{0.0001, 0.0005, 0.001, 0.002, 0.004, 0.008, 0.016}

func NewRecorder(initial fx.Stats) *Recorder {
	reg := prometheus.NewRegistry()
	c := NewCollector(initial)
	reg.MustRegister(c)
	f := promauto.With(reg)
	return &Recorder{
		reg:   reg,
		stats: c,
		updateTime: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "emberfx_update_duration_seconds",
			Help:    "Time spent in System.Update",
			Buckets: frameBuckets,
		}),
		syncTime: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "emberfx_sync_duration_seconds",
			Help:    "Time spent in System.SyncToRenderer",
			Buckets: frameBuckets,
		}),
		frames: f.NewCounter(prometheus.CounterOpts{
			Name: "emberfx_frames_total",
			Help: "Frames simulated",
		}),
	}
}

func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// ObserveFrame records one frame's update and sync durations and publishes
// the stats taken on the frame loop after that frame.
func (r *Recorder) ObserveFrame(update, syncDur time.Duration, st fx.Stats) {
	r.stats.Publish(st)
	r.updateTime.Observe(update.Seconds())
	r.syncTime.Observe(syncDur.Seconds())
	r.frames.Inc()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[metrics] shutdown: %v", err)
		}
	}()
	log.Printf("[metrics] serving on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
