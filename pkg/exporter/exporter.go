//go:build linux

// Package exporter publishes monitor snapshots as Prometheus gauges.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ja7ad/procmon/pkg/monitor"
	"github.com/ja7ad/procmon/pkg/system/procfs"
)

const namespace = "procmon"

// Exporter holds the gauges fed by Update.
type Exporter struct {
	cpuUsage    prometheus.Gauge
	memTotal    prometheus.Gauge
	memUsed     prometheus.Gauge
	uptime      prometheus.Gauge
	cpuUnits    prometheus.Gauge
	load        *prometheus.GaugeVec
	tasks       *prometheus.GaugeVec
	activeTasks prometheus.Gauge
	info        *prometheus.GaugeVec
}

// New creates the gauges and registers them with reg.
func New(reg prometheus.Registerer) (*Exporter, error) {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}
	e := &Exporter{
		cpuUsage:    gauge("cpu_usage_ratio", "Busy fraction of all CPUs since the previous sample."),
		memTotal:    gauge("memory_total_gib", "MemTotal in GiB."),
		memUsed:     gauge("memory_used_gib", "MemTotal minus MemAvailable in GiB."),
		uptime:      gauge("uptime_seconds", "Seconds since boot."),
		cpuUnits:    gauge("cpu_units", "Number of logical CPUs."),
		activeTasks: gauge("active_tasks", "Number of tasks that are not sleeping."),
		load: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "load_average", Help: "Kernel load average.",
		}, []string{"window"}),
		tasks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "tasks", Help: "Tasks by scheduling state.",
		}, []string{"state"}),
		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "host_info", Help: "Host identity; the value is always 1.",
		}, []string{"hostname", "kernel", "cpu_model"}),
	}

	for _, c := range []prometheus.Collector{
		e.cpuUsage, e.memTotal, e.memUsed, e.uptime, e.cpuUnits,
		e.activeTasks, e.load, e.tasks, e.info,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("exporter: register: %w", err)
		}
	}
	return e, nil
}

// Update copies a snapshot into the gauges.
func (e *Exporter) Update(s monitor.Snapshot) {
	e.cpuUsage.Set(s.CPUUsage)
	e.memTotal.Set(s.Mem.Total)
	e.memUsed.Set(s.Mem.Used)
	e.uptime.Set(s.Uptime)
	e.cpuUnits.Set(float64(s.CPUUnits))

	e.load.WithLabelValues("1m").Set(s.Load.One)
	e.load.WithLabelValues("5m").Set(s.Load.Five)
	e.load.WithLabelValues("15m").Set(s.Load.Fifteen)

	e.info.Reset()
	e.info.WithLabelValues(s.Hostname, s.Kernel, s.CPUModel).Set(1)

	if t := s.Tasks; t != nil {
		e.tasks.WithLabelValues("total").Set(float64(t.Total))
		e.tasks.WithLabelValues(string(procfs.StateRunning)).Set(float64(t.Running))
		e.tasks.WithLabelValues("waiting").Set(float64(t.Waiting))
		e.tasks.WithLabelValues(string(procfs.StateSleeping)).Set(float64(t.Sleeping))
		e.tasks.WithLabelValues(string(procfs.StateStopped)).Set(float64(t.Stopped))
		e.tasks.WithLabelValues(string(procfs.StateZombie)).Set(float64(t.Zombie))
		e.activeTasks.Set(float64(len(t.Active)))
	}
}

// Serve exposes g on addr at /metrics until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving metrics", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("exporter: serve %s: %w", addr, err)
	}
}
