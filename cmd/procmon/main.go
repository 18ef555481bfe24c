//go:build linux

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ja7ad/procmon/pkg/config"
	"github.com/ja7ad/procmon/pkg/exporter"
	"github.com/ja7ad/procmon/pkg/monitor"
	"github.com/ja7ad/procmon/pkg/system/procfs"
	"github.com/ja7ad/procmon/pkg/users"
)

type opts struct {
	configPath string
	once       bool

	// mirrored in config.Config
	root        string
	interval    time.Duration
	samples     int
	taskCap     int
	taskRows    int
	ema         float64
	firstMatch  bool
	passwd      string
	metricsAddr string
	logLevel    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o opts
	d := config.Default()

	root := &cobra.Command{
		Use:   "procmon",
		Short: "Terminal system monitor backed by procfs",
		Long: `procmon reads hostname, kernel version, CPU identity and usage, memory
usage, load averages, uptime and a census of process states from a procfs
tree and redraws them every interval.

Examples:
  procmon -i 1s
  procmon --once --root /host/proc --passwd /host/etc/passwd
  procmon --metrics-addr :9101 --samples 0`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), o)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, o.once, cmd.OutOrStdout())
		},
	}

	f := root.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "YAML config file; flags given on the command line override it")
	f.BoolVar(&o.once, "once", false, "print a single snapshot and exit")
	f.StringVar(&o.root, "root", d.Root, "procfs mount point")
	f.DurationVarP(&o.interval, "interval", "i", d.Interval, "refresh interval (e.g. 1s, 500ms)")
	f.IntVarP(&o.samples, "samples", "s", d.Samples, "number of refreshes before exiting (0 = run until Ctrl-C)")
	f.IntVar(&o.taskCap, "task-cap", d.TaskCapacity, "maximum number of active tasks a census may collect")
	f.IntVar(&o.taskRows, "tasks", d.TaskRows, "maximum number of active tasks to display")
	f.Float64Var(&o.ema, "ema", d.EMA, "EMA alpha for CPU usage smoothing [0..1], 0 disables")
	f.BoolVar(&o.firstMatch, "first-match", d.FirstMatch, "use the first cpuinfo model name instead of the last")
	f.StringVar(&o.passwd, "passwd", d.PasswdPath, "passwd file used to resolve task owners")
	f.StringVar(&o.metricsAddr, "metrics-addr", d.MetricsAddr, "serve Prometheus metrics on this address (empty = off)")
	f.StringVar(&o.logLevel, "log-level", d.LogLevel, "log level: debug, info, warn, error")

	return root
}

// resolveConfig starts from the config file (or defaults) and applies every
// flag the user set explicitly.
func resolveConfig(fs *pflag.FlagSet, o opts) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}

	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("root", func() { cfg.Root = o.root })
	set("interval", func() { cfg.Interval = o.interval })
	set("samples", func() { cfg.Samples = o.samples })
	set("task-cap", func() { cfg.TaskCapacity = o.taskCap })
	set("tasks", func() { cfg.TaskRows = o.taskRows })
	set("ema", func() { cfg.EMA = o.ema })
	set("first-match", func() { cfg.FirstMatch = o.firstMatch })
	set("passwd", func() { cfg.PasswdPath = o.passwd })
	set("metrics-addr", func() { cfg.MetricsAddr = o.metricsAddr })
	set("log-level", func() { cfg.LogLevel = o.logLevel })

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config, once bool, out io.Writer) error {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	match := procfs.MatchLast
	if cfg.FirstMatch {
		match = procfs.MatchFirst
	}
	sampler, err := monitor.New(&monitor.Config{
		Root:         cfg.Root,
		TaskCapacity: cfg.TaskCapacity,
		Match:        match,
		EMA:          cfg.EMA,
	})
	if err != nil {
		return err
	}
	resolver := users.NewPasswdResolver(cfg.PasswdPath)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var exp *exporter.Exporter
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		if exp, err = exporter.New(reg); err != nil {
			return err
		}
		go func() {
			if err := exporter.Serve(ctx, cfg.MetricsAddr, reg); err != nil {
				slog.Error("metrics server stopped", "err", err)
			}
		}()
	}

	if once {
		// no baseline yet: give the CPU counters one interval to move
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(min(cfg.Interval, time.Second)):
		}
		snap, err := sample(sampler, exp)
		if err != nil && snap.Tasks == nil {
			return err
		}
		return render(out, snap, viewOptions{rows: cfg.TaskRows, users: resolver})
	}

	interactive := out == io.Writer(os.Stdout) && isTerminal()
	if interactive {
		cleanup := enableSingleView()
		defer cleanup()
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	n := 0
	for {
		select {
		case <-ctx.Done():
			slog.Debug("interrupted")
			printSummary(out, sampler.Averages(), cfg.Interval, interactive)
			return nil

		case <-ticker.C:
			snap, _ := sample(sampler, exp)

			rows := cfg.TaskRows
			if interactive {
				rows = taskRows(rows)
			}
			var buf bytes.Buffer
			fmt.Fprintf(&buf, "procmon (press Ctrl+C to exit) | Updated: %s | Interval: %v\n\n",
				snap.At.Format(time.RFC3339), cfg.Interval)
			if err := render(&buf, snap, viewOptions{rows: rows, users: resolver}); err != nil {
				return err
			}
			if interactive {
				clearScreen()
			} else {
				buf.WriteString("\n")
			}
			if _, err := out.Write(buf.Bytes()); err != nil {
				return err
			}

			n++
			if cfg.Samples > 0 && n >= cfg.Samples {
				printSummary(out, sampler.Averages(), cfg.Interval, interactive)
				return nil
			}
		}
	}
}

// sample polls once, logs partial failures and feeds the exporter.
func sample(s *monitor.Sampler, exp *exporter.Exporter) (monitor.Snapshot, error) {
	snap, err := s.Sample()
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, procfs.ErrCapacityExceeded) {
			level = slog.LevelError
		}
		slog.Log(context.Background(), level, "sample incomplete", "err", err)
	}
	if exp != nil {
		exp.Update(snap)
	}
	return snap, err
}

func printSummary(out io.Writer, avg monitor.Averages, interval time.Duration, interactive bool) {
	if interactive || avg.Samples == 0 {
		return
	}
	fmt.Fprintf(out, "procmon avg (over %d samples of ~%s):\n", avg.Samples, interval)
	fmt.Fprintf(out, "- cpu usage:   %.1f%%\n", avg.CPUUsage*100)
	fmt.Fprintf(out, "- memory used: %.3f GiB\n", avg.MemUsed)
	fmt.Fprintf(out, "- load (1m):   %.2f\n", avg.Load1)
}
