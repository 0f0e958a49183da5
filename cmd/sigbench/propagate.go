package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/delaneyj/signalgraph/metrics"
	"github.com/delaneyj/signalgraph/reactive"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"
)

func propagateCommand() *cli.Command {
	return &cli.Command{
		Name:  "propagate",
		Usage: "Time a write fanning out to width chains of height derived nodes",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:  widthsKey,
				Usage: "Number of chains hanging off the source",
				Value: []int64{1, 10, 100, 1_000},
			},
			&cli.IntSliceFlag{
				Name:  heightsKey,
				Usage: "Number of derived nodes per chain",
				Value: []int64{1, 10, 100, 1_000},
			},
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Writes timed per shape",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  metricsAddrKey,
				Usage: "Serve Prometheus metrics on this address until interrupted",
			},
			&cli.StringFlag{
				Name:  formatKey,
				Usage: "Output format: table or markdown",
				Value: "table",
			},
		},
		Action: runPropagateCommand,
	}
}

func runPropagateCommand(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String(formatKey)
	if format != "table" && format != "markdown" {
		return fmt.Errorf("unknown format %q", format)
	}

	var (
		reg        *prometheus.Registry
		registerer prometheus.Registerer
	)
	addr := cmd.String(metricsAddrKey)
	if addr != "" {
		reg = prometheus.NewRegistry()
		registerer = reg
	}

	tbl := table.NewWriter()
	tbl.SetTitle("signalgraph propagate")
	tbl.SetOutputMirror(cmd.Root().Writer)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	iters := int(cmd.Int(itersKey))
	for _, w := range cmd.IntSlice(widthsKey) {
		for _, h := range cmd.IntSlice(heightsKey) {
			res, err := benchPropagate(int(w), int(h), iters, registerer)
			if err != nil {
				return err
			}
			tbl.AppendRow(table.Row{
				fmt.Sprintf("propagate: %d * %d", w, h),
				res.Time.Avg,
				res.Time.Min,
				res.Time.P75,
				res.Time.P99,
				res.Time.Max,
			})
		}
	}

	if format == "markdown" {
		tbl.RenderMarkdown()
	} else {
		tbl.Render()
	}

	if reg == nil {
		return nil
	}
	return serveMetrics(ctx, addr, reg)
}

// benchPropagate builds w chains of h derived nodes, each followed by an
// effect, and times iters writes to the shared source. When reg is set the
// system's counters are registered on it.
func benchPropagate(w, h, iters int, reg prometheus.Registerer) (*tachymeter.Metrics, error) {
	if w <= 0 || h <= 0 || iters <= 0 {
		return nil, fmt.Errorf("width, height and iters must be positive, got %d, %d, %d", w, h, iters)
	}

	var failures engineFailures
	rs := reactive.New(reactive.WithErrorHandler(failures.handler()))
	if reg != nil {
		if err := reg.Register(metrics.NewCollector(rs, fmt.Sprintf("%dx%d", w, h))); err != nil {
			return nil, err
		}
	}

	addOne := func(v reactive.Value[int]) *reactive.Derived[int] {
		return reactive.Computed(rs, func(int) int {
			return v.Get() + 1
		})
	}

	src := reactive.Signal(rs, 1)
	seen := make([]int, w)
	for i := 0; i < w; i++ {
		var last reactive.Value[int] = src
		for j := 0; j < h; j++ {
			last = addOne(last)
		}
		reactive.Effect(rs, func() error {
			seen[i] = last.Get()
			return nil
		})
	}

	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	for i := 0; i < iters; i++ {
		start := time.Now()
		src.Set(src.Peek() + 1)
		tach.AddTime(time.Since(start))
	}

	if err := failures.Err(); err != nil {
		return nil, err
	}
	want := src.Peek() + h
	for i, got := range seen {
		if got != want {
			return nil, fmt.Errorf("chain %d of %dx%d ended at %d, want %d", i, w, h, got, want)
		}
	}

	stats := rs.Stats()
	slog.Debug("propagate done",
		"width", w,
		"height", h,
		"writes", stats.Writes,
		"recomputes", stats.Recomputes,
		"effect_runs", stats.EffectRuns,
	)
	return tach.Calc(), nil
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	slog.Info("serving metrics, interrupt to exit", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
