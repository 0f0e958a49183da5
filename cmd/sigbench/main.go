package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

const (
	verboseKey     = "verbose"
	widthsKey      = "widths"
	heightsKey     = "heights"
	itersKey       = "iters"
	metricsAddrKey = "metrics-addr"
	configKey      = "config"
	repeatsKey     = "repeats"
	formatKey      = "format"
	pendingKey     = "pending"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("sigbench failed", "err", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "sigbench",
		Usage: "Benchmark and inspect the signalgraph engine",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    verboseKey,
				Aliases: []string{"v"},
				Usage:   "Log at debug level",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := slog.LevelInfo
			if cmd.Bool(verboseKey) {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return ctx, nil
		},
		Commands: []*cli.Command{
			propagateCommand(),
			dynamicCommand(),
			dotCommand(),
		},
	}
}
