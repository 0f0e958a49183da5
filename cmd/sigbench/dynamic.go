package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/signalgraph/cmd/sigbench/templates"
	"github.com/delaneyj/signalgraph/reactive"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

func dynamicCommand() *cli.Command {
	return &cli.Command{
		Name:  "dynamic",
		Usage: "Run layered graphs whose nodes change their dependencies while running",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      configKey,
				Usage:     "YAML scenario file, the built in scenarios when empty",
				TakesFile: true,
			},
			&cli.IntFlag{
				Name:  repeatsKey,
				Usage: "Timed runs per scenario, overrides the file",
			},
			&cli.StringFlag{
				Name:  formatKey,
				Usage: "Output format: table or markdown",
				Value: "table",
			},
		},
		Action: runDynamicCommand,
	}
}

func runDynamicCommand(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String(formatKey)
	if format != "table" && format != "markdown" {
		return fmt.Errorf("unknown format %q", format)
	}

	file, err := loadScenarios(cmd.String(configKey))
	if err != nil {
		return err
	}
	repeats := file.Repeats
	if r := int(cmd.Int(repeatsKey)); r > 0 {
		repeats = r
	}

	slog.Info("starting dynamic benchmark, please wait", "scenarios", len(file.Scenarios), "repeats", repeats)
	start := time.Now()
	results := make([]templates.Result, 0, len(file.Scenarios))
	for _, s := range file.Scenarios {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := benchDynamic(s, repeats)
		if err != nil {
			return err
		}
		results = append(results, res)
	}
	slog.Info("finished dynamic benchmark", "took", time.Since(start))

	w := cmd.Root().Writer
	if format == "markdown" {
		templates.WriteReport(w, "signalgraph dynamic", results)
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "recomputes",
		"updateRate", "fingerprint", "title",
	})
	for _, r := range results {
		table.Append([]string{
			fmt.Sprintf("%dx%d", r.Width, r.Layers),
			fmt.Sprint(r.Sources),
			fmt.Sprint(r.Read),
			fmt.Sprint(r.Static),
			humanize.Comma(int64(r.Iterations)),
			r.Name,
			fmt.Sprint(r.Duration),
			humanize.Comma(int64(r.Recomputes)),
			humanize.Comma(int64(r.UpdateRate())),
			fmt.Sprintf("%016x", r.Fingerprint),
			r.Title,
		})
	}
	table.Render()
	return nil
}

type dynamicGraph struct {
	rs      *reactive.ReactiveSystem
	sources []*reactive.Source[int]
	layers  [][]*reactive.Derived[int]
}

// benchDynamic builds the scenario graph once, warms it up and keeps the
// fastest of repeats runs. Every run must leave the leaves with the same
// values, otherwise the engine lost or invented an update.
func benchDynamic(s scenario, repeats int) (templates.Result, error) {
	res := templates.Result{
		Name:       s.Name,
		Title:      s.title(),
		Width:      s.Width,
		Layers:     s.Layers,
		Sources:    s.Sources,
		Read:       s.Read,
		Static:     s.Static,
		Iterations: s.Iterations,
		Duration:   time.Duration(math.MaxInt64),
	}

	var failures engineFailures
	rs := reactive.New(reactive.WithErrorHandler(failures.handler()))
	graph := makeDynamicGraph(rs, s)

	slog.Debug("warming up", "scenario", s.Name)
	_, want := graph.run(s)
	if err := failures.Err(); err != nil {
		return res, err
	}

	for i := 0; i < repeats; i++ {
		slog.Info("running scenario",
			"scenario", s.Name,
			"repeat", fmt.Sprintf("%d/%d", i+1, repeats),
		)
		before := rs.Stats().Recomputes
		start := time.Now()
		sum, fp := graph.run(s)
		duration := time.Since(start)
		recomputes := rs.Stats().Recomputes - before

		if err := failures.Err(); err != nil {
			return res, err
		}
		if fp != want {
			return res, fmt.Errorf("scenario %q repeat %d: fingerprint %016x, want %016x", s.Name, i+1, fp, want)
		}
		slog.Debug("repeat done", "scenario", s.Name, "sum", sum, "recomputes", recomputes, "took", duration)

		if duration < res.Duration {
			res.Duration = duration
			res.Sum = sum
			res.Recomputes = recomputes
		}
	}
	res.Fingerprint = want
	return res, nil
}

func makeDynamicGraph(rs *reactive.ReactiveSystem, s scenario) *dynamicGraph {
	g := &dynamicGraph{rs: rs}
	g.sources = make([]*reactive.Source[int], s.Width)
	prevRow := make([]reactive.Value[int], s.Width)
	for i := range g.sources {
		g.sources[i] = reactive.Signal(rs, i)
		prevRow[i] = g.sources[i]
	}

	random := rand.New(rand.NewSource(0))
	g.layers = make([][]*reactive.Derived[int], s.Layers-1)
	for l := range g.layers {
		row := makeDynamicRow(rs, prevRow, s, random)
		g.layers[l] = row
		for i, n := range row {
			prevRow[i] = n
		}
	}
	return g
}

func makeDynamicRow(rs *reactive.ReactiveSystem, prevRow []reactive.Value[int], s scenario, random *rand.Rand) []*reactive.Derived[int] {
	row := make([]*reactive.Derived[int], len(prevRow))
	for myDex := range prevRow {
		mySources := make([]reactive.Value[int], 0, s.Sources)
		for sourceDex := 0; sourceDex < s.Sources; sourceDex++ {
			mySources = append(mySources, prevRow[(myDex+sourceDex)%len(prevRow)])
		}

		if random.Float64() < s.Static {
			row[myDex] = reactive.Computed(rs, func(int) int {
				sum := 0
				for _, source := range mySources {
					sum += source.Get()
				}
				return sum
			})
			continue
		}

		first := mySources[0]
		tail := mySources[1:]
		row[myDex] = reactive.Computed(rs, func(int) int {
			sum := first.Get()
			shouldDrop := sum&0x1 > 0
			dropDex := sum % len(tail)
			for i, source := range tail {
				if shouldDrop && i == dropDex {
					continue
				}
				sum += source.Get()
			}
			return sum
		})
	}
	return row
}

// run writes one source per iteration and reads a fixed random subset of
// the leaves. It returns the sum of the read leaves and a hash of every leaf
// value.
func (g *dynamicGraph) run(s scenario) (sum int, fingerprint uint64) {
	random := rand.New(rand.NewSource(0))
	leaves := g.layers[len(g.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - s.Read)))
	readLeaves := removeElems(leaves, skipCount, random)

	for i := 0; i < s.Iterations; i++ {
		g.rs.Batch(func() {
			sourceDex := i % len(g.sources)
			g.sources[sourceDex].Set(i + sourceDex)
		})
		for _, leaf := range readLeaves {
			leaf.Get()
		}
	}

	for _, leaf := range readLeaves {
		sum += leaf.Get()
	}

	d := xxhash.New()
	var buf [8]byte
	for _, leaf := range leaves {
		binary.LittleEndian.PutUint64(buf[:], uint64(leaf.Peek()))
		d.Write(buf[:])
	}
	return sum, d.Sum64()
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < rmCount; i++ {
		rmDex := random.Intn(len(out))
		out[rmDex] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}
